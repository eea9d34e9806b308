package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/google/uuid"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

// Sampler uniform of each texture unit.
var samplerNames = [...]string{"samplerA", "samplerB", "samplerC", "samplerD"}

/**
 * @brief An OpenGL 3.2 core backend. All calls must come from the
 * goroutine that owns the context made current by the platform.
 */
type OpenGLRenderer struct {
	config *metadata.RendererBackendConfig
	width  int32
	height int32

	programs   [metadata.PROGRAM_COUNT]*glProgram
	current    *glProgram
	geometries map[uuid.UUID]*geometryBuffers
	textures   []*glTexture

	FrameNumber uint64
	errors      []error
}

func New() *OpenGLRenderer {
	return &OpenGLRenderer{
		geometries: make(map[uuid.UUID]*geometryBuffers),
	}
}

func (r *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig, width, height int) error {
	r.config = config
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return fmt.Errorf("gl init: %v: %w", err, core.ErrGL)
	}
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogInfo("GLSL version %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	if err := r.Resized(width, height); err != nil {
		return err
	}
	if errs := collectErrors("initialize"); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	for id, gb := range r.geometries {
		gb.destroy()
		delete(r.geometries, id)
	}
	for _, t := range r.textures {
		t.destroy()
	}
	r.textures = nil
	for i := range r.programs {
		r.ShaderDestroy(metadata.ProgramID(i))
	}
	return nil
}

func (r *OpenGLRenderer) Resized(width, height int) error {
	r.width = int32(max(width, 1))
	r.height = int32(max(height, 1))
	gl.Viewport(0, 0, r.width, r.height)
	return nil
}

/**
 * @brief Selects the packet's program, clears the framebuffer and sets
 * the uniforms shared by all geometries.
 */
func (r *OpenGLRenderer) BeginFrame(packet *metadata.FramePacket) error {
	p := r.programs[packet.Program]
	if p == nil {
		return fmt.Errorf("program %s is not loaded: %w", packet.Program, core.ErrShaderLink)
	}
	r.current = p
	gl.UseProgram(p.ID)

	// alpha 0 keeps a meaningful alpha channel in screenshots
	bg := packet.Background
	gl.ClearColor(bg.X, bg.Y, bg.Z, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, t := range r.textures {
		t.bind(packet.MinFilter, packet.MagFilter)
		if int(t.unit) < len(samplerNames) {
			gl.Uniform1i(p.location(samplerNames[t.unit]), int32(t.unit))
		}
	}

	gl.UniformMatrix4fv(p.location("viewMatrix"), 1, false, &packet.View.Data[0])
	gl.UniformMatrix4fv(p.location("projMatrix"), 1, false, &packet.Projection.Data[0])
	setVec3(p.location("lightDir"), packet.LightDirection)
	setVec3(p.location("lightColor"), packet.LightColor)
	gl.Uniform1i(p.location("gouraudMode"), boolToInt(packet.Gouraud))
	gl.Uniform1i(p.location("seamFix"), boolToInt(packet.SeamFix))
	return nil
}

func (r *OpenGLRenderer) DrawGeometry(data *metadata.GeometryRenderData) error {
	gb, ok := r.geometries[data.GeometryID]
	if !ok {
		return fmt.Errorf("geometry %s was never uploaded: %w", data.GeometryID, core.ErrGL)
	}
	p := r.current
	if p == nil {
		return fmt.Errorf("draw outside of a frame: %w", core.ErrGL)
	}
	gl.UniformMatrix4fv(p.location("modelMatrix"), 1, false, &data.Model.Data[0])
	gl.UniformMatrix3fv(p.location("normalMatrix"), 1, false, &data.Normal.Data[0])
	setVec3(p.location("objColor"), data.ObjColor)
	gl.Uniform1f(p.location("Ka"), data.Ka)
	gl.Uniform1f(p.location("Kd"), data.Kd)
	gl.Uniform1f(p.location("Ks"), data.Ks)
	gl.Uniform1f(p.location("shexp"), data.Shexp)
	gl.Uniform1i(p.location("gi"), data.Index)
	gb.draw()
	return nil
}

// EndFrame leaves texture unit 0 active and collects the GL errors of the frame.
func (r *OpenGLRenderer) EndFrame() error {
	for i := len(r.textures) - 1; i >= 0; i-- {
		gl.ActiveTexture(gl.TEXTURE0 + r.textures[i].unit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	r.current = nil
	r.FrameNumber++
	r.errors = append(r.errors, collectErrors(fmt.Sprintf("frame %d", r.FrameNumber))...)
	return nil
}

func (r *OpenGLRenderer) CreateGeometry(id uuid.UUID, mesh *math.Mesh) error {
	if old, ok := r.geometries[id]; ok {
		old.destroy()
	}
	r.geometries[id] = newGeometryBuffers(mesh)
	if errs := collectErrors("create geometry"); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (r *OpenGLRenderer) UpdateGeometryColours(id uuid.UUID, mesh *math.Mesh) error {
	gb, ok := r.geometries[id]
	if !ok {
		return fmt.Errorf("geometry %s was never uploaded: %w", id, core.ErrGL)
	}
	gb.updateColours(mesh)
	return nil
}

func (r *OpenGLRenderer) DestroyGeometry(id uuid.UUID) {
	if gb, ok := r.geometries[id]; ok {
		gb.destroy()
		delete(r.geometries, id)
	}
}

func (r *OpenGLRenderer) TextureCreate(texture *metadata.Texture, unit uint32, repeat metadata.TextureRepeat) error {
	if len(texture.Pixels) < int(texture.Width*texture.Height*4) {
		return fmt.Errorf("texture %s: %d bytes for %dx%d: %w", texture.Name, len(texture.Pixels), texture.Width, texture.Height, core.ErrImageDecode)
	}
	uploadTexture(texture, repeat)
	for _, t := range r.textures {
		if t.unit == unit {
			if t.texture != texture {
				t.destroy()
			}
			t.texture = texture
			t.repeat = repeat
			return nil
		}
	}
	r.textures = append(r.textures, &glTexture{texture: texture, unit: unit, repeat: repeat})
	if errs := collectErrors("create texture " + texture.Name); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (r *OpenGLRenderer) TextureDestroy(texture *metadata.Texture) {
	for i, t := range r.textures {
		if t.texture == texture {
			t.destroy()
			r.textures = append(r.textures[:i], r.textures[i+1:]...)
			return
		}
	}
}

/**
 * @brief Compiles and links source. The program it replaces is deleted
 * only once the new one has linked, so a broken edit keeps the old one.
 */
func (r *OpenGLRenderer) ShaderCreate(source *metadata.ShaderSource) error {
	if source.Program < 0 || source.Program >= metadata.PROGRAM_COUNT {
		return fmt.Errorf("program id %d: %w", source.Program, core.ErrShaderLink)
	}
	p, err := newProgram(source)
	if err != nil {
		return err
	}
	r.ShaderDestroy(source.Program)
	r.programs[source.Program] = p
	core.LogDebug("Loading shader '%s' with id=%d", source.Program, p.ID)
	return nil
}

func (r *OpenGLRenderer) ShaderDestroy(program metadata.ProgramID) {
	if p := r.programs[program]; p != nil {
		gl.DeleteProgram(p.ID)
		r.programs[program] = nil
	}
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func (r *OpenGLRenderer) ReadPixels(width, height int) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read %dx%d pixels: %w", width, height, core.ErrGL)
	}
	pixels := make([]uint8, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if errs := collectErrors("read pixels"); len(errs) > 0 {
		return nil, errs[0]
	}
	return pixels, nil
}

func (r *OpenGLRenderer) Errors() []error {
	errs := r.errors
	r.errors = nil
	return errs
}

func setVec3(location int32, v math.Vec3) {
	gl.Uniform3f(location, v.X, v.Y, v.Z)
}
