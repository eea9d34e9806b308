package renderer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
)

/**
 * @brief Front end over a RendererBackend: uploads what the viewer owns
 * and draws one FramePacket per frame.
 */
type Renderer struct {
	backend RendererBackend
	config  *metadata.RendererBackendConfig
}

func New(backend RendererBackend, config *metadata.RendererBackendConfig) *Renderer {
	return &Renderer{
		backend: backend,
		config:  config,
	}
}

func (r *Renderer) Initialize(width, height int) error {
	return r.backend.Initialize(r.config, width, height)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height int) error {
	return r.backend.Resized(width, height)
}

/**
 * @brief Draws every geometry of the packet. Errors raised by the backend
 * while drawing are returned joined; they are not fatal unless the
 * caller decides so.
 */
func (r *Renderer) DrawFrame(packet *metadata.FramePacket) error {
	if err := r.backend.BeginFrame(packet); err != nil {
		core.LogError(err.Error())
		return err
	}
	var errs []error
	for i := range packet.Geometries {
		if err := r.backend.DrawGeometry(&packet.Geometries[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.backend.EndFrame(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, r.backend.Errors()...)
	return errors.Join(errs...)
}

func (r *Renderer) CreateGeometry(id uuid.UUID, mesh *math.Mesh) error {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("geometry %s has no vertices or indices", id)
	}
	return r.backend.CreateGeometry(id, mesh)
}

func (r *Renderer) UpdateGeometryColours(id uuid.UUID, mesh *math.Mesh) error {
	return r.backend.UpdateGeometryColours(id, mesh)
}

func (r *Renderer) DestroyGeometry(id uuid.UUID) {
	r.backend.DestroyGeometry(id)
}

// TextureCreate uploads texture to texture unit `unit`.
func (r *Renderer) TextureCreate(texture *metadata.Texture, unit uint32, repeat metadata.TextureRepeat) error {
	return r.backend.TextureCreate(texture, unit, repeat)
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) {
	r.backend.TextureDestroy(texture)
}

// ShaderCreate compiles and links a program, replacing an earlier one
// with the same ProgramID only when the new one links.
func (r *Renderer) ShaderCreate(source *metadata.ShaderSource) error {
	return r.backend.ShaderCreate(source)
}

func (r *Renderer) ShaderDestroy(program metadata.ProgramID) {
	r.backend.ShaderDestroy(program)
}

// ReadPixels returns the framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels(width, height int) ([]uint8, error) {
	return r.backend.ReadPixels(width, height)
}
