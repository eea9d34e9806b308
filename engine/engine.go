package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/shady/engine/assets"
	"github.com/spaghettifunk/shady/engine/assets/loaders"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/platform"
	"github.com/spaghettifunk/shady/engine/renderer"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
	"github.com/spaghettifunk/shady/engine/renderer/opengl"
	"github.com/spaghettifunk/shady/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Texture unit whose image tiles, so it is uploaded with REPEAT wrapping.
const repeatTextureUnit = 3

// How long the loop sleeps in WaitEvents while shader files are watched.
const watchPollSeconds = 0.25

// Built-in programs, loaded from <shader dir>/<name>.vert and .frag.
var builtinPrograms = []metadata.ProgramID{
	metadata.PROGRAM_SIMPLE,
	metadata.PROGRAM_PHONG,
	metadata.PROGRAM_TEXTURE,
	metadata.PROGRAM_BUMP,
	metadata.PROGRAM_PARALLAX,
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	isSuspended   bool
	events        *core.EventSystem
	input         *core.InputState
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	jobs          *systems.JobSystem
	clock         *core.Clock
	metrics       core.Metrics
	lastTime      time.Duration

	// window size in screen coordinates, framebuffer size in pixels
	width    int
	height   int
	fbWidth  int
	fbHeight int

	shaders  map[metadata.ProgramID]*metadata.ShaderSource
	textures map[string]uint32
	images   [MaxTextures]systems.ColourSampler
}

func New(g *Game) (*Engine, error) {
	config := g.ApplicationConfig
	if config == nil {
		config = DefaultApplicationConfig()
		g.ApplicationConfig = config
	}
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := core.SetLogLevel(config.Log.Level); err != nil {
		return nil, err
	}

	sm, err := systems.NewSystemManager(config.SystemManagerConfig())
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	sm.Settings.BgColor = vec3(config.Scene.Background)
	g.SystemManager = sm

	jobs, err := systems.NewJobSystem(max(runtime.NumCPU(), 1), MaxTextures)
	if err != nil {
		return nil, err
	}

	events := core.NewEventSystem()
	input := core.NewInputState(events)
	backendConfig := &metadata.RendererBackendConfig{
		ApplicationName: config.Window.Name,
		AbortOnGLError:  config.Renderer.AbortOnGLError,
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		events:        events,
		input:         input,
		platform:      platform.New(input, events),
		assetManager:  assets.NewAssetManager(),
		systemManager: sm,
		renderer:      renderer.New(opengl.New(), backendConfig),
		jobs:          jobs,
		clock:         core.NewClock(),
		width:         config.Window.Width,
		height:        config.Window.Height,
		shaders:       make(map[metadata.ProgramID]*metadata.ShaderSource),
		textures:      make(map[string]uint32),
	}, nil
}

/**
 * @brief Opens the window, creates the GL context and uploads everything
 * the viewer draws. A failure here is fatal: the caller shuts down.
 */
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_BUTTON_PRESSED, e, e.onButton)
	e.events.Register(core.EVENT_CODE_BUTTON_RELEASED, e, e.onButton)
	e.events.Register(core.EVENT_CODE_MOUSE_MOVED, e, e.onMouseMoved)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)
	e.events.Register(core.EVENT_CODE_ASSET_CHANGED, e, e.onAssetChanged)

	if err := e.platform.Startup(config.Window.Name, config.Window.Width, config.Window.Height); err != nil {
		return err
	}
	e.width, e.height = e.platform.WindowSize()
	e.fbWidth, e.fbHeight = e.platform.FramebufferSize()
	core.LogInfo("Platform: %s", e.platform)

	if err := e.renderer.Initialize(e.fbWidth, e.fbHeight); err != nil {
		return err
	}
	if err := e.systemManager.Cameras.Resize(e.width, e.height); err != nil {
		return err
	}

	if err := e.loadShaders(); err != nil {
		return err
	}
	if err := e.loadTextures(); err != nil {
		return err
	}
	if err := e.uploadGeometries(); err != nil {
		return err
	}

	if config.HasCustomProgram() {
		e.systemManager.Settings.Program = metadata.PROGRAM_CUSTOM
	}
	if config.Scene.Preset != 0 {
		if err := e.systemManager.Scenes.ApplyPreset(config.Scene.Preset); err != nil {
			return err
		}
	}
	if config.Assets.Watch {
		dirs := config.watchDirs()
		if err := e.assetManager.Watch(dirs...); err != nil {
			return err
		}
		core.LogInfo("Watching %v for asset changes", dirs)
	}

	if err := e.gameInstance.initialize(); err != nil {
		return err
	}
	if err := e.gameInstance.onResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) loadShaders() error {
	config := e.gameInstance.ApplicationConfig
	for _, program := range builtinPrograms {
		base := filepath.Join(config.Assets.ShaderDir, program.String())
		if err := e.loadShader(program, base+".vert", base+".frag"); err != nil {
			return err
		}
	}
	if config.HasCustomProgram() {
		return e.loadShader(metadata.PROGRAM_CUSTOM, config.Assets.VertexShader, config.Assets.FragmentShader)
	}
	return nil
}

func (e *Engine) loadShader(program metadata.ProgramID, vertexPath, fragmentPath string) error {
	source, err := e.assetManager.LoadShaderSource(program, vertexPath, fragmentPath)
	if err != nil {
		core.LogError("loading shader '%s': %v", program, err)
		return err
	}
	if err := e.renderer.ShaderCreate(source); err != nil {
		core.LogError("building shader '%s': %v", program, err)
		return err
	}
	e.shaders[program] = source
	return nil
}

/**
 * @brief Decodes the configured images on the job system, then uploads
 * image i to texture unit i and hands them to the settings for
 * per-vertex texturing.
 */
func (e *Engine) loadTextures() error {
	paths := e.gameInstance.ApplicationConfig.Assets.Textures
	images := make([]*loaders.Image, len(paths))
	errs := make([]error, len(paths))
	for i, path := range paths {
		err := e.jobs.Submit(systems.JobTask{
			Name:       path,
			Run:        func() (interface{}, error) { return e.assetManager.LoadImage(path) },
			OnComplete: func(result interface{}) { images[i] = result.(*loaders.Image) },
			OnFailure:  func(err error) { errs[i] = fmt.Errorf("loading image %s: %w", path, err) },
		})
		if err != nil {
			return err
		}
	}
	e.jobs.Wait()
	if err := errors.Join(errs...); err != nil {
		core.LogError(err.Error())
		return err
	}

	for i, img := range images {
		if err := e.uploadImage(paths[i], img, uint32(i)); err != nil {
			return err
		}
	}
	e.applySamplers()
	return nil
}

func (e *Engine) loadTexture(path string, unit uint32) error {
	img, err := e.assetManager.LoadImage(path)
	if err != nil {
		core.LogError("loading image %s: %v", path, err)
		return err
	}
	return e.uploadImage(path, img, unit)
}

func (e *Engine) uploadImage(path string, img *loaders.Image, unit uint32) error {
	repeat := metadata.TEXTURE_REPEAT_CLAMP_TO_EDGE
	if unit == repeatTextureUnit {
		repeat = metadata.TEXTURE_REPEAT_REPEAT
	}
	if err := e.renderer.TextureCreate(img.Texture(), unit, repeat); err != nil {
		core.LogError("uploading image %s: %v", path, err)
		return err
	}
	e.images[unit] = img
	e.textures[filepath.Clean(path)] = unit
	core.LogDebug("image %s (%dx%d) on texture unit %d", path, img.Width(), img.Height(), unit)
	return nil
}

func (e *Engine) applySamplers() {
	samplers := make([]systems.ColourSampler, 0, MaxTextures)
	for _, img := range e.images {
		if img == nil {
			break
		}
		samplers = append(samplers, img)
	}
	e.systemManager.Settings.SetSamplers(samplers)
	e.systemManager.Settings.ApplyVertexColours()
}

func (e *Engine) uploadGeometries() error {
	for _, g := range e.systemManager.Geometries.All() {
		if err := e.renderer.CreateGeometry(g.ID, &g.Mesh); err != nil {
			core.LogError("uploading geometry '%s': %v", g.Name, err)
			return err
		}
		g.ColoursDirty = false
	}
	return nil
}

func (e *Engine) uploadDirtyColours() {
	for _, g := range e.systemManager.Geometries.All() {
		if !g.ColoursDirty {
			continue
		}
		if err := e.renderer.UpdateGeometryColours(g.ID, &g.Mesh); err != nil {
			e.systemManager.Errors.AddError(err)
			continue
		}
		g.ColoursDirty = false
	}
}

/**
 * @brief Runs the viewer until it is asked to quit. Each iteration draws
 * one frame, presents it and then blocks for input. Per-frame errors are
 * printed and cleared; they only end the loop with --abort-on-gl-error.
 */
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	defer e.isRunning.Store(false)
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	watching := e.gameInstance.ApplicationConfig.Assets.Watch

	for e.isRunning.Load() {
		if !e.isSuspended {
			e.clock.Update()
			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime

			if err := e.gameInstance.update(delta.Seconds()); err != nil {
				core.LogError("Viewer update failed, shutting down: %v", err)
				return err
			}
			if err := e.drawFrame(); err != nil {
				return err
			}
			e.platform.SwapBuffers()

			if e.metrics.Update(delta) {
				core.LogDebug("%.0f fps, %.2f ms/frame", e.metrics.FPS(), e.metrics.FrameTime())
			}
			e.lastTime = currentTime
		}

		// Input state rolls over only after every event of the frame was seen.
		e.input.Update()
		if watching {
			e.platform.WaitEventsTimeout(watchPollSeconds)
			e.pollAssetChanges()
		} else {
			e.platform.WaitEvents()
		}
		if e.platform.ShouldClose() {
			e.isRunning.Store(false)
		}
	}
	return nil
}

// Stop ends Run after the current iteration. Safe from any goroutine.
func (e *Engine) Stop() {
	if e.isRunning.Swap(false) {
		e.platform.Wake()
	}
}

// drawFrame renders into the back buffer without presenting it.
func (e *Engine) drawFrame() error {
	sm := e.systemManager
	if err := sm.Cameras.Update(); err != nil {
		sm.Errors.AddError(err)
	}
	e.uploadDirtyColours()

	var frameErr error
	packet, err := sm.FramePacket()
	if err != nil {
		sm.Errors.AddError(err)
	} else if err := e.renderer.DrawFrame(&packet); err != nil {
		sm.Errors.AddError(err)
		frameErr = err
	}

	if sm.Errors.Print() {
		sm.Errors.Clear()
	}
	if frameErr != nil && e.gameInstance.ApplicationConfig.Renderer.AbortOnGLError {
		return fmt.Errorf("aborting on frame error: %w", frameErr)
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error
	errs = append(errs, e.jobs.Shutdown())
	errs = append(errs, e.assetManager.Shutdown())
	if e.platform.Window != nil {
		errs = append(errs, e.renderer.Shutdown())
	}
	errs = append(errs, e.systemManager.Shutdown())
	e.events.Shutdown()
	errs = append(errs, e.platform.Shutdown())
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (int, int) {
	return e.fbWidth, e.fbHeight
}

// SystemManager exposes the viewer state, mostly to front ends.
func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) onEvent(context core.EventContext, listener interface{}) bool {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext, listener interface{}) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_LSHIFT || ke.KeyCode == core.KEY_RSHIFT {
		return false
	}

	result, err := e.systemManager.HandleKey(ke.KeyCode, ke.Shift)
	if err != nil {
		core.LogWarn("key '%c': %v", rune(ke.KeyCode), err)
	}
	if result.Screenshot {
		if err := e.screenshot(); err != nil {
			core.LogError("screenshot: %v", err)
		}
	}
	if result.Quit {
		e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}
	return true
}

// screenshot redraws the current state and saves the back buffer.
func (e *Engine) screenshot() error {
	if err := e.drawFrame(); err != nil {
		return err
	}
	pixels, err := e.renderer.ReadPixels(e.fbWidth, e.fbHeight)
	if err != nil {
		return err
	}
	_, err = assets.SaveScreenshot(e.gameInstance.ApplicationConfig.Assets.ScreenshotDir, pixels, e.fbWidth, e.fbHeight)
	return err
}

func (e *Engine) onButton(context core.EventContext, listener interface{}) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if me.Button != core.BUTTON_LEFT {
		return false
	}
	if context.Type == core.EVENT_CODE_BUTTON_PRESSED {
		e.systemManager.Interaction.Press(me.PosX, me.PosY, me.Shift)
	} else {
		e.systemManager.Interaction.Release()
	}
	return true
}

func (e *Engine) onMouseMoved(context core.EventContext, listener interface{}) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if err := e.systemManager.Interaction.Motion(me.PosX, me.PosY); err != nil {
		core.LogDebug("drag ignored: %v", err)
	}
	return true
}

func (e *Engine) onResized(context core.EventContext, listener interface{}) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if re.Width == e.width && re.Height == e.height && re.FramebufferWidth == e.fbWidth && re.FramebufferHeight == e.fbHeight {
		return true
	}
	e.width, e.height = re.Width, re.Height
	e.fbWidth, e.fbHeight = re.FramebufferWidth, re.FramebufferHeight
	core.LogDebug("Window resize: %d, %d", e.width, e.height)

	// Handle minimization
	if e.fbWidth == 0 || e.fbHeight == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	if err := e.systemManager.Cameras.Resize(e.width, e.height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.renderer.OnResize(e.fbWidth, e.fbHeight); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.onResize(e.width, e.height); err != nil {
		core.LogError(err.Error())
	}

	// glfw blocks the loop while the window is dragged, so redraw here
	if e.currentStage == EngineStageRunning {
		if err := e.drawFrame(); err != nil {
			core.LogError(err.Error())
		}
		e.platform.SwapBuffers()
	}
	return true
}

// pollAssetChanges turns the files queued by the watcher into events.
func (e *Engine) pollAssetChanges() {
	for _, path := range e.assetManager.Changed() {
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_CHANGED,
			Data: &core.AssetEvent{Path: path},
		})
	}
}

/**
 * @brief Reloads a changed shader or image. A shader that fails to build
 * is reported and the program it was meant to replace stays in use.
 */
func (e *Engine) onAssetChanged(context core.EventContext, listener interface{}) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	path := filepath.Clean(ae.Path)

	for program, source := range e.shaders {
		if source.VertexPath != path && source.FragmentPath != path {
			continue
		}
		reloaded, err := e.assetManager.LoadShaderSource(program, source.VertexPath, source.FragmentPath)
		if err == nil {
			err = e.renderer.ShaderCreate(reloaded)
		}
		if err != nil {
			e.systemManager.Errors.Add("reloading shader '%s': %v", program, err)
			continue
		}
		e.shaders[program] = reloaded
		core.LogInfo("Reloaded shader '%s'", program)
	}

	if unit, ok := e.textures[path]; ok {
		if err := e.loadTexture(path, unit); err != nil {
			e.systemManager.Errors.Add("reloading image %s: %v", path, err)
		} else {
			e.applySamplers()
			core.LogInfo("Reloaded image %s", path)
		}
	}
	if e.systemManager.Errors.Print() {
		e.systemManager.Errors.Clear()
	}
	return true
}
