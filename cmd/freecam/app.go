package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/config"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"github.com/Carmen-Shannon/oxy-freecam/engine/scene"
	"github.com/Carmen-Shannon/oxy-freecam/engine/window"
)

// titleRefresh is how often the window title status line is rewritten.
const titleRefresh = 250 * time.Millisecond

// App owns the engine, the camera and all input state of the free camera demo.
// Window callbacks run on the main thread, the tick callback on the engine goroutine
// and the render callback on the render goroutine; shared fields are guarded by mu.
type App struct {
	mu sync.Mutex

	engine engine.Engine
	window window.Window
	camera camera.Camera
	scene  scene.Scene

	keys       *input.KeyState
	cursor     *input.CursorTracker
	projToggle *input.Toggle
	resetKey   *input.Toggle
	captureKey *input.Toggle

	presetName     string
	preset         config.Preset
	bindings       input.Bindings
	constrainPitch bool
	canToggle      bool
	cursorCaptured bool

	baseTitle string
	lastTitle time.Time
	frame     []byte
}

// NewApp builds the camera rig for a preset and wires it to the window and engine.
//
// Parameters:
//   - cfg: the loaded configuration
//   - presetName: the preset to start with (empty selects the configured default)
//   - win: the window delivering input events
//   - options: additional engine options (tick rate, profiling, ...)
//
// Returns:
//   - *App: the wired application
//   - error: error if the preset does not exist or has invalid bindings
func NewApp(cfg *config.Config, presetName string, win window.Window, options ...engine.EngineBuilderOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil configuration")
	}
	preset, err := cfg.Preset(presetName)
	if err != nil {
		return nil, err
	}
	bindings, err := preset.InputBindings()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	name := common.Coalesce(presetName, cfg.DefaultPreset)

	aspect := float32(1)
	if win != nil && win.Width() > 0 && win.Height() > 0 {
		aspect = float32(win.Width()) / float32(win.Height())
	}

	cam := camera.NewCamera(append(
		preset.CameraOptions(aspect),
		camera.WithController(camera.NewFreeCamera(preset.FreeCameraOptions()...)),
	)...)

	a := &App{
		window:     win,
		camera:     cam,
		scene:      scene.NewScene(name, cam, scene.WithObjects(preset.SceneObjects()...)),
		keys:       input.NewKeyState(),
		cursor:     input.NewCursorTracker(),
		presetName: name,
		baseTitle:  cfg.Window.Title,
	}
	a.setPreset(preset, bindings)
	a.projToggle = input.NewToggle(common.KeyP, a.toggleProjection)
	a.resetKey = input.NewToggle(common.KeyR, a.resetPose)
	a.captureKey = input.NewToggle(common.KeyTab, a.toggleCursorCapture)

	engineOptions := append([]engine.EngineBuilderOption{
		engine.WithCamera(cam),
		engine.WithFixedTimeStep(preset.FixedDeltaTime),
	}, options...)
	if win != nil {
		engineOptions = append(engineOptions, engine.WithWindow(win))
	}
	a.engine = engine.NewEngine(engineOptions...)

	a.engine.SetTickCallback(a.onTick)
	a.engine.SetRenderCallback(a.onRender)
	a.engine.Profiler().SetReporter(a.Status)

	if win != nil {
		win.SetKeyDownCallback(a.onKeyDown)
		win.SetKeyUpCallback(a.onKeyUp)
		win.SetCursorPosCallback(a.onCursorPos)
		win.SetScrollCallback(a.onScroll)
		win.SetFocusCallback(a.onFocus)
		win.SetUpdateCallback(a.onUpdate)
		a.setCursorCaptured(true)
	}

	return a, nil
}

// Engine returns the engine driving the application.
func (a *App) Engine() engine.Engine {
	return a.engine
}

// Camera returns the camera rig.
func (a *App) Camera() camera.Camera {
	return a.camera
}

// Scene returns the landmarks tested against the camera frustum.
func (a *App) Scene() scene.Scene {
	return a.scene
}

// Frame returns the camera uniform bytes produced by the most recent render frame.
func (a *App) Frame() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// Run blocks until the window is closed or Quit is called.
func (a *App) Run() {
	a.engine.Run()
}

// Close releases the scene's culling workers.
func (a *App) Close() {
	a.scene.Close()
}

// Watch applies configuration reloads until the watcher is closed.
// Reloads keep the camera pose and only change tuning, bindings and projection.
//
// Parameters:
//   - w: the configuration file watcher
func (a *App) Watch(w *config.Watcher) {
	for {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return
			}
			if err := a.ApplyConfig(cfg); err != nil {
				log.Printf("[FreeCam] reload ignored: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("[FreeCam] config error: %v", err)
		}
	}
}

// ApplyConfig re-reads the active preset from a new configuration.
//
// Parameters:
//   - cfg: the reloaded configuration
//
// Returns:
//   - error: error if the active preset is missing or invalid in cfg
func (a *App) ApplyConfig(cfg *config.Config) error {
	a.mu.Lock()
	name := a.presetName
	a.mu.Unlock()

	preset, err := cfg.Preset(name)
	if err != nil {
		return err
	}
	bindings, err := preset.InputBindings()
	if err != nil {
		return err
	}

	preset.ApplyTuning(a.camera)
	a.engine.SetFixedTimeStep(preset.FixedDeltaTime)
	a.scene.Clear()
	for _, obj := range preset.SceneObjects() {
		a.scene.Add(obj)
	}
	a.setPreset(preset, bindings)
	log.Printf("[FreeCam] applied preset %q", name)
	return nil
}

// Status returns a one-line description of the camera pose and the landmarks in view.
//
// Returns:
//   - string: position, orientation, zoom, projection and visible landmarks
func (a *App) Status() string {
	fc := a.camera.Controller()
	if fc == nil {
		return "no camera"
	}
	visible := a.scene.Visible()
	inView := make([]string, len(visible))
	for i, obj := range visible {
		inView[i] = obj.Name()
	}
	return fmt.Sprintf("pos %s yaw %.1f pitch %.1f zoom %.1f %s | in view %d/%d [%s]",
		common.FormatVec3(fc.Position()), fc.Yaw(), fc.Pitch(), fc.Zoom(), a.camera.Projection(),
		len(visible), a.scene.Count(), strings.Join(inView, ", "))
}

func (a *App) setPreset(preset config.Preset, bindings input.Bindings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.preset = preset
	a.bindings = bindings
	a.constrainPitch = preset.ConstrainPitch == nil || *preset.ConstrainPitch
	a.canToggle = preset.ProjectionToggle
}

func (a *App) toggleProjection() {
	a.mu.Lock()
	allowed := a.canToggle
	a.mu.Unlock()
	if !allowed {
		return
	}
	mode := a.camera.ToggleProjection()
	log.Printf("[FreeCam] projection: %s", mode)
}

// resetPose replaces the controller with a fresh camera built from the active preset.
func (a *App) resetPose() {
	a.mu.Lock()
	preset := a.preset
	a.mu.Unlock()

	a.camera.SetController(camera.NewFreeCamera(preset.FreeCameraOptions()...))
	a.cursor.Reset()
	log.Println("[FreeCam] camera reset")
}

// CursorCaptured reports whether mouse look is active.
func (a *App) CursorCaptured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursorCaptured
}

// setCursorCaptured locks or frees the cursor. The cursor baseline is re-armed
// so the jump between the free and captured positions never reaches the camera.
func (a *App) setCursorCaptured(captured bool) {
	a.mu.Lock()
	a.cursorCaptured = captured
	a.mu.Unlock()

	a.cursor.Reset()
	if a.window != nil {
		a.window.SetCursorCaptured(captured)
	}
}

func (a *App) toggleCursorCapture() {
	captured := !a.CursorCaptured()
	a.setCursorCaptured(captured)
	log.Printf("[FreeCam] cursor captured: %t", captured)
}

func (a *App) onKeyDown(keyCode uint32) {
	a.keys.Press(keyCode)
	a.projToggle.KeyDown(keyCode)
	a.resetKey.KeyDown(keyCode)
	a.captureKey.KeyDown(keyCode)
}

func (a *App) onKeyUp(keyCode uint32) {
	a.keys.Release(keyCode)
	a.projToggle.KeyUp(keyCode)
	a.resetKey.KeyUp(keyCode)
	a.captureKey.KeyUp(keyCode)
}

func (a *App) onCursorPos(x, y float64) {
	a.mu.Lock()
	constrain := a.constrainPitch
	captured := a.cursorCaptured
	a.mu.Unlock()
	if !captured {
		return
	}

	xoffset, yoffset, ok := a.cursor.Sample(x, y)
	if !ok {
		return
	}

	if fc := a.camera.Controller(); fc != nil {
		fc.ProcessMouseMovement(xoffset, yoffset, constrain)
	}
}

func (a *App) onScroll(yoffset float64) {
	if fc := a.camera.Controller(); fc != nil {
		fc.ProcessMouseScroll(float32(yoffset))
	}
}

// onFocus drops held keys and the cursor baseline so nothing sticks across focus changes.
func (a *App) onFocus(focused bool) {
	a.keys.Clear()
	a.cursor.Reset()
	if !focused {
		a.projToggle.KeyUp(common.KeyP)
		a.resetKey.KeyUp(common.KeyR)
		a.captureKey.KeyUp(common.KeyTab)
	}
}

func (a *App) onTick(deltaTime float32) {
	fc := a.camera.Controller()
	if fc == nil {
		return
	}
	a.mu.Lock()
	bindings := a.bindings
	a.mu.Unlock()

	bindings.Apply(fc, a.keys, deltaTime)
}

func (a *App) onRender(_ float32) {
	uniform := a.camera.Uniform()
	data := uniform.Marshal()

	a.mu.Lock()
	a.frame = data
	a.mu.Unlock()
}

// onUpdate runs on the window thread and refreshes the title status line.
func (a *App) onUpdate() {
	now := time.Now()
	if now.Sub(a.lastTitle) < titleRefresh {
		return
	}
	a.lastTitle = now
	a.window.SetTitle(a.baseTitle + " | " + a.Status())
}
