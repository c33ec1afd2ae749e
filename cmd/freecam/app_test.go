package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeWindow records callbacks so tests can fire input events without a display.
type fakeWindow struct {
	width, height int
	title         string
	captured      bool

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(yoffset float64)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onCursorPos func(x, y float64)
	onFocus     func(focused bool)
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetScrollCallback(callback func(yoffset float64))   { w.onScroll = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32))   { w.onKeyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(callback func(keyCode uint32))     { w.onKeyUp = callback }
func (w *fakeWindow) SetCursorPosCallback(callback func(x, y float64))   { w.onCursorPos = callback }
func (w *fakeWindow) SetFocusCallback(callback func(focused bool))       { w.onFocus = callback }
func (w *fakeWindow) SetCursorCaptured(captured bool)                    { w.captured = captured }
func (w *fakeWindow) SetTitle(title string)                              { w.title = title }
func (w *fakeWindow) IsRunning() bool                                    { return false }
func (w *fakeWindow) Close() error                                       { return nil }
func (w *fakeWindow) ProcessMessages()                                   {}
func (w *fakeWindow) Width() int                                         { return w.width }
func (w *fakeWindow) Height() int                                        { return w.height }

func newTestApp(t *testing.T, preset string) (*App, *fakeWindow) {
	t.Helper()
	cfg := config.Default()
	win := &fakeWindow{width: 800, height: 600}
	app, err := NewApp(&cfg, preset, win)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app, win
}

func TestNewAppUsesPreset(t *testing.T) {
	app, _ := newTestApp(t, "")

	cam := app.Camera()
	if cam.Aspect() != float32(800)/600 {
		t.Errorf("expected aspect from window size, got %f", cam.Aspect())
	}
	if cam.Projection() != camera.ProjectionOrthographic {
		t.Errorf("expected table preset to start orthographic, got %s", cam.Projection())
	}
	fc := cam.Controller()
	if !fc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 1, 3}, 1e-6) || fc.Yaw() != -90 {
		t.Errorf("unexpected starting pose %v yaw %f", fc.Position(), fc.Yaw())
	}

	cfg := config.Default()
	if _, err := NewApp(&cfg, "missing", &fakeWindow{width: 1, height: 1}); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := NewApp(nil, "", nil); err == nil {
		t.Errorf("expected error for nil configuration")
	}
}

func TestKeysMoveCameraOnTick(t *testing.T) {
	app, win := newTestApp(t, "table")
	fc := app.Camera().Controller()
	start := fc.Position()

	win.onKeyDown(common.KeyW)
	app.onTick(1)
	win.onKeyUp(common.KeyW)
	app.onTick(1)

	want := start.Add(mgl32.Vec3{0, 0, -2.5})
	if !fc.Position().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected %v after one forward tick, got %v", want, fc.Position())
	}

	win.onKeyDown(common.KeyQ)
	win.onFocus(false)
	app.onTick(1)
	if !fc.Position().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected focus loss to release held keys, got %v", fc.Position())
	}
}

func TestCursorBaselineAndPitch(t *testing.T) {
	app, win := newTestApp(t, "table")
	fc := app.Camera().Controller()

	win.onCursorPos(400, 300)
	if fc.Yaw() != -90 || fc.Pitch() != 0 {
		t.Fatalf("first sample must only set the baseline, got yaw %f pitch %f", fc.Yaw(), fc.Pitch())
	}

	win.onCursorPos(410, 280)
	if diff := fc.Yaw() - (-89); diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected yaw -89, got %f", fc.Yaw())
	}
	if diff := fc.Pitch() - 2; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected pitch 2, got %f", fc.Pitch())
	}

	win.onCursorPos(410, -100000)
	if fc.Pitch() != 89 {
		t.Errorf("expected pitch clamped at 89, got %f", fc.Pitch())
	}
}

func TestTabReleasesAndRecapturesCursor(t *testing.T) {
	app, win := newTestApp(t, "table")
	fc := app.Camera().Controller()
	if !win.captured || !app.CursorCaptured() {
		t.Fatalf("expected the cursor to be captured on start")
	}

	win.onCursorPos(400, 300)
	win.onKeyDown(common.KeyTab)
	win.onKeyUp(common.KeyTab)
	if win.captured || app.CursorCaptured() {
		t.Fatalf("expected Tab to release the cursor")
	}
	win.onCursorPos(900, 300)
	if fc.Yaw() != -90 {
		t.Errorf("expected a free cursor to leave yaw alone, got %f", fc.Yaw())
	}

	win.onKeyDown(common.KeyTab)
	if !win.captured {
		t.Fatalf("expected a second Tab press to capture the cursor again")
	}
	win.onCursorPos(50, 300)
	if fc.Yaw() != -90 {
		t.Errorf("expected the first sample after capture to only set the baseline, got yaw %f", fc.Yaw())
	}
	win.onCursorPos(60, 300)
	if diff := fc.Yaw() - (-89); diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected yaw -89 after recapture, got %f", fc.Yaw())
	}
}

func TestScrollZooms(t *testing.T) {
	app, win := newTestApp(t, "table")
	fc := app.Camera().Controller()

	win.onScroll(10)
	if fc.Zoom() != 35 {
		t.Errorf("expected zoom 35, got %f", fc.Zoom())
	}
	win.onScroll(-100)
	if fc.Zoom() != 45 {
		t.Errorf("expected zoom clamped at 45, got %f", fc.Zoom())
	}
}

func TestProjectionToggle(t *testing.T) {
	app, win := newTestApp(t, "table")
	cam := app.Camera()

	win.onKeyDown(common.KeyP)
	win.onKeyDown(common.KeyP) // key repeat
	if cam.Projection() != camera.ProjectionPerspective {
		t.Fatalf("expected one toggle to perspective, got %s", cam.Projection())
	}
	win.onKeyUp(common.KeyP)
	win.onKeyDown(common.KeyP)
	if cam.Projection() != camera.ProjectionOrthographic {
		t.Errorf("expected second press to toggle back, got %s", cam.Projection())
	}

	pyramid, win2 := newTestApp(t, "pyramid")
	win2.onKeyDown(common.KeyP)
	if pyramid.Camera().Projection() != camera.ProjectionOrthographic {
		t.Errorf("expected pyramid preset to ignore the toggle key")
	}
}

func TestResetRestoresPose(t *testing.T) {
	app, win := newTestApp(t, "table")

	win.onKeyDown(common.KeyD)
	app.onTick(2)
	win.onKeyUp(common.KeyD)
	win.onScroll(20)

	win.onKeyDown(common.KeyR)
	win.onKeyUp(common.KeyR)

	fc := app.Camera().Controller()
	if !fc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 1, 3}, 1e-6) || fc.Zoom() != 45 {
		t.Errorf("expected reset pose, got %v zoom %f", fc.Position(), fc.Zoom())
	}
}

func TestApplyConfigKeepsPose(t *testing.T) {
	app, win := newTestApp(t, "table")
	win.onKeyDown(common.KeyA)
	app.onTick(1)
	win.onKeyUp(common.KeyA)
	pos := app.Camera().Controller().Position()

	cfg, err := config.Parse([]byte(`
presets:
  table:
    movement_speed: 8
    pitch_limit: 60
    projection: perspective
    bindings:
      forward: up
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := app.ApplyConfig(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}

	fc := app.Camera().Controller()
	if fc.Position() != pos {
		t.Errorf("expected pose kept, got %v want %v", fc.Position(), pos)
	}
	if fc.MovementSpeed() != 8 || app.Camera().Projection() != camera.ProjectionPerspective {
		t.Errorf("expected tuning applied, speed %f projection %s", fc.MovementSpeed(), app.Camera().Projection())
	}
	if app.Scene().Count() != 0 {
		t.Errorf("expected landmarks replaced by the reloaded preset's (none), got %d", app.Scene().Count())
	}

	win.onKeyDown(common.KeyUp)
	app.onTick(0.5)
	if want := pos.Add(mgl32.Vec3{0, 0, -4}); !fc.Position().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected rebound forward key to move to %v, got %v", want, fc.Position())
	}

	win.onCursorPos(0, 0)
	win.onCursorPos(0, -100000)
	if fc.Pitch() != 60 {
		t.Errorf("expected reloaded pitch limit 60 to constrain mouse look, got %f", fc.Pitch())
	}

	other, _ := config.Parse([]byte("default_preset: solo\npresets: {solo: {}}\n"))
	delete(other.Presets, "table")
	if err := app.ApplyConfig(other); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset when the active preset disappears, got %v", err)
	}
}

func TestRenderAndStatus(t *testing.T) {
	app, win := newTestApp(t, "table")

	app.onRender(0)
	if got := len(app.Frame()); got != 160 {
		t.Errorf("expected a 160-byte camera uniform, got %d", got)
	}

	status := app.Status()
	for _, part := range []string{"pos (0.00, 1.00, 3.00)", "yaw -90.0", "orthographic", "in view 2/2 [xbox, table]"} {
		if !strings.Contains(status, part) {
			t.Errorf("status %q is missing %q", status, part)
		}
	}

	win.onUpdate()
	if !strings.HasPrefix(win.title, "Table plane with xbox | ") {
		t.Errorf("unexpected title %q", win.title)
	}
}

func TestResizeUpdatesAspect(t *testing.T) {
	app, win := newTestApp(t, "table")

	win.onResize(1000, 500)
	if app.Camera().Aspect() != 2 {
		t.Errorf("expected aspect 2, got %f", app.Camera().Aspect())
	}
	win.onResize(0, 0)
	if app.Camera().Aspect() != 2 {
		t.Errorf("expected minimized window to keep aspect, got %f", app.Camera().Aspect())
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := config.Load("freecam.yaml")
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if _, err := NewApp(cfg, "fly", &fakeWindow{width: 1280, height: 720}); err != nil {
		t.Errorf("fly preset: %v", err)
	}
	if _, err := NewApp(cfg, "", &fakeWindow{width: 1280, height: 720}); err != nil {
		t.Errorf("default preset: %v", err)
	}
}
