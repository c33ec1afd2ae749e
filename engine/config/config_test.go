package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "freecam.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("built-in configuration is invalid: %v", err)
	}
	if got := cfg.PresetNames(); len(got) != 2 || got[0] != "pyramid" || got[1] != "table" {
		t.Errorf("expected [pyramid table], got %v", got)
	}

	table, err := cfg.Preset("")
	if err != nil {
		t.Fatalf("default preset: %v", err)
	}
	if table.Projection != "orthographic" || !table.ProjectionToggle {
		t.Errorf("expected table preset to start orthographic with toggle, got %q toggle=%t", table.Projection, table.ProjectionToggle)
	}
	if table.FixedDeltaTime != 1.0/60.0 {
		t.Errorf("expected fixed delta time 1/60, got %f", table.FixedDeltaTime)
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
default_preset: orbit
window:
  title: Free Camera
  resizable: false
presets:
  orbit:
    position: [0, 0, 0]
    yaw: 0
    movement_speed: 5
    projection: perspective
    bindings:
      forward: up
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Window.Title != "Free Camera" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	if cfg.Window.Resizable == nil || *cfg.Window.Resizable {
		t.Errorf("expected resizable: false to be kept")
	}
	if _, err := cfg.Preset("table"); err != nil {
		t.Errorf("expected built-in table preset to survive: %v", err)
	}

	p, err := cfg.Preset("")
	if err != nil {
		t.Fatalf("default preset: %v", err)
	}
	if *p.Position != [3]float32{0, 0, 0} || *p.Yaw != 0 {
		t.Errorf("expected explicit zero position and yaw, got %v %v", *p.Position, *p.Yaw)
	}
	if p.MovementSpeed != 5 || p.MouseSensitivity != 0.1 || p.MaxZoom != 45 {
		t.Errorf("expected defaults merged under overrides, got %+v", p)
	}

	bindings, err := p.InputBindings()
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	if bindings[0].Key != common.KeyUp {
		t.Errorf("expected forward on the up arrow, got %d", bindings[0].Key)
	}
}

func TestParseRejectsInvalidPresets(t *testing.T) {
	tests := map[string]string{
		"negative speed":   "presets: {bad: {movement_speed: -1}}",
		"zoom bounds":      "presets: {bad: {min_zoom: 50, max_zoom: 10}}",
		"pitch limit":      "presets: {bad: {pitch_limit: 90}}",
		"clip planes":      "presets: {bad: {near: 10, far: 5}}",
		"ortho bounds":     "presets: {bad: {ortho_bounds: [1, -1, -1, 1]}}",
		"projection":       "presets: {bad: {projection: fisheye}}",
		"binding key":      "presets: {bad: {bindings: {forward: f13}}}",
		"binding dir":      "presets: {bad: {bindings: {sideways: w}}}",
		"negative dt":      "presets: {bad: {fixed_delta_time: -0.1}}",
		"negative height":  "window: {height: -1}",
		"unparsable array": "presets: {bad: {position: [1, 2]}}",
		"object radius":    "presets: {bad: {objects: [{name: box}]}}",
		"object name":      "presets: {bad: {objects: [{radius: 1}]}}",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(body)); err == nil {
				t.Errorf("expected error")
			}
		})
	}

	if _, err := Parse([]byte("presets: {bad: {movement_speed: -1}}")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Parse([]byte("default_preset: missing")); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetLookupUnknown(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Preset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "presets:\n  table:\n    zoom: 30\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Presets["table"].Zoom != 30 {
		t.Errorf("expected zoom 30, got %f", cfg.Presets["table"].Zoom)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPresetBuildsCamera(t *testing.T) {
	cfg, err := Parse([]byte(`
presets:
  custom:
    position: [1, 2, 3]
    yaw: 0
    pitch: 10
    zoom: 30
    min_zoom: 5
    max_zoom: 60
    movement_speed: 4
    mouse_sensitivity: 0.2
    projection: ortho
    near: 0.5
    far: 20
    ortho_bounds: [-4, 4, -3, 3]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := cfg.Preset("custom")

	fc := camera.NewFreeCamera(p.FreeCameraOptions()...)
	cam := camera.NewCamera(append(p.CameraOptions(2), camera.WithController(fc))...)

	if !fc.Position().ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-5) {
		t.Errorf("unexpected position %v", fc.Position())
	}
	if fc.Yaw() != 0 || fc.Pitch() != 10 || fc.Zoom() != 30 || fc.MinZoom() != 5 || fc.MaxZoom() != 60 {
		t.Errorf("unexpected orientation/zoom: yaw %f pitch %f zoom %f [%f, %f]", fc.Yaw(), fc.Pitch(), fc.Zoom(), fc.MinZoom(), fc.MaxZoom())
	}
	if fc.MovementSpeed() != 4 || fc.MouseSensitivity() != 0.2 {
		t.Errorf("unexpected tuning: speed %f sensitivity %f", fc.MovementSpeed(), fc.MouseSensitivity())
	}
	if cam.Projection() != camera.ProjectionOrthographic || cam.Aspect() != 2 || cam.Near() != 0.5 || cam.Far() != 20 {
		t.Errorf("unexpected projection settings: %s aspect %f near %f far %f", cam.Projection(), cam.Aspect(), cam.Near(), cam.Far())
	}
	if cam.OrthoBounds() != (camera.OrthoBounds{Left: -4, Right: 4, Bottom: -3, Top: 3}) {
		t.Errorf("unexpected ortho bounds %+v", cam.OrthoBounds())
	}
}

func TestSceneObjects(t *testing.T) {
	cfg := Default()
	table, _ := cfg.Preset("table")

	objects := table.SceneObjects()
	if len(objects) != 2 || objects[0].Name() != "xbox" || objects[1].Name() != "table" {
		t.Fatalf("unexpected table landmarks")
	}
	if objects[0].Position() != (mgl32.Vec3{-0.7, 0, 0.5}) || objects[0].Scale() != (mgl32.Vec3{0.2, 0.9, 0.4}) {
		t.Errorf("unexpected xbox transform %v %v", objects[0].Position(), objects[0].Scale())
	}

	custom, err := Parse([]byte("presets: {custom: {objects: [{name: marker, position: [1, 2, 3], radius: 2}]}}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := custom.Preset("custom")
	objects = p.SceneObjects()
	if len(objects) != 1 || objects[0].Scale() != (mgl32.Vec3{1, 1, 1}) || objects[0].BoundingRadius() != 2 {
		t.Errorf("expected unit scale marker with radius 2")
	}
}

func TestApplyTuningKeepsPose(t *testing.T) {
	fc := camera.NewFreeCamera(camera.WithPosition(7, 8, 9), camera.WithYaw(12), camera.WithPitch(60))
	cam := camera.NewCamera(camera.WithController(fc))

	cfg, err := Parse([]byte("presets: {fast: {movement_speed: 9, max_zoom: 30, pitch_limit: 45, projection: orthographic, far: 50}}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := cfg.Preset("fast")
	p.ApplyTuning(cam)

	if fc.MovementSpeed() != 9 || fc.MaxZoom() != 30 || fc.Zoom() != 30 {
		t.Errorf("tuning not applied: speed %f max zoom %f zoom %f", fc.MovementSpeed(), fc.MaxZoom(), fc.Zoom())
	}
	if cam.Projection() != camera.ProjectionOrthographic || cam.Far() != 50 {
		t.Errorf("projection not applied: %s far %f", cam.Projection(), cam.Far())
	}
	if fc.PitchLimit() != 45 || fc.Pitch() != 45 {
		t.Errorf("pitch limit not applied: limit %f pitch %f", fc.PitchLimit(), fc.Pitch())
	}
	if fc.Position() != (mgl32.Vec3{7, 8, 9}) || fc.Yaw() != 12 {
		t.Errorf("pose changed: position %v yaw %f", fc.Position(), fc.Yaw())
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "presets:\n  table:\n    movement_speed: 1\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	writeConfig(t, dir, "presets:\n  table:\n    movement_speed: 7\n")

	select {
	case cfg := <-w.Updates:
		if got := cfg.Presets["table"].MovementSpeed; got != 7 {
			t.Errorf("expected movement speed 7, got %f", got)
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestWatcherReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "presets: {}\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	writeConfig(t, dir, "presets: {table: {movement_speed: -3}}\n")

	select {
	case err := <-w.Errors:
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	case cfg := <-w.Updates:
		t.Fatalf("expected error, got update %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for error")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Errorf("expected Updates to be closed")
	}
}
