// Package config loads camera presets and window settings from YAML files.
// Two presets are always available: "table" (a table and console viewed with a
// toggleable projection) and "pyramid" (a single shape in clip-space units).
// A file may override either of them or add new ones.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/game_object"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPreset is returned when a requested preset does not exist.
	ErrUnknownPreset = errors.New("config: unknown preset")
	// ErrInvalidConfig is returned when a preset or window section fails validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the root of a configuration file.
type Config struct {
	DefaultPreset string            `yaml:"default_preset"`
	Window        WindowConfig      `yaml:"window"`
	Presets       map[string]Preset `yaml:"presets"`
}

// WindowConfig holds the demo window settings.
// A nil Resizable means resizable.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable *bool  `yaml:"resizable"`
}

// Preset is a named set of camera defaults and tuning values.
// Zero-valued numeric fields fall back to the built-in defaults; Position and Yaw
// are pointers because zero is a meaningful value for both.
type Preset struct {
	Position         *[3]float32       `yaml:"position"`
	WorldUp          [3]float32        `yaml:"world_up"`
	Yaw              *float32          `yaml:"yaw"`
	Pitch            float32           `yaml:"pitch"`
	PitchLimit       float32           `yaml:"pitch_limit"`
	ConstrainPitch   *bool             `yaml:"constrain_pitch"`
	Zoom             float32           `yaml:"zoom"`
	MinZoom          float32           `yaml:"min_zoom"`
	MaxZoom          float32           `yaml:"max_zoom"`
	MovementSpeed    float32           `yaml:"movement_speed"`
	MouseSensitivity float32           `yaml:"mouse_sensitivity"`
	Projection       string            `yaml:"projection"`
	ProjectionToggle bool              `yaml:"projection_toggle"`
	Near             float32           `yaml:"near"`
	Far              float32           `yaml:"far"`
	OrthoBounds      [4]float32        `yaml:"ortho_bounds"`
	FixedDeltaTime   float32           `yaml:"fixed_delta_time"`
	Bindings         map[string]string `yaml:"bindings"`
	Objects          []ObjectConfig    `yaml:"objects"`
}

// ObjectConfig places a landmark in the scene for visibility reporting.
// Radius is the model-space bounding sphere radius; a zero Scale means unit scale.
type ObjectConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Scale    [3]float32 `yaml:"scale"`
	Radius   float32    `yaml:"radius"`
}

// unitCubeRadius bounds a unit cube centred on the origin.
const unitCubeRadius = 0.8660254

// basePreset holds the values every preset falls back to.
func basePreset() Preset {
	position := [3]float32{0, 1, 3}
	yaw := float32(-90)
	constrain := true
	return Preset{
		Position:         &position,
		WorldUp:          [3]float32{0, 1, 0},
		Yaw:              &yaw,
		PitchLimit:       89,
		ConstrainPitch:   &constrain,
		Zoom:             45,
		MinZoom:          1,
		MaxZoom:          45,
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Projection:       camera.ProjectionPerspective.String(),
		Near:             0.1,
		Far:              100,
		OrthoBounds:      [4]float32{-2, 2, -2, 2},
	}
}

// Default returns the built-in configuration with the "table" and "pyramid" presets.
//
// Returns:
//   - Config: the built-in configuration
func Default() Config {
	table := basePreset()
	table.Projection = camera.ProjectionOrthographic.String()
	table.ProjectionToggle = true
	table.FixedDeltaTime = 1.0 / 60.0
	table.Objects = []ObjectConfig{
		{Name: "xbox", Position: [3]float32{-0.7, 0, 0.5}, Scale: [3]float32{0.2, 0.9, 0.4}, Radius: unitCubeRadius},
		{Name: "table", Position: [3]float32{-0.7, -0.51, 0}, Scale: [3]float32{1.75, 0.1, 0.99}, Radius: unitCubeRadius},
	}

	pyramid := basePreset()
	pyramid.Projection = camera.ProjectionOrthographic.String()
	pyramid.OrthoBounds = [4]float32{-1, 1, -1, 1}
	pyramid.FixedDeltaTime = 1.0 / 60.0
	pyramid.Objects = []ObjectConfig{
		{Name: "pyramid", Scale: [3]float32{1, 1, 1}, Radius: unitCubeRadius},
	}

	return Config{
		DefaultPreset: "table",
		Window: WindowConfig{
			Title:  "Table plane with xbox",
			Width:  800,
			Height: 600,
		},
		Presets: map[string]Preset{
			"table":   table,
			"pyramid": pyramid,
		},
	}
}

// Load reads a YAML configuration file and merges it over the built-in configuration.
// Presets defined in the file replace built-in presets of the same name.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - *Config: the merged, validated configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration data and merges it over the built-in configuration.
//
// Parameters:
//   - data: YAML document bytes
//
// Returns:
//   - *Config: the merged, validated configuration
//   - error: error if the document cannot be parsed or validated
func Parse(data []byte) (*Config, error) {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	cfg := Default()
	cfg.DefaultPreset = common.Coalesce(file.DefaultPreset, cfg.DefaultPreset)
	cfg.Window.Title = common.Coalesce(file.Window.Title, cfg.Window.Title)
	cfg.Window.Width = common.Coalesce(file.Window.Width, cfg.Window.Width)
	cfg.Window.Height = common.Coalesce(file.Window.Height, cfg.Window.Height)
	if file.Window.Resizable != nil {
		cfg.Window.Resizable = file.Window.Resizable
	}
	for name, p := range file.Presets {
		cfg.Presets[name] = p.withDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the window section and every preset.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig or ErrUnknownPreset describing the first problem
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return fmt.Errorf("%w: default preset %q", ErrUnknownPreset, c.DefaultPreset)
	}
	for _, name := range c.PresetNames() {
		p := c.Presets[name]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return nil
}

// Preset looks up a preset by name. An empty name selects DefaultPreset.
//
// Parameters:
//   - name: the preset name
//
// Returns:
//   - Preset: the preset
//   - error: an error wrapping ErrUnknownPreset if no such preset exists
func (c *Config) Preset(name string) (Preset, error) {
	name = common.Coalesce(name, c.DefaultPreset)
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, c.PresetNames())
	}
	return p, nil
}

// PresetNames returns the sorted preset names.
//
// Returns:
//   - []string: preset names in ascending order
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// withDefaults fills zero-valued fields from basePreset.
func (p Preset) withDefaults() Preset {
	base := basePreset()
	if p.Position == nil {
		p.Position = base.Position
	}
	if p.WorldUp == [3]float32{} {
		p.WorldUp = base.WorldUp
	}
	if p.Yaw == nil {
		p.Yaw = base.Yaw
	}
	if p.ConstrainPitch == nil {
		p.ConstrainPitch = base.ConstrainPitch
	}
	if p.OrthoBounds == [4]float32{} {
		p.OrthoBounds = base.OrthoBounds
	}
	p.PitchLimit = common.Coalesce(p.PitchLimit, base.PitchLimit)
	p.Zoom = common.Coalesce(p.Zoom, base.Zoom)
	p.MinZoom = common.Coalesce(p.MinZoom, base.MinZoom)
	p.MaxZoom = common.Coalesce(p.MaxZoom, base.MaxZoom)
	p.MovementSpeed = common.Coalesce(p.MovementSpeed, base.MovementSpeed)
	p.MouseSensitivity = common.Coalesce(p.MouseSensitivity, base.MouseSensitivity)
	p.Projection = common.Coalesce(p.Projection, base.Projection)
	p.Near = common.Coalesce(p.Near, base.Near)
	p.Far = common.Coalesce(p.Far, base.Far)
	return p
}

// Validate checks that tuning values are usable by the camera.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig describing the first problem
func (p Preset) Validate() error {
	switch {
	case p.MovementSpeed <= 0:
		return fmt.Errorf("%w: movement_speed %v must be positive", ErrInvalidConfig, p.MovementSpeed)
	case p.MouseSensitivity <= 0:
		return fmt.Errorf("%w: mouse_sensitivity %v must be positive", ErrInvalidConfig, p.MouseSensitivity)
	case p.MinZoom <= 0 || p.MinZoom > p.MaxZoom || p.MaxZoom >= 180:
		return fmt.Errorf("%w: zoom bounds [%v, %v] must satisfy 0 < min <= max < 180", ErrInvalidConfig, p.MinZoom, p.MaxZoom)
	case p.PitchLimit <= 0 || p.PitchLimit >= 90:
		return fmt.Errorf("%w: pitch_limit %v must be in (0, 90)", ErrInvalidConfig, p.PitchLimit)
	case p.Near <= 0 || p.Far <= p.Near:
		return fmt.Errorf("%w: clip planes near %v far %v must satisfy 0 < near < far", ErrInvalidConfig, p.Near, p.Far)
	case p.OrthoBounds[0] >= p.OrthoBounds[1] || p.OrthoBounds[2] >= p.OrthoBounds[3]:
		return fmt.Errorf("%w: ortho_bounds %v must be [left, right, bottom, top] with left < right and bottom < top", ErrInvalidConfig, p.OrthoBounds)
	case p.FixedDeltaTime < 0:
		return fmt.Errorf("%w: fixed_delta_time %v must not be negative", ErrInvalidConfig, p.FixedDeltaTime)
	case p.WorldUp == [3]float32{}:
		return fmt.Errorf("%w: world_up must not be the zero vector", ErrInvalidConfig)
	}
	for i, obj := range p.Objects {
		if obj.Name == "" || obj.Radius <= 0 {
			return fmt.Errorf("%w: objects[%d] needs a name and a positive radius", ErrInvalidConfig, i)
		}
	}
	if _, err := camera.ParseProjectionMode(p.Projection); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := input.ParseBindings(p.Bindings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FreeCameraOptions converts the preset into FreeCamera construction options.
//
// Returns:
//   - []camera.FreeCameraBuilderOption: options reproducing the preset
func (p Preset) FreeCameraOptions() []camera.FreeCameraBuilderOption {
	p = p.withDefaults()
	return []camera.FreeCameraBuilderOption{
		camera.WithPosition(p.Position[0], p.Position[1], p.Position[2]),
		camera.WithWorldUp(p.WorldUp[0], p.WorldUp[1], p.WorldUp[2]),
		camera.WithYaw(*p.Yaw),
		camera.WithPitchLimit(p.PitchLimit),
		camera.WithPitch(p.Pitch),
		camera.WithZoomBounds(p.MinZoom, p.MaxZoom),
		camera.WithZoom(p.Zoom),
		camera.WithMovementSpeed(p.MovementSpeed),
		camera.WithMouseSensitivity(p.MouseSensitivity),
	}
}

// CameraOptions converts the preset into camera rig construction options.
// The aspect ratio comes from the window, not the preset.
//
// Parameters:
//   - aspect: the viewport aspect ratio (width / height)
//
// Returns:
//   - []camera.CameraBuilderOption: options reproducing the preset
func (p Preset) CameraOptions(aspect float32) []camera.CameraBuilderOption {
	p = p.withDefaults()
	mode, _ := camera.ParseProjectionMode(p.Projection)
	return []camera.CameraBuilderOption{
		camera.WithProjection(mode),
		camera.WithAspect(aspect),
		camera.WithNear(p.Near),
		camera.WithFar(p.Far),
		camera.WithOrthoBounds(p.OrthoBounds[0], p.OrthoBounds[1], p.OrthoBounds[2], p.OrthoBounds[3]),
	}
}

// InputBindings returns the movement key bindings for the preset.
//
// Returns:
//   - input.Bindings: the resolved bindings
//   - error: error if a binding names an unknown direction or key
func (p Preset) InputBindings() (input.Bindings, error) {
	return input.ParseBindings(p.Bindings)
}

// SceneObjects builds the preset's landmarks as game objects.
//
// Returns:
//   - []game_object.GameObject: one object per configured landmark
func (p Preset) SceneObjects() []game_object.GameObject {
	objects := make([]game_object.GameObject, 0, len(p.Objects))
	for _, obj := range p.Objects {
		scale := obj.Scale
		if scale == [3]float32{} {
			scale = [3]float32{1, 1, 1}
		}
		objects = append(objects, game_object.NewGameObject(
			game_object.WithName(obj.Name),
			game_object.WithPosition(obj.Position[0], obj.Position[1], obj.Position[2]),
			game_object.WithScale(scale[0], scale[1], scale[2]),
			game_object.WithBoundingRadius(obj.Radius),
		))
	}
	return objects
}

// ApplyTuning re-applies the preset's tuning values to a live camera without
// touching its position or yaw. Pitch only changes when it exceeds a lowered pitch limit. Used when the configuration file is reloaded.
//
// Parameters:
//   - cam: the camera rig whose controller and projection are updated
func (p Preset) ApplyTuning(cam camera.Camera) {
	p = p.withDefaults()
	if ctrl := cam.Controller(); ctrl != nil {
		ctrl.SetMovementSpeed(p.MovementSpeed)
		ctrl.SetMouseSensitivity(p.MouseSensitivity)
		ctrl.SetZoomBounds(p.MinZoom, p.MaxZoom)
		ctrl.SetPitchLimit(p.PitchLimit)
	}
	if mode, err := camera.ParseProjectionMode(p.Projection); err == nil {
		cam.SetProjection(mode)
	}
	cam.SetNear(p.Near)
	cam.SetFar(p.Far)
	cam.SetOrthoBounds(camera.OrthoBounds{
		Left:   p.OrthoBounds[0],
		Right:  p.OrthoBounds[1],
		Bottom: p.OrthoBounds[2],
		Top:    p.OrthoBounds[3],
	})
}
