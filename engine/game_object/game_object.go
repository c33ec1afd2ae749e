package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu      *sync.Mutex
	id      uint64
	name    string
	enabled atomic.Bool

	position       mgl32.Vec3
	scale          mgl32.Vec3
	boundingRadius float32
}

// GameObject is a named scene landmark with a transform and a bounding sphere.
// Scenes test the bounding sphere against the camera frustum to decide what is in view.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID (0 until assigned by a scene)
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's display name.
	Name() string

	// Enabled returns whether this object takes part in visibility tests.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object takes part in visibility tests.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// SetPosition moves the object.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// Scale returns the per-axis scale factors.
	Scale() mgl32.Vec3

	// SetScale updates the per-axis scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// BoundingRadius returns the bounding sphere radius in model space.
	BoundingRadius() float32

	// BoundingSphere returns the world-space bounding sphere. The radius grows with the
	// largest scale axis so the sphere always encloses the scaled model.
	//
	// Returns:
	//   - center: sphere center in world space
	//   - radius: sphere radius in world units
	BoundingSphere() (center mgl32.Vec3, radius float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale and a bounding radius of 1.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:             &sync.Mutex{},
		scale:          mgl32.Vec3{1, 1, 1},
		boundingRadius: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) BoundingRadius() float32 {
	return g.boundingRadius
}

func (g *gameObject) BoundingSphere() (center mgl32.Vec3, radius float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := max(mgl32.Abs(g.scale[0]), mgl32.Abs(g.scale[1]), mgl32.Abs(g.scale[2]))
	return g.position, g.boundingRadius * s
}
