package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// freeCameraImpl is the single implementation of FreeCamera.
// Orientation is stored as yaw/pitch angles; the front/right/up triad is derived
// from them through OrientationBasis whenever either angle changes.
type freeCameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	worldUp  mgl32.Vec3

	// Derived from yaw, pitch and worldUp
	basis Basis

	// Orientation in degrees
	yaw        float32
	pitch      float32
	pitchLimit float32

	// Field of view in degrees
	zoom    float32
	minZoom float32
	maxZoom float32

	movementSpeed    float32
	mouseSensitivity float32
}

// FreeCamera defines the interface for a free-look (fly) camera.
// The camera owns its position, yaw/pitch orientation and zoom. It consumes discrete
// input samples (keyboard movement, mouse deltas, scroll deltas) and produces a view
// matrix and a field of view on demand.
type FreeCamera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// SetPosition moves the camera to the given world-space position without changing orientation.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// WorldUp returns the fixed world up vector chosen at construction.
	//
	// Returns:
	//   - mgl32.Vec3: the world up vector
	WorldUp() mgl32.Vec3

	// Basis returns the current front/right/up triad.
	//
	// Returns:
	//   - Basis: the orthonormal orientation triad
	Basis() Basis

	// Front returns the unit look direction.
	//
	// Returns:
	//   - mgl32.Vec3: the front vector
	Front() mgl32.Vec3

	// Right returns the unit right vector.
	//
	// Returns:
	//   - mgl32.Vec3: the right vector
	Right() mgl32.Vec3

	// Up returns the camera's unit up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Yaw returns the horizontal angle in degrees. Yaw is unbounded.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the vertical angle in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// PitchLimit returns the absolute pitch bound applied when pitch is constrained.
	//
	// Returns:
	//   - float32: pitch bound in degrees
	PitchLimit() float32

	// SetPitchLimit replaces the pitch bound and clamps the current pitch into it.
	// Limits outside (0, 90) fall back to 89.
	//
	// Parameters:
	//   - limit: pitch bound in degrees
	SetPitchLimit(limit float32)

	// Zoom returns the field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Zoom() float32

	// MinZoom returns the smallest allowed field of view.
	//
	// Returns:
	//   - float32: lower zoom bound in degrees
	MinZoom() float32

	// MaxZoom returns the largest allowed field of view.
	//
	// Returns:
	//   - float32: upper zoom bound in degrees
	MaxZoom() float32

	// SetZoomBounds replaces the zoom range and clamps the current zoom into it.
	// Inverted bounds are swapped.
	//
	// Parameters:
	//   - min: lower bound in degrees
	//   - max: upper bound in degrees
	SetZoomBounds(min, max float32)

	// MovementSpeed returns the keyboard movement speed in world units per second.
	//
	// Returns:
	//   - float32: movement speed
	MovementSpeed() float32

	// SetMovementSpeed sets the keyboard movement speed.
	//
	// Parameters:
	//   - speed: world units per second
	SetMovementSpeed(speed float32)

	// MouseSensitivity returns the multiplier applied to raw mouse offsets.
	//
	// Returns:
	//   - float32: degrees per screen unit
	MouseSensitivity() float32

	// SetMouseSensitivity sets the multiplier applied to raw mouse offsets.
	//
	// Parameters:
	//   - sensitivity: degrees per screen unit
	SetMouseSensitivity(sensitivity float32)

	// ViewMatrix returns the right-handed look-at matrix built from position,
	// position+front and up. Reading the matrix has no side effects.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProcessKeyboard moves the camera by MovementSpeed*deltaTime in the given direction.
	// Calls within one frame compose additively. A deltaTime of 0 leaves the camera in place.
	//
	// Parameters:
	//   - direction: one of the six movement directions
	//   - deltaTime: elapsed time in seconds (>= 0)
	ProcessKeyboard(direction Direction, deltaTime float32)

	// ProcessMouseMovement adds scaled cursor offsets to yaw and pitch and rebuilds the triad.
	// When constrainPitch is true, pitch is clamped to [-PitchLimit, PitchLimit] regardless of
	// the offset magnitude.
	//
	// Parameters:
	//   - xoffset: horizontal cursor delta in screen units
	//   - yoffset: vertical cursor delta in screen units (positive looks up)
	//   - constrainPitch: whether to clamp pitch
	ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool)

	// ProcessMouseScroll subtracts the scroll delta from zoom and clamps it to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - yoffset: vertical scroll delta (positive zooms in)
	ProcessMouseScroll(yoffset float32)
}

// Compile-time interface compliance check
var _ FreeCamera = &freeCameraImpl{}

// NewFreeCamera creates a new free-look camera.
// Defaults: position (0, 1, 3), world up (0, 1, 0), yaw -90 (looking down -Z), pitch 0,
// zoom 45 within [1, 45], pitch limit 89, movement speed 2.5, mouse sensitivity 0.1.
// The orientation triad is computed before the camera is returned.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - FreeCamera: the newly created camera
func NewFreeCamera(options ...FreeCameraBuilderOption) FreeCamera {
	fc := &freeCameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 1, 3},
		worldUp:  mgl32.Vec3{0, 1, 0},

		yaw:        -90.0,
		pitch:      0.0,
		pitchLimit: defaultPitchLimit,

		zoom:    45.0,
		minZoom: 1.0,
		maxZoom: 45.0,

		movementSpeed:    2.5,
		mouseSensitivity: 0.1,
	}

	for _, option := range options {
		option(fc)
	}

	fc.worldUp = fc.worldUp.Normalize()
	fc.pitchLimit = validPitchLimit(fc.pitchLimit)
	fc.minZoom, fc.maxZoom = orderedBounds(fc.minZoom, fc.maxZoom)
	fc.pitch = mgl32.Clamp(fc.pitch, -fc.pitchLimit, fc.pitchLimit)
	fc.zoom = mgl32.Clamp(fc.zoom, fc.minZoom, fc.maxZoom)
	fc.updateCameraVectors()
	return fc
}

// defaultPitchLimit replaces pitch limits outside (0, 90).
const defaultPitchLimit = 89.0

// validPitchLimit keeps the limit inside (0, 90) so a constrained camera never looks along worldUp.
func validPitchLimit(limit float32) float32 {
	if !(limit > 0 && limit < 90) {
		return defaultPitchLimit
	}
	return limit
}

// orderedBounds returns min and max swapped when they are given inverted.
func orderedBounds(min, max float32) (float32, float32) {
	if min > max {
		return max, min
	}
	return min, max
}

// updateCameraVectors rebuilds the triad from yaw, pitch and worldUp.
// Caller must hold the mutex.
func (fc *freeCameraImpl) updateCameraVectors() {
	fc.basis = OrientationBasis(fc.yaw, fc.pitch, fc.worldUp)
}

func (fc *freeCameraImpl) Position() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.position
}

func (fc *freeCameraImpl) SetPosition(position mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = position
}

func (fc *freeCameraImpl) WorldUp() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.worldUp
}

func (fc *freeCameraImpl) Basis() Basis {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.basis
}

func (fc *freeCameraImpl) Front() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.basis.Front
}

func (fc *freeCameraImpl) Right() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.basis.Right
}

func (fc *freeCameraImpl) Up() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.basis.Up
}

func (fc *freeCameraImpl) Yaw() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.yaw
}

func (fc *freeCameraImpl) Pitch() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pitch
}

func (fc *freeCameraImpl) PitchLimit() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pitchLimit
}

func (fc *freeCameraImpl) Zoom() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.zoom
}

func (fc *freeCameraImpl) MinZoom() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.minZoom
}

func (fc *freeCameraImpl) MaxZoom() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.maxZoom
}

func (fc *freeCameraImpl) SetZoomBounds(min, max float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.minZoom, fc.maxZoom = orderedBounds(min, max)
	fc.zoom = mgl32.Clamp(fc.zoom, fc.minZoom, fc.maxZoom)
}

func (fc *freeCameraImpl) SetPitchLimit(limit float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.pitchLimit = validPitchLimit(limit)
	if clamped := mgl32.Clamp(fc.pitch, -fc.pitchLimit, fc.pitchLimit); clamped != fc.pitch {
		fc.pitch = clamped
		fc.updateCameraVectors()
	}
}

func (fc *freeCameraImpl) MovementSpeed() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.movementSpeed
}

func (fc *freeCameraImpl) SetMovementSpeed(speed float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.movementSpeed = speed
}

func (fc *freeCameraImpl) MouseSensitivity() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.mouseSensitivity
}

func (fc *freeCameraImpl) SetMouseSensitivity(sensitivity float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.mouseSensitivity = sensitivity
}

func (fc *freeCameraImpl) ViewMatrix() mgl32.Mat4 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return mgl32.LookAtV(fc.position, fc.position.Add(fc.basis.Front), fc.basis.Up)
}

func (fc *freeCameraImpl) ProcessKeyboard(direction Direction, deltaTime float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	velocity := fc.movementSpeed * deltaTime
	switch direction {
	case DirectionForward:
		fc.position = fc.position.Add(fc.basis.Front.Mul(velocity))
	case DirectionBackward:
		fc.position = fc.position.Sub(fc.basis.Front.Mul(velocity))
	case DirectionRight:
		fc.position = fc.position.Add(fc.basis.Right.Mul(velocity))
	case DirectionLeft:
		fc.position = fc.position.Sub(fc.basis.Right.Mul(velocity))
	case DirectionUp:
		fc.position = fc.position.Add(fc.worldUp.Mul(velocity))
	case DirectionDown:
		fc.position = fc.position.Sub(fc.worldUp.Mul(velocity))
	}
}

func (fc *freeCameraImpl) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.yaw += xoffset * fc.mouseSensitivity
	fc.pitch += yoffset * fc.mouseSensitivity

	if constrainPitch {
		fc.pitch = mgl32.Clamp(fc.pitch, -fc.pitchLimit, fc.pitchLimit)
	}

	fc.updateCameraVectors()
}

func (fc *freeCameraImpl) ProcessMouseScroll(yoffset float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.zoom = mgl32.Clamp(fc.zoom-yoffset, fc.minZoom, fc.maxZoom)
}
