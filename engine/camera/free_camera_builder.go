package camera

import "github.com/go-gl/mathgl/mgl32"

// FreeCameraBuilderOption is a functional option for configuring a FreeCamera.
type FreeCameraBuilderOption func(*freeCameraImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.position = mgl32.Vec3{x, y, z}
	}
}

// WithWorldUp sets the fixed world up vector. The vector is normalized at construction.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the world up vector
func WithWorldUp(x, y, z float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.worldUp = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the initial horizontal angle.
//
// Parameters:
//   - yaw: horizontal angle in degrees (-90 looks down -Z)
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the yaw
func WithYaw(yaw float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.yaw = yaw
	}
}

// WithPitch sets the initial vertical angle. The value is clamped to the pitch limit.
//
// Parameters:
//   - pitch: vertical angle in degrees
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the pitch
func WithPitch(pitch float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.pitch = pitch
	}
}

// WithPitchLimit sets the absolute bound used when pitch is constrained.
// Values outside (0, 90) are replaced by the default of 89.
//
// Parameters:
//   - limit: pitch bound in degrees
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.pitchLimit = limit
	}
}

// WithZoom sets the initial field of view. The value is clamped to the zoom bounds.
//
// Parameters:
//   - zoom: field of view in degrees
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the zoom
func WithZoom(zoom float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum field of view. Inverted bounds are swapped.
//
// Parameters:
//   - min: lower bound in degrees
//   - max: upper bound in degrees
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the zoom bounds
func WithZoomBounds(min, max float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.minZoom = min
		fc.maxZoom = max
	}
}

// WithMovementSpeed sets the keyboard movement speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set the movement speed
func WithMovementSpeed(speed float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the multiplier applied to raw mouse offsets.
//
// Parameters:
//   - sensitivity: degrees per screen unit
//
// Returns:
//   - FreeCameraBuilderOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) FreeCameraBuilderOption {
	return func(fc *freeCameraImpl) {
		fc.mouseSensitivity = sensitivity
	}
}
