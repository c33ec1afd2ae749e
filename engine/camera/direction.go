package camera

// Direction identifies one of the six keyboard movement directions of a FreeCamera.
type Direction int

const (
	// DirectionForward moves along the camera's front vector.
	DirectionForward Direction = iota
	// DirectionBackward moves against the camera's front vector.
	DirectionBackward
	// DirectionLeft moves against the camera's right vector.
	DirectionLeft
	// DirectionRight moves along the camera's right vector.
	DirectionRight
	// DirectionUp moves along the world up vector.
	DirectionUp
	// DirectionDown moves against the world up vector.
	DirectionDown
)

// String returns the lower-case name of the direction.
//
// Returns:
//   - string: the direction name, or "unknown" for values outside the enum
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}
