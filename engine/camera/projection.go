package camera

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects how a Camera builds its projection matrix.
type ProjectionMode int

const (
	// ProjectionPerspective uses the controller's zoom as the vertical field of view.
	ProjectionPerspective ProjectionMode = iota
	// ProjectionOrthographic uses fixed OrthoBounds and ignores zoom.
	ProjectionOrthographic
)

// String returns the lower-case name of the projection mode.
//
// Returns:
//   - string: "perspective", "orthographic" or "unknown"
func (m ProjectionMode) String() string {
	switch m {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// ParseProjectionMode converts a case-insensitive name into a ProjectionMode.
// "ortho" is accepted as shorthand for orthographic.
//
// Parameters:
//   - name: the projection name
//
// Returns:
//   - ProjectionMode: the parsed mode
//   - error: error if the name is not recognised
func ParseProjectionMode(name string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "perspective", "persp":
		return ProjectionPerspective, nil
	case "orthographic", "ortho":
		return ProjectionOrthographic, nil
	default:
		return ProjectionPerspective, fmt.Errorf("unknown projection mode %q", name)
	}
}

// OrthoBounds holds the view-volume extents of an orthographic projection.
type OrthoBounds struct {
	Left, Right, Bottom, Top float32
}

// projectionMatrix builds the OpenGL-convention projection matrix for the given mode.
//
// Parameters:
//   - mode: perspective or orthographic
//   - fovDegrees: vertical field of view in degrees (perspective only)
//   - aspect: viewport width / height (perspective only)
//   - near, far: clipping plane distances
//   - ortho: view-volume extents (orthographic only)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func projectionMatrix(mode ProjectionMode, fovDegrees, aspect, near, far float32, ortho OrthoBounds) mgl32.Mat4 {
	if mode == ProjectionOrthographic {
		return mgl32.Ortho(ortho.Left, ortho.Right, ortho.Bottom, ortho.Top, near, far)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}
