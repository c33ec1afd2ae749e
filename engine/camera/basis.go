package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the squared length below which a cross product is treated as zero.
const degenerateEpsilon = 1e-12

// Basis is the orthonormal triad describing a camera's orientation.
type Basis struct {
	// Front is the unit look direction.
	Front mgl32.Vec3
	// Right is the unit vector pointing to the camera's right, orthogonal to Front and the world up vector.
	Right mgl32.Vec3
	// Up is the unit vector orthogonal to Front and Right.
	Up mgl32.Vec3
}

// OrientationBasis derives the camera triad from yaw and pitch angles.
// The triad is rebuilt from the angles on every call instead of being rotated incrementally.
//
// front = normalize(cos(yaw)·cos(pitch), sin(pitch), sin(yaw)·cos(pitch))
// right = normalize(front × worldUp)
// up    = normalize(right × front)
//
// Parameters:
//   - yaw: horizontal angle in degrees (-90 looks down -Z)
//   - pitch: vertical angle in degrees
//   - worldUp: the fixed world up vector
//
// Returns:
//   - Basis: the orthonormal front/right/up triad
func OrientationBasis(yaw, pitch float32, worldUp mgl32.Vec3) Basis {
	yawRad := float64(mgl32.DegToRad(yaw))
	pitchRad := float64(mgl32.DegToRad(pitch))
	cosPitch := math.Cos(pitchRad)

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * cosPitch),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * cosPitch),
	}.Normalize()

	right := front.Cross(worldUp)
	if right.Dot(right) < degenerateEpsilon {
		// Looking straight along worldUp: fall back to the horizontal heading.
		heading := mgl32.Vec3{float32(math.Cos(yawRad)), 0, float32(math.Sin(yawRad))}
		right = heading.Cross(worldUp)
	}
	if right.Dot(right) < degenerateEpsilon {
		// The heading is parallel to worldUp too (worldUp lies in the XZ plane).
		right = front.Cross(leastAlignedAxis(worldUp))
	}
	right = right.Normalize()
	up := right.Cross(front).Normalize()

	return Basis{
		Front: front,
		Right: right,
		Up:    up,
	}
}

// leastAlignedAxis returns the world axis closest to perpendicular to v.
func leastAlignedAxis(v mgl32.Vec3) mgl32.Vec3 {
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	best := axes[0]
	bestDot := float32(math.Abs(float64(v.Dot(best))))
	for _, axis := range axes[1:] {
		if d := float32(math.Abs(float64(v.Dot(axis)))); d < bestDot {
			best, bestDot = axis, d
		}
	}
	return best
}
