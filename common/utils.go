package common

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Coalesce returns the first value that is not the zero value of its type.
//
// Parameters:
//   - values: candidate values in order of preference
//
// Returns:
//   - T: the first non-zero value, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// FormatVec3 renders a vector with two decimals, e.g. "(0.00, 1.00, 3.00)".
func FormatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
