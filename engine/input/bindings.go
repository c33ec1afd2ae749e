package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
)

// Binding maps a single key to a camera movement direction.
type Binding struct {
	Key       uint32
	Direction camera.Direction
}

// Bindings is an ordered list of key-to-direction mappings polled every tick.
type Bindings []Binding

// DefaultBindings returns WASD for planar movement and Q/E for up/down.
//
// Returns:
//   - Bindings: the default movement bindings
func DefaultBindings() Bindings {
	return Bindings{
		{Key: common.KeyW, Direction: camera.DirectionForward},
		{Key: common.KeyS, Direction: camera.DirectionBackward},
		{Key: common.KeyA, Direction: camera.DirectionLeft},
		{Key: common.KeyD, Direction: camera.DirectionRight},
		{Key: common.KeyQ, Direction: camera.DirectionUp},
		{Key: common.KeyE, Direction: camera.DirectionDown},
	}
}

// ParseBindings builds bindings from direction names to key names, e.g. {"forward": "w"}.
// Directions not present in the map keep their default key.
//
// Parameters:
//   - names: map of direction name to key name
//
// Returns:
//   - Bindings: the resulting bindings
//   - error: error if a direction or key name is unknown
func ParseBindings(names map[string]string) (Bindings, error) {
	bindings := DefaultBindings()
	for dirName, keyName := range names {
		idx := -1
		for i, b := range bindings {
			if b.Direction.String() == dirName {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown movement direction %q", dirName)
		}
		code, ok := common.KeyByName(keyName)
		if !ok {
			return nil, fmt.Errorf("unknown key %q for direction %q", keyName, dirName)
		}
		bindings[idx].Key = code
	}
	return bindings, nil
}

// Apply moves the camera once for every bound key currently held.
// Opposing keys held together cancel out.
//
// Parameters:
//   - cam: the camera to move
//   - keys: the current key state
//   - deltaTime: elapsed time in seconds for this tick
//
// Returns:
//   - int: number of movement steps applied
func (b Bindings) Apply(cam camera.FreeCamera, keys *KeyState, deltaTime float32) int {
	applied := 0
	for _, binding := range b {
		if keys.IsPressed(binding.Key) {
			cam.ProcessKeyboard(binding.Direction, deltaTime)
			applied++
		}
	}
	return applied
}
