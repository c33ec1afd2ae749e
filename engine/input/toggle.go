package input

import "sync"

// Toggle fires an action once per physical key press.
// Key-repeat events that arrive while the key is held are ignored.
type Toggle struct {
	mu     *sync.Mutex
	key    uint32
	held   bool
	action func()
}

// NewToggle creates an edge-triggered action bound to a key.
//
// Parameters:
//   - keyCode: the virtual key code that triggers the action
//   - action: the function to run on each press
//
// Returns:
//   - *Toggle: the newly created toggle
func NewToggle(keyCode uint32, action func()) *Toggle {
	return &Toggle{
		mu:     &sync.Mutex{},
		key:    keyCode,
		action: action,
	}
}

// KeyDown handles a key press or repeat event.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - bool: true if the action fired
func (t *Toggle) KeyDown(keyCode uint32) bool {
	t.mu.Lock()
	if keyCode != t.key || t.held {
		t.mu.Unlock()
		return false
	}
	t.held = true
	t.mu.Unlock()

	if t.action != nil {
		t.action()
	}
	return true
}

// KeyUp handles a key release event, re-arming the toggle.
//
// Parameters:
//   - keyCode: the virtual key code
func (t *Toggle) KeyUp(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if keyCode == t.key {
		t.held = false
	}
}
