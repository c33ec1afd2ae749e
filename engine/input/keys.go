package input

import "sync"

// KeyState is the set of currently held keys, fed from window key callbacks
// and polled from the tick loop.
type KeyState struct {
	mu      *sync.Mutex
	pressed map[uint32]bool
}

// NewKeyState creates an empty key state.
//
// Returns:
//   - *KeyState: the newly created key state
func NewKeyState() *KeyState {
	return &KeyState{
		mu:      &sync.Mutex{},
		pressed: make(map[uint32]bool),
	}
}

// Press marks a key as held.
//
// Parameters:
//   - keyCode: the virtual key code
func (k *KeyState) Press(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed[keyCode] = true
}

// Release marks a key as no longer held.
//
// Parameters:
//   - keyCode: the virtual key code
func (k *KeyState) Release(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pressed, keyCode)
}

// IsPressed reports whether a key is currently held.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - bool: true if the key is held
func (k *KeyState) IsPressed(keyCode uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[keyCode]
}

// Clear releases every key. Used when the window loses focus so keys do not stick.
func (k *KeyState) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.pressed)
}
