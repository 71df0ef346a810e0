// Package combo compiles combo scripts into servo command lines.
package combo

// HoldMarker separates key groups and emits a synchronization beat.
const HoldMarker = '~'

// Key identifies a keyboard key driven by one servo.
type Key rune

// keyOrder lists the recognized keys in actuator order (servo IDs 0-9).
var keyOrder = []Key{'A', 'S', 'D', 'H', 'J', 'K', 'W', 'U', 'I', 'O'}

// keyTable maps each recognized key to its actuator ID. Built once, never mutated.
var keyTable = func() map[Key]int {
	m := make(map[Key]int, len(keyOrder))
	for id, k := range keyOrder {
		m[k] = id
	}
	return m
}()

// Actuator returns the actuator ID for k.
func Actuator(k Key) (int, bool) {
	id, ok := keyTable[k]
	return id, ok
}

// IsKey reports whether r is a recognized key. Lookup is case-sensitive.
func IsKey(r rune) bool {
	_, ok := keyTable[Key(r)]
	return ok
}

// AllKeys returns all recognized keys in actuator order.
func AllKeys() []Key {
	keys := make([]Key, len(keyOrder))
	copy(keys, keyOrder)
	return keys
}
