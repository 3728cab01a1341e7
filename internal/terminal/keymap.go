package terminal

// KeyMap maps keyboard bytes to keypad keys.
type KeyMap map[byte]uint8

// DefaultKeyMap maps the left side of a QWERTY keyboard to the keypad:
//
//	1 2 3 4     1 2 3 C
//	q w e r  →  4 5 6 D
//	a s d f     7 8 9 E
//	z x c v     A 0 B F
var DefaultKeyMap = newKeyMap([16]byte{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
})

// newKeyMap creates a key map from the keyboard byte of every keypad key.
// Letters are mapped in both cases.
func newKeyMap(layout [16]byte) KeyMap {
	km := make(KeyMap, 2*len(layout))
	for key, b := range layout {
		km[b] = uint8(key)
		if b >= 'a' && b <= 'z' {
			km[b-'a'+'A'] = uint8(key)
		}
	}
	return km
}

// Key returns the keypad key for a keyboard byte.
func (km KeyMap) Key(b byte) (uint8, bool) {
	key, ok := km[b]
	return key, ok
}
