package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to remove passwords from memory once the store has taken
// its own copy. If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
