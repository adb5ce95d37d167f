// Package hash implements the salted modular hash the classifier is built on.
package hash

// Hash mixes n with the salt s and reduces the result below max.
// It is the only nonlinearity in the whole network.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mix the salt in by subtraction, undone by addition after scrambling
	var m = n - s

	// xorshift with prime shift amounts
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	// range reduction without division (Lemire's multiply-shift)
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash folds a string into one salted feature. The same seed and
// string always give the same feature, distinct seeds decorrelate features
// of the same string.
func StringHash(seed uint32, str string) (out uint32) {
	out = Hash(uint32(len(str)), seed, 0xFFFFFFFF)
	for _, c := range str {
		out = Hash(out, uint32(c)+seed, 0xFFFFFFFF)
	}
	return
}
