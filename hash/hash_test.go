package hash

import (
	"testing"
)

// performance benchmark
func BenchmarkHash(b *testing.B) {
	n := uint32(0)
	s := uint32(0)
	for i := uint32(1 << b.N); i > 1; i-- {
		n = Hash(n, s, i)
		s++
	}
}

func TestHashBounds(t *testing.T) {
	for max := uint32(1); max <= 1<<24; max <<= 3 {
		for s := uint32(0); s < 1000; s++ {
			out := Hash(s*2654435761, s, max)
			if out >= max {
				t.Fatalf("Hash(%d, %d, %d) == %d out of range", s*2654435761, s, max, out)
			}
		}
	}
	if Hash(12345, 678, 0) != 0 {
		t.Errorf("max=0 must hash to 0")
	}
}

func TestStringHash(t *testing.T) {
	a := StringHash(0, "a gripping portrait")
	b := StringHash(0, "a gripping portrait")
	if a != b {
		t.Errorf("StringHash not deterministic: %d != %d", a, b)
	}
	if StringHash(1, "a gripping portrait") == a {
		t.Errorf("distinct seeds should decorrelate (collision is astronomically unlikely)")
	}
	if StringHash(0, "a gripping portrait") == StringHash(0, "a dull portrait") {
		t.Errorf("distinct strings should not collide for seed 0")
	}
}

// TestHashBatch verifies that the batch path matches scalar Hash calls.
func TestHashBatch(t *testing.T) {
	for _, size := range []int{1, 4, 8, 16, 17, 31} {
		n := make([]uint32, size)
		s := make([]uint32, size)
		out := make([]uint32, size)
		expected := make([]uint32, size)

		for i := 0; i < size; i++ {
			n[i] = uint32(i*123 + 456)
			s[i] = uint32(i*789 + 101112)
		}
		max := uint32(1000000)

		for i := 0; i < size; i++ {
			expected[i] = Hash(n[i], s[i], max)
		}
		HashBatch(out, n, s, max)

		for i := 0; i < size; i++ {
			if out[i] != expected[i] {
				t.Errorf("size %d: mismatch at %d: got %d, want %d", size, i, out[i], expected[i])
			}
		}
	}
	if BatchLanes() < 1 {
		t.Errorf("BatchLanes must be positive")
	}
}
