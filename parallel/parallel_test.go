package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEachVisitsAll(t *testing.T) {
	const n = 1000
	var seen [n]int32
	ForEach(n, 8, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times", i, v)
		}
	}
}

func TestForEachDegenerate(t *testing.T) {
	ForEach(0, 4, func(i int) { t.Fatal("body must not run for empty range") })
	var count int32
	ForEach(3, 0, func(i int) { atomic.AddInt32(&count, 1) })
	if count != 3 {
		t.Fatalf("zero limit should fall back to serial, got %d calls", count)
	}
}

func TestLoopUntilStops(t *testing.T) {
	var calls int32
	Loop(4).Until(func(i uint32, stop Stopper) bool {
		atomic.AddInt32(&calls, 1)
		return i >= 100
	})
	if calls < 100 {
		t.Fatalf("loop stopped before reaching the target: %d calls", calls)
	}
}
