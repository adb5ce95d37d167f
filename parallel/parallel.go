// Package parallel contains the bounded concurrency primitives used by
// tokenization, tallying and the learner's salt sweeps.
package parallel

import (
	"math"
	"sync"
	"sync/atomic"
)

// ForEach executes body(i) for i in [0, length) with at most limit
// goroutines in flight.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}
	if limit > length {
		limit = length
	}

	var next int64 = -1
	var wg sync.WaitGroup
	wg.Add(limit)
	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}
	wg.Wait()
}

// Stopper is an interface to check if the loop should stop.
type Stopper interface {

	// Load reports true if the loop should stop.
	Load() bool
}

// Loop represents the number of goroutines to run.
type Loop int

// Until starts Loop goroutines that claim successive integers i starting
// from 0 until one of them returns true or i reaches MaxUint32. It is the
// driver of the learner's salt search.
func (l Loop) Until(yield func(i uint32, stop Stopper) bool) {
	if l < 1 {
		l = 1
	}
	var (
		i    uint32
		stop atomic.Bool
		wg   sync.WaitGroup
	)
	wg.Add(int(l))
	for n := 0; n < int(l); n++ {
		go func() {
			defer wg.Done()
			for !stop.Load() {
				next := atomic.AddUint32(&i, 1)
				if next == math.MaxUint32 {
					stop.Store(true)
					return
				}
				if yield(next-1, &stop) {
					stop.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()
}
