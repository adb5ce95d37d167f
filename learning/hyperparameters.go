// Package learning trains a single cell on a boolean split
// by searching for salted modular hashes that separate the classes.
package learning

import "log"
import "os"
import "github.com/jbarham/primegen"

// RateScale converts an optimizer-style learning rate into
// the fraction of the modulo annealed away per accepted step.
// A rate of 2e-5 shrinks the modulo by roughly 1/21 per step.
const RateScale = 2400

// HyperParameters configure the salt search for one cell.
type HyperParameters struct {
	// Threads is the number of salt sweep workers. 0 means GOMAXPROCS.
	Threads int

	// Shuffle shuffles the alphabets before the search.
	Shuffle bool
	// Seed seeds the pseudorandom salt source from crypto rand.
	Seed bool

	// LearningRate scaled by RateScale is the fraction of the modulo
	// annealed away after every accepted salt.
	LearningRate float64
	// MinLearningRate floors the effective annealing step.
	MinLearningRate float64

	// DeadlineMs caps one salt sweep in milliseconds.
	DeadlineMs int
	// DeadlineRetry is how many failed sweeps to tolerate before
	// giving up on the current modulo ladder.
	DeadlineRetry int

	// PrimeModulo snaps every annealed modulo down to a prime.
	PrimeModulo bool

	// InitialLimit is the longest program worth keeping.
	InitialLimit int

	// EndWhenSolved stops Training as soon as a cell solves the split.
	EndWhenSolved bool

	// Printer reports progress every Printer accepted salts. 0 is quiet.
	Printer uint32

	// Name identifies the job in the log output.
	Name string

	l      *log.Logger
	primes []uint32
}

// SetLogger redirects the learner's progress output to a file.
func (h *HyperParameters) SetLogger(filename string) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	h.l = log.New(f, "", log.LstdFlags)
	return nil
}

func (h *HyperParameters) printf(format string, v ...any) {
	if h.l != nil {
		h.l.Printf(format, v...)
		return
	}
	log.Printf(format, v...)
}

// Rate is the effective per-step modulo shrink fraction.
func (h *HyperParameters) Rate() float64 {
	r := h.LearningRate * RateScale
	if min := h.MinLearningRate * RateScale; r < min {
		r = min
	}
	if r <= 0 {
		r = 1.0 / 21
	}
	if r > 0.5 {
		r = 0.5
	}
	return r
}

// snapPrime returns the largest prime not above max, or max itself
// when the table holds no such prime.
func (h *HyperParameters) snapPrime(max uint32) uint32 {
	if !h.PrimeModulo || max < 3 {
		return max
	}
	if len(h.primes) == 0 || h.primes[len(h.primes)-1] < max {
		h.fillPrimes(max)
	}
	var best uint32
	for _, p := range h.primes {
		if p > max {
			break
		}
		best = p
	}
	if best < 2 {
		return max
	}
	return best
}

func (h *HyperParameters) fillPrimes(bound uint32) {
	gen := primegen.New()
	h.primes = h.primes[:0]
	for {
		p := gen.Next()
		if p > uint64(bound) {
			return
		}
		h.primes = append(h.primes, uint32(p))
	}
}
