package learning

import "crypto/rand"
import "encoding/binary"
import "errors"
import mathrand "math/rand"
import "runtime"
import "sync"
import "time"

import "github.com/selfexplain/classifier/cell"
import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/hash"
import "github.com/selfexplain/classifier/parallel"

// ErrUnsolved is returned by Training when no cell separating the
// classes was found within the retry budget.
var ErrUnsolved = errors.New("learning: no solution within retry budget")

// Training splits the dataset and searches for a cell that maps every
// class 0 key to an even value and every class 1 key to an odd value.
// With EndWhenSolved the first solution wins; without it the whole
// retry budget is spent and the shortest program is kept.
func (h *HyperParameters) Training(d datasets.Splitter) (*cell.Cell, error) {
	if h.Seed {
		var b [8]byte
		rand.Read(b[:])
		mathrand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
	}
	split := datasets.BalanceDataset(d.Split())
	retries := h.DeadlineRetry
	if retries <= 0 {
		retries = 1
	}
	var best *cell.Cell
	for i := 0; i < retries; i++ {
		_, c := h.Solve(split)
		if c != nil {
			if h.EndWhenSolved {
				return c, nil
			}
			if best == nil || c.Len() < best.Len() {
				best = c
			}
			continue
		}
		if h.Printer != 0 {
			h.printf("%s: retry %d of %d", h.Name, i+1, retries)
		}
	}
	if best != nil {
		return best, nil
	}
	return nil, ErrUnsolved
}

// Solve runs one modulo ladder. It returns the program length budget
// that remains and, on success, the solving cell.
func (h *HyperParameters) Solve(d datasets.SplittedDataset) (int, *cell.Cell) {
	var alphabet [2][]uint32
	var bits byte = 1
	for cls := range d {
		for v := range d[cls] {
			alphabet[cls] = append(alphabet[cls], v)
			for b := byte(1); b <= 16; b++ {
				if v>>16 >= uint32(1)<<(b-1) {
					bits = b + 1
				}
			}
		}
	}
	if h.Shuffle {
		for cls := range alphabet {
			mathrand.Shuffle(len(alphabet[cls]), func(i, j int) {
				alphabet[cls][i], alphabet[cls][j] = alphabet[cls][j], alphabet[cls][i]
			})
		}
	}
	maxl := len(alphabet[0])
	if len(alphabet[1]) > maxl {
		maxl = len(alphabet[1])
	}
	if maxl == 0 {
		return h.InitialLimit, nil
	}
	max := uint32(maxl) * uint32(maxl)
	if max < 4 {
		max = 4
	}
	max = h.snapPrime(max)

	var program [][2]uint32
	limit := h.InitialLimit
	if limit <= 0 {
		limit = 1 << 10
	}
	for len(program) < limit {
		// A parity-separating salt finishes the program.
		if s, ok := h.sweep(alphabet, max, true); ok {
			program = append(program, [2]uint32{s, max})
			c, err := cell.New(program, bits)
			if err != nil {
				return limit - len(program), nil
			}
			return limit - len(program), c
		}
		s, ok := h.sweep(alphabet, max, false)
		if !ok {
			return limit - len(program), nil
		}
		program = append(program, [2]uint32{s, max})
		alphabet = rehash(alphabet, s, max)
		if h.Printer != 0 && uint32(len(program))%h.Printer == 0 {
			h.printf("%s: %d salts, modulo %d, %d+%d keys",
				h.Name, len(program), max, len(alphabet[0]), len(alphabet[1]))
		}
		next := max - uint32(float64(max)*h.Rate())
		if next >= max {
			next = max - 1
		}
		if next < 2 {
			next = 2
		}
		max = h.snapPrime(next)
	}
	return 0, nil
}

// sweep searches salts for the given modulo. A salt is accepted when no
// residue is shared across classes; when final is set the residues must
// also carry the class in their lowest bit.
func (h *HyperParameters) sweep(alphabet [2][]uint32, max uint32, final bool) (uint32, bool) {
	deadline := time.Duration(h.DeadlineMs) * time.Millisecond
	if deadline <= 0 {
		deadline = time.Second
	}
	start := time.Now()
	base := mathrand.Uint32() >> 1

	var mut sync.Mutex
	var found uint32
	var ok bool
	scratch := sync.Pool{New: func() any {
		return make([]uint32, 0, len(alphabet[0])+len(alphabet[1]))
	}}
	threads := h.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	parallel.Loop(threads).Until(func(i uint32, stop parallel.Stopper) bool {
		if stop.Load() {
			return true
		}
		if i%4096 == 0 && time.Since(start) > deadline {
			return true
		}
		s := base + i
		buf := scratch.Get().([]uint32)
		hit := h.accepts(alphabet, s, max, final, buf)
		scratch.Put(buf[:0])
		if !hit {
			return false
		}
		mut.Lock()
		if !ok {
			found, ok = s, true
		}
		mut.Unlock()
		return true
	})
	return found, ok
}

func (h *HyperParameters) accepts(alphabet [2][]uint32, s, max uint32, final bool, buf []uint32) bool {
	seen := map[uint32]byte{}
	salts := buf[:0]
	for cls := byte(1); cls <= 2; cls++ {
		keys := alphabet[cls-1]
		for len(salts) < len(keys) {
			salts = append(salts, s)
		}
		residues := make([]uint32, len(keys))
		hash.HashBatch(residues, keys, salts[:len(keys)], max)
		for _, r := range residues {
			if final && r&1 != uint32(cls-1) {
				return false
			}
			if prev := seen[r]; prev != 0 && prev != cls {
				return false
			}
			seen[r] = cls
		}
	}
	return true
}

// rehash replays an accepted salt on both alphabets, deduplicating the
// surviving residues.
func rehash(alphabet [2][]uint32, s, max uint32) (out [2][]uint32) {
	for cls := range alphabet {
		seen := map[uint32]struct{}{}
		for _, v := range alphabet[cls] {
			r := hash.Hash(v, s, max)
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out[cls] = append(out[cls], r)
		}
	}
	return out
}
