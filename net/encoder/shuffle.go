package encoder

import "math/rand"

// Shuffle returns the training order of cells, shuffled within each row so
// epochs don't always repair the same cell first. Reverse starts from the
// classifier head.
func (f Network) Shuffle(reverse bool) (o []int) {
	o = make([]int, f.Len())
	for i := range o {
		o[i] = i
	}
	var base = 0
	for i := range f.rows {
		rand.Shuffle(len(f.rows[i]), func(i, j int) { o[base+i], o[base+j] = o[base+j], o[base+i] })
		base += len(f.rows[i])
	}
	if reverse {
		for i := 0; 2*i < len(o); i++ {
			o[i], o[len(o)-i-1] = o[len(o)-i-1], o[i]
		}
	}
	return o
}
