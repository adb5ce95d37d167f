package sum

// Put inserts a boolean at position n.
func (f *Sum) Put(n int, v bool) {
	f.vec[n].Store(v)
}

// Feature returns the number of true votes in group n.
func (f *Sum) Feature(n int) (o uint32) {
	for j := 0; j < f.size; j++ {
		if f.vec[(n*f.size+j)%len(f.vec)].Load() {
			o++
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
// A sum always moves with every vote.
func (f *Sum) Disregard(n int) bool {
	return false
}
