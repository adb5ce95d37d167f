package majpool

// Put sets the n-th bool directly.
func (s *MajPool) Put(n int, v bool) {
	s.vec[n] = v
}

// majority votes one group, +1 per true, -1 per false
func (s *MajPool) majority(group int) bool {
	var w int
	for m := 0; m < s.size; m++ {
		if s.vec[group*s.size+m] {
			w++
		} else {
			w--
		}
	}
	return w > 0
}

// Feature returns the m-th feature from the combiner. Bit k is the majority
// of group (m+k) mod groups, so every next-layer cell sees a window of
// pooled votes starting at its own group.
func (s *MajPool) Feature(m int) (o uint32) {
	for k := 0; k < s.span; k++ {
		if s.majority((m + k) % s.groups) {
			o |= 1 << k
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
func (s *MajPool) Disregard(n int) bool {
	group := n / s.size
	var w int
	for m := 0; m < s.size; m++ {
		if group*s.size+m == n {
			continue
		}
		if s.vec[group*s.size+m] {
			w++
		} else {
			w--
		}
	}
	// the group's majority is already settled without this vote
	return w != 0
}
