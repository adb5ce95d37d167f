package cell

import "github.com/selfexplain/classifier/hash"

// Forward pushes one input feature through the cell. Bit j of the result is
// computed from the feature salted with j, so multi-bit cells stay a single
// program. The negate switch flips the output, used when tallying what a
// retrained cell would do to the network.
func (c Cell) Forward(feature uint32, negate bool) (out uint16) {
	if c.Len() == 0 && c.filter == nil {
		return
	}
	for j := byte(0); j < c.Bits(); j++ {
		var input = feature | (uint32(j) << 16)
		for i := 0; i < c.Len(); i++ {
			var s, max = c.Get(i)
			input = hash.Hash(input, s, max)
		}
		var bit uint32
		if c.filter != nil {
			if c.filter.GetUint32(input) {
				bit = 1
			}
		} else {
			bit = input & 1
		}
		if negate {
			bit ^= 1
		}
		if bit != 0 {
			out |= 1 << j
		}
	}
	return
}
