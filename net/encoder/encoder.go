// Package encoder implements the layered hash-cell network which encodes a
// sentence into a prediction. Cell rows alternate with combiner rows, the
// final row is the classifier head.
package encoder

import "sync"

import "github.com/selfexplain/classifier/cell"
import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/hash"
import "github.com/selfexplain/classifier/layer"

// Input is one individual input to the network
type Input interface {
	Feature(n int) uint32
}

// Intermediate is an intermediate value used as both row input and row
// output during inference and tallying
type Intermediate interface {

	// Feature extracts n-th feature from Intermediate
	Feature(n int) uint32

	// Disregard reports whether Intermediate doesn't regard n-th bit as
	// affecting the output
	Disregard(n int) bool
}

// SingleValue is a single value returned by the final row
type SingleValue uint32

// Feature extracts the feature from SingleValue
func (v SingleValue) Feature(n int) uint32 {
	return uint32(v)
}

// Disregard reports whether SingleValue doesn't regard n-th bit as affecting the output
func (v SingleValue) Disregard(n int) bool {
	return false
}

// Network is the encoder network. Rows at even positions hold cells, rows
// at odd positions hold the combiner pooling the row below.
type Network struct {
	rows      [][]cell.Cell
	bits      []byte
	combiners []layer.Layer
	premodulo []uint32
}

// Len returns the number of cells which need to be trained inside the network.
func (f Network) Len() (o int) {
	for _, v := range f.rows {
		o += len(v)
	}
	return
}

// LenRows returns the number of rows. Each cell row and combiner row counts here.
func (f Network) LenRows() int {
	return len(f.rows)
}

// GetRow gets the row number of a cell based on the overall cell number.
// Returns -1 on failure.
func (f Network) GetRow(n int) int {
	for i, v := range f.rows {
		if n < len(v) {
			return i
		}
		n -= len(v)
	}
	return -1
}

// GetPosition gets the position of a cell within its row based on the
// overall cell number. Returns -1 on failure.
func (f Network) GetPosition(n int) int {
	for _, v := range f.rows {
		if n < len(v) {
			return n
		}
		n -= len(v)
	}
	return -1
}

// GetCell gets the n-th cell pointer in the network. The trainer writes
// retrained cells through this pointer.
func (f Network) GetCell(n int) *cell.Cell {
	for _, v := range f.rows {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// Forget resets every cell to an untrained coin.
func (f *Network) Forget() {
	for _, v := range f.rows {
		for j := range v {
			h, _ := cell.New(nil, v[j].Bits())
			if h != nil {
				v[j] = *h
			}
		}
	}
}

// AddLayer adds a cell row with n cells, each producing bits bits.
func (f *Network) AddLayer(n int, bits byte) {
	f.AddLayerP(n, bits, 0)
}

// AddLayerP adds a cell row with n cells, each producing bits bits, with an
// input feature premodulo.
func (f *Network) AddLayerP(n int, bits byte, premodulo uint32) {
	var row = make([]cell.Cell, n)
	for i := range row {
		h, _ := cell.New(nil, bits)
		row[i] = *h
	}
	if bits == 0 {
		bits = 1
	}
	f.rows = append(f.rows, row)
	f.bits = append(f.bits, bits)
	f.combiners = append(f.combiners, nil)
	f.premodulo = append(f.premodulo, premodulo)
}

// AddCombiner adds a combiner row pooling the cell row before it.
func (f *Network) AddCombiner(l layer.Layer) {
	f.rows = append(f.rows, nil)
	f.bits = append(f.bits, 0)
	f.combiners = append(f.combiners, l)
	f.premodulo = append(f.premodulo, 0)
}

// Bits reports the number of bits predicted by the classifier head
func (f Network) Bits() (ret byte) {
	if len(f.bits) == 0 {
		return 1
	}
	ret = f.bits[len(f.bits)-1]
	if ret == 0 {
		ret = 1
	}
	return
}

// Classes reports the number of classes predicted by this network
func (f Network) Classes() uint16 {
	return uint16(1) << f.Bits()
}

// Forward computes the row output after row l from that row's input. The
// bit of the worst cell is optionally negated (neg == 1) and returned as
// computed, used by the tally pass.
func (f Network) Forward(in Input, l, worst, neg int) (inter Intermediate, computed bool) {
	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		var combiner = f.combiners[l+1].Lay()
		wg := sync.WaitGroup{}
		for i := 0; i < len(f.rows[l]); i++ {
			wg.Add(1)
			go func(i int) {
				var feat = in.Feature(i)
				if f.premodulo[l] != 0 {
					feat = hash.Hash(feat, uint32(i), f.premodulo[l])
				}
				var bit = f.rows[l][i].Forward(feat, (i == worst) && (neg == 1))
				combiner.Put(i, bit&1 != 0)
				if i == worst {
					computed = bit&1 != 0
				}
				wg.Done()
			}(i)
		}
		wg.Wait()
		return combiner, computed
	}

	// classifier head
	var feat = in.Feature(0)
	if f.premodulo[l] != 0 {
		feat = hash.Hash(feat, 0, f.premodulo[l])
	}
	var val = f.rows[l][0].Forward(feat, (worst == 0) && (neg == 1))
	return SingleValue(val), val&1 != 0
}

// Infer infers the network output class for an input.
func (f Network) Infer(in Input) uint16 {
	var out = in
	for l := 0; l < f.LenRows(); l += 2 {
		next, _ := f.Forward(out, l, -1, 0)
		out = next
	}
	return uint16(out.Feature(0)) & (f.Classes() - 1)
}

func lossAbs(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// Tally records, for one sample, how the worst cell's vote relates to the
// expected class. The votes accumulate in t and materialize into the
// dataset the cell is retrained on.
func (f *Network) Tally(in Input, expected uint16, worst int, t *datasets.Tally) {
	l := f.GetRow(worst)
	if l < 0 {
		return
	}
	var inter Input = in
	for lPrev := 0; lPrev < l; lPrev += 2 {
		next, _ := f.Forward(inter, lPrev, -1, 0)
		inter = next
	}

	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		pos := f.GetPosition(worst)
		ifw := inter.Feature(pos)
		if f.premodulo[l] != 0 {
			ifw = hash.Hash(ifw, uint32(pos), f.premodulo[l])
		}

		var predicted [2]uint32
		var compute [2]int8
		for neg := 0; neg < 2; neg++ {
			mid, computed := f.Forward(inter, l, pos, neg)
			if computed {
				compute[neg] = 1
			} else {
				compute[neg] = -1
			}
			if neg == 0 {
				if mid.Disregard(pos) {
					return
				}
			}
			out := Input(mid)
			for lPost := l + 2; lPost < f.LenRows(); lPost += 2 {
				next, _ := f.Forward(out, lPost, -1, 0)
				out = next
			}
			predicted[neg] = out.Feature(0) & uint32(f.Classes()-1)
		}

		want := uint32(expected)
		if predicted[0] == want && predicted[1] == want {
			// correct either way, nothing to vote on
			return
		}
		for neg := 0; neg < 2; neg++ {
			if predicted[neg] == want {
				t.AddToCorrect(ifw, compute[neg], neg == 1)
				return
			}
		}
		// neither is correct, vote towards the smaller loss
		if lossAbs(predicted[0], want) <= lossAbs(predicted[1], want) {
			t.AddToImprove(ifw, compute[0])
		} else {
			t.AddToImprove(ifw, compute[1])
		}
		return
	}

	// classifier head: train every output bit against the expected class
	feat := inter.Feature(0)
	if f.premodulo[l] != 0 {
		feat = hash.Hash(feat, 0, f.premodulo[l])
	}
	head, _ := f.Forward(inter, l, 0, 0)
	val := uint16(head.Feature(0))
	for j := byte(0); j < f.Bits(); j++ {
		bit := (expected >> j) & 1
		actual := (val >> j) & 1
		t.AddToCorrect(feat|(uint32(j)<<16), 2*int8(bit)-1, actual != bit)
	}
}
