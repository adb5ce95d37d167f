// Package majpool implements majority pooling over groups of cells.
package majpool

import "github.com/selfexplain/classifier/layer"

type MajPoolLayer struct {
	groups, size, span int
}

type MajPool struct {
	vec                []bool
	groups, size, span int
}

// New creates a majority pooling layer over groups*size cells. Each output
// feature packs the majorities of span consecutive groups.
func New(groups, size, span int) (o *MajPoolLayer, err error) {
	return MustNew(groups, size, span), nil
}

// MustNew creates a majority pooling layer over groups*size cells.
func MustNew(groups, size, span int) (o *MajPoolLayer) {
	o = new(MajPoolLayer)
	o.groups = groups
	o.size = size
	if span < 1 {
		span = 1
	}
	if span > 32 {
		span = 32
	}
	o.span = span
	return
}

// Lay turns the majority pooling layer into a combiner
func (i *MajPoolLayer) Lay() layer.Combiner {
	var o MajPool
	o.vec = make([]bool, i.groups*i.size)
	o.groups = i.groups
	o.size = i.size
	o.span = i.span
	return &o
}
