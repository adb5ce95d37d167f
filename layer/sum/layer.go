// Package sum implements an additive pooling layer and combiner.
package sum

import "github.com/selfexplain/classifier/layer"
import "sync/atomic"

type SumLayer struct {
	groups, size int
}

type Sum struct {
	vec  []atomic.Bool
	size int
}

// MustNew creates an additive pooling layer over groups*size cells
func MustNew(groups, size int) *SumLayer {
	o, err := New(groups, size)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates an additive pooling layer over groups*size cells
func New(groups, size int) (o *SumLayer, err error) {
	o = new(SumLayer)
	o.groups = groups
	o.size = size
	return
}

// Lay turns the additive pooling layer into a combiner
func (i *SumLayer) Lay() layer.Combiner {
	o := new(Sum)
	o.vec = make([]atomic.Bool, i.groups*i.size)
	o.size = i.size
	return o
}
