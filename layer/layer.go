// Package layer defines the combiner contract between cell layers.
package layer

// Layer is the layer which can be used for instantiating a combiner
type Layer interface {

	// Lay creates a combiner
	Lay() Combiner
}

// Combiner collects the booleans produced by one cell layer and exposes
// them as input features of the next layer.
type Combiner interface {

	// Put inserts a boolean at position n.
	Put(n int, v bool)

	// Feature returns the n-th feature from the combiner. The next layer
	// reads its inputs using this method for cell n.
	Feature(n int) (o uint32)

	// Disregard tells whether putting value false at position n would not
	// affect any feature output (as opposed to putting value true at
	// position n). Samples whose outcome cannot change are excluded from
	// tallying early.
	Disregard(n int) bool
}
