// Package datasets implements the dataset types consumed by the learner.
package datasets

import "math/rand"

// Dataset maps an input feature to the boolean the cell should produce.
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// SplittedDataset separates a dataset into a false set and a true set.
type SplittedDataset [2]map[uint32]struct{}

// Splitter is anything the learner can train a cell on.
type Splitter interface {
	Split() SplittedDataset
}

// Split splits the dataset into a true set and a false set
func (d Dataset) Split() (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// BalanceDataset fills the smaller set with random features until both
// sets match in size. The learner assumes balanced sets.
func BalanceDataset(d SplittedDataset) SplittedDataset {
	if len(d[0]) == len(d[1]) {
		return d
	}
	for len(d[0]) < len(d[1]) {
		var w = rand.Uint32()
		if _, ok := d[1][w]; !ok {
			d[0][w] = struct{}{}
		}
	}
	for len(d[1]) < len(d[0]) {
		var w = rand.Uint32()
		if _, ok := d[0][w]; !ok {
			d[1][w] = struct{}{}
		}
	}
	return d
}
