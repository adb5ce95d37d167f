//go:build cuda

package cu

import "gorgonia.org/cu"

import "github.com/selfexplain/classifier/learning"

// HyperParameters configure the CUDA salt search. The embedded CPU
// parameters keep their meaning; the annealing schedule is shared.
type HyperParameters struct {
	learning.HyperParameters

	// CuMemoryBytes statically sets the device memory used for the
	// residue marker sets. 0 derives it from the device.
	CuMemoryBytes uint64
	// CuMemoryPortion is the denominator of the device memory share
	// to use when CuMemoryBytes is 0. 0 means 1/384 of the device.
	CuMemoryPortion uint16
	// CuErase zeroes the marker sets before every launch.
	CuErase bool

	ctx               *cu.CUContext
	input, inputNums  *cu.DevicePtr
	result, markerSet *cu.DevicePtr
	markerSetSize     int64
	fn                *cu.Function
	stream            *cu.Stream
	backoff           uint64
	iter              uint32
}
