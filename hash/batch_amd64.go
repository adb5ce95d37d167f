//go:build amd64

package hash

import "github.com/klauspost/cpuid/v2"

func init() {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		HashBatch = hashBatchWide
		batchLanes = 16
	case cpuid.CPU.Supports(cpuid.AVX2):
		HashBatch = hashBatchWide
		batchLanes = 8
	default:
		HashBatch = hashBatchGeneric
		batchLanes = 1
	}
}
