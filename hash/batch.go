package hash

// HashBatch evaluates many hashes sharing one modulo.
var HashBatch func(out []uint32, n []uint32, s []uint32, max uint32) = hashBatchGeneric

// batchLanes is the number of hashes worth evaluating per batch on
// this platform. Set at init from CPU features.
var batchLanes int = 1

// BatchLanes reports the recommended batch width for HashBatch callers.
// Never returns 0.
func BatchLanes() int {
	return batchLanes
}

func hashBatchGeneric(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}

// hashBatchWide unrolls the salt search loop so wide cores keep their
// pipelines filled during the learner's salt sweeps.
func hashBatchWide(out []uint32, n []uint32, s []uint32, max uint32) {
	i := 0
	for ; i+4 <= len(out); i += 4 {
		out[i+0] = Hash(n[i+0], s[i+0], max)
		out[i+1] = Hash(n[i+1], s[i+1], max)
		out[i+2] = Hash(n[i+2], s[i+2], max)
		out[i+3] = Hash(n[i+3], s[i+3], max)
	}
	for ; i < len(out); i++ {
		out[i] = Hash(n[i], s[i], max)
	}
}
