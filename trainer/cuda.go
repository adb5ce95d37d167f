//go:build cuda

package trainer

import "github.com/selfexplain/classifier/learning"
import cucompute "github.com/selfexplain/classifier/learning/cu"

func init() {
	cudaLearner = func(base learning.HyperParameters) Learner {
		return &cucompute.HyperParameters{HyperParameters: base}
	}
}
