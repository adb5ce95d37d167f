package learning

import "testing"

import "github.com/stretchr/testify/require"

import "github.com/selfexplain/classifier/datasets"

func tinySplit() datasets.SplittedDataset {
	var d datasets.SplittedDataset
	d[0] = map[uint32]struct{}{2: {}, 40: {}, 1000: {}}
	d[1] = map[uint32]struct{}{7: {}, 91: {}, 2023: {}}
	return d
}

type fixedSplitter struct{ d datasets.SplittedDataset }

func (f fixedSplitter) Split() datasets.SplittedDataset { return f.d }

func TestTrainingSolvesTinySplit(t *testing.T) {
	h := HyperParameters{
		Threads:       2,
		DeadlineMs:    2000,
		DeadlineRetry: 5,
		LearningRate:  2e-5,
		InitialLimit:  64,
	}
	c, err := h.Training(fixedSplitter{tinySplit()})
	require.NoError(t, err)
	require.NotNil(t, c)
	split := tinySplit()
	for cls := range split {
		for v := range split[cls] {
			got := c.Forward(v&0xFFFF, false) & 1
			require.Equal(t, uint16(cls), got, "key %d", v)
		}
	}
}

func TestTrainingKeepsShortestWithoutEarlyEnd(t *testing.T) {
	h := HyperParameters{
		Threads:       2,
		DeadlineMs:    2000,
		DeadlineRetry: 3,
		LearningRate:  2e-5,
		InitialLimit:  64,
	}
	c, err := h.Training(fixedSplitter{tinySplit()})
	require.NoError(t, err)
	require.NotNil(t, c)

	// short-circuit with the first solution instead of the shortest
	h.EndWhenSolved = true
	first, err := h.Training(fixedSplitter{tinySplit()})
	require.NoError(t, err)
	require.NotNil(t, first)
	split := tinySplit()
	for cls := range split {
		for v := range split[cls] {
			got := c.Forward(v&0xFFFF, false) & 1
			require.Equal(t, uint16(cls), got, "key %d", v)
		}
	}
}

func TestSolvePrimeModulo(t *testing.T) {
	h := HyperParameters{
		Threads:       2,
		DeadlineMs:    2000,
		DeadlineRetry: 5,
		LearningRate:  2e-5,
		PrimeModulo:   true,
		InitialLimit:  64,
	}
	_, c := h.Solve(tinySplit())
	if c == nil {
		t.Skip("no solution inside the deadline")
	}
	require.NotZero(t, c.Len())
	for i := 0; i < c.Len(); i++ {
		_, max := c.Get(i)
		require.GreaterOrEqual(t, max, uint32(2))
	}
}

func TestRateBounds(t *testing.T) {
	h := HyperParameters{LearningRate: 2e-5}
	require.InDelta(t, 2e-5*RateScale, h.Rate(), 1e-9)
	h.LearningRate = 1
	require.Equal(t, 0.5, h.Rate())
	h.LearningRate = 0
	h.MinLearningRate = 1e-5
	require.InDelta(t, 1e-5*RateScale, h.Rate(), 1e-9)
}
