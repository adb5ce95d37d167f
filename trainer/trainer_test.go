package trainer

import "os"
import "path/filepath"
import "testing"

import "github.com/stretchr/testify/require"

import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/layer/majpool"
import "github.com/selfexplain/classifier/learning"
import "github.com/selfexplain/classifier/net/encoder"

func buildNet() *encoder.Network {
	net := new(encoder.Network)
	net.AddLayer(8, 1)
	net.AddCombiner(majpool.MustNew(4, 2, 4))
	net.AddLayer(1, 1)
	return net
}

func TestLearnerSelection(t *testing.T) {
	cfg := &Config{LearningRate: 2e-5}
	l, err := cfg.Learner()
	require.NoError(t, err)
	require.IsType(t, &learning.HyperParameters{}, l)
}

func TestLearnerRejectsGPUsWithoutCUDA(t *testing.T) {
	if cudaLearner != nil {
		t.Skip("built with CUDA support")
	}
	cfg := &Config{LearningRate: 2e-5, GPUs: 1}
	_, err := cfg.Learner()
	require.ErrorIs(t, err, ErrNoCUDA)
}

func TestLearnerOpensSolutionsLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solutions.txt")
	cfg := &Config{LearningRate: 2e-5, SolutionsLog: path}
	_, err := cfg.Learner()
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestTrainStopsWithoutImprovement(t *testing.T) {
	net := buildNet()
	cfg := Config{MaxEpochs: 20, LearningRate: 2e-5, DeadlineMs: 50, DeadlineRetry: 1}
	evals := 0
	best, err := Train(net, cfg, func() int {
		evals++
		return 50
	}, func(worst int, tl *datasets.Tally) {})
	require.NoError(t, err)
	require.Equal(t, 50, best)
	// no tally votes means no retraining, one epoch and out
	require.Equal(t, 1, evals)
}

func TestTrainStopsAtFullAccuracy(t *testing.T) {
	net := buildNet()
	cfg := Config{MaxEpochs: 20, LearningRate: 2e-5}
	evals := 0
	_, err := Train(net, cfg, func() int {
		evals++
		return 100
	}, func(worst int, tl *datasets.Tally) {
		t.Fatal("tally must not run at full accuracy")
	})
	require.NoError(t, err)
	require.Equal(t, 1, evals)
}

func TestTrainSwapsImprovingCell(t *testing.T) {
	net := buildNet()
	dst := filepath.Join(t.TempDir(), "weights.json.lzw")
	cfg := Config{MaxEpochs: 1, LearningRate: 2e-5, DeadlineMs: 500, DeadlineRetry: 2, DstModel: dst}
	score := 40
	best, err := Train(net, cfg, func() int {
		return score
	}, func(worst int, tl *datasets.Tally) {
		if worst != 0 {
			return
		}
		score = 60
		tl.AddToImprove(7, 1)
		tl.AddToImprove(12, -1)
	})
	require.NoError(t, err)
	require.Equal(t, 60, best)
	require.FileExists(t, dst)
}

func TestTrainWithoutDstModelWritesNothing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	net := buildNet()
	cfg := Config{MaxEpochs: 1, LearningRate: 2e-5}
	_, err = Train(net, cfg, func() int {
		return 50
	}, func(worst int, tl *datasets.Tally) {})
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestResumeMissingFileIsHarmless(t *testing.T) {
	net := buildNet()
	Resume(net, true, filepath.Join(t.TempDir(), "absent.json.lzw"))
	require.Equal(t, 9, net.Len())
}
