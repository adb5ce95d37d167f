package trainer

import "fmt"
import "runtime"

import "github.com/neurlang/quaternary"
import "github.com/pkg/errors"

import "github.com/selfexplain/classifier/cell"
import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/learning"
import "github.com/selfexplain/classifier/net/encoder"

// filterCutoff is the largest tally dataset stored as a quaternary
// filter instead of being solved into a hash program.
const filterCutoff = 4096

// Learner trains one cell on a splittable dataset.
type Learner interface {
	Training(d datasets.Splitter) (*cell.Cell, error)
}

// Config drives one training run.
type Config struct {
	// MaxEpochs bounds the number of passes over the cells.
	MaxEpochs int
	// GPUs selects the CUDA learner when positive.
	GPUs int
	// Threads is passed through to the learner. 0 means GOMAXPROCS.
	Threads int

	// LearningRate and MinLearningRate drive the modulo annealing.
	LearningRate    float64
	MinLearningRate float64

	// DeadlineMs and DeadlineRetry bound each cell's salt search.
	DeadlineMs    int
	DeadlineRetry int

	// DstModel is where improved weights are checkpointed. Empty
	// disables checkpointing.
	DstModel string

	// SolutionsLog redirects the learner's progress output to this
	// file when set.
	SolutionsLog string

	// Name identifies the run in log output.
	Name string
}

// ErrNoCUDA is returned when GPUs are requested from a binary built
// without the cuda tag.
var ErrNoCUDA = errors.New("built without CUDA support, rebuild with -tags cuda to use GPUs")

// cudaLearner is installed by the cuda build tag.
var cudaLearner func(learning.HyperParameters) Learner

// Learner builds the cell learner the config selects.
func (cfg *Config) Learner() (Learner, error) {
	base := learning.HyperParameters{
		Threads:         cfg.Threads,
		Shuffle:         true,
		Seed:            true,
		LearningRate:    cfg.LearningRate,
		MinLearningRate: cfg.MinLearningRate,
		DeadlineMs:      cfg.DeadlineMs,
		DeadlineRetry:   cfg.DeadlineRetry,
		InitialLimit:    1 << 10,
		EndWhenSolved:   true,
		Printer:         70,
		Name:            cfg.Name,
	}
	if cfg.SolutionsLog != "" {
		if err := base.SetLogger(cfg.SolutionsLog); err != nil {
			return nil, err
		}
	}
	if cfg.GPUs > 0 {
		if cudaLearner == nil {
			return nil, ErrNoCUDA
		}
		return cudaLearner(base), nil
	}
	return &base, nil
}

// Train runs the epoch loop. evaluate returns the dev accuracy in
// percent; tally fills t with the votes for the cell at position worst.
// It returns the best accuracy reached.
func Train(net *encoder.Network, cfg Config, evaluate func() int, tally func(worst int, t *datasets.Tally)) (int, error) {
	learner, err := cfg.Learner()
	if err != nil {
		return 0, err
	}
	best := evaluate()
	checkpoint(net, cfg)
	for epoch := 0; epoch < cfg.MaxEpochs; epoch++ {
		if best >= 100 {
			break
		}
		improvedAny := false
		for _, worst := range net.Shuffle(false) {
			var t datasets.Tally
			t.Init()
			tally(worst, &t)
			if !t.GetImprovementPossible() {
				t.Free()
				continue
			}
			replacement := retrain(net, learner, worst, &t)
			t.Free()
			runtime.GC()
			if replacement == nil {
				continue
			}
			ptr := net.GetCell(worst)
			backup := *ptr
			replacement.SetBits(backup.Bits())
			*ptr = *replacement
			now := evaluate()
			if now > best {
				best = now
				improvedAny = true
				checkpoint(net, cfg)
			} else {
				*ptr = backup
			}
		}
		fmt.Printf("%s: epoch %d of %d, accuracy %d%%\n", cfg.Name, epoch+1, cfg.MaxEpochs, best)
		if !improvedAny {
			break
		}
	}
	return best, nil
}

// retrain builds a new cell for the tallied votes, as a quaternary
// filter for small jobs and through the learner otherwise.
func retrain(net *encoder.Network, learner Learner, worst int, t *datasets.Tally) *cell.Cell {
	d := t.Dataset()
	if len(d) == 0 {
		return nil
	}
	if len(d) <= filterCutoff {
		q := quaternary.Make(d)
		prev := net.GetCell(worst)
		if prev.LenFilter() > 0 && len(q) > prev.LenFilter() {
			return nil
		}
		c, err := cell.NewFromFilter(nil, prev.Bits(), []byte(q))
		if err != nil {
			return nil
		}
		return c
	}
	c, err := learner.Training(d)
	if err != nil {
		return nil
	}
	return c
}

func checkpoint(net *encoder.Network, cfg Config) {
	if cfg.DstModel == "" {
		return
	}
	if err := net.WriteWeightsToFile(cfg.DstModel); err != nil {
		println(err.Error())
	}
}
