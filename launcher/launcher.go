// Package launcher starts the SST-2 training entry point with the fixed
// hyperparameter set of the published runs and propagates its exit code.
package launcher

import "context"
import "os"
import "os/exec"

import "github.com/kballard/go-shellquote"
import "go.uber.org/zap"

// TokenizersParallelism is forced off in the child so dataset loading
// does not fan out tokenization next to the training worker pool.
const TokenizersParallelism = "TOKENIZERS_PARALLELISM=false"

// Spec describes one training invocation. The flag order is fixed so a
// given spec always renders the same command line.
type Spec struct {
	// Entrypoint is the path of the training binary.
	Entrypoint string

	DatasetBasedir string
	LR             string
	MaxEpochs      string
	GPUs           string
	ConceptStore   string

	Stdout *os.File
	Stderr *os.File

	lg *zap.Logger
}

// SST2 is the published SST-2 run. entrypoint is resolved on PATH.
func SST2(entrypoint string, lg *zap.Logger) (*Spec, error) {
	path, err := exec.LookPath(entrypoint)
	if err != nil {
		return nil, err
	}
	return &Spec{
		Entrypoint:     path,
		DatasetBasedir: "data/SST-2-XLNet/",
		LR:             "2e-5",
		MaxEpochs:      "20",
		GPUs:           "0",
		ConceptStore:   "data/SST-2-XLNet/concept_store.pt",
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		lg:             lg,
	}, nil
}

// Args renders the argument list. The order never varies between runs.
func (s *Spec) Args() []string {
	return []string{
		"--dataset_basedir", s.DatasetBasedir,
		"--lr", s.LR,
		"--max_epochs", s.MaxEpochs,
		"--gpus", s.GPUs,
		"--concept_store", s.ConceptStore,
	}
}

// Env is the parent environment with the tokenizer parallelism switch
// appended. The parent's own environment is left untouched.
func (s *Spec) Env() []string {
	return append(os.Environ(), TokenizersParallelism)
}

// Launch runs the entry point once and returns its exit code. A failure
// to start at all maps to exit code 1.
func (s *Spec) Launch(ctx context.Context) int {
	args := s.Args()
	if s.lg != nil {
		s.lg.Info("launching training entry point",
			zap.String("command", shellquote.Join(append([]string{s.Entrypoint}, args...)...)),
		)
	}
	cmd := exec.CommandContext(ctx, s.Entrypoint, args...)
	cmd.Env = s.Env()
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	err := cmd.Run()
	if err == nil {
		if s.lg != nil {
			s.lg.Info("training entry point finished")
		}
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if s.lg != nil {
			s.lg.Warn("training entry point failed", zap.Int("exit-code", code))
		}
		return code
	}
	if s.lg != nil {
		s.lg.Error("training entry point did not start", zap.Error(err))
	}
	return 1
}
