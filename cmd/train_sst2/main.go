package main

import "os"
import "runtime"

import flag "github.com/spf13/pflag"
import "go.uber.org/zap"

import "github.com/selfexplain/classifier/conceptstore"
import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/datasets/sst2"
import "github.com/selfexplain/classifier/layer/majpool"
import "github.com/selfexplain/classifier/layer/sum"
import "github.com/selfexplain/classifier/model"
import "github.com/selfexplain/classifier/net/encoder"
import "github.com/selfexplain/classifier/parallel"
import "github.com/selfexplain/classifier/trainer"

// sentence cells pooled by majority, mid cells pooled additively,
// and a head cell
const cells = 256
const midCells = 16

func buildNet(classes int) *encoder.Network {
	var bits byte = 1
	for 1<<bits < classes {
		bits++
	}
	net := new(encoder.Network)
	net.AddLayer(cells, 1)
	net.AddCombiner(majpool.MustNew(cells/4, 4, cells/4))
	net.AddLayer(midCells, 1)
	net.AddCombiner(sum.MustNew(1, midCells))
	net.AddLayer(1, bits)
	return net
}

func main() {
	basedir := flag.String("dataset_basedir", "data/SST-2-XLNet/", "directory with train.tsv and dev.tsv")
	lr := flag.Float64("lr", 2e-5, "learning rate of the modulo annealing")
	minLR := flag.Float64("min_lr", 0, "floor of the annealing step")
	maxEpochs := flag.Int("max_epochs", 20, "number of passes over the cells")
	gpus := flag.Int("gpus", 0, "train cells on CUDA when positive")
	conceptStore := flag.String("concept_store", "data/SST-2-XLNet/concept_store.pt", "concept store path, built from the training split when absent")
	topk := flag.Int("topk", model.DefaultTopK, "concepts per prediction")
	lamda := flag.Float64("lamda", model.DefaultLamda, "phrase head weight")
	gamma := flag.Float64("gamma", model.DefaultGamma, "concept head weight")
	numClasses := flag.Int("num_classes", 2, "number of output classes")
	dstmodel := flag.String("dstmodel", "", "weights checkpoint path")
	resume := flag.Bool("resume", false, "resume from the checkpoint")
	solutionsLog := flag.String("solutions_log", "", "redirect learner progress to this file")
	flag.Bool("pgo", false, "collect a cpu profile into default.pgo")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		panic(err.Error())
	}
	defer lg.Sync()

	train, err := sst2.Load(*basedir, "train")
	if err != nil {
		lg.Error("loading training split failed", zap.Error(err))
		os.Exit(1)
	}
	dev, err := sst2.Load(*basedir, "dev")
	if err != nil {
		lg.Error("loading dev split failed", zap.Error(err))
		os.Exit(1)
	}
	lg.Info("dataset loaded",
		zap.Int("train", train.Len()),
		zap.Int("dev", dev.Len()),
		zap.Bool("parallel-tokenization", sst2.ParallelTokenization()),
	)

	store, err := conceptstore.ReadFile(*conceptStore)
	if err != nil {
		store = conceptstore.Build(train, *numClasses, conceptstore.DefaultSize)
		if werr := store.WriteFile(*conceptStore); werr != nil {
			lg.Warn("concept store not written", zap.Error(werr))
		} else {
			lg.Info("concept store built", zap.Int("concepts", len(store.Concepts)))
		}
	}

	net := buildNet(*numClasses)
	trainer.Resume(net, *resume, *dstmodel)

	m := model.New(net, store)
	m.TopK = *topk
	m.Lamda = *lamda
	m.Gamma = *gamma

	cfg := trainer.Config{
		MaxEpochs:       *maxEpochs,
		GPUs:            *gpus,
		Threads:         runtime.NumCPU(),
		LearningRate:    *lr,
		MinLearningRate: *minLR,
		DeadlineMs:      1000,
		DeadlineRetry:   3,
		DstModel:        *dstmodel,
		SolutionsLog:    *solutionsLog,
		Name:            "sst2",
	}

	best, err := trainer.Train(net, cfg, func() int {
		return m.Evaluate(dev)
	}, func(worst int, t *datasets.Tally) {
		parallel.ForEach(train.Len(), runtime.NumCPU(), func(j int) {
			sample := train.Samples[j]
			net.Tally(sample, sample.Output(), worst, t)
		})
	})
	if err != nil {
		lg.Error("training failed", zap.Error(err))
		os.Exit(1)
	}

	lg.Info("training finished", zap.Int("dev-accuracy", best))
}
