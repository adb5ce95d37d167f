package main

import "os"

import flag "github.com/spf13/pflag"
import "go.uber.org/zap"

import "github.com/selfexplain/classifier/conceptstore"
import "github.com/selfexplain/classifier/datasets/sst2"

func main() {
	basedir := flag.String("dataset_basedir", "data/SST-2-XLNet/", "directory with train.tsv")
	out := flag.String("concept_store", "data/SST-2-XLNet/concept_store.pt", "output path")
	size := flag.Int("size", conceptstore.DefaultSize, "maximum number of concepts")
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
	store := conceptstore.Build(train, 2, *size)
	if err := store.WriteFile(*out); err != nil {
		lg.Error("writing concept store failed", zap.Error(err))
		os.Exit(1)
	}
	lg.Info("concept store written",
		zap.String("path", *out),
		zap.Int("concepts", len(store.Concepts)),
	)
}
