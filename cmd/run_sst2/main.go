package main

import "context"
import "os"

import flag "github.com/spf13/pflag"
import "go.uber.org/zap"

import "github.com/selfexplain/classifier/launcher"

func main() {
	entrypoint := flag.String("entrypoint", "train_sst2", "training entry point, resolved on PATH")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		panic(err.Error())
	}
	defer lg.Sync()

	spec, err := launcher.SST2(*entrypoint, lg)
	if err != nil {
		lg.Error("training entry point not found", zap.String("entrypoint", *entrypoint), zap.Error(err))
		os.Exit(1)
	}
	os.Exit(spec.Launch(context.Background()))
}
