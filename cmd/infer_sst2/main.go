package main

import "bufio"
import "fmt"
import "os"

import flag "github.com/spf13/pflag"
import "go.uber.org/zap"

import "github.com/selfexplain/classifier/conceptstore"
import "github.com/selfexplain/classifier/layer/majpool"
import "github.com/selfexplain/classifier/layer/sum"
import "github.com/selfexplain/classifier/model"
import "github.com/selfexplain/classifier/net/encoder"

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
	weights := flag.String("model", "", "weights checkpoint path")
	conceptStore := flag.String("concept_store", "data/SST-2-XLNet/concept_store.pt", "concept store path")
	topk := flag.Int("topk", model.DefaultTopK, "concepts to print per prediction")
	numClasses := flag.Int("num_classes", 2, "number of output classes")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		panic(err.Error())
	}
	defer lg.Sync()

	net := buildNet(*numClasses)
	if *weights != "" {
		if err := net.ReadWeightsFromFile(*weights); err != nil {
			lg.Error("loading weights failed", zap.Error(err))
			os.Exit(1)
		}
	}
	store, err := conceptstore.ReadFile(*conceptStore)
	if err != nil {
		lg.Warn("concept store not loaded, concept head disabled", zap.Error(err))
	}

	m := model.New(net, store)
	m.TopK = *topk

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		label, expl := m.Predict(text)
		fmt.Printf("%d\t%s\n", label, text)
		for _, p := range expl.Phrases {
			fmt.Printf("\tphrase\t%d\t%s\n", p.Label, p.Phrase)
		}
		for _, c := range expl.Concepts {
			fmt.Printf("\tconcept\t%d\t%d\t%s\n", c.Concept.Label(), c.Similarity, c.Concept.Phrase)
		}
	}
	if err := scanner.Err(); err != nil {
		lg.Error("reading input failed", zap.Error(err))
		os.Exit(1)
	}
}
