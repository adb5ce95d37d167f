package encoder

import (
	"bytes"
	"sort"
	"testing"

	"github.com/selfexplain/classifier/datasets"
	"github.com/selfexplain/classifier/layer/majpool"
	"github.com/selfexplain/classifier/layer/sum"
)

type constInput uint32

func (c constInput) Feature(n int) uint32 {
	return uint32(c) + uint32(n)*2654435761
}

func buildNet() *Network {
	var net Network
	net.AddLayer(12, 0)
	net.AddCombiner(majpool.MustNew(4, 3, 4))
	net.AddLayer(1, 0)
	return &net
}

func TestInferDeterministic(t *testing.T) {
	net := buildNet()
	for in := constInput(0); in < 100; in++ {
		a := net.Infer(in)
		b := net.Infer(in)
		if a != b {
			t.Fatalf("Infer(%d) flapped: %d != %d", in, a, b)
		}
		if a >= net.Classes() {
			t.Fatalf("class %d out of range", a)
		}
	}
}

func TestCellAccounting(t *testing.T) {
	net := buildNet()
	if net.Len() != 13 {
		t.Fatalf("Len = %d, want 13", net.Len())
	}
	if net.GetRow(0) != 0 || net.GetRow(12) != 2 {
		t.Fatalf("row lookup broken: %d %d", net.GetRow(0), net.GetRow(12))
	}
	if net.GetPosition(12) != 0 {
		t.Fatalf("head position = %d, want 0", net.GetPosition(12))
	}
	if net.GetCell(12) == nil || net.GetCell(13) != nil {
		t.Fatalf("cell pointer lookup broken")
	}
	if net.Classes() != 2 {
		t.Fatalf("Classes = %d, want 2", net.Classes())
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	net := buildNet()
	o := net.Shuffle(true)
	if len(o) != net.Len() {
		t.Fatalf("length %d", len(o))
	}
	sorted := append([]int(nil), o...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if i != v {
			t.Fatalf("not a permutation at %d: %d", i, v)
		}
	}
}

func TestTallyProducesVotes(t *testing.T) {
	net := buildNet()
	var tally datasets.Tally
	tally.Init()
	for in := constInput(0); in < 64; in++ {
		net.Tally(in, uint16(in&1), 12, &tally)
	}
	if tally.Len() == 0 {
		t.Fatal("no votes tallied for the classifier head")
	}
	if len(tally.Dataset()) == 0 {
		t.Fatal("votes did not materialize into a dataset")
	}
}

func TestTallyCorrectMultiBitHeadNeedsNoRetraining(t *testing.T) {
	var net Network
	net.AddLayer(1, 2)
	for in := constInput(0); in < 200; in++ {
		expected := net.Infer(in)
		var tally datasets.Tally
		tally.Init()
		net.Tally(in, expected, 0, &tally)
		if tally.GetImprovementPossible() {
			t.Fatalf("input %d already classified as %d but the head was flagged for retraining", in, expected)
		}
	}
}

func TestInferWithSumCombiner(t *testing.T) {
	var net Network
	net.AddLayer(8, 0)
	net.AddCombiner(sum.MustNew(4, 2))
	net.AddLayer(1, 2)
	if net.Classes() != 4 {
		t.Fatalf("Classes = %d, want 4", net.Classes())
	}
	for in := constInput(0); in < 100; in++ {
		a := net.Infer(in)
		if a != net.Infer(in) {
			t.Fatalf("Infer(%d) flapped", in)
		}
		if a >= net.Classes() {
			t.Fatalf("class %d out of range", a)
		}
	}
}

func TestWeightsRoundtrip(t *testing.T) {
	net := buildNet()
	var buf bytes.Buffer
	if err := net.WriteWeights(&buf); err != nil {
		t.Fatal(err)
	}

	reload := buildNet()
	if err := reload.ReadWeights(&buf); err != nil {
		t.Fatal(err)
	}
	for in := constInput(0); in < 200; in++ {
		if net.Infer(in) != reload.Infer(in) {
			t.Fatalf("reloaded network disagrees at input %d", in)
		}
	}
}
