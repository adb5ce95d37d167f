// Package model combines the encoder network with the two interpretable
// heads: phrase-level logits over the sentence's own spans and concept
// logits over the store's nearest concepts. Every prediction carries the
// evidence it was made from.
package model

import (
	"runtime"
	"sync/atomic"

	"github.com/selfexplain/classifier/conceptstore"
	"github.com/selfexplain/classifier/datasets/sst2"
	"github.com/selfexplain/classifier/net/encoder"
	"github.com/selfexplain/classifier/parallel"
)

// defaults per the original hyperparameter set
const (
	DefaultLamda = 0.01
	DefaultGamma = 0.01
	DefaultTopK  = 5
)

// Model is the self-explaining classifier.
type Model struct {
	Net   *encoder.Network
	Store *conceptstore.Store

	// Lamda weighs the phrase head, Gamma the concept head
	Lamda float64
	Gamma float64

	TopK    int
	Classes int
	MaxSpan int
}

// New assembles a model around a built network and a loaded store.
func New(net *encoder.Network, store *conceptstore.Store) *Model {
	classes := int(net.Classes())
	return &Model{
		Net:     net,
		Store:   store,
		Lamda:   DefaultLamda,
		Gamma:   DefaultGamma,
		TopK:    DefaultTopK,
		Classes: classes,
		MaxSpan: sst2.MaxSpan,
	}
}

// PhraseVote is one phrase's contribution to the prediction.
type PhraseVote struct {
	Phrase string
	Label  int
}

// Explanation is the evidence behind one prediction.
type Explanation struct {
	Phrases  []PhraseVote
	Concepts []conceptstore.Ranked
}

// Combine merges the three logit vectors the way the original combines
// them: base + lamda*phrase + gamma*concept.
func Combine(base, phrase, concept []float64, lamda, gamma float64) []float64 {
	out := make([]float64, len(base))
	for c := range out {
		out[c] = base[c]
		if c < len(phrase) {
			out[c] += lamda * phrase[c]
		}
		if c < len(concept) {
			out[c] += gamma * concept[c]
		}
	}
	return out
}

// Argmax returns the index of the largest logit, ties break low.
func Argmax(logits []float64) (best int) {
	for c := 1; c < len(logits); c++ {
		if logits[c] > logits[best] {
			best = c
		}
	}
	return
}

// Predict classifies a sentence and returns the label with its evidence.
func (m *Model) Predict(text string) (int, Explanation) {
	base := make([]float64, m.Classes)
	base[int(m.Net.Infer(sst2.Sample{Text: text}))] = 1

	var expl Explanation

	// phrase head: the network's vote on every span, averaged
	phrase := make([]float64, m.Classes)
	phrases := sst2.Phrases(text, m.MaxSpan)
	for _, p := range phrases {
		label := int(m.Net.Infer(sst2.PhraseSample{Text: p}))
		if label >= m.Classes {
			continue
		}
		phrase[label]++
		expl.Phrases = append(expl.Phrases, PhraseVote{Phrase: p, Label: label})
	}
	if len(phrases) > 0 {
		for c := range phrase {
			phrase[c] /= float64(len(phrases))
		}
	}

	// concept head: the store's nearest concepts, averaged
	concept := make([]float64, m.Classes)
	if m.Store != nil && m.TopK > 0 {
		expl.Concepts = m.Store.TopK(conceptstore.NewSignature(text), m.TopK)
		for _, r := range expl.Concepts {
			if label := r.Concept.Label(); label < m.Classes {
				concept[label]++
			}
		}
		if len(expl.Concepts) > 0 {
			for c := range concept {
				concept[c] /= float64(len(expl.Concepts))
			}
		}
	}

	return Argmax(Combine(base, phrase, concept, m.Lamda, m.Gamma)), expl
}

// Evaluate returns the accuracy over a split in percent.
func (m *Model) Evaluate(split *sst2.Split) int {
	if split.Len() == 0 {
		return 0
	}
	var correct atomic.Int64
	parallel.ForEach(split.Len(), runtime.NumCPU(), func(j int) {
		label, _ := m.Predict(split.Samples[j].Text)
		if label == int(split.Samples[j].Output()) {
			correct.Add(1)
		}
	})
	return int(correct.Load()) * 100 / split.Len()
}
