package conceptstore

import (
	"runtime"
	"sort"

	"github.com/selfexplain/classifier/datasets/sst2"
	"github.com/selfexplain/classifier/parallel"
)

// DefaultSize is how many concepts the store keeps by default; the top of
// the corpus by phrase frequency.
const DefaultSize = 8192

// minOccurrences drops hapax phrases, a concept seen once explains nothing.
const minOccurrences = 2

// Build scans a training split and assembles the concept store from its
// most frequent phrase spans.
func Build(split *sst2.Split, classes, size int) *Store {
	if classes < 2 {
		classes = 2
	}
	if size <= 0 {
		size = DefaultSize
	}

	votes := make(map[string][]uint32)
	for _, sample := range split.Samples {
		label := int(sample.Output())
		if label >= classes {
			continue
		}
		for _, phrase := range sample.Phrases {
			v := votes[phrase]
			if v == nil {
				v = make([]uint32, classes)
				votes[phrase] = v
			}
			v[label]++
		}
	}

	type candidate struct {
		phrase string
		total  uint32
	}
	var ranked []candidate
	for phrase, v := range votes {
		var total uint32
		for _, n := range v {
			total += n
		}
		if total < minOccurrences {
			continue
		}
		ranked = append(ranked, candidate{phrase: phrase, total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		return ranked[i].phrase < ranked[j].phrase
	})
	if len(ranked) > size {
		ranked = ranked[:size]
	}

	st := &Store{
		Classes:  classes,
		Concepts: make([]Concept, len(ranked)),
	}
	parallel.ForEach(len(ranked), runtime.NumCPU(), func(i int) {
		st.Concepts[i] = Concept{
			Phrase:    ranked[i].phrase,
			Signature: NewSignature(ranked[i].phrase),
			Votes:     votes[ranked[i].phrase],
		}
	})
	return st
}
