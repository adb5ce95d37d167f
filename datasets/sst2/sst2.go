// Package sst2 implements the SST-2 sentence polarity dataset: tab separated
// sentence/label records, one split per file under the dataset base directory.
package sst2

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/selfexplain/classifier/hash"
	"github.com/selfexplain/classifier/parallel"
)

// Sample is one labeled sentence. Features are salted hashes of the
// sentence text, so the sample feeds the network directly.
type Sample struct {
	Text    string
	Label   uint16
	Phrases []string
}

// Feature extracts the n-th input feature of the sentence
func (s Sample) Feature(n int) uint32 {
	return hash.StringHash(uint32(n), s.Text)
}

// Output returns the gold label
func (s Sample) Output() uint16 {
	return s.Label
}

// PhraseSample feeds a single phrase span through the network, used by the
// phrase-level interpretable head.
type PhraseSample struct {
	Text string
}

// Feature extracts the n-th input feature of the phrase
func (p PhraseSample) Feature(n int) uint32 {
	return hash.StringHash(uint32(n), p.Text)
}

// Split is one loaded dataset split
type Split struct {
	Samples []Sample
}

func (s *Split) Len() int {
	return len(s.Samples)
}

// MaxSpan is the longest phrase span attached to a sample, in words.
const MaxSpan = 5

// Load reads the named split (train, dev, test) from basedir/name.tsv and
// attaches phrase spans to every sample. Tokenization of the split runs
// concurrently unless TOKENIZERS_PARALLELISM=false is set, which is what
// the launcher sets for reproducible runs.
func Load(basedir, name string) (*Split, error) {
	path := filepath.Join(basedir, name+".tsv")
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s split", name)
	}
	defer file.Close()

	var out Split
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		columns := strings.Split(line, "\t")
		if len(columns) != 2 {
			continue
		}
		var label uint16
		switch strings.TrimSpace(columns[1]) {
		case "0":
			label = 0
		case "1":
			label = 1
		default:
			// header or damaged record
			continue
		}
		out.Samples = append(out.Samples, Sample{
			Text:  strings.TrimSpace(columns[0]),
			Label: label,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s split", name)
	}

	attach := func(i int) {
		out.Samples[i].Phrases = Phrases(out.Samples[i].Text, MaxSpan)
	}
	if ParallelTokenization() {
		parallel.ForEach(len(out.Samples), runtime.NumCPU(), attach)
	} else {
		for i := range out.Samples {
			attach(i)
		}
	}
	return &out, nil
}

// ParallelTokenization reports whether the tokenizer may run concurrently.
func ParallelTokenization() bool {
	return os.Getenv("TOKENIZERS_PARALLELISM") != "false"
}
