// Package conceptstore implements the concept store artifact: the corpus
// phrases a prediction can be explained with, indexed by bit signature.
// The store is built once from the training split and loaded read-only by
// the trainer and the inference commands.
package conceptstore

import (
	"compress/lzw"
	"encoding/json"
	"io"
	"math/bits"
	"os"

	"github.com/pkg/errors"

	"github.com/selfexplain/classifier/hash"
)

// SignatureWords is the signature width in 64-bit words.
const SignatureWords = 4

// Signature is the bit signature of a phrase. Bit i is the parity of the
// i-th salted hash of the phrase text, so textual similarity shows up as
// Hamming similarity.
type Signature [SignatureWords]uint64

// NewSignature computes the signature of a phrase.
func NewSignature(text string) (sig Signature) {
	for w := 0; w < SignatureWords; w++ {
		for b := 0; b < 64; b++ {
			if hash.StringHash(uint32(w*64+b), text)&1 != 0 {
				sig[w] |= 1 << b
			}
		}
	}
	return
}

// Similarity counts the agreeing signature bits, the inner product of the
// two phrases in signature space.
func (s Signature) Similarity(o Signature) (n int) {
	for w := 0; w < SignatureWords; w++ {
		n += 64 - bits.OnesCount64(s[w]^o[w])
	}
	return
}

// Concept is one stored phrase with its corpus class votes.
type Concept struct {
	Phrase    string    `json:"phrase"`
	Signature Signature `json:"sig"`

	// Votes[c] counts the phrase's occurrences in class-c sentences
	Votes []uint32 `json:"votes"`
}

// Label returns the majority class of the concept
func (c Concept) Label() (label int) {
	var best uint32
	for i, v := range c.Votes {
		if v > best {
			best = v
			label = i
		}
	}
	return
}

// Store is the loaded concept store.
type Store struct {
	Classes  int       `json:"classes"`
	Concepts []Concept `json:"concepts"`
}

// Ranked is one concept returned by a top-k query.
type Ranked struct {
	Concept    *Concept
	Similarity int
}

// TopK returns the k concepts nearest to the signature. The scan is linear,
// the store is small enough that an index would not pay for itself.
func (st *Store) TopK(sig Signature, k int) (out []Ranked) {
	if k <= 0 {
		return nil
	}
	for i := range st.Concepts {
		sim := st.Concepts[i].Signature.Similarity(sig)
		if len(out) < k {
			out = append(out, Ranked{Concept: &st.Concepts[i], Similarity: sim})
			sortUp(out)
			continue
		}
		if sim > out[len(out)-1].Similarity {
			out[len(out)-1] = Ranked{Concept: &st.Concepts[i], Similarity: sim}
			sortUp(out)
		}
	}
	return
}

// sortUp bubbles the last element into place, out stays sorted by
// descending similarity.
func sortUp(out []Ranked) {
	for i := len(out) - 1; i > 0; i-- {
		if out[i].Similarity <= out[i-1].Similarity {
			break
		}
		out[i], out[i-1] = out[i-1], out[i]
	}
}

// WriteFile persists the store as lzw compressed json.
func (st *Store) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create concept store")
	}
	err = st.Write(file)
	file.Close()
	return err
}

// Write persists the store to a writer.
func (st *Store) Write(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(st); err != nil {
		return errors.Wrap(err, "encode concept store")
	}
	return lw.Close()
}

// ReadFile loads a store written by WriteFile.
func ReadFile(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open concept store")
	}
	defer file.Close()
	return Read(file)
}

// Read loads a store from a reader.
func Read(r io.Reader) (*Store, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var st Store
	if err := json.NewDecoder(lr).Decode(&st); err != nil {
		return nil, errors.Wrap(err, "decode concept store")
	}
	return &st, nil
}
