package datasets

import "sync"

// Tally counts votes on cell input features across a whole split and
// materializes the majority votes into a trainable dataset.
type Tally struct {
	// votes on features which caused the overall result to be correct,
	// true as +1, false as -1
	correct map[uint32]int64

	// votes on features which would improve the overall result
	improve map[uint32]int64

	mut sync.Mutex

	// improvementPossible reports whether retraining this cell can help
	improvementPossible bool
}

// Init initializes the tally structure
func (t *Tally) Init() {
	t.correct = make(map[uint32]int64)
	t.improve = make(map[uint32]int64)
	t.improvementPossible = false
}

// Free frees the memory occupied by the tally structure
func (t *Tally) Free() {
	t.correct = nil
	t.improve = nil
}

// GetImprovementPossible reads improvementPossible
func (t *Tally) GetImprovementPossible() bool {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.improvementPossible
}

// Len estimates the size of the tally
func (t *Tally) Len() (o int) {
	t.mut.Lock()
	o = len(t.correct) + len(t.improve)
	t.mut.Unlock()
	return
}

// AddToImprove votes for a feature which would improve the overall result
func (t *Tally) AddToImprove(feature uint32, vote int8) {
	if vote == 0 {
		return
	}
	t.mut.Lock()
	t.improve[feature] += int64(vote)
	if t.improve[feature] == 0 {
		delete(t.improve, feature)
	}
	t.improvementPossible = true
	t.mut.Unlock()
}

// AddToCorrect votes for a feature which caused the overall result to be correct
func (t *Tally) AddToCorrect(feature uint32, vote int8, improvement bool) {
	if vote == 0 {
		return
	}
	t.mut.Lock()
	t.correct[feature] += int64(vote)
	if t.correct[feature] == 0 {
		delete(t.correct, feature)
	}
	if improvement {
		t.improvementPossible = true
	}
	t.mut.Unlock()
}

// Dataset materializes the votes into the dataset the learner trains on.
// Improvement votes outweigh correctness votes on conflict.
func (t *Tally) Dataset() (d Dataset) {
	d.Init()
	t.mut.Lock()
	for feature, vote := range t.correct {
		d[feature] = vote > 0
	}
	for feature, vote := range t.improve {
		d[feature] = vote > 0
	}
	t.mut.Unlock()
	return
}
