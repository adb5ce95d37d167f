package sst2

import "strings"
import "unicode"

// Tokens splits a sentence into lowercase word tokens, dropping punctuation.
// Apostrophes survive inside a word ("n't") but never at its edges, so the
// corpus clitic "'s" tokenizes as the bare "s".
func Tokens(text string) (out []string) {
	var b strings.Builder
	flush := func() {
		if w := strings.TrimRight(b.String(), "'"); w != "" {
			out = append(out, w)
		}
		b.Reset()
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' && b.Len() > 0:
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return
}

// Phrases enumerates the contiguous word spans of a sentence up to maxSpan
// words, the stand-in for the parse-tree phrases of the original corpus.
// Spans covering the entire sentence are skipped, a phrase should explain
// part of the prediction, not restate it.
func Phrases(text string, maxSpan int) (out []string) {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	if maxSpan < 1 {
		maxSpan = 1
	}
	for span := 1; span <= maxSpan; span++ {
		if span >= len(tokens) && len(tokens) > 1 {
			break
		}
		for start := 0; start+span <= len(tokens); start++ {
			out = append(out, strings.Join(tokens[start:start+span], " "))
		}
		if len(tokens) == 1 {
			break
		}
	}
	return
}
