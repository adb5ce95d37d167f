package sst2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSplit(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".tsv"), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train", "sentence\tlabel\na gripping portrait\t1\nflat and lifeless\t0\nbroken line without tab\n")

	split, err := Load(dir, "train")
	require.NoError(t, err)
	require.Len(t, split.Samples, 2)

	require.Equal(t, "a gripping portrait", split.Samples[0].Text)
	require.Equal(t, uint16(1), split.Samples[0].Output())
	require.Equal(t, uint16(0), split.Samples[1].Output())
	require.NotEmpty(t, split.Samples[0].Phrases)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir(), "train")
	require.Error(t, err)
}

func TestSerialTokenizationMatchesParallel(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "dev", "a gripping portrait of a man\t1\nflat and lifeless writing\t0\n")

	t.Setenv("TOKENIZERS_PARALLELISM", "false")
	require.False(t, ParallelTokenization())
	serial, err := Load(dir, "dev")
	require.NoError(t, err)

	t.Setenv("TOKENIZERS_PARALLELISM", "true")
	require.True(t, ParallelTokenization())
	concurrent, err := Load(dir, "dev")
	require.NoError(t, err)

	require.Equal(t, serial.Samples, concurrent.Samples)
}

func TestTokens(t *testing.T) {
	require.Equal(t, []string{"it", "s", "a", "fine", "film"}, Tokens("It 's a fine , film ."))
	require.Equal(t, []string{"do", "n't", "stop"}, Tokens("Do n't stop"))
	require.Equal(t, []string{"films"}, Tokens("films '"))
	require.Empty(t, Tokens("..."))
	require.Empty(t, Tokens("'''"))
}

func TestPhrases(t *testing.T) {
	phrases := Phrases("a fine film", 2)
	require.Contains(t, phrases, "a")
	require.Contains(t, phrases, "fine film")
	require.NotContains(t, phrases, "a fine film", "whole-sentence span must be skipped")

	require.Equal(t, []string{"word"}, Phrases("word", 3))
	require.Nil(t, Phrases(" . ", 3))
}

func TestFeatureDeterminism(t *testing.T) {
	s := Sample{Text: "a fine film", Label: 1}
	require.Equal(t, s.Feature(7), s.Feature(7))
	require.NotEqual(t, s.Feature(0), s.Feature(1))
}
