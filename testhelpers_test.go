package contextspell

import (
	"os"
	"path/filepath"
	"testing"

	"contextspell/langmodel"
)

// newTrainedEngine trains a fresh NgramModel from corpusText (with a
// standard lowercase alphabet) and returns an Engine wired to it via
// TrainLangModel, so both the model and its bloom-filter cache are in
// place exactly as a caller's LoadLangModel/TrainLangModel round trip
// would leave them.
func newTrainedEngine(t *testing.T, corpusText string, opts ...EngineOption) *Engine {
	t.Helper()
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(corpus, []byte(corpusText), 0o644); err != nil {
		t.Fatal(err)
	}
	alphabet := filepath.Join(dir, "alphabet.txt")
	if err := os.WriteFile(alphabet, []byte("abcdefghijklmnopqrstuvwxyz"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(langmodel.NewNgramModel(), opts...)
	out := filepath.Join(dir, "model.bin")
	if !e.TrainLangModel(corpus, alphabet, out) {
		t.Fatalf("TrainLangModel returned false")
	}
	return e
}

const sampleCorpus = "the quick brown fox jumps over the lazy dog.\n"

// stableCorpus uses words of seven distinct lengths that share almost no
// letters with each other, so no pair is within reach of the candidate
// generator's delete/insert cascade — tests built on it can assert a hard
// no-change/unchanged result without the language model's scoring policy
// entering the picture at all.
const stableCorpus = "cat frog happy purple morning mountain wonderful.\n"
