package contextspell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contextspell/langmodel"
)

// TestGetCandidatesScoredAlwaysIncludesOriginal checks that the ranked
// candidate list always contains the original token, whether it is known
// (as its canonical form) or unknown (as itself).
func TestGetCandidatesScoredAlwaysIncludesOriginal(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)

	sentences := e.model.Tokenize("cat xyzzyplugh")
	if len(sentences) != 1 || len(sentences[0].Words) != 2 {
		t.Fatalf("unexpected tokenization: %+v", sentences)
	}

	for pos, want := range []string{"cat", "xyzzyplugh"} {
		scored := e.GetCandidatesScored(sentences[0], pos)
		found := false
		for _, c := range scored {
			if c.Word == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected candidates at position %d to include original %q, got %v", pos, want, scored)
		}
	}
}

// TestGetCandidatesScoredOutOfRangeReturnsEmpty checks that an
// out-of-range position returns an empty result, not an error.
func TestGetCandidatesScoredOutOfRangeReturnsEmpty(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)
	sentences := e.model.Tokenize("cat")

	if got := e.GetCandidatesScored(sentences[0], -1); got != nil {
		t.Fatalf("expected nil for negative position, got %v", got)
	}
	if got := e.GetCandidatesScored(sentences[0], 5); got != nil {
		t.Fatalf("expected nil for out-of-range position, got %v", got)
	}
}

// TestSetPenaltyAndMaxCandidatesToCheck exercises the post-construction
// setters SetPenalty and SetMaxCandidatesToCheck.
func TestSetPenaltyAndMaxCandidatesToCheck(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)
	e.SetPenalty(1.0, 2.0)
	if e.knownWordsPenalty != 1.0 || e.unknownWordsPenalty != 2.0 {
		t.Fatalf("SetPenalty did not take effect: known=%v unknown=%v", e.knownWordsPenalty, e.unknownWordsPenalty)
	}
	e.SetMaxCandidatesToCheck(5)
	if e.maxCandidatesToCheck != 5 {
		t.Fatalf("SetMaxCandidatesToCheck did not take effect: got %d", e.maxCandidatesToCheck)
	}
}

// TestLoadLangModelRebuildsMissingCache checks the cache auto-rebuild-on-load
// behavior: LoadLangModel against a model with no sibling .spell cache file
// must still return true and leave the engine with a usable cache.
func TestLoadLangModelRebuildsMissingCache(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	alphabet := filepath.Join(dir, "alphabet.txt")
	if err := os.WriteFile(corpus, []byte(stableCorpus), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(alphabet, []byte("abcdefghijklmnopqrstuvwxyz"), 0o644); err != nil {
		t.Fatal(err)
	}

	trainer := NewEngine(langmodel.NewNgramModel())
	modelPath := filepath.Join(dir, "model.bin")
	if !trainer.TrainLangModel(corpus, alphabet, modelPath) {
		t.Fatalf("TrainLangModel returned false")
	}

	// Remove the cache file Train already wrote, to simulate "cache
	// absent" on a fresh LoadLangModel.
	if err := os.Remove(cachePath(modelPath)); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(langmodel.NewNgramModel())
	if !e.LoadLangModel(modelPath) {
		t.Fatalf("LoadLangModel returned false")
	}
	if !e.isCachedPath() {
		t.Fatalf("expected LoadLangModel to rebuild a usable cache when none was on disk")
	}
}

func TestVersionIsStable(t *testing.T) {
	if v := Version(); v == "" {
		t.Fatalf("expected non-empty version string")
	}
}

func TestEngineString(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)
	if s := e.String(); !strings.Contains(s, "contextspell.Engine") {
		t.Fatalf("String() = %q, want it to mention contextspell.Engine", s)
	}
}
