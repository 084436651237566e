package contextspell

import "testing"

// TestFixFragmentCorrectsKnownMisspelling exercises the full FixFragment
// pipeline: "fix" is out-of-vocabulary but one insertion away from the
// known word "fox", and with no penalty the language model's own
// preference for "brown fox" over an unknown last word should surface it.
// A zero penalty isolates the mechanism from needing a production-scale
// language model to overcome the default UnknownWordsPenalty.
func TestFixFragmentCorrectsKnownMisspelling(t *testing.T) {
	e := newTrainedEngine(t, sampleCorpus, WithUnknownWordsPenalty(0), WithKnownWordsPenalty(0))

	got := e.FixFragment("the quick brown fix")
	want := "the quick brown fox"
	if got != want {
		t.Fatalf("FixFragment(%q) = %q, want %q", "the quick brown fix", got, want)
	}
}

// TestFixFragmentNoChangeFixedPoint checks that text made entirely of
// in-vocabulary words with no edit-distance neighbors in the (tiny)
// vocabulary round-trips byte-for-byte.
func TestFixFragmentNoChangeFixedPoint(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)

	text := "cat frog happy purple morning mountain wonderful"
	if got := e.FixFragment(text); got != text {
		t.Fatalf("FixFragment(%q) = %q, want unchanged", text, got)
	}
}

// TestFixFragmentPreservesCaseOfUnchangedWord checks that, for a single
// known word, FixFragment reproduces the exact input, capitalization
// included.
func TestFixFragmentPreservesCaseOfUnchangedWord(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)

	if got := e.FixFragment("Mountain"); got != "Mountain" {
		t.Fatalf("FixFragment(%q) = %q, want unchanged with capitalization preserved", "Mountain", got)
	}
}

// TestFixFragmentAppliesCaseToCorrection checks that a corrected word
// inherits the original token's per-character capitalization, clamped to
// the original's last character for any characters beyond its length.
func TestFixFragmentAppliesCaseToCorrection(t *testing.T) {
	e := newTrainedEngine(t, sampleCorpus, WithUnknownWordsPenalty(0), WithKnownWordsPenalty(0))

	got := e.FixFragment("the quick brown Fix")
	want := "the quick brown Fox"
	if got != want {
		t.Fatalf("FixFragment(%q) = %q, want %q", "the quick brown Fix", got, want)
	}
}

// TestFixFragmentPreservesWhitespaceAndPunctuation checks that every
// non-word character stays at its original offset when no token in the
// fragment changes length.
func TestFixFragmentPreservesWhitespaceAndPunctuation(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)

	text := "  cat,   frog happy-purple!  "
	if got := e.FixFragment(text); got != text {
		t.Fatalf("FixFragment(%q) = %q, want unchanged", text, got)
	}
}

// TestFixFragmentUnrelatedTokenUnchanged checks that a token with no
// close neighbor in the vocabulary is returned unchanged.
func TestFixFragmentUnrelatedTokenUnchanged(t *testing.T) {
	e := newTrainedEngine(t, sampleCorpus)

	text := "xzqvbn"
	if got := e.FixFragment(text); got != text {
		t.Fatalf("FixFragment(%q) = %q, want unchanged (no close vocabulary neighbor)", text, got)
	}
}

// TestFixFragmentNormalizedDiscardsWhitespace exercises the normalized
// variant: per-sentence "word1 word2 ... wordN. " output rather than a
// whitespace round trip.
func TestFixFragmentNormalizedDiscardsWhitespace(t *testing.T) {
	e := newTrainedEngine(t, stableCorpus)

	got := e.FixFragmentNormalized("cat   frog happy purple")
	want := "cat frog happy purple."
	if got != want {
		t.Fatalf("FixFragmentNormalized(...) = %q, want %q", got, want)
	}
}
