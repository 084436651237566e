package contextspell

import (
	"context"
	"math"
	"sort"
	"strings"

	"contextspell/candidategen"
	"contextspell/customdict"
	"contextspell/wordref"
)

// ScoredCandidate is a ranked replacement for a single token. Score is
// always in log-probability domain: the subtractive penalties apply
// directly to the language model's log-score, and the "*= 50.0" boost on
// second-level (LevelTwo) candidates, from either generator, is applied
// in probability space and converted back (see
// DESIGN.md's resolution of the dual score semantics open question), so
// callers never have to know which path produced a given ScoredCandidate
// to compare it against another.
type ScoredCandidate struct {
	Word  string
	Score float64
}

// windowContextSize is how many tokens on each side of the target
// position enter the scoring window.
const windowContextSize = 2

// substituted returns a copy of sentence's words with the word at
// position replaced by replacement, ready to hand to the language model's
// Score.
func substituted(sentence wordref.Sentence, position int, replacement string) []wordref.Word {
	window := sentence.Window(position, windowContextSize, windowContextSize)

	// Window returns a clamped slice; find where `position` landed inside it.
	start := position - windowContextSize
	if start < 0 {
		start = 0
	}
	localPos := position - start

	out := make([]wordref.Word, len(window))
	copy(out, window)
	if localPos >= 0 && localPos < len(out) {
		out[localPos] = wordref.FromString(replacement)
	}
	return out
}

// filterByFrequency implements the frequency pre-filter: when candidates
// exceed max, keep only the top-max by unigram count (stable, so ties
// keep discovery order) and always re-insert original. wordCount
// resolves a candidate's unigram count; customdict-known words resolve
// through it at customdict.SyntheticCount, so a word an operator added at
// runtime never gets dropped by this cap.
func filterByFrequency(cands []candidategen.Candidate, wordCount func(string) uint64, max int, original string) []candidategen.Candidate {
	if len(cands) <= max {
		return cands
	}

	sorted := make([]candidategen.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return wordCount(sorted[i].Word) > wordCount(sorted[j].Word)
	})

	kept := sorted[:max]
	for _, c := range kept {
		if c.Word == original {
			return kept
		}
	}
	return append(kept, candidategen.Candidate{Word: original, Level: candidategen.LevelUnknown})
}

// GetCandidatesScored ranks every known-vocabulary candidate for the
// token at sentence.Words[position], using windowed language-model
// scoring and the known/unknown penalty policy. sentence must already be
// the lowercase working sentence, matching the fragment corrector's own
// per-position substitution contract.
func (e *Engine) GetCandidatesScored(sentence wordref.Sentence, position int) []ScoredCandidate {
	if position < 0 || position >= len(sentence.Words) {
		return nil
	}

	original := strings.ToLower(sentence.Words[position].String())
	canonical, knownOriginal := e.model.GetWord(original)
	canonicalForm := original
	if knownOriginal {
		canonicalForm = canonical.String()
	} else if e.customWordKnown(context.Background(), original) {
		// The live/session custom dictionary is consulted as a fallback
		// known-word source: a word an operator added at runtime should
		// get the KnownWordsPenalty treatment, not be treated as
		// out-of-vocabulary.
		knownOriginal = true
	}

	cands := e.generateCandidates(original)

	hasOriginal := false
	for _, c := range cands {
		if c.Word == original {
			hasOriginal = true
			break
		}
	}
	if !hasOriginal {
		cands = append(cands, candidategen.Candidate{Word: original, Level: candidategen.LevelUnknown})
	}

	wordCount := func(word string) uint64 {
		if id, ok := e.model.GetWordIDNoCreate(word); ok {
			return e.model.GetWordCount(id)
		}
		if e.customWordKnown(context.Background(), word) {
			return customdict.SyntheticCount
		}
		return 0
	}
	cands = filterByFrequency(cands, wordCount, e.maxCandidatesToCheck, original)

	scored := make([]ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		window := substituted(sentence, position, c.Word)
		logScore := e.model.Score(window)

		switch {
		case c.Word == canonicalForm:
			// no change: no adjustment.
		case knownOriginal && c.Level == candidategen.LevelOne:
			logScore -= e.knownWordsPenalty
		case knownOriginal && c.Level == candidategen.LevelTwo:
			prob := math.Exp(logScore) * 50.0
			logScore = math.Log(prob)
		default:
			logScore -= e.unknownWordsPenalty
		}

		scored = append(scored, ScoredCandidate{Word: c.Word, Score: logScore})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// GetCandidates returns just the ranked candidate words, highest first.
func (e *Engine) GetCandidates(sentence wordref.Sentence, position int) []string {
	scored := e.GetCandidatesScored(sentence, position)
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Word
	}
	return out
}
