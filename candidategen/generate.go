// Package candidategen enumerates known-vocabulary edit-distance candidates
// for a single token. Two paths are kept genuinely distinct, mirroring how
// the original (jamspell/spell_corrector.cpp's Edits versus
// openspell/spell_corrector.cpp's Edits) never unified them into one
// parameterized function: Generate uses the Deletes1/Deletes2 bloom filters
// to prune the alphabet cross-product of insertion expansions, while
// GenerateLegacy directly enumerates delete/transpose/replace/insert edits
// when no cache is loaded.
package candidategen

import (
	mapset "github.com/deckarep/golang-set/v2"

	"contextspell/bloomfilter"
	"contextspell/langmodel"
)

// Level records the shallowest expansion level at which a candidate was
// discovered (1 or 2). The scorer needs this to decide between subtracting
// KnownWordsPenalty and boosting via the second-level multiplier.
type Level int

const (
	// LevelUnknown marks the input token itself: Generate's C0 entry at
	// deletion depth 0, or the original the ranker re-inserts.
	LevelUnknown Level = 0
	LevelOne     Level = 1
	LevelTwo     Level = 2
)

// Candidate is a known-vocabulary word reached from the input token by the
// generator's edit expansion, tagged with the shallowest level it was found
// at.
type Candidate struct {
	Word  string
	Level Level
}

func deletions(w string) []string {
	runes := []rune(w)
	if len(runes) <= 1 {
		return nil
	}
	out := make([]string, 0, len(runes))
	for i := range runes {
		variant := make([]rune, 0, len(runes)-1)
		variant = append(variant, runes[:i]...)
		variant = append(variant, runes[i+1:]...)
		out = append(out, string(variant))
	}
	return out
}

func insertions(s string, alphabet []rune) []string {
	runes := []rune(s)
	out := make([]string, 0, (len(runes)+1)*len(alphabet))
	for pos := 0; pos <= len(runes); pos++ {
		for _, r := range alphabet {
			variant := make([]rune, 0, len(runes)+1)
			variant = append(variant, runes[:pos]...)
			variant = append(variant, r)
			variant = append(variant, runes[pos:]...)
			out = append(out, string(variant))
		}
	}
	return out
}

// Generate implements the bloom-filter-accelerated candidate path: it
// computes C0 (every 0/1/2-deletion of w), takes known-dictionary hits from
// C0 directly, and uses Deletes1/Deletes2 to decide which insertion
// branches are worth exploring at all. A nil filter prunes nothing: every
// branch it would gate is explored.
func Generate(w string, model langmodel.LanguageModel, d1, d2 *bloomfilter.Filter) []Candidate {
	seen := mapset.NewThreadUnsafeSet[string]()
	index := make(map[string]int)
	var out []Candidate

	emit := func(word string, level Level) {
		if seen.Contains(word) {
			if i := index[word]; level < out[i].Level {
				out[i].Level = level
			}
			return
		}
		seen.Add(word)
		index[word] = len(out)
		out = append(out, Candidate{Word: word, Level: level})
	}

	mayContain := func(f *bloomfilter.Filter, s string) bool {
		return f == nil || f.Contains(s)
	}

	alphabet := model.GetAlphabet()

	c0 := map[string]int{w: 0} // string -> deletion depth within C0
	oneDeletes := deletions(w)
	for _, s := range oneDeletes {
		if _, ok := c0[s]; !ok {
			c0[s] = 1
		}
	}
	for _, s := range oneDeletes {
		for _, s2 := range deletions(s) {
			if _, ok := c0[s2]; !ok {
				c0[s2] = 2
			}
		}
	}

	for s, depth := range c0 {
		if _, ok := model.GetWordIDNoCreate(s); ok {
			emit(s, Level(depth))
		}

		if mayContain(d1, s) {
			for _, ins := range insertions(s, alphabet) {
				if _, ok := model.GetWordIDNoCreate(ins); ok {
					emit(ins, LevelOne)
				}
			}
		}
		if mayContain(d2, s) {
			for _, mid := range insertions(s, alphabet) {
				if mayContain(d1, mid) {
					for _, ins := range insertions(mid, alphabet) {
						if _, ok := model.GetWordIDNoCreate(ins); ok {
							emit(ins, LevelTwo)
						}
					}
				}
			}
		}
	}

	return out
}

// GenerateLegacy implements the uncached path: direct delete/transpose/
// replace/insert expansion, one level of recursion deep (edit distance 2
// total), used when no bloom filter cache is loaded.
func GenerateLegacy(w string, model langmodel.LanguageModel) []Candidate {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []Candidate

	alphabet := model.GetAlphabet()

	emit := func(word string, level Level) {
		if seen.Contains(word) {
			return
		}
		seen.Add(word)
		if _, ok := model.GetWordIDNoCreate(word); ok {
			out = append(out, Candidate{Word: word, Level: level})
		}
	}

	level1 := editsOf(w, alphabet)
	for _, e := range level1 {
		emit(e, LevelOne)
	}
	for _, e1 := range level1 {
		for _, e2 := range editsOf(e1, alphabet) {
			emit(e2, LevelTwo)
		}
	}

	return out
}

// editsOf returns every string one delete, transpose, replace, or insert
// away from w.
func editsOf(w string, alphabet []rune) []string {
	runes := []rune(w)
	var out []string

	// deletes
	for i := range runes {
		variant := make([]rune, 0, len(runes)-1)
		variant = append(variant, runes[:i]...)
		variant = append(variant, runes[i+1:]...)
		out = append(out, string(variant))
	}

	// transposes
	for i := 0; i+1 < len(runes); i++ {
		variant := append([]rune(nil), runes...)
		variant[i], variant[i+1] = variant[i+1], variant[i]
		out = append(out, string(variant))
	}

	// replaces
	for i := range runes {
		for _, r := range alphabet {
			if r == runes[i] {
				continue
			}
			variant := append([]rune(nil), runes...)
			variant[i] = r
			out = append(out, string(variant))
		}
	}

	// inserts
	for pos := 0; pos <= len(runes); pos++ {
		for _, r := range alphabet {
			variant := make([]rune, 0, len(runes)+1)
			variant = append(variant, runes[:pos]...)
			variant = append(variant, r)
			variant = append(variant, runes[pos:]...)
			out = append(out, string(variant))
		}
	}

	return out
}
