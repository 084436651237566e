package candidategen

import "github.com/hbollon/go-edlib"

// DamerauLevenshteinDistance reports the Damerau-Levenshtein edit distance
// between a and b. It exists to verify candidate-set completeness in tests
// (every dictionary word within edit distance 2 of a token must appear in
// the generated candidate set) rather than for production candidate
// generation itself, which reaches distance-2 neighbors through the
// delete/insert expansion in Generate/GenerateLegacy directly.
func DamerauLevenshteinDistance(a, b string) int {
	return edlib.DamerauLevenshteinDistance(a, b)
}
