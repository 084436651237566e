package contextspell

import (
	"encoding/json"
	"strings"
)

// maxReportedCandidates bounds how many scored candidates are attached to
// each misspelling record.
const maxReportedCandidates = 7

// scoredCandidateJSON is one entry of a misspellingJSON's Candidates list.
type scoredCandidateJSON struct {
	Candidate string  `json:"candidate"`
	Score     float64 `json:"score"`
}

// misspellingJSON is one flagged token in a GetALLCandidatesScoredJSON
// report.
type misspellingJSON struct {
	PosFrom    int                   `json:"pos_from"`
	Len        int                   `json:"len"`
	Original   string                `json:"original"`
	Candidates []scoredCandidateJSON `json:"candidates"`
}

// misspellingReport is the top-level document GetALLCandidatesScoredJSON
// marshals.
type misspellingReport struct {
	Results []misspellingJSON `json:"results"`
}

// GetALLCandidatesScoredJSON reports every token in text whose top-ranked
// candidate differs from the token itself. pos_from is the wide-character
// (rune) offset of the token into the lowercased input; len is the
// token's rune length; candidates are ranked, capped at 7. Correctly
// spelled tokens (top candidate equals the token) are omitted.
func (e *Engine) GetALLCandidatesScoredJSON(text string) (string, error) {
	return e.GetCandidatesScoredJSON(text, maxReportedCandidates)
}

// GetCandidatesScoredJSON is GetALLCandidatesScoredJSON with the per-token
// candidate list capped at maxCandidates instead of the fixed default of 7.
// maxCandidates is clamped to [1, 7]; callers that want a short list (one
// candidate per misspelling, say) pass a small value without paying for the
// full ranked list in the output.
func (e *Engine) GetCandidatesScoredJSON(text string, maxCandidates int) (string, error) {
	if maxCandidates < 1 {
		maxCandidates = 1
	}
	if maxCandidates > maxReportedCandidates {
		maxCandidates = maxReportedCandidates
	}

	sentences := e.model.Tokenize(strings.ToLower(text))

	report := misspellingReport{Results: []misspellingJSON{}}
	for _, sentence := range sentences {
		for j, token := range sentence.Words {
			original := token.String()
			scored := e.GetCandidatesScored(sentence, j)
			if len(scored) == 0 {
				continue
			}
			if scored[0].Word == original {
				continue
			}

			n := len(scored)
			if n > maxCandidates {
				n = maxCandidates
			}
			candidates := make([]scoredCandidateJSON, n)
			for i := 0; i < n; i++ {
				candidates[i] = scoredCandidateJSON{
					Candidate: scored[i].Word,
					Score:     scored[i].Score,
				}
			}

			report.Results = append(report.Results, misspellingJSON{
				PosFrom:    token.Start,
				Len:        token.Len(),
				Original:   original,
				Candidates: candidates,
			})
		}
	}

	out, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
