// Package verbosity names how much of the ranked-candidate report a caller
// wants printed alongside a correction.
package verbosity

// Verbosity controls how many ranked candidates accompany a correction in
// output meant for a human reader, not how correction itself behaves —
// GetCandidatesScored always ranks and returns the full candidate list
// regardless of Verbosity.
type Verbosity int

const (
	// Top prints only the winning correction, no candidate list.
	Top Verbosity = iota
	// Closest prints the winning correction plus a short list of the
	// next-closest ranked candidates.
	Closest
	// All prints the winning correction plus the full ranked candidate
	// list (capped at the report's per-token maximum).
	All
)

// CandidateLimit reports how many ranked candidates a report should include
// for v, or 0 if no candidate list should be printed at all.
func (v Verbosity) CandidateLimit(fullLimit int) int {
	switch v {
	case Top:
		return 0
	case Closest:
		if fullLimit > 3 {
			return 3
		}
		return fullLimit
	default:
		return fullLimit
	}
}
