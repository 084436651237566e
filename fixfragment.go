package contextspell

import (
	"strings"
	"unicode"

	"contextspell/wordref"
)

// correctedSentence runs GetCandidatesScored over every position of a
// lowercase sentence, substituting the top candidate into the working
// copy as it goes, so subsequent positions in the same sentence see the
// already-corrected left context. It returns the final per-position
// corrected word text.
func (e *Engine) correctedSentence(sentence wordref.Sentence) []string {
	working := make([]wordref.Word, len(sentence.Words))
	copy(working, sentence.Words)

	for j := range working {
		view := wordref.Sentence{Buffer: sentence.Buffer, Words: working}
		scored := e.GetCandidatesScored(view, j)
		if len(scored) == 0 {
			continue
		}
		top := scored[0].Word
		if top != working[j].String() {
			working[j] = wordref.FromString(top)
		}
	}

	out := make([]string, len(working))
	for i, w := range working {
		out[i] = w.String()
	}
	return out
}

// FixFragment returns text with misspelled tokens replaced by their
// top-ranked correction, copying every non-word character verbatim (at its
// original offset unless an earlier correction changed a token's length)
// and keeping the per-character capitalization of each token. A
// token whose own top candidate is itself is left byte-for-byte identical
// to the input.
func (e *Engine) FixFragment(text string) string {
	origSentences := e.model.Tokenize(text)
	sentences := e.model.Tokenize(strings.ToLower(text))

	corrected := make([][]string, len(sentences))
	for i, s := range sentences {
		corrected[i] = e.correctedSentence(s)
	}

	origRunes := []rune(text)
	var out strings.Builder
	origPos := 0

	n := len(origSentences)
	if len(sentences) < n {
		n = len(sentences)
	}
	for si := 0; si < n; si++ {
		words := origSentences[si].Words
		m := len(words)
		if len(corrected[si]) < m {
			m = len(corrected[si])
		}
		for j := 0; j < m; j++ {
			token := words[j]
			if token.Start < origPos {
				continue // defensive: tokenization produced an out-of-order span
			}
			out.WriteString(string(origRunes[origPos:token.Start]))

			correctedWord := corrected[si][j]
			origWord := token.String()
			if correctedWord == strings.ToLower(origWord) {
				out.WriteString(origWord)
			} else {
				out.WriteString(applyCase(correctedWord, []rune(origWord)))
			}
			origPos = token.End
		}
	}
	out.WriteString(string(origRunes[origPos:]))
	return out.String()
}

// applyCase renders corrected with each character i uppercased iff
// character min(i, len(orig)-1) of orig was uppercase.
func applyCase(corrected string, orig []rune) string {
	if len(orig) == 0 {
		return corrected
	}
	runes := []rune(corrected)
	out := make([]rune, len(runes))
	for i, r := range runes {
		idx := i
		if idx > len(orig)-1 {
			idx = len(orig) - 1
		}
		if unicode.IsUpper(orig[idx]) {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = r
		}
	}
	return string(out)
}

// FixFragmentNormalized applies the same correction logic as FixFragment
// but discards original whitespace, emitting "word1 word2 ... wordN. "
// per sentence, with the trailing space after the last sentence trimmed.
// Used for evaluation and benchmarking rather than
// round-trip display.
func (e *Engine) FixFragmentNormalized(text string) string {
	sentences := e.model.Tokenize(strings.ToLower(text))

	var out strings.Builder
	for _, s := range sentences {
		words := e.correctedSentence(s)
		if len(words) == 0 {
			continue
		}
		out.WriteString(strings.Join(words, " "))
		out.WriteString(". ")
	}
	return strings.TrimSuffix(out.String(), " ")
}
