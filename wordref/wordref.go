// Package wordref models the non-owning word references the correction
// engine passes around internally: a borrowed range into a shared rune
// buffer, never copied, never retained past the call that produced it.
package wordref

import (
	"github.com/cespare/xxhash/v2"

	"contextspell/utilities"
)

// Word is a view over [Start, End) of Buffer. Two Words are equal if their
// textual content matches, regardless of which buffer or offsets produced
// them; identity is never part of the contract.
type Word struct {
	Buffer []rune
	Start  int
	End    int
}

// New builds a Word view over buf[start:end]. The caller must keep buf alive
// for as long as the Word (and anything derived from it) is in use.
func New(buf []rune, start, end int) Word {
	return Word{Buffer: buf, Start: start, End: end}
}

// FromString builds a standalone Word that owns its buffer, for candidates
// and canonical forms that don't originate from a caller-supplied fragment.
func FromString(s string) Word {
	r := []rune(s)
	return Word{Buffer: r, Start: 0, End: len(r)}
}

// Len reports the rune length of the word.
func (w Word) Len() int {
	return w.End - w.Start
}

// Empty reports whether the word has no runes.
func (w Word) Empty() bool {
	return w.Start >= w.End
}

// Runes returns the word's runes. The returned slice aliases Buffer and must
// not be mutated.
func (w Word) Runes() []rune {
	return w.Buffer[w.Start:w.End]
}

// String renders the word's content. Equality and hashing are defined over
// this content, never over Buffer/Start/End identity.
func (w Word) String() string {
	return string(w.Runes())
}

// Equal compares two words by content.
func (w Word) Equal(other Word) bool {
	a, b := w.Runes(), other.Runes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash returns a content hash suitable for use as a map/set key surrogate.
func (w Word) Hash() uint64 {
	return xxhash.Sum64String(w.String())
}

// Sentence is an ordered run of Words drawn from the same Buffer, with each
// Word's Start/End recoverable so corrections can be spliced back into the
// original text.
type Sentence struct {
	Buffer []rune
	Words  []Word
}

// Strings renders every word in the sentence as a plain string slice.
func (s Sentence) Strings() []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.String()
	}
	return out
}

// Window returns the Words at positions intersected with [pos-back, pos+forward],
// clamped to the sentence bounds. Used to build the narrow scoring context
// around a candidate substitution.
func (s Sentence) Window(pos, back, forward int) []Word {
	lo := utilities.Max(pos-back, 0)
	hi := utilities.Min(pos+forward, len(s.Words)-1)
	if lo > hi {
		return nil
	}
	out := make([]Word, hi-lo+1)
	copy(out, s.Words[lo:hi+1])
	return out
}
