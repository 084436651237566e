// Package bloomfilter implements a fixed-capacity probabilistic set of
// UTF-8 strings with no false negatives, used to prune the correction
// engine's edit-distance candidate expansion (see deletecache and
// candidategen). No bloom filter library appears anywhere in the retrieved
// example pack, so this is built on the standard library plus the two hash
// functions the pack already pulls in for other purposes (utilities'
// FNV-style string hash and cespare/xxhash).
package bloomfilter

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"contextspell/utilities"
)

// Filter is a Bloom filter over bit-packed uint64 words, addressed by a pair
// of independent hashes combined via Kirsch-Mitzenmacher double hashing.
type Filter struct {
	bits []uint64
	m    uint64 // number of bits
	k    uint64 // number of hash functions
}

// compactMask mirrors go-symspell's hashing convention (utilities.GetStringHash
// expects a mask shaped like (MaxUint >> (3+compactLevel)) << 2); a wide mask
// here just spreads h1 across a large range before it's folded mod m.
const compactMask = (^uint(0) >> 3) << 2

// New creates an empty filter sized for expectedElements items at the given
// target false-positive rate, per the standard bloom filter sizing formulas:
//
//	m = ceil(-n*ln(p) / (ln 2)^2)
//	k = round(m/n * ln 2)
//
// The bit count is floored at 8000 bits, so a pathologically small or zero
// expectedElements still yields a usable filter.
func New(expectedElements uint64, falsePositiveRate float64) *Filter {
	if expectedElements < 1 {
		expectedElements = 1
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.001
	}

	n := float64(expectedElements)
	ln2 := math.Ln2
	m := math.Ceil(-n * math.Log(falsePositiveRate) / (ln2 * ln2))
	k := math.Round((m / n) * ln2)

	mBits := uint64(m)
	if mBits < 8000 { // floor: at least 1000 capacity worth of bits (see New callers)
		mBits = 8000
	}
	kHashes := uint64(k)
	if kHashes < 1 {
		kHashes = 1
	}
	if kHashes > 32 {
		kHashes = 32
	}

	words := (mBits + 63) / 64
	return &Filter{
		bits: make([]uint64, words),
		m:    mBits,
		k:    kHashes,
	}
}

func (f *Filter) indexes(s string) (h1, h2 uint64) {
	h1 = uint64(utilities.GetStringHash(s, compactMask))
	h2 = xxhash.Sum64String(s)
	if h2 == 0 {
		h2 = 1 // double hashing degenerates if the step is 0
	}
	return h1, h2
}

// Insert adds s to the filter. Insert never fails (errors can't occur in a
// pure in-memory bit-set), but callers that wrap it (cache population)
// can still report per-word status without a type change later.
func (f *Filter) Insert(s string) {
	h1, h2 := f.indexes(s)
	for i := uint64(0); i < f.k; i++ {
		bit := (h1 + i*h2) % f.m
		f.bits[bit/64] |= 1 << (bit % 64)
	}
}

// Contains reports whether s was (probably) inserted. False positives are
// possible; false negatives are not.
func (f *Filter) Contains(s string) bool {
	h1, h2 := f.indexes(s)
	for i := uint64(0); i < f.k; i++ {
		bit := (h1 + i*h2) % f.m
		if f.bits[bit/64]&(1<<(bit%64)) == 0 {
			return false
		}
	}
	return true
}

// Dump serializes the filter: m, k, word count, then the packed bits,
// all little-endian.
func (f *Filter) Dump(w io.Writer) error {
	hdr := make([]byte, 24)
	binary.LittleEndian.PutUint64(hdr[0:8], f.m)
	binary.LittleEndian.PutUint64(hdr[8:16], f.k)
	binary.LittleEndian.PutUint64(hdr[16:24], uint64(len(f.bits)))
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	buf := make([]byte, 8)
	for _, word := range f.bits {
		binary.LittleEndian.PutUint64(buf, word)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Load deserializes a filter previously written by Dump, replacing the
// receiver's contents in place.
func (f *Filter) Load(r io.Reader) error {
	hdr := make([]byte, 24)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return err
	}
	m := binary.LittleEndian.Uint64(hdr[0:8])
	k := binary.LittleEndian.Uint64(hdr[8:16])
	count := binary.LittleEndian.Uint64(hdr[16:24])
	if m == 0 || k == 0 || count == 0 {
		return errors.New("bloomfilter: empty or malformed dump")
	}

	bits := make([]uint64, count)
	buf := make([]byte, 8)
	for i := range bits {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		bits[i] = binary.LittleEndian.Uint64(buf)
	}

	f.m = m
	f.k = k
	f.bits = bits
	return nil
}

// Len reports the number of bits backing the filter, mostly for tests and
// diagnostics.
func (f *Filter) Len() uint64 {
	return f.m
}
