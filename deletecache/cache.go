// Package deletecache builds and persists the two bloom filters that let
// candidate generation skip enumerating insertions against strings that
// could never match a vocabulary word.
package deletecache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"

	"contextspell/bloomfilter"
	"contextspell/langmodel"
	"contextspell/staging"
	"contextspell/utilities"
)

// cacheMagic and cacheVersion identify the on-disk cache format.
const (
	cacheMagic   uint64 = 0x34E3B8C2FD8F6F76
	cacheVersion uint16 = 1
)

const falsePositiveRate = 0.001

// maxSampleWords bounds how many vocabulary words are inspected to estimate
// the mean word length used for filter sizing.
const maxSampleWords = 3000

// Cache holds the two delete-dictionary bloom filters and the language
// model checksum they were built against.
type Cache struct {
	Deletes1 *bloomfilter.Filter
	Deletes2 *bloomfilter.Filter
	Checksum uint64

	logger *log.Logger
}

// New returns an empty cache. Build populates it from a language model;
// Load reads one previously persisted by Dump.
func New(logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Cache{logger: logger}
}

func meanWordLength(vocab map[string]int) float64 {
	if len(vocab) == 0 {
		return 1
	}
	n := 0
	total := 0
	for w := range vocab {
		total += len([]rune(w))
		n++
		if n >= maxSampleWords {
			break
		}
	}
	if n == 0 {
		return 1
	}
	return float64(total) / float64(n)
}

// deletes1 returns every string obtainable by deleting exactly one rune
// from w.
func deletes1(w string) []string {
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

// stageHashMask spreads staging.Stage bucket hashes across a wide range;
// the staging package only cares that the hash groups identical strings
// together, so any sufficiently wide mask works.
const stageHashMask = (^uint(0) >> 3) << 2

func stageHash(s string) int {
	return utilities.GetStringHash(s, stageHashMask)
}

// Build populates Deletes1 and Deletes2 from model's full vocabulary,
// sizing both filters from the vocabulary size and mean word length and
// logging (never aborting on) any per-word failure, mirroring the
// original's per-insert try/catch-and-continue population loop. Delete
// strings are accumulated into a staging.Stage per filter first (mirroring
// go-symspell's staged dictionary-load pattern) and committed to the bloom
// filters in one pass, rather than inserted one at a time as they're
// discovered.
func (c *Cache) Build(model langmodel.LanguageModel) {
	vocab := model.GetWordToID()
	avgLen := meanWordLength(vocab)

	vocabSize := uint64(len(vocab))
	if vocabSize == 0 {
		vocabSize = 1
	}

	d1size := uint64(float64(vocabSize) * avgLen)
	d2size := uint64(float64(vocabSize) * avgLen * (avgLen - 1))
	if d1size < 1000 {
		d1size = 1000
	}
	if d2size < 1000 {
		d2size = 1000
	}

	c.Deletes1 = bloomfilter.New(d1size, falsePositiveRate)
	c.Deletes2 = bloomfilter.New(d2size, falsePositiveRate)

	stage1 := staging.NewSuggestionStage[string](int(d1size))
	stage2 := staging.NewSuggestionStage[string](int(d2size))

	var failures int
	for word := range vocab {
		func() {
			defer func() {
				if r := recover(); r != nil {
					failures++
					c.logger.Warn("cache build: skipping word after failure", "word", word, "recovered", r)
				}
			}()
			for _, d1 := range deletes1(word) {
				stage1.Add(stageHash(d1), d1)
				for _, d2 := range deletes1(d1) {
					stage2.Add(stageHash(d2), d2)
				}
			}
		}()
	}

	stage1.Each(func(s string) { c.Deletes1.Insert(s) })
	stage2.Each(func(s string) { c.Deletes2.Insert(s) })

	if failures > 0 {
		c.logger.Warn("cache build completed with per-word failures", "count", failures)
	}
	c.Checksum = model.GetCheckSum()
}

// Dump writes the cache's binary layout: magic, version, checksum,
// Deletes1 dump, Deletes2 dump, trailing magic.
func (c *Cache) Dump(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("deletecache: create %s: %w", path, err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, cacheMagic); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, cacheVersion); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, c.Checksum); err != nil {
		return err
	}
	if err := c.Deletes1.Dump(f); err != nil {
		return fmt.Errorf("deletecache: dump deletes1: %w", err)
	}
	if err := c.Deletes2.Dump(f); err != nil {
		return fmt.Errorf("deletecache: dump deletes2: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, cacheMagic); err != nil {
		return err
	}
	return nil
}

// Load reads a cache previously written by Dump, memory-mapping the file
// so the bloom filters deserialize straight from the mapped region rather
// than a second heap copy. If magic, version, or checksum don't match
// wantChecksum, Load fails cleanly and the caller is expected to rebuild
// via Build + Dump.
func (c *Cache) Load(path string, wantChecksum uint64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("deletecache: open %s: %w", path, err)
	}
	defer f.Close()

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("deletecache: mmap %s: %w", path, err)
	}
	defer region.Unmap()

	r := &byteReader{data: region}

	magic, err := r.readU64()
	if err != nil || magic != cacheMagic {
		return errors.New("deletecache: bad magic (header)")
	}
	version, err := r.readU16()
	if err != nil || version != cacheVersion {
		return errors.New("deletecache: unsupported version")
	}
	checksum, err := r.readU64()
	if err != nil {
		return errors.New("deletecache: short read on checksum")
	}
	if checksum != wantChecksum {
		return errors.New("deletecache: checksum mismatch, cache is stale")
	}

	deletes1 := &bloomfilter.Filter{}
	if err := deletes1.Load(r); err != nil {
		return fmt.Errorf("deletecache: load deletes1: %w", err)
	}
	deletes2 := &bloomfilter.Filter{}
	if err := deletes2.Load(r); err != nil {
		return fmt.Errorf("deletecache: load deletes2: %w", err)
	}

	trailer, err := r.readU64()
	if err != nil || trailer != cacheMagic {
		return errors.New("deletecache: bad magic (trailer)")
	}

	c.Deletes1 = deletes1
	c.Deletes2 = deletes2
	c.Checksum = checksum
	return nil
}

// byteReader is a minimal io.Reader over an mmap'd byte slice, letting
// bloomfilter.Filter.Load consume the mapped region without copying it
// into a bytes.Reader first.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func (r *byteReader) readU64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *byteReader) readU16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}
