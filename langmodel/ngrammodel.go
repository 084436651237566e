package langmodel

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/tchap/go-patricia/v2/patricia"

	"contextspell/wordref"
)

// vocabEntry is the item stored at each patricia trie leaf.
type vocabEntry struct {
	id    int
	count uint64
}

// NgramModel is a small bigram-with-unigram-backoff language model. It is
// the pack's reference LanguageModel implementation: the vocabulary lives in
// a patricia trie (bastiangx-wordserve's pkg/suggest/trie.go pattern) rather
// than a plain map. GetWordToID walks the trie in prefix order but returns a
// Go map, so callers ranging over its result see Go's randomized map order.
type NgramModel struct {
	trie        *patricia.Trie
	words       []string // id -> word
	counts      []uint64 // id -> unigram count
	totalTokens uint64

	bigrams map[[2]int]uint64 // (leftID, rightID) -> count
	leftSum map[int]uint64    // leftID -> sum of bigram counts starting there

	alphabet []rune
	checksum uint64
}

// NewNgramModel returns an empty model. Call Train or Load before use.
func NewNgramModel() *NgramModel {
	return &NgramModel{
		trie:    patricia.NewTrie(),
		bigrams: make(map[[2]int]uint64),
		leftSum: make(map[int]uint64),
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// splitWords returns the maximal runs of word runes in s, in order.
func splitWords(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = nil
		}
	}
	for _, r := range s {
		if isWordRune(r) {
			cur = append(cur, r)
		} else {
			flush()
		}
	}
	flush()
	return out
}

func isSentenceBreak(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Tokenize splits text into sentences of word references pointing into a
// rune buffer private to this call.
func (m *NgramModel) Tokenize(text string) []wordref.Sentence {
	buf := []rune(text)
	var sentences []wordref.Sentence
	var cur []wordref.Word
	i := 0
	for i < len(buf) {
		r := buf[i]
		switch {
		case isWordRune(r):
			start := i
			for i < len(buf) && isWordRune(buf[i]) {
				i++
			}
			cur = append(cur, wordref.New(buf, start, i))
		case isSentenceBreak(r):
			i++
			if len(cur) > 0 {
				sentences = append(sentences, wordref.Sentence{Buffer: buf, Words: cur})
				cur = nil
			}
		default:
			i++
		}
	}
	if len(cur) > 0 {
		sentences = append(sentences, wordref.Sentence{Buffer: buf, Words: cur})
	}
	return sentences
}

func (m *NgramModel) lookup(word string) (int, bool) {
	item := m.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	e := item.(*vocabEntry)
	return e.id, true
}

// GetWord reports whether s is known, folding to the same lowercase form
// the vocabulary was trained on.
func (m *NgramModel) GetWord(s string) (wordref.Word, bool) {
	lw := strings.ToLower(s)
	if _, ok := m.lookup(lw); !ok {
		return wordref.Word{}, false
	}
	return wordref.FromString(lw), true
}

func (m *NgramModel) GetWordIDNoCreate(word string) (int, bool) {
	return m.lookup(strings.ToLower(word))
}

func (m *NgramModel) GetWordCount(id int) uint64 {
	if id < 0 || id >= len(m.counts) {
		return 0
	}
	return m.counts[id]
}

func (m *NgramModel) GetWordToID() map[string]int {
	out := make(map[string]int, len(m.words))
	m.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		e := item.(*vocabEntry)
		out[string(p)] = e.id
		return nil
	})
	return out
}

func (m *NgramModel) GetAlphabet() []rune {
	return m.alphabet
}

func (m *NgramModel) GetCheckSum() uint64 {
	return m.checksum
}

// Score returns the log-probability of fragment under a bigram model with
// unigram (add-one smoothed) backoff. The ranker relies on this being
// log-probability, never raw probability.
func (m *NgramModel) Score(fragment []wordref.Word) float64 {
	if len(fragment) == 0 || m.totalTokens == 0 {
		return math.Inf(-1)
	}
	vocabSize := uint64(len(m.words))
	if vocabSize == 0 {
		vocabSize = 1
	}

	unigramProb := func(id int, known bool) float64 {
		if !known {
			return 1.0 / float64(m.totalTokens+vocabSize)
		}
		return float64(m.counts[id]+1) / float64(m.totalTokens+vocabSize)
	}

	ids := make([]int, len(fragment))
	known := make([]bool, len(fragment))
	for i, w := range fragment {
		ids[i], known[i] = m.lookup(strings.ToLower(w.String()))
	}

	logProb := math.Log(unigramProb(ids[0], known[0]))
	for i := 1; i < len(fragment); i++ {
		if known[i-1] && known[i] {
			if sum, ok := m.leftSum[ids[i-1]]; ok && sum > 0 {
				bg := m.bigrams[[2]int{ids[i-1], ids[i]}]
				p := float64(bg+1) / float64(sum+vocabSize)
				logProb += math.Log(p)
				continue
			}
		}
		logProb += math.Log(unigramProb(ids[i], known[i]))
	}
	return logProb
}

// Train builds the vocabulary and bigram table from a corpus file (one
// sentence per line is typical but not required — sentence breaks are
// found the same way Tokenize finds them) and an alphabet file (a raw list
// of characters usable for substitution/insertion edits).
func (m *NgramModel) Train(textPath, alphabetPath string) bool {
	textFile, err := os.Open(textPath)
	if err != nil {
		return false
	}
	defer textFile.Close()

	alphaBytes, err := os.ReadFile(alphabetPath)
	if err != nil {
		return false
	}
	alphaSet := make(map[rune]bool)
	for _, r := range string(alphaBytes) {
		if !unicode.IsSpace(r) {
			alphaSet[r] = true
		}
	}

	trie := patricia.NewTrie()
	var words []string
	var counts []uint64
	bigrams := make(map[[2]int]uint64)
	leftSum := make(map[int]uint64)
	var total uint64

	idFor := func(w string) int {
		if id, ok := lookupTrie(trie, w); ok {
			return id
		}
		id := len(words)
		words = append(words, w)
		counts = append(counts, 0)
		trie.Insert(patricia.Prefix(w), &vocabEntry{id: id, count: 0})
		return id
	}

	scanner := bufio.NewScanner(textFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, sentence := range m.Tokenize(scanner.Text()) {
			var prev int
			havePrev := false
			for _, w := range sentence.Words {
				lw := strings.ToLower(w.String())
				id := idFor(lw)
				counts[id]++
				total++
				for _, r := range lw {
					alphaSet[r] = true
				}
				if havePrev {
					bigrams[[2]int{prev, id}]++
					leftSum[prev]++
				}
				prev = id
				havePrev = true
			}
		}
	}

	alphabet := make([]rune, 0, len(alphaSet))
	for r := range alphaSet {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	for id, w := range words {
		item := trie.Get(patricia.Prefix(w))
		item.(*vocabEntry).count = counts[id]
	}

	m.trie = trie
	m.words = words
	m.counts = counts
	m.totalTokens = total
	m.bigrams = bigrams
	m.leftSum = leftSum
	m.alphabet = alphabet
	m.checksum = computeChecksum(words, counts)
	return true
}

func lookupTrie(t *patricia.Trie, word string) (int, bool) {
	item := t.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(*vocabEntry).id, true
}

// computeChecksum hashes the vocabulary in a deterministic (sorted) order so
// two models trained from the same data always agree, independent of trie
// iteration order.
func computeChecksum(words []string, counts []uint64) uint64 {
	order := make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return words[order[i]] < words[order[j]] })

	var buf bytes.Buffer
	for _, id := range order {
		buf.WriteString(words[id])
		buf.WriteByte(0)
		var c [8]byte
		binary.LittleEndian.PutUint64(c[:], counts[id])
		buf.Write(c[:])
	}
	return xxhash.Sum64(buf.Bytes())
}

const dumpMagic uint64 = 0x4E47524D4D4F444C // "NGRMMODL"

// Dump persists the model in a simple length-prefixed binary format:
// magic, vocab size, per-word (len-prefixed string, count), bigram count,
// per-bigram (leftID, rightID, count), alphabet length, alphabet runes,
// total token count, checksum.
func (m *NgramModel) Dump(path string) bool {
	f, err := os.Create(path)
	if err != nil {
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeU64 := func(v uint64) { binary.Write(w, binary.LittleEndian, v) }

	writeU64(dumpMagic)
	writeU64(uint64(len(m.words)))
	for i, word := range m.words {
		b := []byte(word)
		writeU64(uint64(len(b)))
		w.Write(b)
		writeU64(m.counts[i])
	}
	writeU64(uint64(len(m.bigrams)))
	for k, v := range m.bigrams {
		writeU64(uint64(k[0]))
		writeU64(uint64(k[1]))
		writeU64(v)
	}
	writeU64(uint64(len(m.alphabet)))
	for _, r := range m.alphabet {
		writeU64(uint64(r))
	}
	writeU64(m.totalTokens)
	writeU64(m.checksum)
	return w.Flush() == nil
}

// Load reads a model previously written by Dump.
func (m *NgramModel) Load(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic uint64
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil || magic != dumpMagic {
		return false
	}

	readU64 := func() (uint64, error) {
		var v uint64
		err := binary.Read(r, binary.LittleEndian, &v)
		return v, err
	}

	vocabSize, err := readU64()
	if err != nil {
		return false
	}
	trie := patricia.NewTrie()
	words := make([]string, vocabSize)
	counts := make([]uint64, vocabSize)
	for i := uint64(0); i < vocabSize; i++ {
		strLen, err := readU64()
		if err != nil {
			return false
		}
		b := make([]byte, strLen)
		if _, err := io.ReadFull(r, b); err != nil {
			return false
		}
		count, err := readU64()
		if err != nil {
			return false
		}
		words[i] = string(b)
		counts[i] = count
		trie.Insert(patricia.Prefix(words[i]), &vocabEntry{id: int(i), count: count})
	}

	bigramCount, err := readU64()
	if err != nil {
		return false
	}
	bigrams := make(map[[2]int]uint64, bigramCount)
	leftSum := make(map[int]uint64)
	for i := uint64(0); i < bigramCount; i++ {
		left, err1 := readU64()
		right, err2 := readU64()
		count, err3 := readU64()
		if err1 != nil || err2 != nil || err3 != nil {
			return false
		}
		bigrams[[2]int{int(left), int(right)}] = count
		leftSum[int(left)] += count
	}

	alphaLen, err := readU64()
	if err != nil {
		return false
	}
	alphabet := make([]rune, alphaLen)
	for i := uint64(0); i < alphaLen; i++ {
		v, err := readU64()
		if err != nil {
			return false
		}
		alphabet[i] = rune(v)
	}

	total, err := readU64()
	if err != nil {
		return false
	}
	checksum, err := readU64()
	if err != nil {
		return false
	}

	m.trie = trie
	m.words = words
	m.counts = counts
	m.bigrams = bigrams
	m.leftSum = leftSum
	m.alphabet = alphabet
	m.totalTokens = total
	m.checksum = checksum
	return true
}
