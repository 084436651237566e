// Package staging buffers a bulk insertion batch before it is committed to
// its destination, matching go-symspell's staged-dictionary-load pattern
// (CreateEntry's Stage argument) adapted here for bulk bloom-filter
// population instead of dictionary construction: deletecache.Build stages
// every delete-dictionary string generated for a vocabulary word before
// inserting the batch into Deletes1/Deletes2.
package staging

type node[T any] struct {
	value T
	next  int
}

// Stage accumulates values keyed by an arbitrary caller-supplied hash,
// preserving insertion order within each bucket.
type Stage[T any] struct {
	buckets map[int]int // hash -> index of most recently staged node for that hash
	nodes   []node[T]
}

// NewSuggestionStage returns an empty stage sized for initialCapacity
// values.
func NewSuggestionStage[T any](initialCapacity int) *Stage[T] {
	return &Stage[T]{
		buckets: make(map[int]int, initialCapacity),
		nodes:   make([]node[T], 0, initialCapacity),
	}
}

// NodeCount reports how many values have been staged.
func (s *Stage[T]) NodeCount() int {
	return len(s.nodes)
}

// BucketCount reports how many distinct hash buckets are in use.
func (s *Stage[T]) BucketCount() int {
	return len(s.buckets)
}

// Clear discards every staged value.
func (s *Stage[T]) Clear() {
	s.buckets = make(map[int]int)
	s.nodes = s.nodes[:0]
}

// Add stages value under hash, chaining it behind any prior value staged
// under the same hash.
func (s *Stage[T]) Add(hash int, value T) {
	prev, ok := s.buckets[hash]
	if !ok {
		prev = -1
	}
	s.buckets[hash] = len(s.nodes)
	s.nodes = append(s.nodes, node[T]{value: value, next: prev})
}

// Each visits every staged value in insertion order, deduplication-free —
// the shape a bloom filter population pass needs, since re-inserting the
// same string twice is harmless.
func (s *Stage[T]) Each(fn func(T)) {
	for _, n := range s.nodes {
		fn(n.value)
	}
}
