package staging

import "testing"

func TestStageEachVisitsInInsertionOrder(t *testing.T) {
	s := NewSuggestionStage[string](4)
	s.Add(1, "a")
	s.Add(2, "b")
	s.Add(1, "c")

	var got []string
	s.Each(func(v string) { got = append(got, v) })

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStageCounts(t *testing.T) {
	s := NewSuggestionStage[string](4)
	if s.NodeCount() != 0 || s.BucketCount() != 0 {
		t.Fatalf("expected empty stage to have zero counts")
	}
	s.Add(5, "x")
	s.Add(5, "y")
	s.Add(6, "z")
	if s.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", s.NodeCount())
	}
	if s.BucketCount() != 2 {
		t.Fatalf("expected 2 buckets, got %d", s.BucketCount())
	}
}

func TestStageClear(t *testing.T) {
	s := NewSuggestionStage[string](4)
	s.Add(1, "a")
	s.Clear()
	if s.NodeCount() != 0 || s.BucketCount() != 0 {
		t.Fatalf("expected Clear to empty the stage")
	}
}
