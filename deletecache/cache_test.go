package deletecache

import (
	"os"
	"path/filepath"
	"testing"

	"contextspell/langmodel"
)

func trainTinyModel(t *testing.T) *langmodel.NgramModel {
	t.Helper()
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(corpus, []byte("the quick brown fox jumps over the lazy dog.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	alphabet := filepath.Join(dir, "alphabet.txt")
	if err := os.WriteFile(alphabet, []byte("abcdefghijklmnopqrstuvwxyz"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := langmodel.NewNgramModel()
	if !m.Train(corpus, alphabet) {
		t.Fatalf("Train returned false")
	}
	return m
}

func TestBuildPopulatesDeletes1(t *testing.T) {
	m := trainTinyModel(t)
	c := New(nil)
	c.Build(m)

	// "fox" with the 'o' deleted is "fx" — must be present.
	if !c.Deletes1.Contains("fx") {
		t.Fatalf("expected Deletes1 to contain a 1-deletion of a vocabulary word")
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	m := trainTinyModel(t)
	c := New(nil)
	c.Build(m)

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.bin")
	if err := c.Dump(path); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	c2 := New(nil)
	if err := c2.Load(path, m.GetCheckSum()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !c2.Deletes1.Contains("fx") {
		t.Fatalf("round-tripped cache lost a known delete")
	}
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	m := trainTinyModel(t)
	c := New(nil)
	c.Build(m)

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.bin")
	if err := c.Dump(path); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	c2 := New(nil)
	if err := c2.Load(path, m.GetCheckSum()+1); err == nil {
		t.Fatalf("expected checksum mismatch to fail Load")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.bin")
	if err := os.WriteFile(path, []byte("not a cache file at all, way too short"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(nil)
	if err := c.Load(path, 0); err == nil {
		t.Fatalf("expected malformed file to fail Load")
	}
}
