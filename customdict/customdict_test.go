package customdict

import (
	"context"
	"testing"
)

func TestNilDictIsInertEmptySet(t *testing.T) {
	var d *Dict
	ctx := context.Background()

	if err := d.Add(ctx, "anything"); err != nil {
		t.Fatalf("Add on nil dict should be a no-op, got %v", err)
	}
	if err := d.Remove(ctx, "anything"); err != nil {
		t.Fatalf("Remove on nil dict should be a no-op, got %v", err)
	}
	ok, err := d.Contains(ctx, "anything")
	if err != nil || ok {
		t.Fatalf("Contains on nil dict should report (false, nil), got (%v, %v)", ok, err)
	}
	all, err := d.All(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("All on nil dict should report (empty, nil), got (%v, %v)", all, err)
	}
}

func TestNewDefaultsKey(t *testing.T) {
	d := New(nil, "")
	if d.key != "custom_dict" {
		t.Fatalf("expected default key %q, got %q", "custom_dict", d.key)
	}
}
