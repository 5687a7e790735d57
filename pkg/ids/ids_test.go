package ids

import (
	"strings"
	"testing"
)

func TestUUIDGeneratorPrefixesValue(t *testing.T) {
	id := UUIDGenerator{}.New(PrefixOrder)
	if !strings.HasPrefix(id, "order-") {
		t.Fatalf("expected order prefix, got %q", id)
	}
	if other := (UUIDGenerator{}).New(PrefixOrder); other == id {
		t.Fatalf("expected unique ids")
	}
}

func TestSequenceGeneratorCountsPerPrefix(t *testing.T) {
	gen := NewSequence()
	if got := gen.New(PrefixOrder); got != "order-1" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := gen.New(PrefixOrder); got != "order-2" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := gen.New(PrefixTransaction); got != "txn-1" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestShort(t *testing.T) {
	if got := Short("order-1700000000000"); got != "1700000000000" {
		t.Fatalf("unexpected short id %q", got)
	}
	if got := Short("plain"); got != "plain" {
		t.Fatalf("unexpected short id %q", got)
	}
}
