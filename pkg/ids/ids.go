package ids

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	PrefixOrder       = "order"
	PrefixMenuItem    = "item"
	PrefixUser        = "user"
	PrefixTransaction = "txn"
)

// Generator mints identifiers for domain records.
type Generator interface {
	New(prefix string) string
}

// UUIDGenerator produces `<prefix>-<uuid>` identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) New(prefix string) string {
	return join(prefix, uuid.NewString())
}

// SequenceGenerator produces deterministic `<prefix>-<n>` identifiers for tests and fixtures.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

func NewSequence() *SequenceGenerator {
	return &SequenceGenerator{next: map[string]int{}}
}

func (g *SequenceGenerator) New(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return join(prefix, fmt.Sprintf("%d", g.next[prefix]))
}

// Short strips the prefix so receipts can quote the bare identifier.
func Short(id string) string {
	if idx := strings.Index(id, "-"); idx >= 0 && idx < len(id)-1 {
		return id[idx+1:]
	}
	return id
}

func join(prefix, value string) string {
	if prefix == "" {
		return value
	}
	return prefix + "-" + value
}
