// Package policy provides replacement policies for cache sets.
//
// A policy instance is scoped to a single set: it tracks the ordering of the
// tags resident in that set and names the next eviction victim. The tags a
// policy tracks must always be exactly the tags of the set's valid blocks;
// the set is responsible for keeping the two in sync.
package policy

import (
	"fmt"
	"strings"
)

// Kind selects a replacement policy variant.
type Kind string

const (
	// LRU evicts the least recently used tag.
	LRU Kind = "LRU"
	// FIFO evicts the earliest added tag, regardless of later accesses.
	FIFO Kind = "FIFO"
)

// ParseKind converts a policy name into a Kind. Matching is
// case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LRU):
		return LRU, nil
	case string(FIFO):
		return FIFO, nil
	default:
		return "", fmt.Errorf("unknown replacement policy: %q", s)
	}
}

// A Policy tracks resident tags within one cache set and decides which tag
// to evict when the set is full.
type Policy interface {
	// Access records a hit on an already-resident tag.
	Access(tag uint64)

	// Add records that tag has just been loaded into the set. The tag
	// must not be tracked yet; callers confirm absence first.
	Add(tag uint64)

	// Remove stops tracking tag. Removing an untracked tag is a no-op.
	Remove(tag uint64)

	// Victim names the tag that should be evicted next without removing
	// it. ok is false when no tags are tracked.
	Victim() (tag uint64, ok bool)
}

// New creates a policy instance of the given kind.
func New(kind Kind) (Policy, error) {
	switch kind {
	case LRU:
		return &lru{newTagOrder()}, nil
	case FIFO:
		return &fifo{newTagOrder()}, nil
	default:
		return nil, fmt.Errorf("unknown replacement policy: %q", kind)
	}
}
