// Package cache implements a functional model of a set-associative cache:
// address decomposition, set lookup, block allocation, victim selection,
// and statistics accounting.
//
// The model reports hit/miss outcomes and evictions only. It does not model
// timing, coherence, or write-back traffic, and block payloads are
// simulated storage rather than real memory content.
package cache

// A Block is one cache line slot.
type Block struct {
	// Tag identifies the upper address bits of the resident line.
	Tag uint64
	// Valid is false while the slot is empty.
	Valid bool
	// Dirty is set on any write to the resident line.
	Dirty bool
	// Data is the simulated block payload. It is nil while the slot is
	// empty and a zero-filled buffer of block-size length once loaded.
	Data []byte
}

// snapshot returns a copy of the block with its own data buffer, so the
// copy stays stable after the original slot is overwritten.
func (b *Block) snapshot() *Block {
	s := *b
	if b.Data != nil {
		s.Data = make([]byte, len(b.Data))
		copy(s.Data, b.Data)
	}
	return &s
}
