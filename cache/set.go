package cache

import (
	"errors"

	"github.com/sarchlab/cachesim/cache/policy"
)

// Internal invariant violations. They signal that a set's valid blocks and
// its policy bookkeeping have desynchronized, which must never happen.
// Callers should treat them as defects, not as input errors.
var (
	// ErrVictimNotFound reports that the policy named no victim while
	// the set was full.
	ErrVictimNotFound = errors.New("cache: no victim found but set is full")

	// ErrVictimTagNotResident reports that the policy named a victim tag
	// that no valid block holds.
	ErrVictimTagNotResident = errors.New("cache: victim tag not resident in set")
)

// A Set is one associative set of fixed capacity. It owns its blocks and
// one replacement policy instance.
type Set struct {
	blocks    []Block
	policy    policy.Policy
	blockSize int
}

func newSet(ways, blockSize int, pol policy.Policy) *Set {
	return &Set{
		blocks:    make([]Block, ways),
		policy:    pol,
		blockSize: blockSize,
	}
}

// Access looks tag up in the set, loading it on a miss. It returns whether
// the access hit, the resident block after the access, and a snapshot of
// the evicted block when the load displaced one.
func (s *Set) Access(tag uint64) (hit bool, block, evicted *Block, err error) {
	for i := range s.blocks {
		b := &s.blocks[i]
		if b.Valid && b.Tag == tag {
			s.policy.Access(tag)
			return true, b, nil, nil
		}
	}

	// Miss. Prefer an empty slot over an eviction.
	target := -1
	for i := range s.blocks {
		if !s.blocks[i].Valid {
			target = i
			break
		}
	}

	if target < 0 {
		victimTag, ok := s.policy.Victim()
		if !ok {
			return false, nil, nil, ErrVictimNotFound
		}

		for i := range s.blocks {
			b := &s.blocks[i]
			if b.Valid && b.Tag == victimTag {
				target = i
				evicted = b.snapshot()
				s.policy.Remove(victimTag)
				break
			}
		}

		if target < 0 {
			return false, nil, nil, ErrVictimTagNotResident
		}
	}

	b := &s.blocks[target]
	b.Tag = tag
	b.Valid = true
	b.Dirty = false
	b.Data = make([]byte, s.blockSize)
	s.policy.Add(tag)

	return false, b, evicted, nil
}
