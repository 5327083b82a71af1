package cache

import (
	"encoding/hex"
	"fmt"

	"github.com/sarchlab/cachesim/cache/policy"
)

// A Cache is the full simulated cache: an array of sets derived from the
// requested configuration, plus aggregate statistics.
//
// A Cache is not safe for concurrent use. One access completes fully before
// the next begins; embedders that serve multiple callers must serialize
// Access, Contents, and Stats externally.
type Cache struct {
	blockSize int
	numSets   int
	ways      int
	sets      []*Set
	stats     Statistics
}

// New builds a cache from the given configuration. The topology is
// validated first; no cache is produced on failure.
func New(totalSize, blockSize, associativity int, kind policy.Kind) (*Cache, error) {
	numSets, ways, err := DeriveTopology(totalSize, blockSize, associativity)
	if err != nil {
		return nil, err
	}

	sets := make([]*Set, numSets)
	for i := range sets {
		pol, err := policy.New(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		sets[i] = newSet(ways, blockSize, pol)
	}

	return &Cache{
		blockSize: blockSize,
		numSets:   numSets,
		ways:      ways,
		sets:      sets,
	}, nil
}

// NumSets returns the number of sets in the cache.
func (c *Cache) NumSets() int { return c.numSets }

// Ways returns the number of ways per set.
func (c *Cache) Ways() int { return c.ways }

// BlockSize returns the block size in bytes.
func (c *Cache) BlockSize() int { return c.blockSize }

// Access simulates one memory access. It decomposes the address, delegates
// to the indexed set, marks the accessed block dirty on writes (on both
// hits and fills), and records exactly one statistics event.
//
// The returned error is only ever one of the internal invariant violations
// and indicates a defect in the model, not bad input. No statistics are
// recorded when it occurs.
func (c *Cache) Access(address uint64, isWrite bool) (hit bool, evicted *Block, err error) {
	tag, index, _ := Decompose(address, c.blockSize, c.numSets)

	hit, block, evicted, err := c.sets[index].Access(tag)
	if err != nil {
		return false, nil, err
	}

	if isWrite && block != nil {
		block.Dirty = true
	}

	c.stats.RecordAccess(hit, evicted != nil)

	return hit, evicted, nil
}

// Stats returns a copy of the current statistics counters.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// BlockInfo is the displayable form of one block slot.
type BlockInfo struct {
	Tag   uint64 `json:"tag"`
	Valid bool   `json:"valid"`
	Dirty bool   `json:"dirty"`
	// Data holds the block payload as a hex string, or nil while the
	// slot is empty.
	Data *string `json:"data"`
}

// SetContents lists one set's blocks in fixed slot order.
type SetContents struct {
	Index  int         `json:"index"`
	Blocks []BlockInfo `json:"blocks"`
}

// Topology is the resolved shape of the cache.
type Topology struct {
	NumSets    int `json:"numSets"`
	WaysPerSet int `json:"waysPerSet"`
	BlockSize  int `json:"blockSize"`
}

// Contents is a full structured snapshot of the cache state.
type Contents struct {
	Sets   []SetContents `json:"sets"`
	Stats  StatsSnapshot `json:"stats"`
	Config Topology      `json:"config"`
}

// BlockInfoOf converts an evicted-block snapshot into its displayable form.
func BlockInfoOf(b *Block) BlockInfo {
	info := BlockInfo{
		Tag:   b.Tag,
		Valid: b.Valid,
		Dirty: b.Dirty,
	}
	if b.Data != nil {
		h := hex.EncodeToString(b.Data)
		info.Data = &h
	}
	return info
}

// Contents returns a structured snapshot of every set, every block, the
// current statistics, and the resolved topology. It is read-only: calling
// it twice with no intervening access yields identical results.
func (c *Cache) Contents() Contents {
	contents := Contents{
		Sets:  make([]SetContents, 0, c.numSets),
		Stats: c.stats.Snapshot(),
		Config: Topology{
			NumSets:    c.numSets,
			WaysPerSet: c.ways,
			BlockSize:  c.blockSize,
		},
	}

	for i, set := range c.sets {
		sc := SetContents{
			Index:  i,
			Blocks: make([]BlockInfo, 0, len(set.blocks)),
		}
		for j := range set.blocks {
			sc.Blocks = append(sc.Blocks, BlockInfoOf(&set.blocks[j]))
		}
		contents.Sets = append(contents.Sets, sc)
	}

	return contents
}
