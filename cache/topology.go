package cache

import (
	"errors"
	"fmt"
)

// FullyAssociative is the associativity sentinel for a single-set cache
// where every block shares one set.
const FullyAssociative = -1

// ErrInvalidConfiguration reports cache parameters that cannot form a valid
// topology.
var ErrInvalidConfiguration = errors.New("invalid cache configuration")

// DeriveTopology computes the number of sets and the number of ways per set
// for the requested configuration.
//
// associativity is 1 for a direct-mapped cache, FullyAssociative for a
// fully associative cache, or N for an N-way set-associative cache. Block
// size and the resulting set count must be powers of two so that address
// decomposition partitions cleanly into tag, index, and offset fields.
func DeriveTopology(totalSize, blockSize, associativity int) (numSets, ways int, err error) {
	switch {
	case totalSize <= 0 || blockSize <= 0:
		return 0, 0, fmt.Errorf(
			"%w: cache and block sizes must be positive", ErrInvalidConfiguration)
	case blockSize&(blockSize-1) != 0:
		return 0, 0, fmt.Errorf(
			"%w: block size must be a power of two", ErrInvalidConfiguration)
	case totalSize%blockSize != 0:
		return 0, 0, fmt.Errorf(
			"%w: cache size must be divisible by block size", ErrInvalidConfiguration)
	}

	totalBlocks := totalSize / blockSize

	switch {
	case associativity == FullyAssociative:
		numSets, ways = 1, totalBlocks
	case associativity == 1:
		numSets, ways = totalBlocks, 1
	case associativity <= 0:
		return 0, 0, fmt.Errorf(
			"%w: associativity must be positive or %d for fully associative",
			ErrInvalidConfiguration, FullyAssociative)
	case totalBlocks%associativity != 0:
		return 0, 0, fmt.Errorf(
			"%w: number of blocks must be divisible by associativity",
			ErrInvalidConfiguration)
	default:
		numSets, ways = totalBlocks/associativity, associativity
	}

	if numSets > 1 && numSets&(numSets-1) != 0 {
		return 0, 0, fmt.Errorf(
			"%w: number of sets (%d) must be a power of two",
			ErrInvalidConfiguration, numSets)
	}

	return numSets, ways, nil
}
