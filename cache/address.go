package cache

import "math/bits"

// Decompose splits a memory address into its tag, set index, and block
// offset fields. It is a pure bit partition: any address is legal and high
// bits simply become part of the tag.
//
// blockSize must be a power of two and numSets a power of two or 1;
// DeriveTopology guarantees both for every constructed cache.
func Decompose(address uint64, blockSize, numSets int) (tag uint64, index int, offset uint64) {
	offsetBits := bits.TrailingZeros64(uint64(blockSize))

	indexBits := 0
	if numSets > 1 {
		indexBits = bits.TrailingZeros64(uint64(numSets))
	}

	offset = address & (1<<offsetBits - 1)
	if indexBits > 0 {
		index = int(address >> offsetBits & (1<<indexBits - 1))
	}
	tag = address >> (offsetBits + indexBits)

	return tag, index, offset
}
