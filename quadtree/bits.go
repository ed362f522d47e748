package quadtree

import "math/bits"

// Log2Uint64 efficiently computes log base 2 of num
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}

// IsPow2 determines if size is a perfect power of 2.
func IsPow2(size uint64) bool {
	return size != 0 && size&(size-1) == 0
}

// LevelScale returns the number of blocks along one edge at level, 2^level.
func LevelScale(level uint8) uint64 {
	return uint64(1) << level
}
