package quadtree

// RelativePositionToBlock decodes a relative position as a Morton code. Each
// base 4 digit, least significant first, contributes its low bit to x and its
// high bit to y, weighted by the digit's place.
func RelativePositionToBlock(rel uint64) (uint64, uint64) {
	var x, y uint64
	for k := uint(0); rel > 0; k++ {
		x |= (rel & 1) << k
		y |= ((rel >> 1) & 1) << k
		rel >>= 2
	}
	return x, y
}

// PositionToBlock returns the block coordinate of pos within the grid of its
// own level.
func PositionToBlock(pos uint64) (uint64, uint64) {
	return RelativePositionToBlock(RelativePosition(pos))
}

// BlockToRelativePosition is the inverse of RelativePositionToBlock: it
// interleaves the bits of x and y into a Morton code.
func BlockToRelativePosition(x, y uint64) uint64 {
	var rel uint64
	for k := uint(0); x > 0 || y > 0; k++ {
		rel |= (x&1)<<(2*k) | (y&1)<<(2*k+1)
		x >>= 1
		y >>= 1
	}
	return rel
}

// BlockToPosition returns the position of block (x, y) on level. The caller is
// responsible for x and y being less than LevelScale(level).
func BlockToPosition(x, y uint64, level uint8) uint64 {
	return LevelToOffset(level) + BlockToRelativePosition(x, y)
}
