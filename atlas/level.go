package atlas

import "github.com/forestrie/go-texatlas/quadtree"

// TextureLevelUnchecked returns the quadtree level whose blocks have an edge of
// size pixels. Both size and atlasSize must be powers of two and size must not
// exceed atlasSize, this is not checked.
func TextureLevelUnchecked(size, atlasSize uint64) uint8 {
	return uint8(quadtree.Log2Uint64(atlasSize) - quadtree.Log2Uint64(size))
}

// TextureLevel is the validating form of TextureLevelUnchecked. It returns
// false if size exceeds atlasSize or if either is not a power of two.
func TextureLevel(size, atlasSize uint64) (uint8, bool) {
	if size > atlasSize || !quadtree.IsPow2(size) || !quadtree.IsPow2(atlasSize) {
		return 0, false
	}
	return TextureLevelUnchecked(size, atlasSize), true
}

// BlockEdge returns the edge length, in pixels, of a block on level.
func BlockEdge(level uint8, atlasSize uint64) uint64 {
	return atlasSize / quadtree.LevelScale(level)
}
