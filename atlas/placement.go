package atlas

import (
	"image"

	"github.com/forestrie/go-texatlas/quadtree"
)

// Placement records where a single texture was put.
//
// X and Y are the top left pixel of the block in image coordinates (y down).
// The pixels are stored vertically flipped, see PlaceTexture and Region.
type Placement struct {
	Index    int    `cbor:"1,keyasint"`
	Position uint64 `cbor:"2,keyasint"`
	Level    uint8  `cbor:"3,keyasint"`
	Size     uint64 `cbor:"4,keyasint"`
	X        uint64 `cbor:"5,keyasint"`
	Y        uint64 `cbor:"6,keyasint"`
}

// Region returns the rectangle of atlas buffer rows and columns holding the
// texture, in the flipped, bottom left origin, layout of the buffer.
func (p Placement) Region(atlasSize uint64) image.Rectangle {
	top := atlasSize - p.Y - p.Size
	return image.Rect(int(p.X), int(top), int(p.X+p.Size), int(top+p.Size))
}

// BlockToPixels returns the top left pixel of block (x, y) on level.
func BlockToPixels(x, y uint64, level uint8, atlasSize uint64) (uint64, uint64) {
	edge := BlockEdge(level, atlasSize)
	return x * edge, y * edge
}

// PositionToPixels returns the top left pixel of the block for pos.
func PositionToPixels(pos uint64, atlasSize uint64) (uint64, uint64) {
	x, y := quadtree.PositionToBlock(pos)
	return BlockToPixels(x, y, quadtree.PositionLevel(pos), atlasSize)
}

// PlaceTexture copies a srcSize x srcSize block of interleaved pixels into dst
// at (px, py). The atlas uses a bottom left origin, so the block is mirrored
// vertically: source row 0 lands on atlas row atlasSize - py - srcSize and the
// following rows keep their order.
//
// The caller is responsible for the block lying inside the atlas and for both
// buffers having the stated channel count.
func PlaceTexture(
	dst []byte, atlasSize uint64,
	src []byte, srcSize uint64,
	px, py uint64, channels int) {

	c := uint64(channels)
	rowBytes := srcSize * c
	top := atlasSize - py - srcSize

	for i := uint64(0); i < srcSize; i++ {
		d := ((top+i)*atlasSize + px) * c
		s := i * rowBytes
		copy(dst[d:d+rowBytes], src[s:s+rowBytes])
	}
}
