package atlas

import (
	"fmt"
	"image"

	"github.com/forestrie/go-texatlas/quadtree"
)

// Atlas is the result of a packing run. It is not modified once
// TexturesToAtlas returns.
type Atlas struct {
	// Pix is Size x Size pixels of Format, bottom left origin.
	Pix      []byte
	Size     uint64
	Format   Format
	MaxLevel uint8

	// Map holds, for each input index, the tree position it was placed at. The
	// entry is 0 for skipped inputs as well as for an input placed at the
	// root; Skipped disambiguates.
	Map []uint64

	// Placements lists the placed inputs in placement order.
	Placements []Placement

	Skipped []int
}

// TexturesToAtlas packs textures, in the order given, into a single atlas of
// atlasSize x atlasSize pixels.
//
// Each texture is given the first free block, in Morton order, on the level
// matching its size. Textures that are larger than the atlas, or for which no
// block is free, are skipped and packing continues with the next texture. The
// skipped indices are returned, or nil if every texture was placed.
//
// atlasSize must be a power of two. Texture sizes must be powers of two unless
// WithValidation is set, in which case offending textures are skipped.
func TexturesToAtlas(
	textures []Texture, atlasSize uint64, wantAlpha bool, maxLevel uint8,
	opts ...Option) (*Atlas, []int) {

	options := NewPackOptions(opts...)
	log := options.log

	format := FormatFor(wantAlpha)
	channels := format.Channels()

	a := &Atlas{
		Pix:      make([]byte, atlasSize*atlasSize*uint64(channels)),
		Size:     atlasSize,
		Format:   format,
		MaxLevel: maxLevel,
		Map:      make([]uint64, len(textures)),
	}
	occupied := make([]bool, quadtree.FullLevelSpace(maxLevel))

	skip := func(i int, reason error) {
		a.Skipped = append(a.Skipped, i)
		if options.skipReasons != nil {
			options.skipReasons[i] = reason
		}
		log.Infof("texture %d skipped: %v", i, reason)
	}

	for i, tx := range textures {
		size := tx.Size()
		if size > atlasSize {
			skip(i, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, atlasSize))
			continue
		}

		var level uint8
		if options.validate {
			var ok bool
			if level, ok = TextureLevel(size, atlasSize); !ok {
				skip(i, fmt.Errorf("%w: %d", ErrNotPow2, size))
				continue
			}
		} else {
			if size == 0 || BlockEdge(TextureLevelUnchecked(size, atlasSize), atlasSize) < size {
				// a non power of two edge would spill out of its block
				skip(i, fmt.Errorf("%w: %d", ErrNotPow2, size))
				continue
			}
			level = TextureLevelUnchecked(size, atlasSize)
		}

		pix := tx.Pix(format)
		if uint64(len(pix)) != size*size*uint64(channels) {
			skip(i, fmt.Errorf("%w: %d bytes for %dx%d %s", ErrBadPixLength, len(pix), size, size, format))
			continue
		}

		pos, ok := quadtree.FirstFreePosition(level, occupied, maxLevel)
		if !ok {
			skip(i, fmt.Errorf("%w: level %d", ErrAtlasFull, level))
			continue
		}
		quadtree.Occupy(pos, occupied, maxLevel)

		// the allocated node can be coarser than level when the texture is
		// smaller than the finest configured granularity
		posLevel := quadtree.PositionLevel(pos)
		x, y := quadtree.PositionToBlock(pos)
		px, py := BlockToPixels(x, y, posLevel, atlasSize)

		PlaceTexture(a.Pix, atlasSize, pix, size, px, py, channels)

		a.Map[i] = pos
		a.Placements = append(a.Placements, Placement{
			Index: i, Position: pos, Level: posLevel, Size: size, X: px, Y: py,
		})
		log.Debugf("texture %d: size=%d level=%d pos=%d block=(%d,%d) px=(%d,%d)",
			i, size, posLevel, pos, x, y, px, py)
	}

	if len(a.Skipped) == 0 {
		return a, nil
	}
	return a, a.Skipped
}

// Placed returns the placement for input index i.
func (a *Atlas) Placed(i int) (Placement, bool) {
	for _, p := range a.Placements {
		if p.Index == i {
			return p, true
		}
	}
	return Placement{}, false
}

// UVs remaps uvs, local to texture i, into atlas space.
func (a *Atlas) UVs(i int, uvs []float32) ([]float32, error) {
	p, ok := a.Placed(i)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotPlaced, i)
	}
	return AdjustUVsSized(uvs, p.Position, p.Size, a.Size), nil
}

// Image returns the atlas buffer as an image, for encoding. The rows are in
// buffer order, so the image is upside down relative to the sources.
func (a *Atlas) Image() *image.NRGBA {
	n := int(a.Size)
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	if a.Format == FormatRGBA {
		copy(img.Pix, a.Pix)
		return img
	}
	copy(img.Pix, convertPix(a.Pix, a.Format, FormatRGBA))
	return img
}
