package atlas

import (
	"fmt"
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

// Texture is a decoded, square source image.
type Texture interface {
	// Size is the edge length in pixels.
	Size() uint64
	// Pix returns tightly packed rows in the requested format. Row 0 is the
	// top of the image.
	Pix(f Format) []byte
}

// RawTexture is an in memory texture in either RGB or RGBA layout.
type RawTexture struct {
	Edge   uint64
	Format Format
	Data   []byte
}

func NewRawTexture(edge uint64, f Format, data []byte) (*RawTexture, error) {
	if !f.Valid() {
		return nil, ErrBadFormat
	}
	if uint64(len(data)) != edge*edge*uint64(f.Channels()) {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d %s", ErrBadPixLength, len(data), edge, edge, f)
	}
	return &RawTexture{Edge: edge, Format: f, Data: data}, nil
}

func (t *RawTexture) Size() uint64 { return t.Edge }

func (t *RawTexture) Pix(f Format) []byte {
	if f == t.Format {
		return t.Data
	}
	return convertPix(t.Data, t.Format, f)
}

func convertPix(src []byte, from, to Format) []byte {
	fc, tc := from.Channels(), to.Channels()
	n := len(src) / fc
	dst := make([]byte, n*tc)
	for i := 0; i < n; i++ {
		s := src[i*fc : i*fc+fc]
		d := dst[i*tc : i*tc+tc]
		copy(d[:3], s[:3])
		if tc == 4 {
			d[3] = 0xff
		}
	}
	return dst
}

// ImageTexture adapts a decoded image.Image. The image is converted once, to
// non premultiplied RGBA, when the texture is created.
type ImageTexture struct {
	edge uint64
	rgba *image.NRGBA
}

func NewImageTexture(img image.Image) (*ImageTexture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &ImageTexture{edge: uint64(b.Dx()), rgba: rgba}, nil
}

func (t *ImageTexture) Size() uint64 { return t.edge }

func (t *ImageTexture) Pix(f Format) []byte {
	if f == FormatRGBA {
		return t.rgba.Pix
	}
	return convertPix(t.rgba.Pix, FormatRGBA, f)
}

// ResizeToPow2 scales img down to the largest square power of two that fits
// inside it. Images that already qualify are returned unchanged.
func ResizeToPow2(img image.Image) image.Image {
	b := img.Bounds()
	edge := min(b.Dx(), b.Dy())
	if edge <= 0 {
		return img
	}
	edge = 1 << (bits.Len(uint(edge)) - 1)
	if b.Dx() == edge && b.Dy() == edge {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// HasAlpha reports whether any pixel of t is not fully opaque.
func HasAlpha(t Texture) bool {
	pix := t.Pix(FormatRGBA)
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			return true
		}
	}
	return false
}

// SplitByAlpha partitions texture indices into those that can go in an RGB
// atlas and those that need an RGBA atlas.
func SplitByAlpha(textures []Texture) (opaque []int, transparent []int) {
	for i, t := range textures {
		if HasAlpha(t) {
			transparent = append(transparent, i)
			continue
		}
		opaque = append(opaque, i)
	}
	return opaque, transparent
}
