package atlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/forestrie/go-texatlas/atlastesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawTexture(t *testing.T) {
	type args struct {
		edge uint64
		f    Format
		data []byte
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{"rgb", args{2, FormatRGB, make([]byte, 12)}, nil},
		{"rgba", args{2, FormatRGBA, make([]byte, 16)}, nil},
		{"short", args{2, FormatRGB, make([]byte, 11)}, ErrBadPixLength},
		{"rgb data claimed rgba", args{2, FormatRGBA, make([]byte, 12)}, ErrBadPixLength},
		{"undefined format", args{2, FormatUndefined, nil}, ErrBadFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewRawTexture(tt.args.edge, tt.args.f, tt.args.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.args.edge, tx.Size())
		})
	}
}

func TestRawTextureConversion(t *testing.T) {
	rgb, err := NewRawTexture(1, FormatRGB, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, rgb.Pix(FormatRGB))
	assert.Equal(t, []byte{1, 2, 3, 0xff}, rgb.Pix(FormatRGBA))

	rgba, err := NewRawTexture(1, FormatRGBA, []byte{4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6}, rgba.Pix(FormatRGB))
}

func TestNewImageTexture(t *testing.T) {
	_, err := NewImageTexture(image.NewNRGBA(image.Rect(0, 0, 4, 2)))
	assert.ErrorIs(t, err, ErrNotSquare)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{R: 40, G: 50, B: 60, A: 0xff})
	tx, err := NewImageTexture(img)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tx.Size())

	pix := tx.Pix(FormatRGB)
	require.Len(t, pix, 12)
	assert.Equal(t, []byte{10, 20, 30}, pix[0:3])
	assert.Equal(t, []byte{40, 50, 60}, pix[9:12])
	// the pixels left unset are transparent
	assert.True(t, HasAlpha(tx))
}

func TestResizeToPow2(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		wantEdge int
	}{
		{"already pow2", 64, 64, 64},
		{"wide", 100, 70, 64},
		{"tall", 20, 33, 16},
		{"one pixel", 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := ResizeToPow2(src)
			assert.Equal(t, tt.wantEdge, got.Bounds().Dx())
			assert.Equal(t, tt.wantEdge, got.Bounds().Dy())
			if tt.w == tt.wantEdge && tt.h == tt.wantEdge {
				assert.Same(t, src, got)
			}
		})
	}
}

func TestSplitByAlpha(t *testing.T) {
	opaque, err := NewRawTexture(2, FormatRGBA, atlastesting.SolidPix(2, 4, 0xff))
	require.NoError(t, err)
	pix := atlastesting.SolidPix(2, 4, 0xff)
	pix[7] = 0
	see, err := NewRawTexture(2, FormatRGBA, pix)
	require.NoError(t, err)
	rgb, err := NewRawTexture(2, FormatRGB, atlastesting.SolidPix(2, 3, 1))
	require.NoError(t, err)

	o, tr := SplitByAlpha([]Texture{opaque, see, rgb})
	assert.Equal(t, []int{0, 2}, o)
	assert.Equal(t, []int{1}, tr)
}
