package atlas

import (
	"image"
	"testing"

	"github.com/forestrie/go-texatlas/atlastesting"
	"github.com/forestrie/go-texatlas/quadtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockToPixels(t *testing.T) {
	type args struct {
		x, y      uint64
		level     uint8
		atlasSize uint64
	}
	tests := []struct {
		name   string
		args   args
		wantPx uint64
		wantPy uint64
	}{
		{"root", args{0, 0, 0, 128}, 0, 0},
		{"level 1 right", args{1, 0, 1, 128}, 64, 0},
		{"level 1 bottom", args{0, 1, 1, 128}, 0, 64},
		{"level 3", args{5, 2, 3, 128}, 80, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py := BlockToPixels(tt.args.x, tt.args.y, tt.args.level, tt.args.atlasSize)
			assert.Equal(t, tt.wantPx, px)
			assert.Equal(t, tt.wantPy, py)
		})
	}
}

func TestPositionToPixelsContained(t *testing.T) {
	atlasSize := uint64(64)
	maxLevel := uint8(4)
	for pos := uint64(0); pos < quadtree.FullLevelSpace(maxLevel); pos++ {
		px, py := PositionToPixels(pos, atlasSize)
		edge := BlockEdge(quadtree.PositionLevel(pos), atlasSize)
		require.LessOrEqual(t, px+edge, atlasSize)
		require.LessOrEqual(t, py+edge, atlasSize)
	}
}

func TestPlaceTexture(t *testing.T) {
	// 4x4 single channel atlas, 2x2 source whose rows hold their index
	dst := make([]byte, 16)
	src := atlastesting.RowPix(2, 1)
	require.Equal(t, []byte{0, 0, 1, 1}, src)

	PlaceTexture(dst, 4, src, 2, 2, 0, 1)

	// top = 4 - 0 - 2 = 2, so rows 2 and 3, columns 2 and 3
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 1, 1,
	}, dst)

	PlaceTexture(dst, 4, atlastesting.SolidPix(2, 1, 9), 2, 0, 2, 1)
	assert.Equal(t, []byte{
		9, 9, 0, 0,
		9, 9, 0, 0,
		0, 0, 0, 0,
		0, 0, 1, 1,
	}, dst)
}

func TestPlacementRegion(t *testing.T) {
	p := Placement{X: 64, Y: 0, Size: 32}
	assert.Equal(t, image.Rect(64, 96, 96, 128), p.Region(128))
}
