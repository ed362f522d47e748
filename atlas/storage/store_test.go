package storage

import (
	"testing"

	"github.com/forestrie/go-texatlas/atlas"
	"github.com/forestrie/go-texatlas/atlastesting"
	"github.com/stretchr/testify/require"
)

// packedAtlas returns a small packed atlas and its manifest
func packedAtlas(t *testing.T, tc *atlastesting.TestContext) (*atlas.Atlas, *atlas.Manifest) {
	var textures []atlas.Texture
	for _, size := range []uint64{32, 16, 16, 8} {
		tx, err := atlas.NewRawTexture(size, atlas.FormatRGBA, tc.RandomPix(size, 4))
		require.NoError(t, err)
		textures = append(textures, tx)
	}
	a, skipped := atlas.TexturesToAtlas(textures, 64, true, 3, atlas.WithLogger(tc.Log))
	require.Nil(t, skipped)
	m, err := atlas.NewManifest(a)
	require.NoError(t, err)
	return a, m
}
