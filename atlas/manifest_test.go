package atlas

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packForManifest(t *testing.T) *Atlas {
	textures := solidTextures(t, FormatRGB, 64, 32, 256, 32)
	a, skipped := TexturesToAtlas(textures, 128, false, 3)
	require.Equal(t, []int{2}, skipped)
	return a
}

func TestManifestRoundTrip(t *testing.T) {
	codec, err := NewManifestCodec()
	require.NoError(t, err)

	a := packForManifest(t)
	m, err := NewManifest(a)
	require.NoError(t, err)

	data, err := EncodeManifest(codec, m)
	require.NoError(t, err)

	got, err := DecodeManifest(codec, data)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	id, err := got.ID()
	require.NoError(t, err)
	assert.Equal(t, m.AtlasID, id[:])
}

func TestManifestDeterministic(t *testing.T) {
	codec, err := NewManifestCodec()
	require.NoError(t, err)

	id := uuid.MustParse("6f1c1c2e-3b6f-4d5e-9a0a-1b2c3d4e5f60")
	d1, err := EncodeManifest(codec, NewManifestWithID(packForManifest(t), id))
	require.NoError(t, err)
	d2, err := EncodeManifest(codec, NewManifestWithID(packForManifest(t), id))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestManifestVerify(t *testing.T) {
	a := packForManifest(t)
	m := NewManifestWithID(a, uuid.New())

	require.NoError(t, m.Verify(a.Pix))

	tampered := append([]byte(nil), a.Pix...)
	tampered[0] ^= 0xff
	assert.ErrorIs(t, m.Verify(tampered), ErrPixDigest)
	assert.ErrorIs(t, m.Verify(a.Pix[1:]), ErrBadPixLength)

	b, err := m.Atlas(a.Pix)
	require.NoError(t, err)
	assert.Equal(t, a.Map, b.Map)
	assert.Equal(t, a.Placements, b.Placements)

	uvs, err := b.UVs(1, []float32{0, 0})
	require.NoError(t, err)
	want, err := a.UVs(1, []float32{0, 0})
	require.NoError(t, err)
	assert.Equal(t, want, uvs)
}

func TestEncodeManifestNil(t *testing.T) {
	codec, err := NewManifestCodec()
	require.NoError(t, err)
	_, err = EncodeManifest(codec, nil)
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestDecodeManifestBadFormat(t *testing.T) {
	codec, err := NewManifestCodec()
	require.NoError(t, err)
	m := NewManifestWithID(packForManifest(t), uuid.New())
	m.Format = Format(9)
	data, err := EncodeManifest(codec, m)
	require.NoError(t, err)
	_, err = DecodeManifest(codec, data)
	assert.ErrorIs(t, err, ErrBadFormat)
}
