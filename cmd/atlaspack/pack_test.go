package main

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/forestrie/go-texatlas/atlas"
	"github.com/forestrie/go-texatlas/atlastesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestPackerRun(t *testing.T) {
	tc := atlastesting.NewTestContext(t, atlastesting.TestConfig{TestLabelPrefix: "TestPackerRun"})
	dir := t.TempDir()

	cfg := defaultConfig()
	cfg.AtlasSize = 64
	cfg.MaxLevel = 3
	cfg.ResizeToPow2 = true
	cfg.Output = filepath.Join(dir, "atlas.png")
	cfg.Manifest = filepath.Join(dir, "atlas.cbor")
	cfg.Inputs = []string{
		writeTestPNG(t, dir, "a.png", 40, 50, color.NRGBA{R: 200, A: 0xff}),
		writeTestPNG(t, dir, "b.png", 128, 128, color.NRGBA{G: 200, A: 0xff}),
		writeTestPNG(t, dir, "c.png", 16, 16, color.NRGBA{B: 200, A: 0xff}),
	}
	cfg.Store = storeConfig{Kind: StoreLevelDB, Path: filepath.Join(dir, "atlases.db")}

	p, closeStore, err := newPacker(cfg, tc.Log)
	require.NoError(t, err)
	defer closeStore()

	results, err := p.run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, []int{1}, r.Skipped)

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	data, err := os.ReadFile(cfg.Manifest)
	require.NoError(t, err)
	m, err := atlas.DecodeManifest(p.codec, data)
	require.NoError(t, err)
	assert.Equal(t, r.Manifest.PixSHA256, m.PixSHA256)
	assert.Equal(t, []uint64{1, 0, 9}, m.Map)

	id, err := m.ID()
	require.NoError(t, err)
	got, pix, err := p.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	require.NoError(t, got.Verify(pix))
}

func TestPackerRunSplit(t *testing.T) {
	tc := atlastesting.NewTestContext(t, atlastesting.TestConfig{TestLabelPrefix: "TestPackerRunSplit"})
	dir := t.TempDir()

	cfg := defaultConfig()
	cfg.AtlasSize = 64
	cfg.MaxLevel = 2
	cfg.Split = true
	cfg.Output = filepath.Join(dir, "atlas.png")
	cfg.Manifest = filepath.Join(dir, "atlas.cbor")
	cfg.Inputs = []string{
		writeTestPNG(t, dir, "opaque.png", 32, 32, color.NRGBA{R: 1, A: 0xff}),
		writeTestPNG(t, dir, "glass.png", 16, 16, color.NRGBA{G: 1, A: 0x40}),
		writeTestPNG(t, dir, "opaque2.png", 16, 16, color.NRGBA{B: 1, A: 0xff}),
	}

	p, closeStore, err := newPacker(cfg, tc.Log)
	require.NoError(t, err)
	defer closeStore()

	results, err := p.run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, cfg.Output, results[0].Output)
	assert.Equal(t, atlas.FormatRGB, results[0].Manifest.Format)
	assert.Equal(t, []uint64{1, 9}, results[0].Manifest.Map)

	assert.Equal(t, filepath.Join(dir, "atlas.alpha.png"), results[1].Output)
	assert.Equal(t, atlas.FormatRGBA, results[1].Manifest.Format)
	assert.Equal(t, []uint64{5}, results[1].Manifest.Map)

	for _, path := range []string{cfg.Output, cfg.Manifest,
		filepath.Join(dir, "atlas.alpha.png"), filepath.Join(dir, "atlas.alpha.cbor")} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestPackerRunMissingInput(t *testing.T) {
	tc := atlastesting.NewTestContext(t, atlastesting.TestConfig{})
	cfg := defaultConfig()
	cfg.Inputs = []string{filepath.Join(t.TempDir(), "missing.png")}

	p, closeStore, err := newPacker(cfg, tc.Log)
	require.NoError(t, err)
	defer closeStore()
	_, err = p.run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRealMainStrict(t *testing.T) {
	dir := t.TempDir()
	big := writeTestPNG(t, dir, "big.png", 128, 128, color.NRGBA{A: 0xff})
	args := []string{
		"-size", "64", "-log-level", "NOOP",
		"-out", filepath.Join(dir, "atlas.png"),
		"-manifest", filepath.Join(dir, "atlas.cbor"),
	}

	assert.Equal(t, 0, realMain(append(append([]string{}, args...), big)))
	assert.Equal(t, 1, realMain(append(append([]string{"-strict"}, args...), big)))
	assert.Equal(t, 2, realMain([]string{"-size", "64"}))
}
