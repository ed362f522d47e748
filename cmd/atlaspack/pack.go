package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-texatlas/atlas"
	"github.com/forestrie/go-texatlas/atlas/storage"
)

// packResult is one written atlas. Skipped holds indices into the original
// input list.
type packResult struct {
	Output   string
	Manifest *atlas.Manifest
	Skipped  []int
}

type packer struct {
	cfg   config
	log   logger.Logger
	codec cbor.CBORCodec
	store storage.Store
}

func newPacker(cfg config, log logger.Logger) (*packer, func() error, error) {
	codec, err := atlas.NewManifestCodec()
	if err != nil {
		return nil, nil, err
	}
	store, closer, err := openStore(cfg.Store, &codec, log)
	if err != nil {
		return nil, nil, err
	}
	return &packer{cfg: cfg, log: log, codec: codec, store: store}, closer, nil
}

func openStore(sc storeConfig, codec *cbor.CBORCodec, log logger.Logger) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	opts := []storage.Option{storage.WithCBORCodec(codec), storage.WithLogger(log)}

	switch sc.Kind {
	case "", StoreNone:
		return nil, noop, nil
	case StoreLevelDB:
		s, err := storage.NewLevelStore(sc.Path, opts...)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case StoreAzblob:
		storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), sc.Container)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to blob store: %w", err)
		}
		s, err := storage.NewBlobStore(storer, opts...)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrBadStoreKind, sc.Kind)
	}
}

// run packs the configured inputs and writes the results.
func (p *packer) run(ctx context.Context) ([]packResult, error) {
	textures, err := loadTextures(p.log, p.cfg.Inputs, p.cfg.ResizeToPow2)
	if err != nil {
		return nil, err
	}

	if !p.cfg.Split {
		all := make([]int, len(textures))
		for i := range all {
			all[i] = i
		}
		r, err := p.packOne(ctx, textures, all, p.cfg.Alpha, p.cfg.Output, p.cfg.Manifest)
		if err != nil {
			return nil, err
		}
		return []packResult{r}, nil
	}

	opaque, transparent := atlas.SplitByAlpha(textures)
	p.log.Infof("%d opaque and %d transparent inputs", len(opaque), len(transparent))

	var results []packResult
	if len(opaque) > 0 {
		r, err := p.packOne(ctx, textures, opaque, false, p.cfg.Output, p.cfg.Manifest)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if len(transparent) > 0 {
		r, err := p.packOne(ctx, textures, transparent, true,
			suffixPath(p.cfg.Output, ".alpha"), suffixPath(p.cfg.Manifest, ".alpha"))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// packOne packs the textures selected by indices, in that order.
func (p *packer) packOne(
	ctx context.Context, textures []atlas.Texture, indices []int, alpha bool,
	output, manifestPath string) (packResult, error) {

	subset := make([]atlas.Texture, len(indices))
	for i, idx := range indices {
		subset[i] = textures[idx]
	}

	reasons := map[int]error{}
	a, skipped := atlas.TexturesToAtlas(subset, p.cfg.AtlasSize, alpha, p.cfg.MaxLevel,
		atlas.WithLogger(p.log), atlas.WithValidation(true), atlas.WithSkipReasons(reasons))

	r := packResult{Output: output}
	for _, i := range skipped {
		r.Skipped = append(r.Skipped, indices[i])
		p.log.Infof("%s not packed: %v", p.cfg.Inputs[indices[i]], reasons[i])
	}

	m, err := atlas.NewManifest(a)
	if err != nil {
		return packResult{}, err
	}
	r.Manifest = m

	if err := writePNG(output, a); err != nil {
		return packResult{}, err
	}
	data, err := atlas.EncodeManifest(p.codec, m)
	if err != nil {
		return packResult{}, err
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return packResult{}, err
	}

	if p.store != nil {
		if err := p.store.Put(ctx, m, a.Pix); err != nil {
			return packResult{}, err
		}
	}

	id, _ := m.ID()
	p.log.Infof("atlas %s: %d of %d placed, %s %dx%d written to %s",
		id, len(a.Placements), len(indices), a.Format, a.Size, a.Size, output)
	return r, nil
}

// writePNG writes the atlas buffer as is. Row 0 of the image is row 0 of the
// buffer, so the image appears vertically flipped.
func writePNG(path string, a *atlas.Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, a.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func suffixPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
