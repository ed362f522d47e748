// Package storage persists packed atlases, the pixel buffer and its manifest,
// under a path based layout shared by every backend.
package storage

import (
	"context"
	"fmt"

	"github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-texatlas/atlas"
	"github.com/google/uuid"
)

// Store saves and loads atlases by id. Implementations verify the pixel data
// against the manifest digest on both paths.
type Store interface {
	Put(ctx context.Context, m *atlas.Manifest, pix []byte) error
	Get(ctx context.Context, id uuid.UUID) (*atlas.Manifest, []byte, error)
}

var (
	_ Store = (*LevelStore)(nil)
	_ Store = (*BlobStore)(nil)
)

type Options struct {
	CBORCodec *cbor.CBORCodec
	Log       logger.Logger
}

// Option is a generic option type used for storage implementations.
// Implementations type assert to Options target record and if that fails the
// expectation they ignore the options
type Option func(any)

func WithCBORCodec(codec *cbor.CBORCodec) Option {
	return func(a any) {
		if opts, ok := a.(*Options); ok {
			opts.CBORCodec = codec
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(a any) {
		if opts, ok := a.(*Options); ok {
			opts.Log = log
		}
	}
}

func newOptions(opts ...Option) (Options, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.CBORCodec == nil {
		codec, err := atlas.NewManifestCodec()
		if err != nil {
			return Options{}, err
		}
		o.CBORCodec = &codec
	}
	if o.Log == nil {
		if logger.Sugar == nil {
			logger.New("NOOP")
		}
		o.Log = logger.Sugar.WithServiceName("atlasstore")
	}
	return o, nil
}

// encodeForPut checks the manifest against pix and returns the atlas id and
// the encoded manifest.
func encodeForPut(codec *cbor.CBORCodec, m *atlas.Manifest, pix []byte) (uuid.UUID, []byte, error) {
	if m == nil {
		return uuid.Nil, nil, atlas.ErrNoManifest
	}
	if codec == nil {
		return uuid.Nil, nil, ErrNoCodec
	}
	if err := m.Verify(pix); err != nil {
		return uuid.Nil, nil, err
	}
	id, err := m.ID()
	if err != nil {
		return uuid.Nil, nil, err
	}
	data, err := atlas.EncodeManifest(*codec, m)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, data, nil
}

// decodeForGet decodes the manifest and checks it describes id and pix.
func decodeForGet(codec *cbor.CBORCodec, id uuid.UUID, data []byte, pix []byte) (*atlas.Manifest, error) {
	if codec == nil {
		return nil, ErrNoCodec
	}
	m, err := atlas.DecodeManifest(*codec, data)
	if err != nil {
		return nil, err
	}
	got, err := m.ID()
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, fmt.Errorf("%w: manifest id %s", ErrNotFound, got)
	}
	if err := m.Verify(pix); err != nil {
		return nil, err
	}
	return m, nil
}
