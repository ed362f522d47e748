package storage

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/forestrie/go-texatlas/atlas"
	"github.com/google/uuid"
)

const (
	TagAtlasID   = "atlasid"
	TagAtlasSize = "atlassize"
)

// blobStore is the part of *azblob.Storer the BlobStore needs
type blobStore interface {
	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)

	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)

	Delete(ctx context.Context, identity string) error
}

// BlobStore publishes atlases to azure blob storage. Atlases are immutable:
// writing an id that already exists fails.
type BlobStore struct {
	Options
	Store blobStore
}

func NewBlobStore(store blobStore, opts ...Option) (*BlobStore, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &BlobStore{Options: o, Store: store}, nil
}

func (s *BlobStore) Put(ctx context.Context, m *atlas.Manifest, pix []byte) error {
	id, data, err := encodeForPut(s.CBORCodec, m, pix)
	if err != nil {
		return err
	}
	tags := map[string]string{
		TagAtlasID:   id.String(),
		TagAtlasSize: strconv.FormatUint(m.Size, 10),
	}

	// The manifest goes last, its presence marks the atlas complete.
	if err := s.put(ctx, PixPath(id), pix, tags); err != nil {
		return err
	}
	if err := s.put(ctx, ManifestPath(id), data, tags); err != nil {
		// remove the pixels so the same id can be published again
		if derr := s.Store.Delete(ctx, PixPath(id)); derr != nil {
			s.Log.Infof("atlas %s: failed to remove pixels after a failed publish: %v", id, derr)
		}
		return err
	}
	s.Log.Debugf("atlas %s published: %d manifest bytes, %d pixel bytes", id, len(data), len(pix))
	return nil
}

func (s *BlobStore) put(ctx context.Context, blobPath string, data []byte, tags map[string]string) error {
	_, err := s.Store.Put(ctx, blobPath, azblob.NewBytesReaderCloser(data),
		azblob.WithTags(tags),
		azblob.WithEtagNoneMatch("*"),
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", blobPath, err)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, id uuid.UUID) (*atlas.Manifest, []byte, error) {
	data, err := s.read(ctx, id, ManifestPath(id))
	if err != nil {
		return nil, nil, err
	}
	pix, err := s.read(ctx, id, PixPath(id))
	if err != nil {
		return nil, nil, err
	}
	m, err := decodeForGet(s.CBORCodec, id, data, pix)
	if err != nil {
		return nil, nil, err
	}
	return m, pix, nil
}

func (s *BlobStore) read(ctx context.Context, id uuid.UUID, blobPath string) ([]byte, error) {
	rr, err := s.Store.Reader(ctx, blobPath, azblob.WithGetTags())
	if err != nil {
		return nil, notFoundFromBlob(err)
	}
	defer rr.Reader.Close()

	if got, ok := rr.Tags[TagAtlasID]; ok && got != id.String() {
		return nil, fmt.Errorf("%w: %s tagged %s", ErrTagMismatch, blobPath, got)
	}
	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", blobPath, err)
	}
	return data, nil
}
