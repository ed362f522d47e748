package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/forestrie/go-texatlas/atlas"
	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelStore keeps atlases in a local LevelDB database, keyed by their
// storage paths.
type LevelStore struct {
	Options
	db *leveldb.DB
}

func NewLevelStore(dbPath string, opts ...Option) (*LevelStore, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas db %s: %w", dbPath, err)
	}
	return &LevelStore{Options: o, db: db}, nil
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}

// Put writes the pixels and the manifest in a single batch, so a manifest is
// never visible without its pixels.
func (s *LevelStore) Put(ctx context.Context, m *atlas.Manifest, pix []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, data, err := encodeForPut(s.CBORCodec, m, pix)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put([]byte(PixPath(id)), pix)
	batch.Put([]byte(ManifestPath(id)), data)
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to save atlas %s: %w", id, err)
	}
	s.Log.Debugf("atlas %s saved: %d manifest bytes, %d pixel bytes", id, len(data), len(pix))
	return nil
}

func (s *LevelStore) Get(ctx context.Context, id uuid.UUID) (*atlas.Manifest, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := s.get(ManifestPath(id))
	if err != nil {
		return nil, nil, err
	}
	pix, err := s.get(PixPath(id))
	if err != nil {
		return nil, nil, err
	}
	m, err := decodeForGet(s.CBORCodec, id, data, pix)
	if err != nil {
		return nil, nil, err
	}
	return m, pix, nil
}

func (s *LevelStore) get(key string) ([]byte, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

// List returns the ids of every stored atlas in key order.
func (s *LevelStore) List(ctx context.Context) ([]uuid.UUID, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(AtlasPrefix)), nil)
	defer iter.Release()

	var ids []uuid.UUID
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := string(iter.Key())
		if ObjectTypeFromPath(key) != ObjectManifest {
			continue
		}
		id, ok := ParsePrefixedAtlasID(AtlasPrefix, key)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate atlases: %w", err)
	}
	return ids, nil
}

// Delete removes both objects of the atlas. Deleting a missing atlas is not an
// error.
func (s *LevelStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Delete([]byte(ManifestPath(id)))
	batch.Delete([]byte(PixPath(id)))
	return s.db.Write(batch, nil)
}
