package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/forestrie/go-texatlas/atlas"
	"github.com/forestrie/go-texatlas/quadtree"
)

const (
	StoreNone    = "none"
	StoreLevelDB = "leveldb"
	StoreAzblob  = "azblob"
)

var (
	ErrNoInputs     = errors.New("atlaspack: no input textures")
	ErrBadStoreKind = errors.New("atlaspack: unknown store kind")
)

type storeConfig struct {
	Kind      string
	Path      string
	Container string
}

type config struct {
	AtlasSize    uint64
	MaxLevel     uint8
	Alpha        bool
	// Split packs opaque and transparent inputs into separate atlases, the
	// transparent one written next to Output with an ".alpha" suffix.
	Split        bool
	ResizeToPow2 bool
	Strict       bool
	Inputs       []string
	Output       string
	Manifest     string
	LogLevel     string
	Store        storeConfig
}

func defaultConfig() config {
	return config{
		AtlasSize: 1024,
		MaxLevel:  6,
		Output:    "atlas.png",
		Manifest:  "atlas.cbor",
		LogLevel:  "INFO",
		Store:     storeConfig{Kind: StoreNone},
	}
}

// readConfig overlays the toml file at path onto cfg. Keys absent from the
// file keep their current values.
func readConfig(path string, cfg *config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("couldn't read config file %s: %w", path, err)
	}
	return nil
}

func (c *config) validate() error {
	if !quadtree.IsPow2(c.AtlasSize) {
		return fmt.Errorf("%w: atlas size %d", atlas.ErrNotPow2, c.AtlasSize)
	}
	if c.MaxLevel > quadtree.MaxLevel {
		return fmt.Errorf("%w: %d", quadtree.ErrLevelTooDeep, c.MaxLevel)
	}
	if len(c.Inputs) == 0 {
		return ErrNoInputs
	}
	switch c.Store.Kind {
	case "", StoreNone, StoreLevelDB, StoreAzblob:
	default:
		return fmt.Errorf("%w: %q", ErrBadStoreKind, c.Store.Kind)
	}
	return nil
}
