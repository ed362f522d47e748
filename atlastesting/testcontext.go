package atlastesting

import (
	"context"
	"math/rand"
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
)

// BlobEmulatorEnv must be set for tests that need the azurite blob emulator.
const BlobEmulatorEnv = "ATLAS_BLOB_EMULATOR"

type TestContext struct {
	Log    logger.Logger
	Storer *azblob.Storer
	T      *testing.T
	rng    *rand.Rand
}

type TestConfig struct {
	// We seed the RNG with Seed. It is normal to force it to some fixed value
	// so that the generated pixels are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to NOOP
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)

	return TestContext{
		T:   t,
		Log: logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RandomPix returns edge x edge pixels of random content. When channels is 4
// the alpha is forced opaque, so textures made from it are treated as opaque.
func (c *TestContext) RandomPix(edge uint64, channels int) []byte {
	pix := make([]byte, edge*edge*uint64(channels))
	c.rng.Read(pix)
	if channels == 4 {
		for i := 3; i < len(pix); i += 4 {
			pix[i] = 0xff
		}
	}
	return pix
}

// SolidPix returns edge x edge pixels with every byte set to value.
func SolidPix(edge uint64, channels int, value byte) []byte {
	pix := make([]byte, edge*edge*uint64(channels))
	for i := range pix {
		pix[i] = value
	}
	return pix
}

// RowPix returns pixels whose every byte holds the row index. Useful for
// checking row order after placement.
func RowPix(edge uint64, channels int) []byte {
	pix := make([]byte, edge*edge*uint64(channels))
	rowBytes := edge * uint64(channels)
	for i := range pix {
		pix[i] = byte(uint64(i) / rowBytes)
	}
	return pix
}

// NewBlobStorer connects to the blob emulator, creating container if needed.
// The test is skipped when BlobEmulatorEnv is not set.
func (c *TestContext) NewBlobStorer(container string) *azblob.Storer {
	if os.Getenv(BlobEmulatorEnv) == "" {
		c.T.Skipf("%s not set, skipping blob emulator test", BlobEmulatorEnv)
	}
	storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), container)
	if err != nil {
		c.T.Fatalf("failed to connect to blob store emulator: %v", err)
	}
	client := storer.GetServiceClient()
	// Note: we expect a 'already exists' error here and  ignore it.
	_, _ = client.CreateContainer(context.Background(), container, nil)
	c.Storer = storer
	return storer
}

// DeleteBlobsByPrefix removes every blob under blobPrefixPath from the storer
// most recently returned by NewBlobStorer.
func (c *TestContext) DeleteBlobsByPrefix(blobPrefixPath string) {
	var err error
	var r *azblob.ListerResponse
	var blobs []string

	var marker azblob.ListMarker
	for {
		r, err = c.Storer.List(
			context.Background(),
			azblob.WithListPrefix(blobPrefixPath), azblob.WithListMarker(marker))

		require.NoError(c.T, err)

		for _, i := range r.Items {
			blobs = append(blobs, *i.Name)
		}
		if len(r.Items) == 0 || r.Marker == nil {
			break
		}
		marker = r.Marker
	}
	for _, blobPath := range blobs {
		err = c.Storer.Delete(context.Background(), blobPath)
		require.NoError(c.T, err)
	}
}
