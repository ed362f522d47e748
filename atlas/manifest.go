package atlas

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/datatrails/go-datatrails-common/cbor"
	"github.com/google/uuid"
)

// Manifest describes a packed atlas independently of its pixels: everything a
// consumer needs to remap UVs, plus a digest binding it to the pixel data.
type Manifest struct {
	AtlasID    []byte      `cbor:"1,keyasint"`
	Size       uint64      `cbor:"2,keyasint"`
	Format     Format      `cbor:"3,keyasint"`
	MaxLevel   uint8       `cbor:"4,keyasint"`
	Map        []uint64    `cbor:"5,keyasint"`
	Skipped    []int       `cbor:"6,keyasint,omitempty"`
	Placements []Placement `cbor:"7,keyasint"`
	PixSHA256  []byte      `cbor:"8,keyasint"`
}

// NewManifestCodec returns a deterministic CBOR codec suitable for manifests.
// Equal manifests always encode to identical bytes.
func NewManifestCodec() (cbor.CBORCodec, error) {
	codec, err := cbor.NewCBORCodec(
		cbor.NewDeterministicEncOpts(),
		cbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return cbor.CBORCodec{}, err
	}
	return codec, nil
}

// NewManifest describes a, assigning it a fresh random id.
func NewManifest(a *Atlas) (*Manifest, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return NewManifestWithID(a, id), nil
}

func NewManifestWithID(a *Atlas, id uuid.UUID) *Manifest {
	digest := sha256.Sum256(a.Pix)
	return &Manifest{
		AtlasID:    id[:],
		Size:       a.Size,
		Format:     a.Format,
		MaxLevel:   a.MaxLevel,
		Map:        a.Map,
		Skipped:    a.Skipped,
		Placements: a.Placements,
		PixSHA256:  digest[:],
	}
}

func (m *Manifest) ID() (uuid.UUID, error) {
	return uuid.FromBytes(m.AtlasID)
}

// Verify checks that pix is the pixel data the manifest was made for.
func (m *Manifest) Verify(pix []byte) error {
	if want := m.Size * m.Size * uint64(m.Format.Channels()); uint64(len(pix)) != want {
		return fmt.Errorf("%w: %d bytes, want %d", ErrBadPixLength, len(pix), want)
	}
	digest := sha256.Sum256(pix)
	if !bytes.Equal(digest[:], m.PixSHA256) {
		return ErrPixDigest
	}
	return nil
}

// Atlas reassembles an Atlas from the manifest and its verified pixel data.
func (m *Manifest) Atlas(pix []byte) (*Atlas, error) {
	if err := m.Verify(pix); err != nil {
		return nil, err
	}
	return &Atlas{
		Pix:        pix,
		Size:       m.Size,
		Format:     m.Format,
		MaxLevel:   m.MaxLevel,
		Map:        m.Map,
		Placements: m.Placements,
		Skipped:    m.Skipped,
	}, nil
}

func EncodeManifest(codec cbor.CBORCodec, m *Manifest) ([]byte, error) {
	if m == nil {
		return nil, ErrNoManifest
	}
	return codec.MarshalCBOR(m)
}

func DecodeManifest(codec cbor.CBORCodec, data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := codec.UnmarshalInto(data, m); err != nil {
		return nil, err
	}
	if !m.Format.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, m.Format)
	}
	return m, nil
}
