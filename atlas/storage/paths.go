package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// LenUUIDString is the length of the UUID string representation, per
	// https://www.rfc-editor.org/rfc/rfc9562.html#name-uuid-format
	LenUUIDString = 36

	AtlasPrefix = "v1/atlases/"

	ManifestBaseName = "manifest.cbor"
	PixBaseName      = "atlas.pix"
)

type ObjectType uint8

const (
	ObjectUndefined ObjectType = iota
	ObjectManifest
	ObjectPix
)

// AtlasPath returns the storage prefix shared by all objects of one atlas
func AtlasPath(id uuid.UUID) string {
	return fmt.Sprintf("%s%s/", AtlasPrefix, id.String())
}

func ManifestPath(id uuid.UUID) string {
	return AtlasPath(id) + ManifestBaseName
}

func PixPath(id uuid.UUID) string {
	return AtlasPath(id) + PixBaseName
}

// ObjectTypeFromPath identifies the object a storage path refers to by its
// base name.
func ObjectTypeFromPath(storagePath string) ObjectType {
	i := strings.LastIndex(storagePath, "/")
	switch storagePath[i+1:] {
	case ManifestBaseName:
		return ObjectManifest
	case PixBaseName:
		return ObjectPix
	default:
		return ObjectUndefined
	}
}

// ParsePrefixedAtlasID finds the atlas id encoded in storagePath as a uuid
// immediately following prefix. The uuid may be followed by a slash or the end
// of the path.
func ParsePrefixedAtlasID(prefix string, storagePath string) (uuid.UUID, bool) {

	lenprefix := len(prefix)

	var i, j int
	i = strings.Index(storagePath, prefix)
	if i == -1 {
		return uuid.Nil, false
	}

	rest := storagePath[i+lenprefix:]
	j = strings.Index(rest, "/")
	if j == -1 {
		j = len(rest)
	}
	if j != LenUUIDString {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(rest[:j])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
