package storage

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

var (
	ErrNotFound    = errors.New("storage: atlas not found")
	ErrTagMismatch = errors.New("storage: blob tags do not match the requested atlas")
	ErrNoCodec     = errors.New("storage: a cbor codec is required")
)

// error code the blob service reports for a missing atlas object
const blobNotFoundCode = "BlobNotFound"

// blobErrorCode extracts the service error code carried by an azure sdk error.
func blobErrorCode(err error) (string, bool) {
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return "", false
	}
	serr := &azStorageBlob.StorageError{}
	if !ierr.As(&serr) {
		return "", false
	}
	return string(serr.ErrorCode), true
}

// notFoundFromBlob reports a missing manifest or pixel blob as ErrNotFound so
// every Store fails the same way for an unknown atlas id.
func notFoundFromBlob(err error) error {
	if err == nil {
		return nil
	}
	if code, ok := blobErrorCode(err); ok && code == blobNotFoundCode {
		return fmt.Errorf("%s: %w", err.Error(), ErrNotFound)
	}
	return err
}
