package atlas

import (
	"errors"
	"fmt"
)

var (
	ErrNotSquare    = errors.New("atlas: texture is not square")
	ErrNotPow2      = errors.New("atlas: size is not a power of two")
	ErrTooLarge     = errors.New("atlas: texture is larger than the atlas")
	ErrAtlasFull    = errors.New("atlas: no free block at the required level")
	ErrBadFormat    = errors.New("atlas: unsupported pixel format")
	ErrBadPixLength = errors.New("atlas: pixel data length does not match the texture size")
	ErrNotPlaced    = errors.New("atlas: texture index was not placed")
	ErrNoManifest   = errors.New("atlas: manifest is missing")
	ErrPixDigest    = errors.New("atlas: pixel data does not match the manifest digest")
)

// Format selects the channel layout of the atlas buffer.
type Format uint8

const (
	FormatUndefined Format = iota
	FormatRGB
	FormatRGBA
)

// FormatFor returns RGBA when alpha is wanted and RGB otherwise.
func FormatFor(wantAlpha bool) Format {
	if wantAlpha {
		return FormatRGBA
	}
	return FormatRGB
}

// Channels returns the number of interleaved bytes per pixel.
func (f Format) Channels() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

func (f Format) Valid() bool {
	return f == FormatRGB || f == FormatRGBA
}

func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}
