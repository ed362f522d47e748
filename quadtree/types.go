package quadtree

import (
	"errors"
	"fmt"
)

// MaxLevel is the deepest level whose full level space fits in a uint64.
const MaxLevel uint8 = 31

var (
	ErrLevelTooDeep        = errors.New("quadtree: max level exceeds the supported depth")
	ErrOccupancyBadSize    = errors.New("quadtree: occupancy length does not match the max level")
	ErrOccupancyInvariant  = errors.New("quadtree: occupancy invariant violated")
	ErrPositionOutOfBounds = errors.New("quadtree: position is outside the configured levels")
)

// TexturePosition is either a single node (a dot) or a contiguous run of
// sibling nodes on one level (a span). A span is half open, [First, End).
type TexturePosition struct {
	First  uint64
	End    uint64
	IsSpan bool
}

// Dot returns the TexturePosition for the single node pos.
func Dot(pos uint64) TexturePosition {
	return TexturePosition{First: pos, End: pos + 1}
}

// Span returns the TexturePosition covering [first, end).
func Span(first, end uint64) TexturePosition {
	return TexturePosition{First: first, End: end, IsSpan: true}
}

// Len returns the number of nodes covered.
func (p TexturePosition) Len() uint64 {
	return p.End - p.First
}

// Contains reports whether pos is one of the covered nodes.
func (p TexturePosition) Contains(pos uint64) bool {
	return pos >= p.First && pos < p.End
}

func (p TexturePosition) String() string {
	if !p.IsSpan {
		return fmt.Sprintf("Dot(%d)", p.First)
	}
	return fmt.Sprintf("Span(%d, %d)", p.First, p.End)
}
