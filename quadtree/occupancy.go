package quadtree

import "fmt"

// FirstFreePosition returns the lowest free position on level. The scan is in
// ascending index order, which is Morton order, so ties are always broken in
// favour of the top left most free block.
//
// A level deeper than maxLevel has no segment in occupied. Rather than fail,
// the search window is folded onto coarser segments until it lands inside the
// configured space, which in practice is the maxLevel segment. A texture that
// is smaller than the finest granularity is treated as if it were exactly one
// maxLevel block.
//
// Returns false if every node in the window is occupied.
func FirstFreePosition(level uint8, occupied []bool, maxLevel uint8) (uint64, bool) {
	offset := LevelToOffset(level)
	total := FullLevelSpace(maxLevel)

	for offset >= total {
		offset >>= 2
	}

	end := offset + OneLevelSpace(level)
	if level > maxLevel || end > uint64(len(occupied)) {
		end = uint64(len(occupied))
	}

	for i := offset; i < end; i++ {
		if !occupied[i] {
			return i, true
		}
	}
	return 0, false
}

// Occupy marks pos, all of its ancestors and all of its descendants down to
// maxLevel as occupied. Occupy is idempotent and is the only way the index
// should be mutated.
func Occupy(pos uint64, occupied []bool, maxLevel uint8) {
	related, _ := LeveledPosition(pos, maxLevel)
	for _, p := range related {
		for i := p.First; i < p.End; i++ {
			occupied[i] = true
		}
	}
}

// LeafSpan returns the span of maxLevel descendants of pos. For a node on
// maxLevel this is just the node itself.
func LeafSpan(pos uint64, maxLevel uint8) TexturePosition {
	p := Dot(pos)
	for l := PositionLevel(pos); l < maxLevel; l++ {
		p = LowerLevelSpan(p)
	}
	return p
}

// CheckInvariant verifies the structure Occupy maintains:
//
//   - every occupied node other than the root has an occupied parent
//   - every occupied interior node has at least one occupied child
//   - every allocated position has its whole maxLevel leaf span occupied
//
// Ancestors marked on the way to an allocation are only partially covered, so
// the full leaf span is required of allocated positions alone.
func CheckInvariant(occupied []bool, maxLevel uint8, allocated ...uint64) error {
	if uint64(len(occupied)) != FullLevelSpace(maxLevel) {
		return ErrOccupancyBadSize
	}
	for i, set := range occupied {
		if !set {
			continue
		}
		pos := uint64(i)
		if pos > 0 {
			if parent := UpperLevelPosition(pos); !occupied[parent] {
				return fmt.Errorf("%w: %d is occupied but parent %d is not", ErrOccupancyInvariant, pos, parent)
			}
		}
		if PositionLevel(pos) == maxLevel {
			continue
		}
		children := LowerLevelSpan(Dot(pos))
		found := false
		for c := children.First; c < children.End && !found; c++ {
			found = occupied[c]
		}
		if !found {
			return fmt.Errorf("%w: %d is occupied but none of its children are", ErrOccupancyInvariant, pos)
		}
	}
	for _, pos := range allocated {
		if !ValidPosition(pos, maxLevel) {
			return fmt.Errorf("%w: %d", ErrPositionOutOfBounds, pos)
		}
		leaves := LeafSpan(pos, maxLevel)
		for i := leaves.First; i < leaves.End; i++ {
			if !occupied[i] {
				return fmt.Errorf("%w: %d is allocated but leaf %d is not occupied", ErrOccupancyInvariant, pos, i)
			}
		}
	}
	return nil
}

// Occupancy owns an occupancy index for a fixed max level.
type Occupancy struct {
	maxLevel  uint8
	occupied  []bool
	allocated []uint64
}

// NewOccupancy returns an empty occupancy index for levels 0..=maxLevel.
func NewOccupancy(maxLevel uint8) (*Occupancy, error) {
	if maxLevel > MaxLevel {
		return nil, fmt.Errorf("%w: %d > %d", ErrLevelTooDeep, maxLevel, MaxLevel)
	}
	return &Occupancy{
		maxLevel: maxLevel,
		occupied: make([]bool, FullLevelSpace(maxLevel)),
	}, nil
}

func (o *Occupancy) MaxLevel() uint8 { return o.maxLevel }
func (o *Occupancy) Len() uint64     { return uint64(len(o.occupied)) }

// Occupied exposes the underlying index. Callers must not retain it across
// calls to Occupy.
func (o *Occupancy) Occupied() []bool { return o.occupied }

func (o *Occupancy) IsOccupied(pos uint64) bool {
	if pos >= uint64(len(o.occupied)) {
		return false
	}
	return o.occupied[pos]
}

func (o *Occupancy) FirstFree(level uint8) (uint64, bool) {
	return FirstFreePosition(level, o.occupied, o.maxLevel)
}

// Occupy marks pos and its related nodes. pos must be a valid position for
// the configured levels.
func (o *Occupancy) Occupy(pos uint64) error {
	if !ValidPosition(pos, o.maxLevel) {
		return fmt.Errorf("%w: %d", ErrPositionOutOfBounds, pos)
	}
	Occupy(pos, o.occupied, o.maxLevel)
	o.allocated = append(o.allocated, pos)
	return nil
}

// Allocated returns the positions passed to Occupy or returned by Allocate,
// in call order.
func (o *Occupancy) Allocated() []uint64 { return o.allocated }

// Check runs CheckInvariant over the index and its allocations.
func (o *Occupancy) Check() error {
	return CheckInvariant(o.occupied, o.maxLevel, o.allocated...)
}

// Allocate finds the first free node on level and occupies it.
func (o *Occupancy) Allocate(level uint8) (uint64, bool) {
	pos, ok := o.FirstFree(level)
	if !ok {
		return 0, false
	}
	Occupy(pos, o.occupied, o.maxLevel)
	o.allocated = append(o.allocated, pos)
	return pos, true
}

// FreeCount returns the number of free nodes on level.
func (o *Occupancy) FreeCount(level uint8) uint64 {
	if level > o.maxLevel {
		return 0
	}
	var free uint64
	offset := LevelToOffset(level)
	for i := offset; i < offset+OneLevelSpace(level); i++ {
		if !o.occupied[i] {
			free++
		}
	}
	return free
}

func (o *Occupancy) Reset() {
	clear(o.occupied)
	o.allocated = o.allocated[:0]
}
