package quadtree

// LevelToOffset returns the first position of the segment for level. It is the
// base 4 repunit with level digit pairs: 0, 1, 0b101, 0b10101, ...
func LevelToOffset(level uint8) uint64 {
	var offset uint64
	for ; level > 0; level-- {
		offset = offset<<2 | 1
	}
	return offset
}

// FullLevelSpace returns the number of nodes in levels 0..=maxLevel. This is
// the required length of an occupancy index.
func FullLevelSpace(maxLevel uint8) uint64 {
	return LevelToOffset(maxLevel + 1)
}

// OneLevelSpace returns the number of nodes on a single level, 4^level.
func OneLevelSpace(level uint8) uint64 {
	return uint64(1) << (2 * uint64(level))
}

// PositionLevelOffset returns the level of pos and the first position of that
// level's segment. It finds the greatest level whose segment starts at or
// before pos.
func PositionLevelOffset(pos uint64) (uint8, uint64) {
	var level uint8
	var offset uint64

	// offset runs one level ahead of pos, so the answer is the level before
	// the loop exits.
	for pos >= offset {
		offset = offset<<2 | 1
		level++
	}
	return level - 1, offset >> 2
}

func PositionLevel(pos uint64) uint8 {
	level, _ := PositionLevelOffset(pos)
	return level
}

func PositionOffset(pos uint64) uint64 {
	_, offset := PositionLevelOffset(pos)
	return offset
}

// RelativePosition returns the index of pos within its own level segment. This
// is the Morton code of the node's block.
func RelativePosition(pos uint64) uint64 {
	return pos - PositionOffset(pos)
}

// ValidPosition reports whether pos addresses a node of levels 0..=maxLevel
func ValidPosition(pos uint64, maxLevel uint8) bool {
	return pos < FullLevelSpace(maxLevel)
}

// UpperLevelPosition returns the position of the parent of pos.
//
// The root has no parent. Passing 0 returns 0, which is meaningless, and is
// not detected.
func UpperLevelPosition(pos uint64) uint64 {
	level, offset := PositionLevelOffset(pos)
	parentRel := (pos - offset) / 4
	if level == 0 {
		return parentRel
	}
	return parentRel + LevelToOffset(level-1)
}

// LowerLevelSpan returns the span of children, on the next finer level, of
// every node covered by p. For a dot that is its four children. For a span of
// siblings it is the concatenation of their children, which is again
// contiguous.
//
// Given level 1 nodes 1..4, their children on level 2 are:
//
//	LowerLevelSpan(Dot(2))      == Span(9, 13)
//	LowerLevelSpan(Span(2, 4))  == Span(9, 17)
func LowerLevelSpan(p TexturePosition) TexturePosition {
	level, offset := PositionLevelOffset(p.First)
	childOffset := LevelToOffset(level + 1)

	rel0 := p.First - offset
	rel1 := p.End - 1 - offset

	return Span(rel0*4+childOffset, rel1*4+4+childOffset)
}

// LeveledPosition returns every node structurally related to pos: the chain of
// ancestors from the root down to, and including, pos, followed by the spans
// of descendants on each finer level down to maxLevel inclusive. The level of
// pos is returned as a convenience.
//
// For pos 2 (level 1) and maxLevel 3:
//
//	[Dot(0), Dot(2), Span(9, 13), Span(37, 53)], 1
func LeveledPosition(pos uint64, maxLevel uint8) ([]TexturePosition, uint8) {
	level := PositionLevel(pos)

	related := make([]TexturePosition, int(level)+1)

	// fill the ancestors in from the bottom, so that the result reads root first
	p := pos
	for i := int(level); i >= 0; i-- {
		related[i] = Dot(p)
		p = UpperLevelPosition(p)
	}

	below := Dot(pos)
	for l := level; l < maxLevel; l++ {
		below = LowerLevelSpan(below)
		related = append(related, below)
	}
	return related, level
}
