package quadtree

/*

# Implicit quadtree positions

This package provides the primitive arithmetic for allocating square, power of
two, sub regions of a square atlas. The tree is never materialised. Every node is
identified by a single integer, its *position*, and every navigation step
(parent, children, block coordinate) is a small amount of integer arithmetic on
that position.

* Level 0 is the root and covers the whole atlas.
* Level L has 4^L nodes, arranged as a 2^L x 2^L grid of blocks.
* Each block at level L has an edge length of atlasSize / 2^L pixels.

The low level api places a **burden of knowledge on the caller** in the
interests of simplicity and efficiency. For example, asking for the parent of
the root yields a meaningless result and the error is not detected.

## Level segments

Positions are allocated level by level, so each level owns a contiguous
segment of the flat index space. The segment for level L starts at

	(4^L - 1) / 3

which, written in binary, is the base 4 repunit with L digit pairs:

	level 0    0           segment [0, 1)
	level 1    1           segment [1, 5)
	level 2    101         segment [5, 21)
	level 3    10101       segment [21, 85)
	level 4    1010101     segment [85, 341)

This is the quaternary analogue of array based binary heap indexing. The total
number of nodes for levels 0..=L is simply the start of level L+1.

## Relative positions and Morton order

Within its segment, a node's relative position (position - segment start) is a
base 4 digit string. Read least significant digit first, each digit selects a
quadrant:

	digit  dx dy
	0      0  0
	1      1  0
	2      0  1
	3      1  1

and each further digit doubles the weight. So the relative position is exactly
the Morton (Z-order) code of the block coordinate: bit 0 of each digit feeds x,
bit 1 feeds y. For level 2:

	 0  1 |  4  5
	 2  3 |  6  7
	------+------
	 8  9 | 12 13
	10 11 | 14 15

The parent of relative position r is r / 4 in the next coarser segment, and
its four children are [4r, 4r + 4) in the next finer segment.

## Occupancy

Occupancy is a flat []bool indexed by position, with one entry for every node
of levels 0..=maxLevel. Marking a node occupied also marks

* every ancestor up to and including the root, and
* (for interior nodes) every descendant down to maxLevel.

With that invariant maintained a single first fit scan of one level segment is
sufficient to find space: a free interior node guarantees the whole block below
it is free, and an occupied ancestor always shows up as an occupied node at
every finer level beneath it.

Because segment order is Morton order, first fit by ascending index packs in
Z-order starting at the top left most free block.

*/
