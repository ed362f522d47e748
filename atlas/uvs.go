package atlas

import "github.com/forestrie/go-texatlas/quadtree"

// AdjustUVs remaps (u, v) pairs that are normalised to a placed texture's own
// 0..1 space so that they address the texture inside the atlas. pos is the
// tree position the texture was placed at.
//
// With s = 1 / 2^level and (bx, by) the block of pos, each pair becomes
//
//	(u*s + bx*s, 1 - (v*s + by*s))
//
// The v flip matches the bottom left origin used by PlaceTexture. A trailing
// unpaired value is dropped.
func AdjustUVs(uvs []float32, pos uint64) []float32 {
	level := quadtree.PositionLevel(pos)
	scale := 1.0 / float32(quadtree.LevelScale(level))
	return adjustUVs(uvs, pos, scale, scale)
}

// AdjustUVsSized is AdjustUVs for a texture that may not fill its whole block,
// which happens when a texture smaller than the finest granularity was put in
// a maxLevel block. The local 0..1 range spans size pixels rather than the
// block edge.
func AdjustUVsSized(uvs []float32, pos uint64, size, atlasSize uint64) []float32 {
	level := quadtree.PositionLevel(pos)
	blockScale := 1.0 / float32(quadtree.LevelScale(level))
	texScale := float32(size) / float32(atlasSize)
	return adjustUVs(uvs, pos, texScale, blockScale)
}

func adjustUVs(uvs []float32, pos uint64, texScale, blockScale float32) []float32 {
	bx, by := quadtree.PositionToBlock(pos)
	ox := float32(bx) * blockScale
	oy := float32(by) * blockScale

	n := len(uvs) / 2
	out := make([]float32, 0, 2*n)
	for i := 0; i < n; i++ {
		u, v := uvs[2*i], uvs[2*i+1]
		out = append(out, u*texScale+ox, 1-(v*texScale+oy))
	}
	return out
}
