// Package worldmap holds the shared world-space geometry of the chunked map:
// resolutions, tile descriptors and the conversions between world XZ
// coordinates and (chunk, tile) addresses.
//
// Coordinate convention: world X decreases with increasing column index and
// world Z increases with increasing row index. Box.X is therefore the
// greatest-X corner of a bounds rectangle and Box.Z the least-Z corner.
package worldmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World-unit size of a single tile.
const (
	TileXDim float32 = 1.0
	TileZDim float32 = 1.0
)

// Resolution describes the map layout: how many chunks it has and how many
// tiles each chunk holds.
type Resolution struct {
	ChunksW int // chunks along the X (column) axis
	ChunksH int // chunks along the Z (row) axis
	TilesR  int // tile rows per chunk
	TilesC  int // tile columns per chunk
}

// TileDesc addresses a single tile globally.
type TileDesc struct {
	ChunkR int
	ChunkC int
	TileR  int
	TileC  int
}

// Box is an axis-aligned XZ rectangle. X is the maximum-X corner, Z the
// minimum-Z corner (see the package coordinate convention).
type Box struct {
	X      float32
	Z      float32
	Width  float32
	Height float32
}

// Center returns the world-space center of the box.
func (b Box) Center() mgl32.Vec2 {
	return mgl32.Vec2{b.X - b.Width/2, b.Z + b.Height/2}
}

// Corners returns the four corners of the box.
func (b Box) Corners() [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		{b.X, b.Z},
		{b.X - b.Width, b.Z},
		{b.X - b.Width, b.Z + b.Height},
		{b.X, b.Z + b.Height},
	}
}

// ChunkXDim returns the world-unit width of one chunk.
func (res Resolution) ChunkXDim() float32 {
	return float32(res.TilesC) * TileXDim
}

// ChunkZDim returns the world-unit height of one chunk.
func (res Resolution) ChunkZDim() float32 {
	return float32(res.TilesR) * TileZDim
}

// ChunkBounds returns the world-space bounds of the chunk at (chunkR, chunkC).
func ChunkBounds(res Resolution, mapPos mgl32.Vec3, chunkR, chunkC int) Box {
	xOffset := -(float32(chunkC) * res.ChunkXDim())
	zOffset := float32(chunkR) * res.ChunkZDim()

	return Box{
		X:      mapPos.X() + xOffset,
		Z:      mapPos.Z() + zOffset,
		Width:  res.ChunkXDim(),
		Height: res.ChunkZDim(),
	}
}

// TileBounds returns the world-space bounds of a single tile.
func TileBounds(res Resolution, mapPos mgl32.Vec3, td TileDesc) Box {
	chunk := ChunkBounds(res, mapPos, td.ChunkR, td.ChunkC)
	return Box{
		X:      chunk.X - float32(td.TileC)*TileXDim,
		Z:      chunk.Z + float32(td.TileR)*TileZDim,
		Width:  TileXDim,
		Height: TileZDim,
	}
}

// DescForPoint2D maps a world XZ point to the tile containing it.
// Returns false if the point lies outside the map.
func DescForPoint2D(res Resolution, mapPos mgl32.Vec3, point mgl32.Vec2) (TileDesc, bool) {
	dx := mapPos.X() - point.X()
	dz := point.Y() - mapPos.Z()

	globalC := int(math.Floor(float64(dx / TileXDim)))
	globalR := int(math.Floor(float64(dz / TileZDim)))

	if globalC < 0 || globalC >= res.ChunksW*res.TilesC {
		return TileDesc{}, false
	}
	if globalR < 0 || globalR >= res.ChunksH*res.TilesR {
		return TileDesc{}, false
	}

	return TileDesc{
		ChunkR: globalR / res.TilesR,
		ChunkC: globalC / res.TilesC,
		TileR:  globalR % res.TilesR,
		TileC:  globalC % res.TilesC,
	}, true
}

// RelativeDesc offsets a tile descriptor by whole tiles, walking across chunk
// boundaries. Returns false if the result falls outside the map.
func RelativeDesc(res Resolution, td TileDesc, dc, dr int) (TileDesc, bool) {
	globalR := td.ChunkR*res.TilesR + td.TileR + dr
	globalC := td.ChunkC*res.TilesC + td.TileC + dc

	if globalR < 0 || globalR >= res.ChunksH*res.TilesR {
		return TileDesc{}, false
	}
	if globalC < 0 || globalC >= res.ChunksW*res.TilesC {
		return TileDesc{}, false
	}

	return TileDesc{
		ChunkR: globalR / res.TilesR,
		ChunkC: globalC / res.TilesC,
		TileR:  globalR % res.TilesR,
		TileC:  globalC % res.TilesC,
	}, true
}
