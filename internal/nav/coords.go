// Package nav implements the chunked flow-field navigation core: per-chunk
// integration fields built by Dijkstra expansion from a target frontier,
// 8-way flow direction derivation with corner safety, and line-of-sight
// fields with wavefront-blocked shadow lines stitched across chunk borders.
package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Per-chunk field resolution.
const (
	FieldResR = 64
	FieldResC = 64
)

const (
	// CostImpassable is the sentinel cost of a tile that can never be crossed.
	CostImpassable uint8 = 255

	// IslandNone marks tiles without an island label.
	IslandNone uint16 = 0xFFFF

	// MaxPortalsPerChunk bounds the outgoing portals of a single chunk so a
	// portal selection fits a 64-bit mask.
	MaxPortalsPerChunk = 64

	// SearchBuffer inflates the chunk bounds when querying for enemy
	// entities, in world units.
	SearchBuffer float32 = 64.0
)

// Layer selects a navigation layer of the map.
type Layer int

const (
	LayerGround Layer = iota
	LayerAir
	NavLayersMax
)

// Coord addresses a tile within a chunk (or a chunk within the map).
type Coord struct {
	R uint8
	C uint8
}

// manhattanDist is the L1 distance between two coords.
func manhattanDist(a, b Coord) int {
	dr := int(a.R) - int(b.R)
	if dr < 0 {
		dr = -dr
	}
	dc := int(a.C) - int(b.C)
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// FlowDir is the per-tile movement direction index.
type FlowDir uint8

const (
	DirNone FlowDir = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

const invSqrt2 = 0.70710678

// dirVecs maps each FlowDir to its world-space XZ unit vector. World X
// decreases with increasing column, so east carries a negative X component.
var dirVecs = [9]mgl32.Vec2{
	DirNone: {0, 0},
	DirN:    {0, -1},
	DirNE:   {-invSqrt2, -invSqrt2},
	DirE:    {-1, 0},
	DirSE:   {-invSqrt2, invSqrt2},
	DirS:    {0, 1},
	DirSW:   {invSqrt2, invSqrt2},
	DirW:    {1, 0},
	DirNW:   {invSqrt2, -invSqrt2},
}

// DirVec returns the world-space XZ unit vector for a flow direction.
func DirVec(d FlowDir) mgl32.Vec2 {
	return dirVecs[d]
}

func (d FlowDir) String() string {
	switch d {
	case DirNone:
		return "NONE"
	case DirN:
		return "N"
	case DirNE:
		return "NE"
	case DirE:
		return "E"
	case DirSE:
		return "SE"
	case DirS:
		return "S"
	case DirSW:
		return "SW"
	case DirW:
		return "W"
	case DirNW:
		return "NW"
	default:
		return "?"
	}
}

// infinity is the "not yet relaxed / unreachable" integration value.
var infinity = float32(math.Inf(1))
