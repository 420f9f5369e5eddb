package nav

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// LOSTile is the visibility state of one tile.
type LOSTile struct {
	Visible          bool
	WavefrontBlocked bool
}

// LOSField is the per-chunk visibility field toward a destination tile.
type LOSField struct {
	Chunk Coord
	Field [FieldResR][FieldResC]LOSTile
}

// isLOSCorner reports whether a blocked cell sits at a passable/impassable
// asymmetry in either axis: exactly one of the two opposing neighbours
// blocked. Such cells are the sources of shadow lines.
func isLOSCorner(cell Coord, chunk *Chunk) bool {
	r := int(cell.R)
	c := int(cell.C)

	blocked := func(r, c int) bool {
		return chunk.CostBase[r][c] == CostImpassable || chunk.Blockers[r][c] > 0
	}

	if r > 0 && r < FieldResR-1 {
		if blocked(r-1, c) != blocked(r+1, c) {
			return true
		}
	}
	if c > 0 && c < FieldResC-1 {
		if blocked(r, c-1) != blocked(r, c+1) {
			return true
		}
	}
	return false
}

// createWavefrontBlockedLine walks a Bresenham line from the corner tile
// away from the target until it leaves the field, marking every visited tile
// wavefront-blocked. The slope is taken between the world-space centers of
// the target and corner tiles and quantized to integer deltas at 3 decimal
// digits of precision.
func createWavefrontBlockedLine(
	target worldmap.TileDesc,
	corner worldmap.TileDesc,
	priv *Private,
	mapPos mgl32.Vec3,
	outLOS *LOSField,
) {
	res := priv.Resolution()

	targetCenter := worldmap.TileBounds(res, mapPos, target).Center()
	cornerCenter := worldmap.TileBounds(res, mapPos, corner).Center()

	slope := targetCenter.Sub(cornerCenter).Normalize()

	dx := abs(int(slope.X() * 1000))
	dy := -abs(int(slope.Y() * 1000))
	sx := 1
	if slope.X() <= 0 {
		sx = -1
	}
	sy := 1
	if slope.Y() >= 0 {
		sy = -1
	}
	err := dx + dy

	r := int(corner.TileR)
	c := int(corner.TileC)
	for {
		outLOS.Field[r][c].WavefrontBlocked = true

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c += sx
		}
		if e2 <= dx {
			err += dx
			r += sy
		}

		if r < 0 || r >= FieldResR || c < 0 || c >= FieldResC {
			break
		}
	}
}

// padWavefront clears visibility in the 3x3 neighbourhood of every
// wavefront-blocked cell. The conservative one-tile border guarantees that
// every tile left visible can raycast to the destination without crossing
// impassable terrain, which the movement code relies on.
func padWavefront(outLOS *LOSField) {
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			if !outLOS.Field[r][c].WavefrontBlocked {
				continue
			}
			for rr := r - 1; rr <= r+1; rr++ {
				for cc := c - 1; cc <= c+1; cc++ {
					if rr < 0 || rr >= FieldResR || cc < 0 || cc >= FieldResC {
						continue
					}
					outLOS.Field[rr][cc].Visible = false
				}
			}
		}
	}
}

// losNeighbours collects cardinal neighbours for the LOS wavefront: cells
// already on a shadow line are skipped, impassable cells carry
// CostImpassable.
func losNeighbours(
	chunk *Chunk,
	los *LOSField,
	factionID int,
	enemies uint16,
	coord Coord,
) (ns [4]Coord, costs [4]uint8, n int) {
	for _, d := range cardinalDeltas {
		absR := int(coord.R) + d[0]
		absC := int(coord.C) + d[1]
		if absR < 0 || absR >= FieldResR || absC < 0 || absC >= FieldResC {
			continue
		}
		if los.Field[absR][absC].WavefrontBlocked {
			continue
		}

		tile := Coord{uint8(absR), uint8(absC)}
		ns[n] = tile
		costs[n] = chunk.CostBase[absR][absC]
		if !chunk.passable(tile, factionID, enemies) {
			costs[n] = CostImpassable
		}
		n++
	}
	return ns, costs, n
}

// LOSFieldCreate computes the visibility field of one chunk on the path to
// the destination tile. For the destination chunk the wavefront seeds at the
// target tile; for any other chunk it inherits the shared edge of the
// predecessor chunk's already-computed field (prevLOS), re-emitting shadow
// lines from inherited blocked cells so the shadows stay seamless across
// chunk borders.
func LOSFieldCreate(
	id DestID,
	chunkCoord Coord,
	target worldmap.TileDesc,
	priv *Private,
	q EntityQuery,
	mapPos mgl32.Vec3,
	outLOS *LOSField,
	prevLOS *LOSField,
) {
	factionID := DestFactionID(id)
	enemies := enemiesMask(q, factionID)
	chunk := priv.ChunkAt(DestLayer(id), int(chunkCoord.R), int(chunkCoord.C))

	outLOS.Chunk = chunkCoord
	outLOS.Field = [FieldResR][FieldResC]LOSTile{}

	intf := newIntegrationField()
	frontier := newPqueue()

	if int(chunkCoord.R) == target.ChunkR && int(chunkCoord.C) == target.ChunkC {
		// Destination chunk: seed at the target tile itself.
		if prevLOS != nil {
			panic("nav: destination chunk must not have a predecessor LOS field")
		}
		frontier.push(0, Coord{uint8(target.TileR), uint8(target.TileC)})
		intf[target.TileR][target.TileC] = 0
	} else {
		seedSharedEdge(chunkCoord, target, priv, mapPos, outLOS, prevLOS, intf, frontier)
	}

	for frontier.size() > 0 {
		curr := frontier.pop()

		ns, costs, n := losNeighbours(chunk, outLOS, factionID, enemies, curr)
		for i := 0; i < n; i++ {
			nr, nc := int(ns[i].R), int(ns[i].C)
			if costs[i] == CostImpassable {
				if !isLOSCorner(ns[i], chunk) {
					continue
				}
				corner := worldmap.TileDesc{
					ChunkR: int(chunkCoord.R), ChunkC: int(chunkCoord.C),
					TileR: nr, TileC: nc,
				}
				createWavefrontBlockedLine(target, corner, priv, mapPos, outLOS)
				continue
			}

			newCost := intf[curr.R][curr.C] + 1
			outLOS.Field[nr][nc].Visible = true

			if newCost < intf[nr][nc] {
				intf[nr][nc] = newCost
				if !frontier.contains(ns[i]) {
					frontier.push(newCost, ns[i])
				}
			}
		}
	}

	padWavefront(outLOS)
}

// seedSharedEdge copies the flags along the edge shared with the predecessor
// chunk: inherited blocked cells re-emit shadow lines, inherited visible
// cells seed the wavefront at zero.
func seedSharedEdge(
	chunkCoord Coord,
	target worldmap.TileDesc,
	priv *Private,
	mapPos mgl32.Vec3,
	outLOS *LOSField,
	prevLOS *LOSField,
	intf *integrationField,
	frontier *pqueue,
) {
	if prevLOS == nil {
		panic("nav: non-destination chunk requires the predecessor LOS field")
	}

	horizontal := false
	currEdge := 0
	prevEdge := 0
	switch {
	case prevLOS.Chunk.R < chunkCoord.R:
		horizontal, currEdge, prevEdge = false, 0, FieldResR-1
	case prevLOS.Chunk.R > chunkCoord.R:
		horizontal, currEdge, prevEdge = false, FieldResR-1, 0
	case prevLOS.Chunk.C < chunkCoord.C:
		horizontal, currEdge, prevEdge = true, 0, FieldResC-1
	case prevLOS.Chunk.C > chunkCoord.C:
		horizontal, currEdge, prevEdge = true, FieldResC-1, 0
	default:
		panic("nav: predecessor LOS chunk is not adjacent")
	}

	seed := func(r, c int) {
		td := worldmap.TileDesc{
			ChunkR: int(chunkCoord.R), ChunkC: int(chunkCoord.C),
			TileR: r, TileC: c,
		}
		if outLOS.Field[r][c].WavefrontBlocked {
			createWavefrontBlockedLine(target, td, priv, mapPos, outLOS)
		}
		if outLOS.Field[r][c].Visible {
			frontier.push(0, Coord{uint8(r), uint8(c)})
			intf[r][c] = 0
		}
	}

	if horizontal {
		for r := 0; r < FieldResR; r++ {
			outLOS.Field[r][currEdge] = prevLOS.Field[r][prevEdge]
			seed(r, currEdge)
		}
	} else {
		for c := 0; c < FieldResC; c++ {
			outLOS.Field[currEdge][c] = prevLOS.Field[prevEdge][c]
			seed(currEdge, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
