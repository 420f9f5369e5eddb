package nav

// FlowField holds the per-tile movement directions toward a target for one
// chunk. Callers must Init the buffer before first use (or between
// mutually-exclusive target changes); Update never writes partial state on
// success.
type FlowField struct {
	Chunk  Coord
	Target FieldTarget
	Dirs   [FieldResR][FieldResC]FlowDir
}

// FlowFieldInit resets the field to DirNone everywhere and stamps the chunk.
func FlowFieldInit(chunkCoord Coord, out *FlowField) {
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			out.Dirs[r][c] = DirNone
		}
	}
	out.Chunk = chunkCoord
}

// flowDir picks the 8-neighbour with the smallest integration value.
// Diagonal directions are allowed only when both the side tiles sharing an
// edge with the corner tile are passable, so that the flow vector never
// moves an entity from a passable region into an impassable one.
// Cardinals win ties over diagonals.
func flowDir(intf *integrationField, coord Coord) FlowDir {
	r := int(coord.R)
	c := int(coord.C)
	minCost := infinity

	if r > 0 {
		minCost = min(minCost, intf[r-1][c])
	}
	if r < FieldResR-1 {
		minCost = min(minCost, intf[r+1][c])
	}
	if c > 0 {
		minCost = min(minCost, intf[r][c-1])
	}
	if c < FieldResC-1 {
		minCost = min(minCost, intf[r][c+1])
	}

	if r > 0 && c > 0 &&
		intf[r-1][c] < infinity && intf[r][c-1] < infinity {
		minCost = min(minCost, intf[r-1][c-1])
	}
	if r > 0 && c < FieldResC-1 &&
		intf[r-1][c] < infinity && intf[r][c+1] < infinity {
		minCost = min(minCost, intf[r-1][c+1])
	}
	if r < FieldResR-1 && c > 0 &&
		intf[r+1][c] < infinity && intf[r][c-1] < infinity {
		minCost = min(minCost, intf[r+1][c-1])
	}
	if r < FieldResR-1 && c < FieldResC-1 &&
		intf[r+1][c] < infinity && intf[r][c+1] < infinity {
		minCost = min(minCost, intf[r+1][c+1])
	}

	if minCost == infinity {
		panic("nav: flowDir on a tile with no reachable neighbour")
	}

	switch {
	case r > 0 && intf[r-1][c] == minCost:
		return DirN
	case r < FieldResR-1 && intf[r+1][c] == minCost:
		return DirS
	case c < FieldResC-1 && intf[r][c+1] == minCost:
		return DirE
	case c > 0 && intf[r][c-1] == minCost:
		return DirW
	case r > 0 && c > 0 && intf[r-1][c-1] == minCost:
		return DirNW
	case r > 0 && c < FieldResC-1 && intf[r-1][c+1] == minCost:
		return DirNE
	case r < FieldResR-1 && c > 0 && intf[r+1][c-1] == minCost:
		return DirSW
	case r < FieldResR-1 && c < FieldResC-1 && intf[r+1][c+1] == minCost:
		return DirSE
	default:
		panic("nav: flowDir found no neighbour matching the minimum")
	}
}

// buildFlow derives directions from the integration field. Unreached tiles
// are left untouched: they may belong to other islands within the chunk that
// a different update pass has already populated.
func buildFlow(intf *integrationField, inout *FlowField) {
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			if intf[r][c] == infinity {
				continue
			}
			if intf[r][c] == 0 {
				inout.Dirs[r][c] = DirNone
				continue
			}
			inout.Dirs[r][c] = flowDir(intf, Coord{uint8(r), uint8(c)})
		}
	}
}

// fixupPortalEdges points every seed tile across the chunk boundary, in the
// cardinal direction of the portal's connected chunk, so a unit standing on
// a portal tile crosses over instead of stopping.
func fixupPortalEdges(intf *integrationField, inout *FlowField, port *Portal) {
	up := port.Connected.Chunk.R < port.Chunk.R
	down := port.Connected.Chunk.R > port.Chunk.R
	left := port.Connected.Chunk.C < port.Chunk.C
	right := port.Connected.Chunk.C > port.Chunk.C

	var dir FlowDir
	switch {
	case up && !down && !left && !right:
		dir = DirN
	case down && !up && !left && !right:
		dir = DirS
	case left && !up && !down && !right:
		dir = DirW
	case right && !up && !down && !left:
		dir = DirE
	default:
		panic("nav: portal connected chunk is not a cardinal neighbour")
	}

	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			if intf[r][c] == 0 {
				inout.Dirs[r][c] = dir
			}
		}
	}
}

// fixup applies the portal-edge overrides for portal-flavored targets.
func fixup(target FieldTarget, intf *integrationField, inout *FlowField, chunk *Chunk) {
	if target.Type == TargetPortal {
		fixupPortalEdges(intf, inout, target.Port)
	}
	if target.Type == TargetPortalMask {
		for i, port := range chunk.Portals {
			if target.PortalMask&(uint64(1)<<i) == 0 {
				continue
			}
			fixupPortalEdges(intf, inout, port)
		}
	}
}

// FlowFieldUpdate computes the flow field of one chunk toward the target.
// The entity query may be nil for faction-blind, non-enemies passes.
func FlowFieldUpdate(
	chunkCoord Coord,
	priv *Private,
	q EntityQuery,
	factionID int,
	layer Layer,
	target FieldTarget,
	inoutFlow *FlowField,
) {
	chunk := priv.ChunkAt(layer, int(chunkCoord.R), int(chunkCoord.C))
	enemies := enemiesMask(q, factionID)

	intf := newIntegrationField()
	frontier := newPqueue()

	for _, curr := range initialFrontier(target, chunk, priv, q, false, factionID) {
		frontier.push(0, curr)
		intf[curr.R][curr.C] = 0
	}

	inoutFlow.Target = target
	buildIntegration(frontier, chunk, factionID, enemies, intf)
	buildFlow(intf, inoutFlow)
	fixup(target, intf, inoutFlow, chunk)
}
