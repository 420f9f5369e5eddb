package nav

// fifo is a fixed-capacity ring queue of tile coords for BFS passes.
type fifo struct {
	buf  [FieldResR * FieldResC]Coord
	head int
	tail int
	n    int
}

func (q *fifo) push(c Coord) {
	q.tail = (q.tail + 1) % len(q.buf)
	q.buf[q.tail] = c
	q.n++
}

func (q *fifo) pop() Coord {
	ret := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return ret
}

// passableFrontier returns every pathable tile surrounding the impassable
// island that start belongs to, found by breadth-first expansion outward
// from start.
func passableFrontier(chunk *Chunk, start Coord) []Coord {
	if chunk.tilePassable(start) {
		panic("nav: passableFrontier called from a pathable tile")
	}

	var out []Coord
	var visited [FieldResR][FieldResC]bool
	q := &fifo{tail: -1}

	q.push(start)
	visited[start.R][start.C] = true

	for q.n > 0 {
		curr := q.pop()

		if chunk.tilePassable(curr) {
			out = append(out, curr)
			continue
		}

		for _, d := range cardinalDeltas {
			nr := int(curr.R) + d[0]
			nc := int(curr.C) + d[1]
			if nr < 0 || nr >= FieldResR || nc < 0 || nc >= FieldResC {
				continue
			}
			if visited[nr][nc] {
				continue
			}
			visited[nr][nc] = true
			q.push(Coord{uint8(nr), uint8(nc)})
		}
	}
	return out
}

// closestTilesLocal returns the pathable tiles of the requested local island
// nearest to target, all at the same minimal Manhattan distance. Candidates
// are found by BFS rings around target; since the Manhattan distance only
// grows outward, the search stops one ring past the first hit. IslandNone
// for either island id disables that filter.
func closestTilesLocal(chunk *Chunk, target Coord, localIID, globalIID uint16) []Coord {
	var out []Coord
	var visited [FieldResR][FieldResC]bool
	q := &fifo{tail: -1}

	firstDist := -1

	q.push(target)
	visited[target.R][target.C] = true

	for q.n > 0 {
		curr := q.pop()

		for _, d := range cardinalDeltas {
			nr := int(curr.R) + d[0]
			nc := int(curr.C) + d[1]
			if nr < 0 || nr >= FieldResR || nc < 0 || nc >= FieldResC {
				continue
			}
			if visited[nr][nc] {
				continue
			}
			visited[nr][nc] = true
			q.push(Coord{uint8(nr), uint8(nc)})
		}

		dist := manhattanDist(target, curr)
		if firstDist > -1 && dist > firstDist {
			break
		}
		if chunk.CostBase[curr.R][curr.C] == CostImpassable {
			continue
		}
		if chunk.Blockers[curr.R][curr.C] > 0 {
			continue
		}
		if globalIID != IslandNone && chunk.Islands[curr.R][curr.C] != globalIID {
			continue
		}
		if localIID != IslandNone && chunk.LocalIslands[curr.R][curr.C] != localIID {
			continue
		}

		if firstDist == -1 {
			firstDist = dist
		}
		out = append(out, curr)
	}
	return out
}

// FlowFieldUpdateToNearestPathable fills in directions guiding units off the
// blocked island containing start onto the nearest pathable tiles. Only the
// blocked tiles receive directions; already-pathable tiles are untouched.
func FlowFieldUpdateToNearestPathable(
	chunk *Chunk,
	start Coord,
	factionID int,
	inoutFlow *FlowField,
) {
	intf := newIntegrationField()
	frontier := newPqueue()

	for _, curr := range passableFrontier(chunk, start) {
		frontier.push(0, curr)
		intf[curr.R][curr.C] = 0
	}

	buildIntegrationNonpass(frontier, chunk, factionID, 0, intf)

	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			if intf[r][c] == infinity || intf[r][c] == 0 {
				continue
			}
			inoutFlow.Dirs[r][c] = flowDir(intf, Coord{uint8(r), uint8(c)})
		}
	}
}

// FlowFieldUpdateIslandToNearest recomputes the field of inoutFlow's chunk
// for units stranded on a different local island than the target: the seed
// frontier is projected onto the caller's local island at the minimal
// Manhattan distance, so the resulting field walks the unit as close to the
// unreachable target as its island allows. A fully blocked-off target is
// retried with blockers ignored.
func FlowFieldUpdateIslandToNearest(
	localIID uint16,
	priv *Private,
	q EntityQuery,
	layer Layer,
	factionID int,
	inoutFlow *FlowField,
) {
	chunk := priv.ChunkAt(layer, int(inoutFlow.Chunk.R), int(inoutFlow.Chunk.C))
	enemies := enemiesMask(q, factionID)

	init := initialFrontier(inoutFlow.Target, chunk, priv, q, false, factionID)
	if len(init) == 0 {
		init = initialFrontier(inoutFlow.Target, chunk, priv, q, true, factionID)
	}

	// Project each seed onto the caller's island, keeping only the
	// projections at the overall minimal distance. Seeds already on the
	// island stay at distance zero. Duplicates are fine.
	minDist := int(^uint(0) >> 1)
	var seeds []Coord

	for _, curr := range init {
		giid := chunk.Islands[curr.R][curr.C]
		liid := chunk.LocalIslands[curr.R][curr.C]

		if liid == localIID {
			if minDist > 0 {
				seeds = seeds[:0]
			}
			minDist = 0
			seeds = append(seeds, curr)
			continue
		}

		closest := closestTilesLocal(chunk, curr, localIID, giid)
		if len(closest) == 0 {
			continue
		}

		dist := manhattanDist(closest[0], curr)
		if dist < minDist {
			minDist = dist
			seeds = seeds[:0]
		}
		if dist > minDist {
			continue
		}
		seeds = append(seeds, closest...)
	}

	intf := newIntegrationField()
	frontier := newPqueue()

	for _, curr := range seeds {
		frontier.push(0, curr)
		intf[curr.R][curr.C] = 0
	}

	buildIntegration(frontier, chunk, factionID, enemies, intf)
	buildFlow(intf, inoutFlow)
	fixup(inoutFlow.Target, intf, inoutFlow, chunk)
}
