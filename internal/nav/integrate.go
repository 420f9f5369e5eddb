package nav

// integrationField accumulates movement cost from the seed frontier.
// Unreached tiles stay at +Inf.
type integrationField [FieldResR][FieldResC]float32

func newIntegrationField() *integrationField {
	f := &integrationField{}
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			f[r][c] = infinity
		}
	}
	return f
}

var cardinalDeltas = [4][2]int{
	{0, -1},
	{0, +1},
	{-1, 0},
	{+1, 0},
}

// neighboursGrid collects the in-bounds cardinal neighbours of a tile with
// their step costs. Diagonals are deliberately excluded from expansion; they
// are reconsidered only at flow derivation. Tiles under dynamic blockers
// keep their passability (per onlyPassable) but cost CostImpassable.
func neighboursGrid(
	chunk *Chunk,
	coord Coord,
	onlyPassable bool,
	factionID int,
	enemies uint16,
) (ns [4]Coord, costs [4]uint8, n int) {
	for _, d := range cardinalDeltas {
		absR := int(coord.R) + d[0]
		absC := int(coord.C) + d[1]
		if absR < 0 || absR >= FieldResR || absC < 0 || absC >= FieldResC {
			continue
		}

		tile := Coord{uint8(absR), uint8(absC)}
		if onlyPassable && !chunk.passable(tile, factionID, enemies) {
			continue
		}

		ns[n] = tile
		costs[n] = chunk.CostBase[absR][absC]
		if chunk.Blockers[absR][absC] > 0 {
			costs[n] = CostImpassable
		}
		n++
	}
	return ns, costs, n
}

// buildIntegration runs the Dijkstra wavefront until the frontier drains,
// relaxing passable cardinal neighbours.
func buildIntegration(frontier *pqueue, chunk *Chunk, factionID int, enemies uint16, inout *integrationField) {
	for frontier.size() > 0 {
		curr := frontier.pop()

		ns, costs, n := neighboursGrid(chunk, curr, true, factionID, enemies)
		for i := 0; i < n; i++ {
			total := inout[curr.R][curr.C] + float32(costs[i])
			if total < inout[ns[i].R][ns[i].C] {
				inout[ns[i].R][ns[i].C] = total
				if !frontier.contains(ns[i]) {
					frontier.push(total, ns[i])
				}
			}
		}
	}
}

// buildIntegrationNonpass is the inverse-mode wavefront: only impassable
// neighbours are relaxed, producing a "distance from the nearest passable
// tile" field over a blocked island.
func buildIntegrationNonpass(frontier *pqueue, chunk *Chunk, factionID int, enemies uint16, inout *integrationField) {
	for frontier.size() > 0 {
		curr := frontier.pop()

		ns, costs, n := neighboursGrid(chunk, curr, false, factionID, enemies)
		for i := 0; i < n; i++ {
			if chunk.tilePassable(ns[i]) {
				continue
			}

			total := inout[curr.R][curr.C] + float32(costs[i])
			if total < inout[ns[i].R][ns[i].C] {
				inout[ns[i].R][ns[i].C] = total
				if !frontier.contains(ns[i]) {
					frontier.push(total, ns[i])
				}
			}
		}
	}
}
