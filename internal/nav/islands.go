package nav

// UpdateLocalIslands relabels the chunk-local connectivity of every passable
// tile: two tiles share a local island id exactly when a 4-connected path of
// passable tiles joins them inside this chunk. Impassable tiles get
// IslandNone. Labels start at 0 and are assigned in row-major discovery
// order.
func UpdateLocalIslands(chunk *Chunk) {
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			chunk.LocalIslands[r][c] = IslandNone
		}
	}

	var next uint16
	q := &fifo{tail: -1}

	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			start := Coord{uint8(r), uint8(c)}
			if !chunk.tilePassable(start) || chunk.LocalIslands[r][c] != IslandNone {
				continue
			}

			chunk.LocalIslands[r][c] = next
			q.push(start)

			for q.n > 0 {
				curr := q.pop()
				for _, d := range cardinalDeltas {
					nr := int(curr.R) + d[0]
					nc := int(curr.C) + d[1]
					if nr < 0 || nr >= FieldResR || nc < 0 || nc >= FieldResC {
						continue
					}
					tile := Coord{uint8(nr), uint8(nc)}
					if !chunk.tilePassable(tile) || chunk.LocalIslands[nr][nc] != IslandNone {
						continue
					}
					chunk.LocalIslands[nr][nc] = next
					q.push(tile)
				}
			}
			next++
		}
	}
}

// islandNodes maps each (chunk index, local island id) pair of a layer to a
// dense node index for the union-find pass.
type islandNodes struct {
	index map[uint32]int
	count int
}

func (n *islandNodes) node(chunkIdx int, liid uint16) int {
	key := uint32(chunkIdx)<<16 | uint32(liid)
	if id, ok := n.index[key]; ok {
		return id
	}
	id := n.count
	n.index[key] = id
	n.count++
	return id
}

type unionFind struct {
	parent []int
}

func (u *unionFind) find(x int) int {
	for len(u.parent) <= x {
		u.parent = append(u.parent, len(u.parent))
	}
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// UpdateGlobalIslands relabels the map-wide connectivity of one layer: local
// islands are merged across every portal wherever the two tiles facing each
// other over the shared edge are both passable. Local island labels must be
// current (UpdateLocalIslands) before calling. Global ids are dense and
// stable for a fixed topology but not across topology changes.
func UpdateGlobalIslands(priv *Private, layer Layer) {
	nodes := &islandNodes{index: make(map[uint32]int)}
	uf := &unionFind{}

	for chunkR := 0; chunkR < priv.Height; chunkR++ {
		for chunkC := 0; chunkC < priv.Width; chunkC++ {
			chunk := priv.ChunkAt(layer, chunkR, chunkC)
			chunkIdx := chunkR*priv.Width + chunkC

			for _, port := range chunk.Portals {
				other := port.Connected
				otherChunk := priv.ChunkAt(layer, int(other.Chunk.R), int(other.Chunk.C))
				otherIdx := int(other.Chunk.R)*priv.Width + int(other.Chunk.C)

				for r := port.Endpoints[0].R; r <= port.Endpoints[1].R; r++ {
					for c := port.Endpoints[0].C; c <= port.Endpoints[1].C; c++ {
						fr, fc, ok := facingTile(port, other, int(r), int(c))
						if !ok {
							continue
						}

						tile := Coord{r, c}
						facing := Coord{uint8(fr), uint8(fc)}
						if !chunk.tilePassable(tile) || !otherChunk.tilePassable(facing) {
							continue
						}

						a := nodes.node(chunkIdx, chunk.LocalIslands[r][c])
						b := nodes.node(otherIdx, otherChunk.LocalIslands[fr][fc])
						uf.union(a, b)
					}
				}
			}
		}
	}

	// Compact the union-find roots into dense global ids, then stamp them
	// onto every tile via the tile's local island label.
	globalOf := make(map[int]uint16)
	var next uint16

	for chunkR := 0; chunkR < priv.Height; chunkR++ {
		for chunkC := 0; chunkC < priv.Width; chunkC++ {
			chunk := priv.ChunkAt(layer, chunkR, chunkC)
			chunkIdx := chunkR*priv.Width + chunkC

			for r := 0; r < FieldResR; r++ {
				for c := 0; c < FieldResC; c++ {
					liid := chunk.LocalIslands[r][c]
					if liid == IslandNone {
						chunk.Islands[r][c] = IslandNone
						continue
					}

					root := uf.find(nodes.node(chunkIdx, liid))
					gid, ok := globalOf[root]
					if !ok {
						gid = next
						globalOf[root] = gid
						next++
					}
					chunk.Islands[r][c] = gid
				}
			}
		}
	}
}

// facingTile maps a tile of port's edge to the tile directly across the
// chunk border inside the connected chunk. Returns false for portal tiles
// that do not sit on the shared edge.
func facingTile(port, other *Portal, r, c int) (int, int, bool) {
	switch {
	case other.Chunk.R < port.Chunk.R:
		if r != 0 {
			return 0, 0, false
		}
		return FieldResR - 1, c, true
	case other.Chunk.R > port.Chunk.R:
		if r != FieldResR-1 {
			return 0, 0, false
		}
		return 0, c, true
	case other.Chunk.C < port.Chunk.C:
		if c != 0 {
			return 0, 0, false
		}
		return r, FieldResC - 1, true
	case other.Chunk.C > port.Chunk.C:
		if c != FieldResC-1 {
			return 0, 0, false
		}
		return r, 0, true
	default:
		panic("nav: portal connected chunk is not a cardinal neighbour")
	}
}
