package nav

import (
	"github.com/Garsondee/Field-Command/internal/game"
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// Portal is a run of passable tiles along one chunk edge, linked to a
// matching run in the neighboring chunk. Endpoints are inclusive and
// axis-aligned. Portal tiles are always passable in the base cost grid.
type Portal struct {
	Chunk     Coord
	Endpoints [2]Coord
	Connected *Portal
}

// Chunk is the static navigation data of one chunk on one layer.
type Chunk struct {
	CostBase [FieldResR][FieldResC]uint8
	Blockers [FieldResR][FieldResC]uint16
	Factions [game.MaxFactions][FieldResR][FieldResC]bool

	// Islands carries the map-global connectivity label of each tile,
	// LocalIslands the chunk-local one. IslandNone for impassable tiles.
	Islands      [FieldResR][FieldResC]uint16
	LocalIslands [FieldResR][FieldResC]uint16

	Portals []*Portal
}

// NewChunk returns a chunk with every tile traversable at cost 1.
func NewChunk() *Chunk {
	ch := &Chunk{}
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			ch.CostBase[r][c] = 1
			ch.Islands[r][c] = IslandNone
			ch.LocalIslands[r][c] = IslandNone
		}
	}
	return ch
}

// tilePassable reports whether a tile can be crossed: traversable base cost
// and no dynamic blockers.
func (ch *Chunk) tilePassable(tile Coord) bool {
	if ch.CostBase[tile.R][tile.C] == CostImpassable {
		return false
	}
	return ch.Blockers[tile.R][tile.C] == 0
}

// tilePassableNoEnemies is the faction-aware variant: a tile occupied only
// by enemy factions is treated as passable regardless of blockers, since the
// occupants will be fought through rather than pathed around.
func (ch *Chunk) tilePassableNoEnemies(tile Coord, enemies uint16) bool {
	if ch.CostBase[tile.R][tile.C] == CostImpassable {
		return false
	}

	enemiesOnly := true
	for i := 0; i < game.MaxFactions; i++ {
		if ch.Factions[i][tile.R][tile.C] && enemies&(1<<i) == 0 {
			enemiesOnly = false
			break
		}
	}
	if enemiesOnly {
		return true
	}

	return ch.Blockers[tile.R][tile.C] == 0
}

// passable dispatches on whether a faction id is in play.
func (ch *Chunk) passable(tile Coord, factionID int, enemies uint16) bool {
	if factionID == game.FactionIDNone {
		return ch.tilePassable(tile)
	}
	return ch.tilePassableNoEnemies(tile, enemies)
}

// Private is the navigation-private map data: per-layer chunk grids.
type Private struct {
	Width  int // chunks along the column axis
	Height int // chunks along the row axis
	Chunks [NavLayersMax][]*Chunk
}

// NewPrivate allocates chunk grids for every layer.
func NewPrivate(width, height int) *Private {
	p := &Private{Width: width, Height: height}
	for l := range p.Chunks {
		p.Chunks[l] = make([]*Chunk, width*height)
		for i := range p.Chunks[l] {
			p.Chunks[l][i] = NewChunk()
		}
	}
	return p
}

// ChunkAt returns the chunk at (r, c) on the given layer.
func (p *Private) ChunkAt(layer Layer, r, c int) *Chunk {
	return p.Chunks[layer][r*p.Width+c]
}

// Resolution returns the worldmap resolution matching this nav data.
func (p *Private) Resolution() worldmap.Resolution {
	return worldmap.Resolution{
		ChunksW: p.Width,
		ChunksH: p.Height,
		TilesR:  FieldResR,
		TilesC:  FieldResC,
	}
}
