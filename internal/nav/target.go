package nav

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/game"
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// EntityQuery is the slice of the game simulation the core consults: the
// positional entity index, diplomacy, and fog visibility. *game.World
// implements it.
type EntityQuery interface {
	EntsInRect(xzMin, xzMax mgl32.Vec2) []*game.Entity
	GetXZ(uid uint32) mgl32.Vec2
	CurrentOBB(ent *game.Entity) worldmap.OBB
	EnemyFactions(factionID int) uint16
	DiplomacyState(a, b int) (game.DiplomacyState, bool)
	PlayerControlledMask() uint16
	FogObjVisible(mask uint16, obb worldmap.OBB) bool
}

// TargetType tags the FieldTarget variants.
type TargetType uint8

const (
	TargetTile TargetType = iota
	TargetPortal
	TargetPortalMask
	TargetEnemies
)

// EnemiesDesc parameterizes the "enemies within a chunk" target.
type EnemiesDesc struct {
	Chunk     Coord
	MapPos    mgl32.Vec3
	FactionID int
}

// FieldTarget describes what a flow field leads to: a tile, a portal, a
// selection of portals, or the enemies inside a chunk.
type FieldTarget struct {
	Type       TargetType
	Tile       Coord
	Port       *Portal
	PortalMask uint64
	Enemies    EnemiesDesc
}

// TileTarget targets a single tile of the current chunk.
func TileTarget(tile Coord) FieldTarget {
	return FieldTarget{Type: TargetTile, Tile: tile}
}

// PortalTarget targets one portal of the current chunk.
func PortalTarget(port *Portal) FieldTarget {
	return FieldTarget{Type: TargetPortal, Port: port}
}

// PortalMaskTarget targets every portal whose index bit is set in mask.
func PortalMaskTarget(mask uint64) FieldTarget {
	return FieldTarget{Type: TargetPortalMask, PortalMask: mask}
}

// EnemiesTarget targets all visible war-faction enemies inside a chunk.
func EnemiesTarget(chunk Coord, mapPos mgl32.Vec3, factionID int) FieldTarget {
	return FieldTarget{Type: TargetEnemies, Enemies: EnemiesDesc{chunk, mapPos, factionID}}
}

// enemiesMask resolves the at-war faction mask for a faction id, tolerating
// a nil query for faction-blind passes.
func enemiesMask(q EntityQuery, factionID int) uint16 {
	if factionID == game.FactionIDNone || q == nil {
		return 0
	}
	return q.EnemyFactions(factionID)
}

// initialFrontier resolves a target into the set of passable seed tiles of
// the chunk. With ignoreblock, blocked tiles are seeded anyway.
func initialFrontier(
	target FieldTarget,
	chunk *Chunk,
	priv *Private,
	q EntityQuery,
	ignoreblock bool,
	factionID int,
) []Coord {
	switch target.Type {
	case TargetTile:
		return tileInitialFrontier(target.Tile, chunk, ignoreblock, factionID, enemiesMask(q, factionID))
	case TargetPortal:
		return portalInitialFrontier(target.Port, chunk, ignoreblock, factionID, enemiesMask(q, factionID))
	case TargetPortalMask:
		return portalMaskInitialFrontier(target.PortalMask, chunk, ignoreblock, factionID, enemiesMask(q, factionID))
	case TargetEnemies:
		return enemiesInitialFrontier(target.Enemies, priv, q)
	default:
		panic(fmt.Sprintf("nav: unknown target type %d", target.Type))
	}
}

func tileInitialFrontier(tile Coord, chunk *Chunk, ignoreblock bool, factionID int, enemies uint16) []Coord {
	if ignoreblock || chunk.passable(tile, factionID, enemies) {
		return []Coord{tile}
	}
	return nil
}

func portalInitialFrontier(port *Portal, chunk *Chunk, ignoreblock bool, factionID int, enemies uint16) []Coord {
	var out []Coord
	for r := port.Endpoints[0].R; r <= port.Endpoints[1].R; r++ {
		for c := port.Endpoints[0].C; c <= port.Endpoints[1].C; c++ {
			if chunk.CostBase[r][c] == CostImpassable {
				panic("nav: portal tile with impassable base cost")
			}
			tile := Coord{r, c}
			if !ignoreblock && !chunk.passable(tile, factionID, enemies) {
				continue
			}
			out = append(out, tile)
		}
	}
	return out
}

func portalMaskInitialFrontier(mask uint64, chunk *Chunk, ignoreblock bool, factionID int, enemies uint16) []Coord {
	var out []Coord
	for i, port := range chunk.Portals {
		if mask&(uint64(1)<<i) == 0 {
			continue
		}
		out = append(out, portalInitialFrontier(port, chunk, ignoreblock, factionID, enemies)...)
	}
	return out
}

// enemyEnt reports whether ent is a valid enemy seed for factionID: a
// combatable entity of a faction at war, visible under the union of the
// player-controlled fog masks.
func enemyEnt(q EntityQuery, factionID int, ent *game.Entity) bool {
	if ent.FactionID == factionID {
		return false
	}
	if ent.Flags&game.FlagCombatable == 0 {
		return false
	}

	ds, ok := q.DiplomacyState(factionID, ent.FactionID)
	if !ok || ds != game.DiplomacyWar {
		return false
	}

	return q.FogObjVisible(q.PlayerControlledMask(), q.CurrentOBB(ent))
}

// enemiesInitialFrontier marks every tile of the chunk under a hostile
// entity footprint and emits them in row-major order.
func enemiesInitialFrontier(desc EnemiesDesc, priv *Private, q EntityQuery) []Coord {
	res := priv.Resolution()
	bounds := worldmap.ChunkBounds(res, desc.MapPos, int(desc.Chunk.R), int(desc.Chunk.C))
	xMin, xMax := bounds.X-bounds.Width, bounds.X
	zMin, zMax := bounds.Z, bounds.Z+bounds.Height

	ents := q.EntsInRect(
		mgl32.Vec2{xMin - SearchBuffer, zMin - SearchBuffer},
		mgl32.Vec2{xMax + SearchBuffer, zMax + SearchBuffer},
	)

	var hasEnemy [FieldResR][FieldResC]bool
	for _, ent := range ents {
		if !enemyEnt(q, desc.FactionID, ent) {
			continue
		}

		var tds []worldmap.TileDesc
		if ent.Flags&game.FlagBuilding != 0 {
			tds = worldmap.TilesUnderOBB(res, desc.MapPos, q.CurrentOBB(ent))
		} else {
			tds = worldmap.TilesUnderCircle(res, q.GetXZ(ent.UID), ent.SelectionRadius, desc.MapPos)
		}

		for _, td := range tds {
			if td.ChunkR != int(desc.Chunk.R) || td.ChunkC != int(desc.Chunk.C) {
				continue
			}
			hasEnemy[td.TileR][td.TileC] = true
		}
	}

	var out []Coord
	for r := 0; r < FieldResR; r++ {
		for c := 0; c < FieldResC; c++ {
			if hasEnemy[r][c] {
				out = append(out, Coord{uint8(r), uint8(c)})
			}
		}
	}
	return out
}
