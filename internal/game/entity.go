// Package game holds the simulation-side collaborators the navigation core
// queries: the entity registry with positional lookups, faction diplomacy,
// fog-of-war visibility, and named regions with enter/exit events.
package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// EntityFlags is a bitfield of per-entity properties.
type EntityFlags uint32

const (
	FlagCombatable EntityFlags = 1 << iota // participates in combat targeting
	FlagBuilding                           // static structure with a footprint
	FlagZombie                             // despawned but not yet collected
	FlagMarker                             // invisible scripting marker
)

// Entity is one unit or building known to the world.
type Entity struct {
	UID             uint32
	FactionID       int
	Flags           EntityFlags
	Pos             mgl32.Vec3
	SelectionRadius float32

	// Footprint of building entities, in world units.
	FootprintHalfX float32
	FootprintHalfZ float32
	Rotation       float32 // yaw in radians
}

// World is the navigation-facing view of the game simulation. It owns the
// entity registry and the faction/fog state, and is passed explicitly to the
// systems that need it.
type World struct {
	res    worldmap.Resolution
	mapPos mgl32.Vec3
	ents   map[uint32]*Entity

	diplomacy        [MaxFactions][MaxFactions]DiplomacyState
	playerControlled uint16
	fog              *Fog
}

// NewWorld creates an empty world over the given map.
func NewWorld(res worldmap.Resolution, mapPos mgl32.Vec3) *World {
	return &World{
		res:    res,
		mapPos: mapPos,
		ents:   make(map[uint32]*Entity),
		fog:    newFog(res),
	}
}

// Resolution returns the map resolution the world was created with.
func (w *World) Resolution() worldmap.Resolution { return w.res }

// MapPos returns the world-space map origin.
func (w *World) MapPos() mgl32.Vec3 { return w.mapPos }

// AddEntity registers an entity. An existing entity with the same UID is
// replaced.
func (w *World) AddEntity(ent *Entity) {
	w.ents[ent.UID] = ent
}

// RemoveEntity unregisters the entity with the given UID.
func (w *World) RemoveEntity(uid uint32) {
	delete(w.ents, uid)
}

// EntityForUID returns the entity with the given UID, or nil.
func (w *World) EntityForUID(uid uint32) *Entity {
	return w.ents[uid]
}

// GetXZ returns the XZ position of the entity with the given UID.
func (w *World) GetXZ(uid uint32) mgl32.Vec2 {
	ent := w.ents[uid]
	if ent == nil {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{ent.Pos.X(), ent.Pos.Z()}
}

// EntsInRect returns all entities whose XZ position lies inside the
// axis-aligned rectangle spanned by xzMin and xzMax.
func (w *World) EntsInRect(xzMin, xzMax mgl32.Vec2) []*Entity {
	var out []*Entity
	for _, ent := range w.ents {
		x, z := ent.Pos.X(), ent.Pos.Z()
		if x < xzMin.X() || x > xzMax.X() {
			continue
		}
		if z < xzMin.Y() || z > xzMax.Y() {
			continue
		}
		out = append(out, ent)
	}
	return out
}

// EntsInCircle returns all entities whose XZ position lies inside the disc.
func (w *World) EntsInCircle(center mgl32.Vec2, radius float32) []*Entity {
	var out []*Entity
	for _, ent := range w.ents {
		d := mgl32.Vec2{ent.Pos.X(), ent.Pos.Z()}.Sub(center)
		if d.Dot(d) <= radius*radius {
			out = append(out, ent)
		}
	}
	return out
}

// CurrentOBB returns the entity's oriented footprint in the XZ plane.
// Unit entities get an axis-aligned box of their selection radius.
func (w *World) CurrentOBB(ent *Entity) worldmap.OBB {
	center := mgl32.Vec2{ent.Pos.X(), ent.Pos.Z()}
	if ent.Flags&FlagBuilding == 0 {
		return worldmap.AxisAlignedOBB(center, ent.SelectionRadius, ent.SelectionRadius)
	}

	sin := float32(math.Sin(float64(ent.Rotation)))
	cos := float32(math.Cos(float64(ent.Rotation)))
	return worldmap.OBB{
		Center:      center,
		Axes:        [2]mgl32.Vec2{{cos, sin}, {-sin, cos}},
		HalfLengths: [2]float32{ent.FootprintHalfX, ent.FootprintHalfZ},
	}
}
