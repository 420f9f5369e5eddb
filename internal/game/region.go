package game

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// epsilon below which a region move is treated as a no-op.
const regionMoveEpsilon = 1.0 / 1024

type regionType uint8

const (
	regionCircle regionType = iota
	regionRectangle
)

// Region is a named 2D area tracking which entities currently occupy it.
type Region struct {
	typ    regionType
	pos    mgl32.Vec2
	radius float32 // circle
	xlen   float32 // rectangle
	zlen   float32 // rectangle

	curr []uint32
	prev []uint32
}

// Regions is the registry of named regions. Membership changes surface as
// RegionEvents from Update, drained once per tick by the caller.
type Regions struct {
	world   *World
	regions map[string]*Region

	// Per-chunk lists of region names whose area touches the chunk,
	// making a poor man's 2-level tree.
	intersecting [][]string
	dirty        map[string]struct{}
	events       []RegionEvent
}

// NewRegions creates an empty region registry over the world's map.
func NewRegions(world *World) *Regions {
	res := world.Resolution()
	return &Regions{
		world:        world,
		regions:      make(map[string]*Region),
		intersecting: make([][]string, res.ChunksW*res.ChunksH),
		dirty:        make(map[string]struct{}),
	}
}

// AddCircle registers a circular region. Returns false on a name collision.
func (rs *Regions) AddCircle(name string, pos mgl32.Vec2, radius float32) bool {
	return rs.add(name, &Region{typ: regionCircle, pos: pos, radius: radius})
}

// AddRectangle registers a rectangular region centered on pos. Returns false
// on a name collision.
func (rs *Regions) AddRectangle(name string, pos mgl32.Vec2, xlen, zlen float32) bool {
	return rs.add(name, &Region{typ: regionRectangle, pos: pos, xlen: xlen, zlen: zlen})
}

func (rs *Regions) add(name string, reg *Region) bool {
	if _, taken := rs.regions[name]; taken {
		return false
	}
	rs.regions[name] = reg
	rs.updateIntersecting(name, reg, true)
	rs.updateEnts(name, reg)
	return true
}

// Remove deletes a region, emitting ExitedRegion for every current member.
func (rs *Regions) Remove(name string) {
	reg, ok := rs.regions[name]
	if !ok {
		return
	}
	for _, uid := range reg.curr {
		rs.events = append(rs.events, RegionEvent{ExitedRegion, uid, name})
	}
	rs.updateIntersecting(name, reg, false)
	delete(rs.regions, name)
	delete(rs.dirty, name)
}

// SetPos moves a region. Moves within epsilon are ignored.
func (rs *Regions) SetPos(name string, pos mgl32.Vec2) bool {
	reg, ok := rs.regions[name]
	if !ok {
		return false
	}
	if reg.pos.Sub(pos).Len() <= regionMoveEpsilon {
		return true
	}

	rs.updateIntersecting(name, reg, false)
	reg.pos = pos
	rs.updateIntersecting(name, reg, true)
	rs.updateEnts(name, reg)
	return true
}

// GetPos returns a region's center position.
func (rs *Regions) GetPos(name string) (mgl32.Vec2, bool) {
	reg, ok := rs.regions[name]
	if !ok {
		return mgl32.Vec2{}, false
	}
	return reg.pos, true
}

// GetEnts returns the UIDs currently inside the region.
func (rs *Regions) GetEnts(name string) []uint32 {
	reg, ok := rs.regions[name]
	if !ok {
		return nil
	}
	return slices.Clone(reg.curr)
}

// ContainsEnt reports whether the entity is currently inside the region.
func (rs *Regions) ContainsEnt(name string, uid uint32) bool {
	reg, ok := rs.regions[name]
	if !ok {
		return false
	}
	return slices.Contains(reg.curr, uid)
}

// AddRef incrementally adds an entity to the regions containing newpos.
// Zombie and marker entities never join regions.
func (rs *Regions) AddRef(uid uint32, newpos mgl32.Vec2) {
	ent := rs.world.EntityForUID(uid)
	if ent == nil || ent.Flags&(FlagZombie|FlagMarker) != 0 {
		return
	}
	for name, reg := range rs.regionsAtPoint(newpos) {
		if slices.Contains(reg.curr, uid) {
			continue
		}
		reg.curr = append(reg.curr, uid)
		rs.dirty[name] = struct{}{}
	}
}

// RemoveRef incrementally removes an entity from the regions containing
// oldpos.
func (rs *Regions) RemoveRef(uid uint32, oldpos mgl32.Vec2) {
	for name, reg := range rs.regionsAtPoint(oldpos) {
		idx := slices.Index(reg.curr, uid)
		if idx == -1 {
			continue
		}
		reg.curr = slices.Delete(reg.curr, idx, idx+1)
		rs.dirty[name] = struct{}{}
	}
}

// NotifyMoved maintains region membership for an entity that moved.
func (rs *Regions) NotifyMoved(uid uint32, oldpos, newpos mgl32.Vec2) {
	rs.RemoveRef(uid, oldpos)
	rs.AddRef(uid, newpos)
}

// RemoveEnt removes a despawned entity from whatever regions contain it.
func (rs *Regions) RemoveEnt(uid uint32) {
	rs.RemoveRef(uid, rs.world.GetXZ(uid))
}

// Update runs between simulation ticks: every dirty region compares its
// previous and current membership and emits enter/exit events.
func (rs *Regions) Update() {
	for name := range rs.dirty {
		reg, ok := rs.regions[name]
		if !ok {
			continue
		}
		rs.notifyChanged(name, reg)
	}
	clear(rs.dirty)
}

// Drain returns the queued events and resets the queue.
func (rs *Regions) Drain() []RegionEvent {
	out := rs.events
	rs.events = nil
	return out
}

// notifyChanged emits the symmetric difference of the sorted previous and
// current membership lists, then promotes current to previous.
func (rs *Regions) notifyChanged(name string, reg *Region) {
	slices.Sort(reg.curr)
	slices.Sort(reg.prev)

	i, j := 0, 0
	for i < len(reg.curr) && j < len(reg.prev) {
		switch {
		case reg.curr[i] < reg.prev[j]:
			rs.events = append(rs.events, RegionEvent{EnteredRegion, reg.curr[i], name})
			i++
		case reg.prev[j] < reg.curr[i]:
			rs.events = append(rs.events, RegionEvent{ExitedRegion, reg.prev[j], name})
			j++
		default:
			i++
			j++
		}
	}
	for ; i < len(reg.curr); i++ {
		rs.events = append(rs.events, RegionEvent{EnteredRegion, reg.curr[i], name})
	}
	for ; j < len(reg.prev); j++ {
		rs.events = append(rs.events, RegionEvent{ExitedRegion, reg.prev[j], name})
	}

	reg.prev = slices.Clone(reg.curr)
}

// updateEnts rebuilds a region's current membership from a positional query.
func (rs *Regions) updateEnts(name string, reg *Region) {
	var ents []*Entity
	switch reg.typ {
	case regionCircle:
		ents = rs.world.EntsInCircle(reg.pos, reg.radius)
	case regionRectangle:
		xzMin := mgl32.Vec2{reg.pos.X() - reg.xlen/2, reg.pos.Y() - reg.zlen/2}
		xzMax := mgl32.Vec2{reg.pos.X() + reg.xlen/2, reg.pos.Y() + reg.zlen/2}
		ents = rs.world.EntsInRect(xzMin, xzMax)
	}

	reg.curr = reg.curr[:0]
	for _, ent := range ents {
		if ent.Flags&(FlagZombie|FlagMarker) != 0 {
			continue
		}
		reg.curr = append(reg.curr, ent.UID)
	}
	rs.dirty[name] = struct{}{}
}

// regionsAtPoint returns the registered regions containing the point,
// consulting only the point's chunk bucket.
func (rs *Regions) regionsAtPoint(point mgl32.Vec2) map[string]*Region {
	res := rs.world.Resolution()
	td, ok := worldmap.DescForPoint2D(res, rs.world.MapPos(), point)
	if !ok {
		return nil
	}

	out := make(map[string]*Region)
	for _, name := range rs.intersecting[td.ChunkR*res.ChunksW+td.ChunkC] {
		reg := rs.regions[name]
		if reg != nil && reg.contains(point) {
			out[name] = reg
		}
	}
	return out
}

func (reg *Region) contains(point mgl32.Vec2) bool {
	switch reg.typ {
	case regionCircle:
		d := point.Sub(reg.pos)
		return d.Dot(d) <= reg.radius*reg.radius
	case regionRectangle:
		dx := point.X() - reg.pos.X()
		dz := point.Y() - reg.pos.Y()
		return dx >= -reg.xlen/2 && dx <= reg.xlen/2 &&
			dz >= -reg.zlen/2 && dz <= reg.zlen/2
	default:
		return false
	}
}

// updateIntersecting adds or removes the region's name from the bucket of
// every chunk its area touches.
func (rs *Regions) updateIntersecting(name string, reg *Region, add bool) {
	res := rs.world.Resolution()
	chunklen := max(res.ChunkXDim(), res.ChunkZDim())

	var delta int
	switch reg.typ {
	case regionCircle:
		delta = int(math.Ceil(float64(reg.radius / chunklen)))
	case regionRectangle:
		delta = int(math.Ceil(float64(max(reg.xlen, reg.zlen) / 2 / chunklen)))
	}

	td, ok := worldmap.DescForPoint2D(res, rs.world.MapPos(), reg.pos)
	if !ok {
		return
	}

	for dr := -delta; dr <= delta; dr++ {
		for dc := -delta; dc <= delta; dc++ {
			curr, ok := worldmap.RelativeDesc(res, td, dc*res.TilesC, dr*res.TilesR)
			if !ok {
				continue
			}
			if !reg.intersectsChunk(res, rs.world.MapPos(), curr.ChunkR, curr.ChunkC) {
				continue
			}

			bucket := &rs.intersecting[curr.ChunkR*res.ChunksW+curr.ChunkC]
			idx := slices.Index(*bucket, name)
			if add && idx == -1 {
				*bucket = append(*bucket, name)
			} else if !add && idx != -1 {
				*bucket = slices.Delete(*bucket, idx, idx+1)
			}
		}
	}
}

func (reg *Region) intersectsChunk(res worldmap.Resolution, mapPos mgl32.Vec3, chunkR, chunkC int) bool {
	chunk := worldmap.ChunkBounds(res, mapPos, chunkR, chunkC)
	xMin, xMax := chunk.X-chunk.Width, chunk.X
	zMin, zMax := chunk.Z, chunk.Z+chunk.Height

	switch reg.typ {
	case regionCircle:
		cx := clampf(reg.pos.X(), xMin, xMax)
		cz := clampf(reg.pos.Y(), zMin, zMax)
		dx := reg.pos.X() - cx
		dz := reg.pos.Y() - cz
		return dx*dx+dz*dz <= reg.radius*reg.radius
	case regionRectangle:
		return reg.pos.X()-reg.xlen/2 <= xMax && reg.pos.X()+reg.xlen/2 >= xMin &&
			reg.pos.Y()-reg.zlen/2 <= zMax && reg.pos.Y()+reg.zlen/2 >= zMin
	default:
		return false
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
