package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/worldmap"
)

func regionTestWorld() *World {
	res := worldmap.Resolution{ChunksW: 2, ChunksH: 2, TilesR: 64, TilesC: 64}
	return NewWorld(res, mgl32.Vec3{})
}

func drainKinds(t *testing.T, rs *Regions) map[RegionEventKind][]uint32 {
	t.Helper()
	out := make(map[RegionEventKind][]uint32)
	for _, ev := range rs.Drain() {
		out[ev.Kind] = append(out[ev.Kind], ev.UID)
	}
	return out
}

func TestRegions_AddNameCollision(t *testing.T) {
	rs := NewRegions(regionTestWorld())
	if !rs.AddCircle("alpha", mgl32.Vec2{-10, 10}, 5) {
		t.Fatal("first add should succeed")
	}
	if rs.AddRectangle("alpha", mgl32.Vec2{-50, 50}, 4, 4) {
		t.Fatal("name collision should be rejected")
	}
}

func TestRegions_EntityInsideAtAdd_EmitsEntered(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 7, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()

	evs := drainKinds(t, rs)
	if len(evs[EnteredRegion]) != 1 || evs[EnteredRegion][0] != 7 {
		t.Fatalf("entered = %v, want [7]", evs[EnteredRegion])
	}
	if !rs.ContainsEnt("camp", 7) {
		t.Fatal("entity should be a member after the add")
	}
}

func TestRegions_MoveOut_EmitsExited(t *testing.T) {
	w := regionTestWorld()
	ent := &Entity{UID: 7, Pos: mgl32.Vec3{-10.5, 0, 10.5}}
	w.AddEntity(ent)
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()
	rs.Drain()

	old := mgl32.Vec2{ent.Pos.X(), ent.Pos.Z()}
	ent.Pos = mgl32.Vec3{-40, 0, 40}
	rs.NotifyMoved(7, old, mgl32.Vec2{-40, 40})
	rs.Update()

	evs := drainKinds(t, rs)
	if len(evs[ExitedRegion]) != 1 || evs[ExitedRegion][0] != 7 {
		t.Fatalf("exited = %v, want [7]", evs[ExitedRegion])
	}
	if rs.ContainsEnt("camp", 7) {
		t.Fatal("entity should no longer be a member")
	}
}

func TestRegions_NoChangeNoEvents(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 7, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()
	rs.Drain()

	rs.Update()
	if evs := rs.Drain(); len(evs) != 0 {
		t.Fatalf("stable membership emitted %d events", len(evs))
	}
}

func TestRegions_Remove_EmitsExitedAndClearsState(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 7, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()
	rs.Drain()

	rs.Remove("camp")

	evs := drainKinds(t, rs)
	if len(evs[ExitedRegion]) != 1 || evs[ExitedRegion][0] != 7 {
		t.Fatalf("exited = %v, want [7]", evs[ExitedRegion])
	}
	if len(rs.dirty) != 0 {
		t.Fatal("dirty set should be empty after remove")
	}
	for i, bucket := range rs.intersecting {
		for _, name := range bucket {
			if name == "camp" {
				t.Fatalf("chunk bucket %d still references the removed region", i)
			}
		}
	}
}

func TestRegions_ZombiesAndMarkersExcluded(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 1, Flags: FlagZombie, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	w.AddEntity(&Entity{UID: 2, Flags: FlagMarker, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()

	if evs := rs.Drain(); len(evs) != 0 {
		t.Fatalf("zombie/marker entities produced %d events", len(evs))
	}
	if got := rs.GetEnts("camp"); len(got) != 0 {
		t.Fatalf("members = %v, want empty", got)
	}
}

func TestRegions_SetPos_SmallMoveIsNoop(t *testing.T) {
	w := regionTestWorld()
	rs := NewRegions(w)
	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)

	if !rs.SetPos("camp", mgl32.Vec2{-10.5 + 1e-4, 10.5}) {
		t.Fatal("epsilon move should report success")
	}
	pos, _ := rs.GetPos("camp")
	if pos != (mgl32.Vec2{-10.5, 10.5}) {
		t.Fatalf("pos = %v, want unchanged", pos)
	}
}

func TestRegions_SetPos_MoveRecomputesMembers(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 1, Pos: mgl32.Vec3{-10.5, 0, 10.5}})
	w.AddEntity(&Entity{UID: 2, Pos: mgl32.Vec3{-40.5, 0, 40.5}})
	rs := NewRegions(w)

	rs.AddCircle("camp", mgl32.Vec2{-10.5, 10.5}, 2)
	rs.Update()
	rs.Drain()

	if !rs.SetPos("camp", mgl32.Vec2{-40.5, 40.5}) {
		t.Fatal("move should succeed")
	}
	rs.Update()

	evs := drainKinds(t, rs)
	if len(evs[ExitedRegion]) != 1 || evs[ExitedRegion][0] != 1 {
		t.Fatalf("exited = %v, want [1]", evs[ExitedRegion])
	}
	if len(evs[EnteredRegion]) != 1 || evs[EnteredRegion][0] != 2 {
		t.Fatalf("entered = %v, want [2]", evs[EnteredRegion])
	}
}

func TestRegions_RectangleContains(t *testing.T) {
	w := regionTestWorld()
	w.AddEntity(&Entity{UID: 1, Pos: mgl32.Vec3{-11, 0, 11}})
	w.AddEntity(&Entity{UID: 2, Pos: mgl32.Vec3{-20, 0, 11}})
	rs := NewRegions(w)

	rs.AddRectangle("yard", mgl32.Vec2{-10, 10}, 4, 4)
	rs.Update()

	evs := drainKinds(t, rs)
	if len(evs[EnteredRegion]) != 1 || evs[EnteredRegion][0] != 1 {
		t.Fatalf("entered = %v, want [1]", evs[EnteredRegion])
	}
}

func TestRegions_MissingName(t *testing.T) {
	rs := NewRegions(regionTestWorld())

	if _, ok := rs.GetPos("ghost"); ok {
		t.Fatal("GetPos on a missing region should fail")
	}
	if rs.SetPos("ghost", mgl32.Vec2{}) {
		t.Fatal("SetPos on a missing region should fail")
	}
	if got := rs.GetEnts("ghost"); got != nil {
		t.Fatalf("GetEnts = %v, want nil", got)
	}
	rs.Remove("ghost") // no-op, must not panic
}
