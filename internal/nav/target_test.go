package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/game"
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

func testWorld() *game.World {
	res := worldmap.Resolution{ChunksW: 1, ChunksH: 1, TilesR: FieldResR, TilesC: FieldResC}
	w := game.NewWorld(res, mgl32.Vec3{})
	w.SetPlayerControlled(0, true)
	return w
}

// unitAtTile returns an entity standing on the center of a tile.
func unitAtTile(uid uint32, faction int, flags game.EntityFlags, r, c int) *game.Entity {
	return &game.Entity{
		UID:             uid,
		FactionID:       faction,
		Flags:           flags,
		Pos:             mgl32.Vec3{-(float32(c) + 0.5), 0, float32(r) + 0.5},
		SelectionRadius: 0.4,
	}
}

func TestEnemiesFrontier_SeedsUnderWarEnemy(t *testing.T) {
	w := testWorld()
	w.SetDiplomacy(0, 1, game.DiplomacyWar)
	w.AddEntity(unitAtTile(1, 1, game.FlagCombatable, 10, 10))

	priv := NewPrivate(1, 1)
	target := EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0)
	got := initialFrontier(target, priv.ChunkAt(LayerGround, 0, 0), priv, w, false, 0)

	if len(got) != 1 || got[0] != (Coord{10, 10}) {
		t.Fatalf("frontier = %v, want [(10,10)]", got)
	}
}

func TestEnemiesFrontier_NeutralFactionIgnored(t *testing.T) {
	w := testWorld()
	w.AddEntity(unitAtTile(1, 1, game.FlagCombatable, 10, 10))

	priv := NewPrivate(1, 1)
	target := EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0)
	got := initialFrontier(target, priv.ChunkAt(LayerGround, 0, 0), priv, w, false, 0)

	if len(got) != 0 {
		t.Fatalf("frontier = %v, want empty for a neutral faction", got)
	}
}

func TestEnemiesFrontier_NonCombatableIgnored(t *testing.T) {
	w := testWorld()
	w.SetDiplomacy(0, 1, game.DiplomacyWar)
	w.AddEntity(unitAtTile(1, 1, game.FlagMarker, 10, 10))

	priv := NewPrivate(1, 1)
	target := EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0)
	got := initialFrontier(target, priv.ChunkAt(LayerGround, 0, 0), priv, w, false, 0)

	if len(got) != 0 {
		t.Fatalf("frontier = %v, want empty for non-combatable entities", got)
	}
}

func TestEnemiesFrontier_FogHidesEnemy(t *testing.T) {
	w := testWorld()
	w.SetDiplomacy(0, 1, game.DiplomacyWar)
	w.AddEntity(unitAtTile(1, 1, game.FlagCombatable, 10, 10))
	w.SetExplored(0, 0, 0, false)

	priv := NewPrivate(1, 1)
	target := EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0)
	got := initialFrontier(target, priv.ChunkAt(LayerGround, 0, 0), priv, w, false, 0)

	if len(got) != 0 {
		t.Fatalf("frontier = %v, want empty with the chunk under fog", got)
	}
}

func TestEnemiesFrontier_BuildingFootprint(t *testing.T) {
	w := testWorld()
	w.SetDiplomacy(0, 1, game.DiplomacyWar)
	w.AddEntity(&game.Entity{
		UID:            2,
		FactionID:      1,
		Flags:          game.FlagCombatable | game.FlagBuilding,
		Pos:            mgl32.Vec3{-20.5, 0, 20.5},
		FootprintHalfX: 1.4,
		FootprintHalfZ: 1.4,
	})

	priv := NewPrivate(1, 1)
	target := EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0)
	got := initialFrontier(target, priv.ChunkAt(LayerGround, 0, 0), priv, w, false, 0)

	// A 2.8x2.8 footprint centered on a tile center spans a 3x3 tile block.
	if len(got) != 9 {
		t.Fatalf("frontier has %d tiles, want 9", len(got))
	}
	seen := make(map[Coord]bool)
	for _, c := range got {
		seen[c] = true
	}
	for r := 19; r <= 21; r++ {
		for c := 19; c <= 21; c++ {
			if !seen[Coord{uint8(r), uint8(c)}] {
				t.Fatalf("footprint tile (%d,%d) missing from the frontier", r, c)
			}
		}
	}
}

func TestEnemiesFlow_GuidesTowardEnemy(t *testing.T) {
	w := testWorld()
	w.SetDiplomacy(0, 1, game.DiplomacyWar)
	w.AddEntity(unitAtTile(1, 1, game.FlagCombatable, 10, 10))

	tf := newTestField(withWorld(w), withFaction(0))
	flow := tf.update(EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 0))

	if got := flow.Dirs[10][12]; got != DirW {
		t.Fatalf("dir at (10,12) = %v, want W", got)
	}
	if got := flow.Dirs[10][10]; got != DirNone {
		t.Fatalf("dir under the enemy = %v, want NONE", got)
	}
}
