package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/game"
)

func TestFlowFieldID_DistinctInputsDistinctIDs(t *testing.T) {
	port := &Portal{Chunk: Coord{1, 2}, Endpoints: [2]Coord{{0, 3}, {0, 5}}}

	ids := []FlowFieldID{
		FlowFieldIDFor(Coord{0, 0}, TileTarget(Coord{4, 4}), LayerGround),
		FlowFieldIDFor(Coord{0, 1}, TileTarget(Coord{4, 4}), LayerGround),
		FlowFieldIDFor(Coord{0, 0}, TileTarget(Coord{4, 5}), LayerGround),
		FlowFieldIDFor(Coord{0, 0}, TileTarget(Coord{4, 4}), LayerAir),
		FlowFieldIDFor(Coord{1, 2}, PortalTarget(port), LayerGround),
		FlowFieldIDFor(Coord{0, 0}, EnemiesTarget(Coord{0, 0}, mgl32.Vec3{}, 3), LayerGround),
	}

	seen := make(map[FlowFieldID]int)
	for i, id := range ids {
		if j, dup := seen[id]; dup {
			t.Fatalf("ids %d and %d collide: %#x", i, j, id)
		}
		seen[id] = i
	}
}

func TestFlowFieldID_Decode(t *testing.T) {
	id := FlowFieldIDFor(Coord{7, 9}, TileTarget(Coord{4, 4}), LayerAir)

	if got := FlowFieldLayer(id); got != LayerAir {
		t.Fatalf("layer = %v, want air", got)
	}
	if got := FlowFieldChunk(id); got != (Coord{7, 9}) {
		t.Fatalf("chunk = %v, want (7,9)", got)
	}
}

func TestFlowFieldID_PortalMaskPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a portal-mask target id")
		}
	}()
	FlowFieldIDFor(Coord{0, 0}, PortalMaskTarget(0xF), LayerGround)
}

func TestDestID_Roundtrip(t *testing.T) {
	id := MakeDestID(LayerAir, 5, Coord{3, 7}, Coord{40, 41})

	if got := DestLayer(id); got != LayerAir {
		t.Fatalf("layer = %v, want air", got)
	}
	if got := DestFactionID(id); got != 5 {
		t.Fatalf("faction = %d, want 5", got)
	}
	if got := DestChunk(id); got != (Coord{3, 7}) {
		t.Fatalf("chunk = %v, want (3,7)", got)
	}
	if got := DestTile(id); got != (Coord{40, 41}) {
		t.Fatalf("tile = %v, want (40,41)", got)
	}
}

func TestDestID_FactionNone(t *testing.T) {
	id := MakeDestID(LayerGround, game.FactionIDNone, Coord{0, 0}, Coord{7, 7})
	if got := DestFactionID(id); got != game.FactionIDNone {
		t.Fatalf("faction = %d, want %d", got, game.FactionIDNone)
	}
}
