package nav

import "testing"

func TestLocalIslands_WallSplitsChunk(t *testing.T) {
	chunk := NewChunk()
	for r := 0; r < FieldResR; r++ {
		chunk.CostBase[r][3] = CostImpassable
	}
	UpdateLocalIslands(chunk)

	if got := chunk.LocalIslands[0][0]; got != 0 {
		t.Fatalf("left island label = %d, want 0", got)
	}
	if got := chunk.LocalIslands[0][4]; got != 1 {
		t.Fatalf("right island label = %d, want 1", got)
	}
	if chunk.LocalIslands[30][0] != chunk.LocalIslands[0][2] {
		t.Fatal("left side should be one island")
	}
	if chunk.LocalIslands[0][0] == chunk.LocalIslands[0][4] {
		t.Fatal("wall should split the chunk into two islands")
	}
	for r := 0; r < FieldResR; r++ {
		if chunk.LocalIslands[r][3] != IslandNone {
			t.Fatalf("wall tile (%d,3) labeled %d, want none", r, chunk.LocalIslands[r][3])
		}
	}
}

func TestLocalIslands_BlockerSplitsToo(t *testing.T) {
	chunk := NewChunk()
	for r := 0; r < FieldResR; r++ {
		chunk.Blockers[r][3] = 1
	}
	UpdateLocalIslands(chunk)

	if chunk.LocalIslands[10][0] == chunk.LocalIslands[10][10] {
		t.Fatal("dynamic blockers should split local islands")
	}
}

func TestGlobalIslands_PortalMergesChunks(t *testing.T) {
	priv := NewPrivate(2, 1)
	linkChunks(priv, LayerGround,
		Coord{0, 0}, [2]Coord{{10, 63}, {20, 63}},
		Coord{0, 1}, [2]Coord{{10, 0}, {20, 0}})

	for c := 0; c < 2; c++ {
		UpdateLocalIslands(priv.ChunkAt(LayerGround, 0, c))
	}
	UpdateGlobalIslands(priv, LayerGround)

	a := priv.ChunkAt(LayerGround, 0, 0)
	b := priv.ChunkAt(LayerGround, 0, 1)
	if a.Islands[0][0] != b.Islands[30][30] {
		t.Fatalf("connected chunks have global ids %d and %d, want equal",
			a.Islands[0][0], b.Islands[30][30])
	}
}

func TestGlobalIslands_NoPortalNoMerge(t *testing.T) {
	priv := NewPrivate(2, 1)
	for c := 0; c < 2; c++ {
		UpdateLocalIslands(priv.ChunkAt(LayerGround, 0, c))
	}
	UpdateGlobalIslands(priv, LayerGround)

	a := priv.ChunkAt(LayerGround, 0, 0)
	b := priv.ChunkAt(LayerGround, 0, 1)
	if a.Islands[0][0] == b.Islands[0][0] {
		t.Fatal("unconnected chunks should carry distinct global ids")
	}
}

func TestGlobalIslands_BlockedPortalEdgeNoMerge(t *testing.T) {
	priv := NewPrivate(2, 1)
	linkChunks(priv, LayerGround,
		Coord{0, 0}, [2]Coord{{10, 63}, {20, 63}},
		Coord{0, 1}, [2]Coord{{10, 0}, {20, 0}})

	// Wall off the facing tiles on the far side of the border.
	b := priv.ChunkAt(LayerGround, 0, 1)
	for r := 10; r <= 20; r++ {
		b.CostBase[r][0] = CostImpassable
	}

	for c := 0; c < 2; c++ {
		UpdateLocalIslands(priv.ChunkAt(LayerGround, 0, c))
	}
	UpdateGlobalIslands(priv, LayerGround)

	a := priv.ChunkAt(LayerGround, 0, 0)
	if a.Islands[0][0] == b.Islands[30][30] {
		t.Fatal("a walled-off portal edge should not merge islands")
	}
}
