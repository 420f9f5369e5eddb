package nav

import (
	"github.com/Garsondee/Field-Command/internal/game"
)

// testField is a headless field-test setup. Options are applied in order;
// sizing options (withMapChunks, withChunk) must come before terrain edits.
type testField struct {
	priv    *Private
	layer   Layer
	chunk   Coord
	faction int
	query   EntityQuery
}

type fieldOption func(*testField)

// withMapChunks sizes the map in chunks. Default is a single chunk.
func withMapChunks(w, h int) fieldOption {
	return func(tf *testField) { tf.priv = NewPrivate(w, h) }
}

// withChunk selects the chunk under test.
func withChunk(r, c uint8) fieldOption {
	return func(tf *testField) { tf.chunk = Coord{r, c} }
}

// withFaction runs the update on behalf of a faction.
func withFaction(id int) fieldOption {
	return func(tf *testField) { tf.faction = id }
}

// withWorld attaches an entity query.
func withWorld(w *game.World) fieldOption {
	return func(tf *testField) { tf.query = w }
}

// withBlocked makes a single tile impassable in the base cost grid.
func withBlocked(r, c int) fieldOption {
	return func(tf *testField) { tf.cur().CostBase[r][c] = CostImpassable }
}

// withBlockedRect makes an inclusive tile rectangle impassable.
func withBlockedRect(r0, c0, r1, c1 int) fieldOption {
	return func(tf *testField) {
		ch := tf.cur()
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				ch.CostBase[r][c] = CostImpassable
			}
		}
	}
}

// withBlocker places one dynamic blocker reference on a tile.
func withBlocker(r, c int) fieldOption {
	return func(tf *testField) { tf.cur().Blockers[r][c]++ }
}

func (tf *testField) cur() *Chunk {
	return tf.priv.ChunkAt(tf.layer, int(tf.chunk.R), int(tf.chunk.C))
}

func newTestField(opts ...fieldOption) *testField {
	tf := &testField{
		priv:    NewPrivate(1, 1),
		faction: game.FactionIDNone,
	}
	for _, o := range opts {
		o(tf)
	}
	return tf
}

// update runs a full flow field update against a fresh buffer.
func (tf *testField) update(target FieldTarget) *FlowField {
	flow := &FlowField{}
	FlowFieldInit(tf.chunk, flow)
	FlowFieldUpdate(tf.chunk, tf.priv, tf.query, tf.faction, tf.layer, target, flow)
	return flow
}

// linkChunks wires a portal pair between two chunks and returns both halves.
func linkChunks(priv *Private, layer Layer, a Coord, aEnds [2]Coord, b Coord, bEnds [2]Coord) (*Portal, *Portal) {
	ca := priv.ChunkAt(layer, int(a.R), int(a.C))
	cb := priv.ChunkAt(layer, int(b.R), int(b.C))

	pa := &Portal{Chunk: a, Endpoints: aEnds}
	pb := &Portal{Chunk: b, Endpoints: bEnds}
	pa.Connected = pb
	pb.Connected = pa

	ca.Portals = append(ca.Portals, pa)
	cb.Portals = append(cb.Portals, pb)
	return pa, pb
}

// gridDelta maps a flow direction to its (dr, dc) tile offset.
var gridDelta = map[FlowDir][2]int{
	DirN:  {-1, 0},
	DirNE: {-1, 1},
	DirE:  {0, 1},
	DirSE: {1, 1},
	DirS:  {1, 0},
	DirSW: {1, -1},
	DirW:  {0, -1},
	DirNW: {-1, -1},
}
