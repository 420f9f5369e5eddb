package game

import (
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

// Fog tracks per-faction chunk exploration. A chunk an allied faction has
// explored is considered visible for targeting purposes. New worlds start
// fully explored; scenarios that care about fog clear chunks explicitly.
type Fog struct {
	res      worldmap.Resolution
	explored [MaxFactions][]bool
}

func newFog(res worldmap.Resolution) *Fog {
	f := &Fog{res: res}
	n := res.ChunksW * res.ChunksH
	for i := range f.explored {
		f.explored[i] = make([]bool, n)
		for j := range f.explored[i] {
			f.explored[i][j] = true
		}
	}
	return f
}

// SetExplored marks a chunk explored or unexplored for one faction.
func (w *World) SetExplored(factionID, chunkR, chunkC int, explored bool) {
	if factionID < 0 || factionID >= MaxFactions {
		return
	}
	if chunkR < 0 || chunkR >= w.res.ChunksH || chunkC < 0 || chunkC >= w.res.ChunksW {
		return
	}
	w.fog.explored[factionID][chunkR*w.res.ChunksW+chunkC] = explored
}

// FogObjVisible reports whether the object bounded by obb is visible to any
// faction in the mask: true when at least one masked faction has explored a
// chunk the footprint touches.
func (w *World) FogObjVisible(mask uint16, obb worldmap.OBB) bool {
	probes := obb.Corners()
	probePoints := append(probes[:], obb.Center)

	for _, p := range probePoints {
		td, ok := worldmap.DescForPoint2D(w.res, w.mapPos, p)
		if !ok {
			continue
		}
		idx := td.ChunkR*w.res.ChunksW + td.ChunkC
		for i := 0; i < MaxFactions; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			if w.fog.explored[i][idx] {
				return true
			}
		}
	}
	return false
}
