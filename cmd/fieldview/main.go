// Command fieldview is an interactive viewer for the navigation fields:
// click to move the target, Tab to cycle terrain presets, L to toggle the
// line-of-sight overlay.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Field-Command/internal/game"
	"github.com/Garsondee/Field-Command/internal/nav"
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

const (
	tilePx = 12
	hudH   = 24
)

type terrainPreset struct {
	name  string
	apply func(*nav.Chunk)
}

var presets = []terrainPreset{
	{"open", func(*nav.Chunk) {}},
	{"wall", func(ch *nav.Chunk) {
		for r := 8; r <= 48; r++ {
			ch.CostBase[r][24] = nav.CostImpassable
		}
	}},
	{"rooms", func(ch *nav.Chunk) {
		for c := 0; c < nav.FieldResC; c++ {
			if c >= 28 && c <= 35 {
				continue
			}
			ch.CostBase[31][c] = nav.CostImpassable
		}
		for r := 0; r < 31; r++ {
			if r >= 12 && r <= 18 {
				continue
			}
			ch.CostBase[r][40] = nav.CostImpassable
		}
	}},
	{"blocks", func(ch *nav.Chunk) {
		for _, at := range [][2]int{{10, 10}, {10, 44}, {44, 10}, {44, 44}, {27, 27}} {
			for r := at[0]; r < at[0]+8; r++ {
				for c := at[1]; c < at[1]+8; c++ {
					ch.CostBase[r][c] = nav.CostImpassable
				}
			}
		}
	}},
}

type viewer struct {
	priv    *nav.Private
	flow    *nav.FlowField
	los     *nav.LOSField
	target  nav.Coord
	preset  int
	showLOS bool
}

func newViewer() *viewer {
	v := &viewer{target: nav.Coord{R: 32, C: 32}}
	v.rebuild()
	return v
}

// rebuild recreates the chunk for the active preset and recomputes both
// fields toward the current target.
func (v *viewer) rebuild() {
	v.priv = nav.NewPrivate(1, 1)
	chunk := v.priv.ChunkAt(nav.LayerGround, 0, 0)
	presets[v.preset].apply(chunk)

	if chunk.CostBase[v.target.R][v.target.C] == nav.CostImpassable {
		v.target = nav.Coord{R: 32, C: 32}
	}

	v.flow = &nav.FlowField{}
	nav.FlowFieldInit(nav.Coord{}, v.flow)
	nav.FlowFieldUpdate(nav.Coord{}, v.priv, nil, game.FactionIDNone, nav.LayerGround,
		nav.TileTarget(v.target), v.flow)

	id := nav.MakeDestID(nav.LayerGround, game.FactionIDNone, nav.Coord{}, v.target)
	v.los = &nav.LOSField{}
	nav.LOSFieldCreate(id, nav.Coord{},
		worldmap.TileDesc{TileR: int(v.target.R), TileC: int(v.target.C)},
		v.priv, nil, mgl32.Vec3{}, v.los, nil)
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.preset = (v.preset + 1) % len(presets)
		v.rebuild()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.showLOS = !v.showLOS
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		r, c := (my-hudH)/tilePx, mx/tilePx
		if r >= 0 && r < nav.FieldResR && c >= 0 && c < nav.FieldResC {
			chunk := v.priv.ChunkAt(nav.LayerGround, 0, 0)
			if chunk.CostBase[r][c] != nav.CostImpassable {
				v.target = nav.Coord{R: uint8(r), C: uint8(c)}
				v.rebuild()
			}
		}
	}
	return nil
}

// Screen-space step of each flow direction. Columns map to +x here; only
// world coordinates carry the inverted X convention.
var screenDelta = map[nav.FlowDir][2]float32{
	nav.DirN:  {0, -1},
	nav.DirNE: {1, -1},
	nav.DirE:  {1, 0},
	nav.DirSE: {1, 1},
	nav.DirS:  {0, 1},
	nav.DirSW: {-1, 1},
	nav.DirW:  {-1, 0},
	nav.DirNW: {-1, -1},
}

func (v *viewer) Draw(screen *ebiten.Image) {
	chunk := v.priv.ChunkAt(nav.LayerGround, 0, 0)

	terrain := color.RGBA{R: 34, G: 48, B: 34, A: 255}
	blocked := color.RGBA{R: 70, G: 70, B: 78, A: 255}
	shadow := color.RGBA{R: 120, G: 60, B: 40, A: 255}
	hidden := color.RGBA{R: 16, G: 20, B: 16, A: 255}
	arrow := color.RGBA{R: 120, G: 190, B: 120, A: 255}
	targetCol := color.RGBA{R: 230, G: 200, B: 60, A: 255}

	for r := 0; r < nav.FieldResR; r++ {
		for c := 0; c < nav.FieldResC; c++ {
			x := float32(c * tilePx)
			y := float32(hudH + r*tilePx)

			fill := terrain
			switch {
			case chunk.CostBase[r][c] == nav.CostImpassable:
				fill = blocked
			case v.showLOS && v.los.Field[r][c].WavefrontBlocked:
				fill = shadow
			case v.showLOS && !v.los.Field[r][c].Visible:
				fill = hidden
			}
			vector.FillRect(screen, x, y, tilePx-1, tilePx-1, fill, false)

			if d, ok := screenDelta[v.flow.Dirs[r][c]]; ok {
				cx := x + tilePx/2
				cy := y + tilePx/2
				vector.StrokeLine(screen, cx-d[0]*3, cy-d[1]*3, cx+d[0]*3, cy+d[1]*3, 1, arrow, false)
				vector.FillRect(screen, cx+d[0]*3-1, cy+d[1]*3-1, 2, 2, arrow, false)
			}
		}
	}

	tx := float32(int(v.target.C) * tilePx)
	ty := float32(hudH + int(v.target.R)*tilePx)
	vector.StrokeRect(screen, tx, ty, tilePx-1, tilePx-1, 2, targetCol, false)

	hud := fmt.Sprintf("preset: %s (Tab)   target: (%d,%d) click to move   LOS overlay: %v (L)",
		presets[v.preset].name, v.target.R, v.target.C, v.showLOS)
	text.Draw(screen, hud, basicfont.Face7x13, 6, 16, color.White)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return nav.FieldResC * tilePx, hudH + nav.FieldResR*tilePx
}

func main() {
	ebiten.SetWindowTitle("Field Command - field viewer")
	ebiten.SetWindowSize(nav.FieldResC*tilePx, hudH+nav.FieldResR*tilePx)
	if err := ebiten.RunGame(newViewer()); err != nil {
		log.Fatal(err)
	}
}
