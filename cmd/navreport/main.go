// Command navreport renders canned navigation scenarios as ASCII field
// dumps: terrain, flow directions and line-of-sight state. Useful for
// eyeballing field changes without booting the viewer.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Field-Command/internal/game"
	"github.com/Garsondee/Field-Command/internal/nav"
	"github.com/Garsondee/Field-Command/internal/worldmap"
)

var dirGlyphs = map[nav.FlowDir]rune{
	nav.DirNone: '.',
	nav.DirN:    '^',
	nav.DirNE:   '7',
	nav.DirE:    '>',
	nav.DirSE:   'J',
	nav.DirS:    'v',
	nav.DirSW:   'L',
	nav.DirW:    '<',
	nav.DirNW:   'F',
}

func main() {
	var scenario string
	var copyOut bool

	flag.StringVar(&scenario, "scenario", "open-field",
		"scenario name (open-field | wall | portal | los-wall | trapped)")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	var report string
	switch scenario {
	case "open-field":
		report = reportOpenField()
	case "wall":
		report = reportWall()
	case "portal":
		report = reportPortal()
	case "los-wall":
		report = reportLOSWall()
	case "trapped":
		report = reportTrapped()
	default:
		fmt.Printf("error: unsupported scenario %q (supported: open-field, wall, portal, los-wall, trapped)\n", scenario)
		return
	}

	fmt.Print(report)
	if copyOut {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Printf("clipboard: %v\n", err)
		}
	}
}

func reportOpenField() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== open-field: tile target (32,32) ===\n")

	priv := nav.NewPrivate(1, 1)
	flow := &nav.FlowField{}
	nav.FlowFieldInit(nav.Coord{}, flow)
	nav.FlowFieldUpdate(nav.Coord{}, priv, nil, game.FactionIDNone, nav.LayerGround,
		nav.TileTarget(nav.Coord{R: 32, C: 32}), flow)

	writeFlow(&b, priv.ChunkAt(nav.LayerGround, 0, 0), flow)
	return b.String()
}

func reportWall() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== wall: column 20 rows 0..40, tile target (20,44) ===\n")

	priv := nav.NewPrivate(1, 1)
	chunk := priv.ChunkAt(nav.LayerGround, 0, 0)
	for r := 0; r <= 40; r++ {
		chunk.CostBase[r][20] = nav.CostImpassable
	}

	flow := &nav.FlowField{}
	nav.FlowFieldInit(nav.Coord{}, flow)
	nav.FlowFieldUpdate(nav.Coord{}, priv, nil, game.FactionIDNone, nav.LayerGround,
		nav.TileTarget(nav.Coord{R: 20, C: 44}), flow)

	writeFlow(&b, chunk, flow)
	return b.String()
}

func reportPortal() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== portal: north edge of chunk (1,0), tiles 24..40 ===\n")

	priv := nav.NewPrivate(1, 2)
	south := priv.ChunkAt(nav.LayerGround, 1, 0)
	north := priv.ChunkAt(nav.LayerGround, 0, 0)

	ps := &nav.Portal{Chunk: nav.Coord{R: 1}, Endpoints: [2]nav.Coord{{R: 0, C: 24}, {R: 0, C: 40}}}
	pn := &nav.Portal{Chunk: nav.Coord{R: 0}, Endpoints: [2]nav.Coord{{R: 63, C: 24}, {R: 63, C: 40}}}
	ps.Connected = pn
	pn.Connected = ps
	south.Portals = append(south.Portals, ps)
	north.Portals = append(north.Portals, pn)

	flow := &nav.FlowField{}
	nav.FlowFieldInit(nav.Coord{R: 1}, flow)
	nav.FlowFieldUpdate(nav.Coord{R: 1}, priv, nil, game.FactionIDNone, nav.LayerGround,
		nav.PortalTarget(ps), flow)

	writeFlow(&b, south, flow)
	return b.String()
}

func reportLOSWall() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== los-wall: column 20 rows 10..40, destination (50,50) ===\n")
	fmt.Fprintf(&b, "legend: '#' terrain, '/' shadow line, '.' visible, ' ' not visible\n")

	priv := nav.NewPrivate(1, 1)
	chunk := priv.ChunkAt(nav.LayerGround, 0, 0)
	for r := 10; r <= 40; r++ {
		chunk.CostBase[r][20] = nav.CostImpassable
	}

	target := worldmap.TileDesc{TileR: 50, TileC: 50}
	id := nav.MakeDestID(nav.LayerGround, game.FactionIDNone, nav.Coord{}, nav.Coord{R: 50, C: 50})

	los := &nav.LOSField{}
	nav.LOSFieldCreate(id, nav.Coord{}, target, priv, nil, mgl32.Vec3{}, los, nil)

	for r := 0; r < nav.FieldResR; r++ {
		for c := 0; c < nav.FieldResC; c++ {
			switch {
			case chunk.CostBase[r][c] == nav.CostImpassable:
				b.WriteByte('#')
			case los.Field[r][c].WavefrontBlocked:
				b.WriteByte('/')
			case los.Field[r][c].Visible:
				b.WriteByte('.')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func reportTrapped() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== trapped: 5x5 block at rows/cols 20..24, start (22,22) ===\n")

	priv := nav.NewPrivate(1, 1)
	chunk := priv.ChunkAt(nav.LayerGround, 0, 0)
	for r := 20; r <= 24; r++ {
		for c := 20; c <= 24; c++ {
			chunk.CostBase[r][c] = nav.CostImpassable
		}
	}

	flow := &nav.FlowField{}
	nav.FlowFieldInit(nav.Coord{}, flow)
	nav.FlowFieldUpdateToNearestPathable(chunk, nav.Coord{R: 22, C: 22}, game.FactionIDNone, flow)

	writeFlow(&b, chunk, flow)
	return b.String()
}

func writeFlow(b *strings.Builder, chunk *nav.Chunk, flow *nav.FlowField) {
	for r := 0; r < nav.FieldResR; r++ {
		for c := 0; c < nav.FieldResC; c++ {
			if chunk.CostBase[r][c] == nav.CostImpassable && flow.Dirs[r][c] == nav.DirNone {
				b.WriteByte('#')
				continue
			}
			b.WriteRune(dirGlyphs[flow.Dirs[r][c]])
		}
		b.WriteByte('\n')
	}
}
