package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/agent"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/sim"
	"golang.org/x/image/colornames"
)

const coneSegments = 12

var (
	boardBackground = colornames.Black
	wallColor       = colornames.Darkslategray
	floorColor      = colornames.Whitesmoke
	downColor       = colornames.Dimgray
	agentColors     = []color.RGBA{colornames.Crimson, colornames.Royalblue}
)

func agentColor(i int) color.RGBA {
	return agentColors[i%len(agentColors)]
}

// view maps grid cells and world positions onto the base resolution.
type view struct {
	size     int
	cellSize float64
	cellPx   float32
}

func newView(size int, cellSize float64) view {
	return view{
		size:     size,
		cellSize: cellSize,
		cellPx:   float32(common.BaseWidth) / float32(size),
	}
}

func (v view) cellOrigin(p maze.Point) (float32, float32) {
	return float32(p.X) * v.cellPx, float32(p.Y) * v.cellPx
}

func (v view) worldToScreen(p cp.Vector) (float32, float32) {
	half := float64(v.size) * v.cellSize / 2
	x := (p.X + half) / v.cellSize * float64(v.cellPx)
	y := (p.Y + half) / v.cellSize * float64(v.cellPx)
	return float32(x), float32(y)
}

func (v view) cellCenter(p maze.Point) (float32, float32) {
	x, y := v.cellOrigin(p)
	return x + v.cellPx/2, y + v.cellPx/2
}

// drawBoard renders the static maze once per generated grid.
func (v view) drawBoard(grid maze.Grid) *ebiten.Image {
	img := ebiten.NewImage(common.BaseWidth, common.BaseHeight)
	for _, row := range cellsOf(grid) {
		x, y := v.cellOrigin(row.p)
		clr := floorColor
		if !row.floor {
			clr = wallColor
		}
		vector.FillRect(img, x, y, v.cellPx, v.cellPx, clr, false)
	}
	return img
}

type cellInfo struct {
	p     maze.Point
	floor bool
}

func cellsOf(grid maze.Grid) []cellInfo {
	out := make([]cellInfo, 0, grid.Size()*grid.Size())
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			p := maze.Point{X: x, Y: y}
			out = append(out, cellInfo{p: p, floor: grid.IsFloor(p)})
		}
	}
	return out
}

// facing is the screen direction of a heading; heading 0 points down the
// grid's +y axis.
func facing(heading float64) (float32, float32) {
	return float32(math.Sin(heading)), float32(math.Cos(heading))
}

func (v view) drawAgent(screen *ebiten.Image, a sim.AgentView, cfg agent.Config, clr color.RGBA, debug bool) {
	cx, cy := v.worldToScreen(a.World)
	radius := v.cellPx * 0.35

	if a.State == agent.Down {
		vector.FillCircle(screen, cx, cy, radius, downColor, true)
		vector.StrokeLine(screen, cx-radius, cy-radius, cx+radius, cy+radius, 2, clr, true)
		vector.StrokeLine(screen, cx-radius, cy+radius, cx+radius, cy-radius, 2, clr, true)
		return
	}

	if debug && len(a.Path) > 1 {
		for i := 1; i < len(a.Path); i++ {
			x0, y0 := v.cellCenter(a.Path[i-1])
			x1, y1 := v.cellCenter(a.Path[i])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	}

	v.drawCone(screen, cx, cy, a.Heading, cfg, clr)

	gx, gy := v.cellOrigin(a.Goal)
	vector.StrokeRect(screen, gx+1, gy+1, v.cellPx-2, v.cellPx-2, 2, clr, false)

	vector.FillCircle(screen, cx, cy, radius, clr, true)
	if a.Recognized {
		vector.StrokeCircle(screen, cx, cy, radius+3, 2, colornames.Gold, true)
	}
	dx, dy := facing(a.Heading)
	vector.StrokeLine(screen, cx, cy, cx+dx*radius*1.6, cy+dy*radius*1.6, 2, colornames.Black, true)

	if a.Uncertain {
		ebitenutil.DebugPrintAt(screen, "?", int(cx)-3, int(cy-radius)-18)
	}
	if debug {
		ebitenutil.DebugPrintAt(screen, a.ID+" "+a.State.String(), int(cx+radius)+2, int(cy))
	}
}

// drawCone outlines the view cone as two edges and an arc.
func (v view) drawCone(screen *ebiten.Image, cx, cy float32, heading float64, cfg agent.Config, clr color.RGBA) {
	reach := float32(cfg.ViewDistance) * v.cellPx
	coneClr := color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: 0x80}

	from := heading - cfg.FOV/2
	step := cfg.FOV / coneSegments
	px, py := cx, cy
	for i := 0; i <= coneSegments; i++ {
		dx, dy := facing(from + float64(i)*step)
		x, y := cx+dx*reach, cy+dy*reach
		if i == 0 {
			vector.StrokeLine(screen, cx, cy, x, y, 1, coneClr, true)
		} else {
			vector.StrokeLine(screen, px, py, x, y, 1, coneClr, true)
		}
		px, py = x, y
	}
	vector.StrokeLine(screen, cx, cy, px, py, 1, coneClr, true)
}
