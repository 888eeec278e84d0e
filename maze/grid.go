package maze

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Cell is the occupancy of one grid position.
type Cell uint8

const (
	Floor Cell = iota
	Wall
)

func (c Cell) String() string {
	if c == Wall {
		return "wall"
	}
	return "floor"
}

// Point is a cell coordinate. X is the column, Y the row.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// DistSq returns the squared euclidean distance between two cells.
func (p Point) DistSq(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Manhattan returns the 4-neighbour step distance between two cells.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Adjacent reports whether o is one of the 4 neighbours of p.
func (p Point) Adjacent(o Point) bool {
	return p.Manhattan(o) == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a square occupancy grid indexed [y][x].
type Grid [][]Cell

// Cardinal holds the 4-neighbour offsets in search order.
var Cardinal = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// NewGrid returns a size x size grid with every cell set to Wall.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for y := range g {
		g[y] = make([]Cell, size)
		for x := range g[y] {
			g[y][x] = Wall
		}
	}
	return g
}

// FromRows parses an ASCII grid where '#' is Wall and anything else is Floor.
func FromRows(rows []string) (Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("maze: empty grid")
	}
	g := make(Grid, size)
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("maze: row %d has width %d, want %d", y, len(row), size)
		}
		g[y] = make([]Cell, size)
		for x, ch := range row {
			if ch == '#' {
				g[y][x] = Wall
			} else {
				g[y][x] = Floor
			}
		}
	}
	return g, nil
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.Y < len(g) && p.X < len(g[p.Y])
}

// At returns the cell at p. Out of bounds reads as Wall.
func (g Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g[p.Y][p.X]
}

func (g Grid) IsFloor(p Point) bool {
	return g.At(p) == Floor
}

// FloorCells lists every floor cell in row-major order.
func (g Grid) FloorCells() []Point {
	out := make([]Point, 0, len(g)*len(g)/2)
	for y := range g {
		for x := range g[y] {
			if g[y][x] == Floor {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

func (g Grid) FloorCount() int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] == Floor {
				n++
			}
		}
	}
	return n
}

// FloorNeighbours counts the 4-adjacent floor cells of p.
func (g Grid) FloorNeighbours(p Point) int {
	n := 0
	for _, d := range Cardinal {
		if g.IsFloor(p.Add(d)) {
			n++
		}
	}
	return n
}

func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y := range g {
		out[y] = append([]Cell(nil), g[y]...)
	}
	return out
}

func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g) * (len(g) + 1))
	for y := range g {
		for x := range g[y] {
			if g[y][x] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CellCenter maps a cell to the centre of its square on the (x, z) world
// plane, with the grid centred on the origin.
func CellCenter(p Point, cellSize float64, mapSize int) cp.Vector {
	offset := float64(mapSize) * cellSize / 2
	return cp.Vector{
		X: float64(p.X)*cellSize - offset + cellSize/2,
		Y: float64(p.Y)*cellSize - offset + cellSize/2,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
