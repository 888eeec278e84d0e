package nav

import (
	"math"
	"math/rand"
	"sort"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/maze"
)

// DefaultFleeDistance is how far, in cells, flee candidates sit from the
// start cell along each axis.
const DefaultFleeDistance = 3

// Navigator answers spatial queries over a shared, read-only grid.
type Navigator struct {
	grid         maze.Grid
	rng          *rand.Rand
	FleeDistance int
}

func NewNavigator(grid maze.Grid, rng *rand.Rand) *Navigator {
	return &Navigator{grid: grid, rng: rng, FleeDistance: DefaultFleeDistance}
}

func (n *Navigator) Grid() maze.Grid {
	return n.grid
}

// ClampToFloor rounds and bounds a coordinate into the grid. A wall result
// is replaced by a uniformly random floor cell, not the nearest one.
func (n *Navigator) ClampToFloor(x, y float64) maze.Point {
	last := n.grid.Size() - 1
	p := maze.Point{
		X: common.ClampInt(int(math.Floor(x+0.5)), 0, last),
		Y: common.ClampInt(int(math.Floor(y+0.5)), 0, last),
	}
	if !n.grid.IsFloor(p) {
		return n.RandomFloor()
	}
	return p
}

// RandomFloor rejection-samples the grid until it hits a floor cell. The
// grid must contain at least one floor cell.
func (n *Navigator) RandomFloor() maze.Point {
	size := n.grid.Size()
	for {
		p := maze.Point{X: n.rng.Intn(size), Y: n.rng.Intn(size)}
		if n.grid.IsFloor(p) {
			return p
		}
	}
}

func (n *Navigator) PathTo(start, goal maze.Point) []maze.Point {
	return FindPath(n.grid, start, goal)
}

// PathAwayFrom tries the four axis-aligned escape points around start,
// farthest from threat first, and returns the first reachable path.
func (n *Navigator) PathAwayFrom(start, threat maze.Point) []maze.Point {
	d := float64(n.FleeDistance)
	sx, sy := float64(start.X), float64(start.Y)
	candidates := []maze.Point{
		n.ClampToFloor(sx+d, sy),
		n.ClampToFloor(sx-d, sy),
		n.ClampToFloor(sx, sy+d),
		n.ClampToFloor(sx, sy-d),
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistSq(threat) > candidates[j].DistSq(threat)
	})
	for _, c := range candidates {
		if path := n.PathTo(start, c); len(path) > 0 {
			return path
		}
	}
	return nil
}

// LineOfSight walks the Bresenham line from a to b. The start cell is not
// tested; every later cell, b included, must be floor.
func (n *Navigator) LineOfSight(a, b maze.Point) bool {
	for _, p := range Bresenham(a, b) {
		if !n.grid.IsFloor(p) {
			return false
		}
	}
	return true
}

// Bresenham returns the cells on the integer line from a to b, excluding a
// and including b.
func Bresenham(a, b maze.Point) []maze.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X >= b.X {
		sx = -1
	}
	sy := 1
	if a.Y >= b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	points := make([]maze.Point, 0, dx-dy)
	for {
		if x != a.X || y != a.Y {
			points = append(points, maze.Point{X: x, Y: y})
		}
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
