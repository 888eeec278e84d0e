package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/nav"
)

func main() {
	size := flag.Int("size", 32, "grid size in cells")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	validate := flag.Bool("validate", false, "roll back cover blocks that split the floor")
	showPath := flag.Bool("path", false, "print an A* path between two random floor cells")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	opts := maze.DefaultOptions(*size)
	opts.ValidateCover = *validate

	startT := time.Now()
	grid := maze.GenerateWithOptions(opts, rng)
	dur := time.Since(startT)

	fmt.Printf("Seed: %d\n", *seed)
	fmt.Printf("Done in %v\n", dur)
	fmt.Printf("Grid: %dx%d, %d floor cells, %d region(s)\n", grid.Size(), grid.Size(), grid.FloorCount(), maze.Components(grid))

	var start, end maze.Point
	var path []maze.Point
	if *showPath {
		n := nav.NewNavigator(grid, rng)
		start, end = n.RandomFloor(), n.RandomFloor()
		path = n.PathTo(start, end)
		if path != nil {
			fmt.Printf("Path %v -> %v: %d steps\n", start, end, len(path)-1)
		} else {
			fmt.Printf("Path %v -> %v: unreachable\n", start, end)
		}
	}

	fmt.Print(draw(grid, path, start, end, *showPath))
}

func draw(grid maze.Grid, path []maze.Point, start, end maze.Point, marks bool) string {
	onPath := make(map[maze.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var b strings.Builder
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			p := maze.Point{X: x, Y: y}
			switch {
			case marks && p == start:
				b.WriteString("S")
			case marks && p == end:
				b.WriteString("E")
			case !grid.IsFloor(p):
				b.WriteString("█")
			case onPath[p]:
				b.WriteString("•")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
