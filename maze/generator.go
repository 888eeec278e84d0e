package maze

import "math/rand"

const minSize = 5

// Options controls the post-carve passes of the generator.
type Options struct {
	Size int

	// PocketFactor*Size wall cells are sampled for conversion to floor.
	PocketFactor int
	// CoverFactor*Size floor cells are sampled for conversion to cover.
	CoverFactor int
	CoverChance float64

	// ValidateCover rolls back any cover block that splits the floor into
	// more than one region. Off by default; the plain pass may disconnect.
	ValidateCover bool
}

func DefaultOptions(size int) Options {
	return Options{
		Size:         size,
		PocketFactor: 2,
		CoverFactor:  3,
		CoverChance:  0.3,
	}
}

// Generate builds a stealth maze with the default options.
func Generate(size int, rng *rand.Rand) Grid {
	return GenerateWithOptions(DefaultOptions(size), rng)
}

// GenerateWithOptions carves a maze on the odd lattice, then injects pockets
// and cover blocks.
func GenerateWithOptions(opts Options, rng *rand.Rand) Grid {
	size := opts.Size
	if size < minSize {
		size = minSize
	}
	grid := NewGrid(size)
	carve(grid, rng)
	addPockets(grid, opts.PocketFactor*size, rng)
	addCover(grid, opts.CoverFactor*size, opts.CoverChance, opts.ValidateCover, rng)
	return grid
}

// Carve returns the spanning-tree maze before pockets and cover are added.
func Carve(size int, rng *rand.Rand) Grid {
	if size < minSize {
		size = minSize
	}
	grid := NewGrid(size)
	carve(grid, rng)
	return grid
}

// latticeNeighbours returns the rooms two steps away from p that lie inside
// the border ring.
func latticeNeighbours(p Point, size int) []Point {
	candidates := [4]Point{
		{p.X + 2, p.Y},
		{p.X - 2, p.Y},
		{p.X, p.Y + 2},
		{p.X, p.Y - 2},
	}
	out := make([]Point, 0, 4)
	for _, c := range candidates {
		if c.X > 0 && c.Y > 0 && c.X < size-1 && c.Y < size-1 {
			out = append(out, c)
		}
	}
	return out
}

func carve(grid Grid, rng *rand.Rand) {
	size := grid.Size()
	start := Point{1, 1}
	grid[start.Y][start.X] = Floor
	stack := []Point{start}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)
		for _, n := range latticeNeighbours(curr, size) {
			if grid[n.Y][n.X] == Wall {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		mid := Point{curr.X + (next.X-curr.X)/2, curr.Y + (next.Y-curr.Y)/2}
		grid[mid.Y][mid.X] = Floor
		grid[next.Y][next.X] = Floor
		stack = append(stack, next)
	}
}

func randomInterior(size int, rng *rand.Rand) Point {
	return Point{X: 1 + rng.Intn(size-2), Y: 1 + rng.Intn(size-2)}
}

// addPockets opens wall cells whose lattice neighbours are mostly floor,
// creating loops and side rooms.
func addPockets(grid Grid, attempts int, rng *rand.Rand) {
	size := grid.Size()
	for i := 0; i < attempts; i++ {
		p := randomInterior(size, rng)
		if grid[p.Y][p.X] != Wall {
			continue
		}
		floors := 0
		for _, n := range latticeNeighbours(p, size) {
			if grid[n.Y][n.X] == Floor {
				floors++
			}
		}
		if floors >= 2 {
			grid[p.Y][p.X] = Floor
		}
	}
}

// addCover turns some floor cells into pillars that block line of sight.
func addCover(grid Grid, attempts int, chance float64, validate bool, rng *rand.Rand) {
	size := grid.Size()
	for i := 0; i < attempts; i++ {
		p := randomInterior(size, rng)
		if grid[p.Y][p.X] != Floor {
			continue
		}
		if grid.FloorNeighbours(p) < 2 || rng.Float64() >= chance {
			continue
		}
		grid[p.Y][p.X] = Wall
		if validate && !Connected(grid) {
			grid[p.Y][p.X] = Floor
		}
	}
}
