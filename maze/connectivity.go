package maze

// Components counts the 4-connected floor regions of the grid.
func Components(grid Grid) int {
	size := grid.Size()
	seen := make([]bool, size*size)
	count := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if grid[y][x] != Floor || seen[y*size+x] {
				continue
			}
			count++
			flood(grid, Point{x, y}, seen)
		}
	}
	return count
}

// Connected reports whether every floor cell reaches every other floor cell.
// A grid with no floor is not connected.
func Connected(grid Grid) bool {
	return Components(grid) == 1
}

// Reachable returns the set of floor cells reachable from start, indexed
// y*size+x.
func Reachable(grid Grid, start Point) []bool {
	size := grid.Size()
	seen := make([]bool, size*size)
	if grid.IsFloor(start) {
		flood(grid, start, seen)
	}
	return seen
}

func flood(grid Grid, start Point, seen []bool) {
	size := grid.Size()
	stack := []Point{start}
	seen[start.Y*size+start.X] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Cardinal {
			n := p.Add(d)
			if !grid.IsFloor(n) || seen[n.Y*size+n.X] {
				continue
			}
			seen[n.Y*size+n.X] = true
			stack = append(stack, n)
		}
	}
}
