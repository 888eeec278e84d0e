package nav

import "github.com/milk9111/stealth/maze"

// FindPath returns a shortest 4-way path from start to goal, both inclusive.
// It returns nil when either end is a wall, out of bounds, or unreachable.
func FindPath(grid maze.Grid, start, goal maze.Point) []maze.Point {
	size := grid.Size()
	if size == 0 || !grid.IsFloor(start) || !grid.IsFloor(goal) {
		return nil
	}
	if start == goal {
		return []maze.Point{start}
	}

	startIdx := start.Y*size + start.X
	goalIdx := goal.Y*size + goal.X

	// open keeps insertion order so ties resolve to the earliest entry.
	open := make([]int, 0, 64)
	open = append(open, startIdx)
	openSet := map[int]bool{startIdx: true}
	closed := make([]bool, size*size)

	cameFrom := make(map[int]int, 128)
	gScore := map[int]int{startIdx: 0}
	fScore := map[int]int{startIdx: start.Manhattan(goal)}

	maxNodes := size * size
	iterations := 0
	for len(open) > 0 && iterations < maxNodes {
		iterations++
		bestIdx := 0
		for i, idx := range open {
			if fScore[idx] < fScore[open[bestIdx]] {
				bestIdx = i
			}
		}
		currentIdx := open[bestIdx]
		open = append(open[:bestIdx], open[bestIdx+1:]...)
		delete(openSet, currentIdx)
		closed[currentIdx] = true

		if currentIdx == goalIdx {
			return reconstructPath(cameFrom, currentIdx, startIdx, size)
		}

		current := maze.Point{X: currentIdx % size, Y: currentIdx / size}
		for _, d := range maze.Cardinal {
			n := current.Add(d)
			if !grid.IsFloor(n) {
				continue
			}
			neighborIdx := n.Y*size + n.X
			if closed[neighborIdx] {
				continue
			}
			tentative := gScore[currentIdx] + 1
			prev, seen := gScore[neighborIdx]
			if !seen || tentative < prev {
				cameFrom[neighborIdx] = currentIdx
				gScore[neighborIdx] = tentative
				fScore[neighborIdx] = tentative + n.Manhattan(goal)
				if !openSet[neighborIdx] {
					open = append(open, neighborIdx)
					openSet[neighborIdx] = true
				}
			}
		}
	}

	return nil
}

func reconstructPath(cameFrom map[int]int, currentIdx, startIdx, size int) []maze.Point {
	path := make([]maze.Point, 0, 32)
	for {
		path = append(path, maze.Point{X: currentIdx % size, Y: currentIdx / size})
		if currentIdx == startIdx {
			break
		}
		prev, ok := cameFrom[currentIdx]
		if !ok {
			return nil
		}
		currentIdx = prev
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
