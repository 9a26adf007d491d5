package navigation

import "github.com/vovakirdan/idle-snake/internal/core"

// DefaultAreaCap bounds the flood fill on large open boards.
const DefaultAreaCap = 600

// CanReachTail runs a breadth-first search from start and reports whether
// tail is reached before the frontier is exhausted.
func CanReachTail(start, tail core.Position, obs Obstacles, n int) bool {
	if start == tail {
		return true
	}
	found := false
	bfs(start, obs, n, func(p core.Position) bool {
		if p == tail {
			found = true
			return false
		}
		return true
	})
	return found
}

// FloodArea counts the cells reachable from start, stopping at limit.
// A non-positive limit means no cap.
func FloodArea(start core.Position, obs Obstacles, n, limit int) int {
	count := 0
	bfs(start, obs, n, func(core.Position) bool {
		count++
		return limit <= 0 || count < limit
	})
	return count
}

// bfs visits cells in breadth-first order starting at start (which is
// visited even if blocked). visit returns false to stop the search.
func bfs(start core.Position, obs Obstacles, n int, visit func(core.Position) bool) {
	if !core.IsValid(start, n) {
		return
	}
	seen := make([]bool, n*n)
	seen[start.Y*n+start.X] = true
	queue := []core.Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !visit(cur) {
			return
		}
		for _, d := range core.Directions {
			np := d.Step(cur)
			if !core.IsValid(np, n) || obs.Has(np) {
				continue
			}
			i := np.Y*n + np.X
			if seen[i] {
				continue
			}
			seen[i] = true
			queue = append(queue, np)
		}
	}
}
