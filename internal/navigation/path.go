package navigation

import (
	"container/heap"

	"github.com/vovakirdan/idle-snake/internal/core"
)

// searchNode is an entry of the A* open list.
type searchNode struct {
	pos    core.Position
	g      int
	f      int
	seq    int // insertion order, breaks f ties first-in first-out
	index  int
	parent *searchNode
}

type openList []*searchNode

func (pq openList) Len() int { return len(pq) }

func (pq openList) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq openList) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *openList) Push(x any) {
	item := x.(*searchNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *openList) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath returns a shortest 4-connected path from start to goal through
// cells not in obs, both ends included. ok is false when goal is unreachable,
// which is an ordinary outcome rather than an error.
//
// The Manhattan heuristic is consistent for unit moves, so the first time the
// goal leaves the open list its cost is optimal. Neighbours are expanded along
// the axis with the larger remaining delta first, which only decides which of
// several equally short paths is returned.
func FindPath(start, goal core.Position, obs Obstacles, n int) (path []core.Position, ok bool) {
	if !core.IsValid(start, n) || !core.IsValid(goal, n) {
		return nil, false
	}
	if start == goal {
		return []core.Position{start}, true
	}

	best := make([]int, n*n)
	for i := range best {
		best[i] = -1
	}
	closed := make([]bool, n*n)

	open := &openList{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &searchNode{pos: start, f: core.Manhattan(start, goal), seq: seq})
	best[start.Y*n+start.X] = 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		ci := cur.pos.Y*n + cur.pos.X
		if closed[ci] {
			continue
		}
		closed[ci] = true
		if cur.pos == goal {
			return reconstructPath(cur), true
		}

		for _, d := range neighborOrder(cur.pos, goal) {
			np := d.Step(cur.pos)
			if !core.IsValid(np, n) || obs.Has(np) {
				continue
			}
			ni := np.Y*n + np.X
			if closed[ni] {
				continue
			}
			g := cur.g + 1
			if best[ni] >= 0 && g >= best[ni] {
				continue
			}
			best[ni] = g
			seq++
			heap.Push(open, &searchNode{
				pos:    np,
				g:      g,
				f:      g + core.Manhattan(np, goal),
				seq:    seq,
				parent: cur,
			})
		}
	}
	return nil, false
}

func reconstructPath(end *searchNode) []core.Position {
	path := make([]core.Position, 0, end.g+1)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.pos)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// neighborOrder lists the directions to expand from `from`: the step toward
// target on the dominant axis, then the step on the other axis, then the rest
// in the fixed order. The greedy stage uses the same order.
func neighborOrder(from, target core.Position) []core.Direction {
	order := make([]core.Direction, 0, 4)
	dx := target.X - from.X
	dy := target.Y - from.Y

	horizontal := func() {
		if dx > 0 {
			order = append(order, core.Right)
		} else if dx < 0 {
			order = append(order, core.Left)
		}
	}
	vertical := func() {
		if dy > 0 {
			order = append(order, core.Down)
		} else if dy < 0 {
			order = append(order, core.Up)
		}
	}

	if core.Abs(dx) >= core.Abs(dy) {
		horizontal()
		vertical()
	} else {
		vertical()
		horizontal()
	}

	for _, d := range core.Directions {
		if !containsDirection(order, d) {
			order = append(order, d)
		}
	}
	return order
}

func containsDirection(ds []core.Direction, d core.Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
