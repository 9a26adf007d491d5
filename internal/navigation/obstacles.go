package navigation

import "github.com/vovakirdan/idle-snake/internal/core"

// Obstacles is a dense occupancy set over an n×n board.
type Obstacles struct {
	n     int
	cells []bool
	count int
}

// NewObstacles returns an empty set for an n×n board.
func NewObstacles(n int) Obstacles {
	return Obstacles{n: n, cells: make([]bool, n*n)}
}

// BuildObstacles derives the cells that cannot be entered this tick.
// Body segments 1..len-2 block; the head is the search source and the tail
// vacates as the head moves. Every non-portal wall cell blocks.
func BuildObstacles(body []core.Position, walls []Wall, n int) Obstacles {
	o := NewObstacles(n)
	for i := 1; i < len(body)-1; i++ {
		o.Add(body[i])
	}
	for _, w := range walls {
		if w.Kind.Passable() {
			continue
		}
		for _, p := range w.Positions {
			o.Add(p)
		}
	}
	return o
}

// Size returns the board side length the set was built for.
func (o Obstacles) Size() int {
	return o.n
}

// Len returns the number of blocked cells.
func (o Obstacles) Len() int {
	return o.count
}

// Has reports whether p is blocked. Out-of-board cells are not members.
func (o Obstacles) Has(p core.Position) bool {
	if !core.IsValid(p, o.n) {
		return false
	}
	return o.cells[p.Y*o.n+p.X]
}

// Add blocks p. Cells outside the board are ignored.
func (o *Obstacles) Add(p core.Position) {
	if !core.IsValid(p, o.n) {
		return
	}
	i := p.Y*o.n + p.X
	if !o.cells[i] {
		o.cells[i] = true
		o.count++
	}
}

// Remove unblocks p.
func (o *Obstacles) Remove(p core.Position) {
	if !core.IsValid(p, o.n) {
		return
	}
	i := p.Y*o.n + p.X
	if o.cells[i] {
		o.cells[i] = false
		o.count--
	}
}

// Clone returns an independent copy.
func (o Obstacles) Clone() Obstacles {
	c := Obstacles{n: o.n, cells: make([]bool, len(o.cells)), count: o.count}
	copy(c.cells, o.cells)
	return c
}

// Without returns a copy with p exempted. Used when p is the explicit goal.
func (o Obstacles) Without(p core.Position) Obstacles {
	c := o.Clone()
	c.Remove(p)
	return c
}

// Passable reports whether p is on the board and not blocked.
func (o Obstacles) Passable(p core.Position) bool {
	return core.IsValid(p, o.n) && !o.cells[p.Y*o.n+p.X]
}

// IsFree reports whether the head may step onto cell this tick without
// colliding: on the board, not on any segment except the tail, and not on a
// blocking wall.
func IsFree(cell core.Position, body []core.Position, walls []Wall, n int) bool {
	if !core.IsValid(cell, n) {
		return false
	}
	for i := 0; i < len(body)-1; i++ {
		if body[i] == cell {
			return false
		}
	}
	for _, w := range walls {
		if w.Kind.Passable() {
			continue
		}
		for _, p := range w.Positions {
			if p == cell {
				return false
			}
		}
	}
	return true
}
