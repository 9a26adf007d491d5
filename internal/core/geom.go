// Package core provides fundamental types and utilities shared by the
// navigation engine, the idle game and the terminal platform.
// It has no external dependencies so game logic stays pure and testable.
package core

// Position is a cell on the square board, 0-indexed from the top-left corner.
type Position struct {
	X, Y int
}

// Pos is a shorthand constructor for Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equal reports whether two positions refer to the same cell.
func Equal(a, b Position) bool {
	return a.X == b.X && a.Y == b.Y
}

// Manhattan returns the grid (L1) distance between two positions.
func Manhattan(a, b Position) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// IsValid reports whether p lies inside an n×n board.
func IsValid(p Position, n int) bool {
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// Direction is one of the four cardinal unit moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in the fixed fallback order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Vector returns the unit offset of the direction.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// IsOpposite reports whether d and other point in reverse directions.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Opposite() == other
}

// Step returns the neighbour of p in direction d.
func (d Direction) Step(p Position) Position {
	dx, dy := d.Vector()
	return p.Add(dx, dy)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionBetween returns the direction of a single cardinal step from a to b.
// ok is false when b is not a 4-neighbour of a.
func DirectionBetween(a, b Position) (d Direction, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 1 && dy == 0:
		return Right, true
	case dx == -1 && dy == 0:
		return Left, true
	case dx == 0 && dy == 1:
		return Down, true
	case dx == 0 && dy == -1:
		return Up, true
	}
	return Right, false
}

// Rect is an axis-aligned rectangle on the screen buffer.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
