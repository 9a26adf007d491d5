// Package navigation is the autonomous steering engine of the idle snake.
//
// Every tick the game hands the engine a read-only snapshot (body, target,
// walls, board size) and receives one direction back. The engine keeps a
// small amount of private state between ticks: a cached path, per-target
// rejection counts, a stagnation counter and the last issued heading.
package navigation

import (
	"fmt"

	"github.com/vovakirdan/idle-snake/internal/core"
)

// WallKind distinguishes the placed modifiers that occupy board cells.
type WallKind int

const (
	// Portal endpoints are traversable; the game teleports the head between them.
	Portal WallKind = iota
	// Repulsion walls block movement and keep fruit from spawning nearby.
	Repulsion
	// Boost walls block movement; the game grants a speed boost on contact.
	Boost
	// Fusion walls are plain blockers.
	Fusion
)

func (k WallKind) String() string {
	switch k {
	case Portal:
		return "portal"
	case Repulsion:
		return "repulsion"
	case Boost:
		return "boost"
	case Fusion:
		return "fusion"
	default:
		return "unknown"
	}
}

// ParseWallKind converts a config name into a WallKind.
func ParseWallKind(s string) (WallKind, error) {
	switch s {
	case "portal":
		return Portal, nil
	case "repulsion":
		return Repulsion, nil
	case "boost":
		return Boost, nil
	case "fusion":
		return Fusion, nil
	}
	return 0, fmt.Errorf("navigation: unknown wall kind %q", s)
}

// Passable reports whether the snake may enter cells of this kind.
func (k WallKind) Passable() bool {
	return k == Portal
}

// Wall is a typed obstacle covering one or more cells.
type Wall struct {
	Kind      WallKind
	Positions []core.Position
}

// Target is the cell currently being pursued. Its position is its identity.
type Target struct {
	Position core.Position
}
