package idlesnake

import (
	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
)

// Board is a named wall layout. Layouts are anchored at the top-left corner
// and only the part inside the current grid is active, so walls appear as
// the board grows.
//
// Layout legend:
//
//	.    empty
//	F    fusion wall (blocks)
//	R    repulsion wall (blocks, keeps fruit away)
//	B    boost wall (blocks, speeds the snake up on contact)
//	1-9  portal endpoints; the two cells sharing a digit are linked
type Board struct {
	ID     string
	Title  string
	Layout []string
}

// Boards holds every built-in preset.
var Boards = []Board{
	{
		ID:    "classic",
		Title: "Classic",
	},
	{
		ID:    "pillars",
		Title: "Pillars",
		Layout: []string{
			"....................",
			"....................",
			"....................",
			"...F.....F.....F....",
			"...F.....F.....F....",
			"....................",
			"....................",
			"....................",
			"....................",
			"...F.....F.....F....",
			"...F.....F.....F....",
			"....................",
			"....................",
			"....................",
			"....................",
			"...F.....F.....F....",
			"...F.....F.....F....",
		},
	},
	{
		ID:    "portals",
		Title: "Portals",
		Layout: []string{
			"1......2............",
			"....................",
			"....................",
			"............3.......",
			"....1...............",
			"....................",
			"......R......R......",
			"2...................",
			"....................",
			"....................",
			"..................4.",
			"....................",
			"...3................",
			"......R......R......",
			"....................",
			"....................",
			"....................",
			"....................",
			"..........4.........",
		},
	},
	{
		ID:    "gauntlet",
		Title: "Gauntlet",
		Layout: []string{
			"...R................",
			"....F...............",
			"....F...B...........",
			"....F............B..",
			".B..................",
			"....................",
			".......FFFFF........",
			"....................",
			"....................",
			".........R....F.....",
			"..............F.....",
			"...........B..F.....",
			".....B........F.....",
			"..............F.....",
			"..............F.....",
			"....................",
			"..FFFFFF........R...",
		},
	},
}

// BoardByID returns the preset or loaded board with the given ID.
func BoardByID(id string) (Board, bool) {
	boardsMu.RLock()
	defer boardsMu.RUnlock()
	for _, b := range Boards {
		if b.ID == id {
			return b, true
		}
	}
	return Board{}, false
}

// Walls returns the walls active on an n×n grid. Cells in reserved are kept
// clear; a portal loses both endpoints if either is unavailable.
func (b Board) Walls(n int, reserved map[core.Position]bool) []navigation.Wall {
	var walls []navigation.Wall
	portals := make(map[rune][]core.Position)
	var portalOrder []rune

	for y, row := range b.Layout {
		for x, ch := range row {
			p := core.Pos(x, y)
			var kind navigation.WallKind
			switch {
			case ch == 'F':
				kind = navigation.Fusion
			case ch == 'R':
				kind = navigation.Repulsion
			case ch == 'B':
				kind = navigation.Boost
			case ch >= '1' && ch <= '9':
				if _, seen := portals[ch]; !seen {
					portalOrder = append(portalOrder, ch)
				}
				portals[ch] = append(portals[ch], p)
				continue
			default:
				continue
			}
			if !core.IsValid(p, n) || reserved[p] {
				continue
			}
			walls = append(walls, navigation.Wall{Kind: kind, Positions: []core.Position{p}})
		}
	}

	for _, id := range portalOrder {
		ends := portals[id]
		if len(ends) != 2 {
			continue
		}
		usable := true
		for _, p := range ends {
			if !core.IsValid(p, n) || reserved[p] {
				usable = false
			}
		}
		if usable {
			walls = append(walls, navigation.Wall{Kind: navigation.Portal, Positions: ends})
		}
	}
	return walls
}
