package idlesnake

import (
	"testing"

	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
)

func TestBoardByID(t *testing.T) {
	for _, b := range Boards {
		got, ok := BoardByID(b.ID)
		if !ok || got.ID != b.ID {
			t.Errorf("BoardByID(%q) = %v, %v", b.ID, got.ID, ok)
		}
	}
	if _, ok := BoardByID("moon"); ok {
		t.Error("unknown board should not be found")
	}
}

func TestBoardWallsGrowWithGrid(t *testing.T) {
	b, _ := BoardByID("pillars")
	small := b.Walls(5, nil)
	large := b.Walls(20, nil)

	if len(small) != 2 {
		t.Errorf("pillars on 5x5 = %d walls, expected 2", len(small))
	}
	if len(large) != 18 {
		t.Errorf("pillars on 20x20 = %d walls, expected 18", len(large))
	}
	for _, w := range small {
		for _, p := range w.Positions {
			if !core.IsValid(p, 5) {
				t.Errorf("wall %v outside the 5x5 grid", p)
			}
		}
	}
}

func TestBoardWallsReserved(t *testing.T) {
	b, _ := BoardByID("pillars")
	walls := b.Walls(5, map[core.Position]bool{core.Pos(3, 3): true})
	if len(walls) != 1 || walls[0].Positions[0] != core.Pos(3, 4) {
		t.Errorf("reserved cell should be kept clear, got %v", walls)
	}
}

func TestBoardPortalPairs(t *testing.T) {
	b, _ := BoardByID("portals")

	portals := func(walls []navigation.Wall) int {
		n := 0
		for _, w := range walls {
			if w.Kind == navigation.Portal {
				if len(w.Positions) != 2 {
					t.Errorf("portal with %d endpoints", len(w.Positions))
				}
				n++
			}
		}
		return n
	}

	if got := portals(b.Walls(5, nil)); got != 1 {
		t.Errorf("portals on 5x5 = %d, expected 1", got)
	}
	if got := portals(b.Walls(8, nil)); got != 2 {
		t.Errorf("portals on 8x8 = %d, expected 2", got)
	}
	if got := portals(b.Walls(20, nil)); got != 4 {
		t.Errorf("portals on 20x20 = %d, expected 4", got)
	}

	// Reserving one endpoint drops the whole pair.
	if got := portals(b.Walls(5, map[core.Position]bool{core.Pos(4, 4): true})); got != 0 {
		t.Errorf("portal with a reserved endpoint should be dropped, got %d", got)
	}
}
