package main

import (
	"testing"

	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
)

func TestBoardArg(t *testing.T) {
	b, err := boardArg(nil)
	if err != nil || b.ID != "classic" {
		t.Errorf("boardArg(nil) = %q, %v", b.ID, err)
	}
	b, err = boardArg([]string{"portals"})
	if err != nil || b.ID != "portals" {
		t.Errorf("boardArg(portals) = %q, %v", b.ID, err)
	}
	if _, err := boardArg([]string{"moon"}); err == nil {
		t.Error("unknown board should fail")
	}
}

func TestFormatCounts(t *testing.T) {
	tests := []struct {
		in       map[string]int
		expected string
	}{
		{nil, ""},
		{map[string]int{"self": 2}, "self 2"},
		{map[string]int{"self": 2, "edge": 1, "obstacle": 4}, "edge 1, obstacle 4, self 2"},
	}
	for _, tc := range tests {
		if got := formatCounts(tc.in); got != tc.expected {
			t.Errorf("formatCounts(%v) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestWallSummary(t *testing.T) {
	p := core.Pos(0, 0)
	walls := []navigation.Wall{
		{Kind: navigation.Fusion, Positions: []core.Position{p}},
		{Kind: navigation.Fusion, Positions: []core.Position{p}},
		{Kind: navigation.Portal, Positions: []core.Position{p, p}},
	}
	if got := wallSummary(walls); got != "1 portal, 2 fusion" {
		t.Errorf("wallSummary = %q", got)
	}
	if got := wallSummary(nil); got != "none" {
		t.Errorf("wallSummary(nil) = %q", got)
	}
}
