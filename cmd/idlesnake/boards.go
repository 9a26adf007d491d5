package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/idle-snake/internal/games/idlesnake"
	"github.com/vovakirdan/idle-snake/internal/navigation"
	"github.com/vovakirdan/idle-snake/internal/registry"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List all board presets",
	Long:  `Shows every registered board with the walls it places on a full-size grid.`,
	Run:   runBoards,
}

func runBoards(_ *cobra.Command, _ []string) {
	boards := registry.List()
	if len(boards) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, b := range boards {
		maxIDLen = max(maxIDLen, len(b.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Walls")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, info := range boards {
		walls := "-"
		if b, ok := idlesnake.BoardByID(info.ID); ok {
			walls = wallSummary(b.Walls(appConfig.Board.MaxSize, nil))
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, info.ID, info.Title, walls)
	}

	fmt.Println()
	fmt.Println("Run 'idlesnake watch <id>' to watch a board.")
}

// wallSummary counts walls by kind, e.g. "2 portal, 6 fusion".
func wallSummary(walls []navigation.Wall) string {
	counts := make(map[navigation.WallKind]int)
	for _, w := range walls {
		counts[w.Kind]++
	}
	var parts []string
	for _, k := range []navigation.WallKind{navigation.Portal, navigation.Repulsion, navigation.Boost, navigation.Fusion} {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
