package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/platform/tui"
	"github.com/vovakirdan/idle-snake/internal/registry"
	"github.com/vovakirdan/idle-snake/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch [board]",
	Short: "Watch a board live",
	Long: `Watch the snake play a board in the terminal. Every finished run
is saved to the runs database.

Controls:
  P/Space   - Pause
  R         - Abandon the current run
  +/-       - Faster/slower
  ?         - All keys
  Ctrl+S    - Save a text screenshot
  Q/Ctrl+C  - Quit

Examples:
  idlesnake watch
  idlesnake watch portals --profile reckless
  idlesnake watch gauntlet --config ./my-idlesnake.yaml`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeBoards,
	Run:               runWatch,
}

func runWatch(_ *cobra.Command, args []string) {
	b, err := boardArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	game, err := registry.Create(b.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating board: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage
		store = nil
	}

	runErr := tui.Run(game, store, logger, cfg)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running watcher: %v\n", runErr)
		os.Exit(1)
	}
}

func completeBoards(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.IDs(), cobra.ShellCompDirectiveNoFileComp
}
