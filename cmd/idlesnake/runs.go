package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/idle-snake/internal/platform/tui"
	"github.com/vovakirdan/idle-snake/internal/registry"
	"github.com/vovakirdan/idle-snake/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [board]",
	Short: "Show the best recorded runs",
	Long: `Display the best runs for a board, or a per-board overview when no
board is given.

Examples:
  idlesnake runs
  idlesnake runs classic --limit 25
  idlesnake runs --tui
  idlesnake runs pillars --clear`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeBoards,
	Run:               runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs in an interactive table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of the board")
}

func runRuns(_ *cobra.Command, args []string) {
	board := ""
	if len(args) > 0 {
		board = args[0]
		if !registry.Exists(board) {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", board)
			fmt.Fprintln(os.Stderr, "Run 'idlesnake boards' to see available boards.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if board == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a board")
			os.Exit(1)
		}
		if err := store.ClearRuns(board); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs of %s.\n", board)

	case flagRunsTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height, board); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case board == "":
		if err := printOverview(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := printBoardRuns(store, board); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printBoardRuns(store *storage.Store, board string) error {
	runs, err := store.TopRuns(board, flagRunsLimit)
	if err != nil {
		return err
	}

	game, err := registry.Create(board)
	if err != nil {
		return err
	}
	fmt.Printf("Best Runs - %s\n\n", game.Title())

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'idlesnake sim %s' or 'idlesnake watch %s' to record some.\n", board, board)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-4s  %-8s  %s\n", "Rank", "Score", "Length", "Grid", "Death", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-4s  %-8s  %s\n", "----", "-----", "------", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-4d  %-8s  %s\n",
			i+1, r.Score, r.Length, r.GridSize, r.DeathReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.GetBoardStats(board)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Avg: %.1f  Deaths: %s\n", st.Runs, st.BestScore, st.AvgScore, formatCounts(st.Deaths))

	stages, err := store.StageTotals(board)
	if err != nil {
		return err
	}
	if len(stages) > 0 {
		fmt.Println()
		printStages(stages)
	}
	return nil
}

func printOverview(store *storage.Store) error {
	all, err := store.GetAllBoardsStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Boards")
	fmt.Println()
	fmt.Printf("  %-10s  %5s  %6s  %7s  %7s\n", "Board", "Runs", "Best", "Avg", "Longest")
	fmt.Printf("  %-10s  %5s  %6s  %7s  %7s\n", "-----", "----", "----", "---", "-------")
	for _, st := range all {
		fmt.Printf("  %-10s  %5d  %6d  %7.1f  %7d\n", st.Board, st.Runs, st.BestScore, st.AvgScore, st.MaxLength)
	}

	recent, err := store.RecentRuns(5)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Latest runs")
	fmt.Println()
	for _, r := range recent {
		fmt.Printf("  %-10s  score %-5d  length %-4d  %s\n", r.Board, r.Score, r.Length, r.DeathReason)
	}
	return nil
}
