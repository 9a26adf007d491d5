package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/games/idlesnake"
	"github.com/vovakirdan/idle-snake/internal/navigation"
	"github.com/vovakirdan/idle-snake/internal/storage"
	"github.com/vovakirdan/idle-snake/internal/trace"
)

var (
	flagSimTicks  int
	flagSimRuns   int
	flagSimTrace  string
	flagSimNoSave bool
)

var simCmd = &cobra.Command{
	Use:   "sim [board]",
	Short: "Simulate runs without a screen",
	Long: `Run the board headless, one move per tick, until the requested number
of runs has finished or the tick budget is spent. Prints score statistics
and how often each decision stage steered the snake.

Examples:
  idlesnake sim
  idlesnake sim pillars --runs 50 --seed 7
  idlesnake sim portals --trace portals.jsonl.zst
  idlesnake sim gauntlet --profile cautious --no-save`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeBoards,
	Run:               runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 500000, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Stop after this many finished runs")
	simCmd.Flags().StringVar(&flagSimTrace, "trace", "", "Write a zstd JSONL decision trace to this file")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not record runs in the database")
}

func runSim(_ *cobra.Command, args []string) {
	b, err := boardArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if !flagSimNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database, runs will not be saved", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var tw *trace.Writer
	if flagSimTrace != "" {
		tw, err = trace.Create(flagSimTrace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	g := idlesnake.NewWithConfig(b, appConfig, logger)
	g.SetLockstep(true)

	stages := make(map[string]int)
	var traceErr error
	g.SetObserver(func(ev idlesnake.Event) {
		if ev.Decision != nil {
			stages[ev.Decision.Stage.String()]++
		}
		if tw == nil || traceErr != nil {
			return
		}
		if rec, ok := trace.FromEvent(ev); ok {
			traceErr = tw.Write(rec)
		}
	})

	s := seed()
	g.Reset(core.RuntimeConfig{TickRate: flagFPS, Seed: s})
	logger.Info("simulation started", "board", b.ID, "seed", s, "runs", flagSimRuns, "ticks", flagSimTicks)

	var runs []core.RunSummary
	ticks := 0
	for ticks < flagSimTicks && len(runs) < flagSimRuns {
		ticks++
		res := g.Step(core.InputFrame{})
		if res.Finished == nil {
			continue
		}
		runs = append(runs, *res.Finished)
		if store != nil {
			if _, err := store.SaveRun(*res.Finished); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	if tw != nil {
		if err := tw.Close(); err != nil && traceErr == nil {
			traceErr = err
		}
		if traceErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing trace: %v\n", traceErr)
			os.Exit(1)
		}
		logger.Info("trace written", "path", flagSimTrace, "records", tw.Count())
	}

	printSimReport(b, s, ticks, runs, stages, g.Snapshot())
}

func printSimReport(b idlesnake.Board, s int64, ticks int, runs []core.RunSummary, stages map[string]int, snap idlesnake.Snapshot) {
	fmt.Printf("Simulation - %s (seed %d)\n\n", b.Title, s)
	fmt.Printf("  Ticks:       %d\n", ticks)
	fmt.Printf("  Runs:        %d\n", len(runs))

	if len(runs) > 0 {
		best, bestLen, total := 0, 0, 0
		deaths := make(map[string]int)
		for _, r := range runs {
			best = max(best, r.Score)
			bestLen = max(bestLen, r.Length)
			total += r.Score
			deaths[r.DeathReason]++
		}
		fmt.Printf("  Best score:  %d\n", best)
		fmt.Printf("  Avg score:   %.1f\n", float64(total)/float64(len(runs)))
		fmt.Printf("  Longest:     %d\n", bestLen)
		fmt.Printf("  Deaths:      %s\n", formatCounts(deaths))
	}
	if snap.State != idlesnake.StateDead {
		fmt.Printf("  In progress: run %d, score %d, length %d on %dx%d\n",
			snap.Run, snap.Score, snap.SnakeLen, snap.GridSize, snap.GridSize)
	}

	fmt.Println()
	printStages(stages)
}

// printStages prints the decision stage histogram in cascade order.
func printStages(stages map[string]int) {
	total := 0
	for _, c := range stages {
		total += c
	}
	if total == 0 {
		fmt.Println("No decisions recorded.")
		return
	}

	fmt.Printf("  %-12s  %9s  %6s\n", "Stage", "Decisions", "Share")
	fmt.Printf("  %-12s  %9s  %6s\n", "-----", "---------", "-----")
	for _, st := range navigation.Stages {
		c := stages[st.String()]
		if c == 0 {
			continue
		}
		fmt.Printf("  %-12s  %9d  %5.1f%%\n", st, c, 100*float64(c)/float64(total))
	}
	fmt.Printf("  %-12s  %9d\n", "total", total)
}

// formatCounts renders a histogram as "a 3, b 1" sorted by key.
func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %d", k, m[k])
	}
	return out
}
