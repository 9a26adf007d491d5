package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/idle-snake/internal/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Summarize a decision trace",
	Long: `Read a trace written by 'idlesnake sim --trace' and print the decision
stage histogram and the finished runs.

Examples:
  idlesnake trace classic.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func runTrace(_ *cobra.Command, args []string) {
	s, err := trace.Summarize(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Trace - %s\n\n", args[0])
	fmt.Printf("  Decisions:   %d (%d rejected plans)\n", s.Decisions, s.Rejected)
	fmt.Printf("  Runs:        %d\n", s.Runs)
	if s.Runs > 0 {
		fmt.Printf("  Best score:  %d\n", s.BestScore)
		fmt.Printf("  Longest:     %d\n", s.BestLen)
		fmt.Printf("  Deaths:      %s\n", formatCounts(s.Deaths))
	}
	fmt.Printf("  Largest grid: %d\n", s.MaxGrid)
	fmt.Println()
	printStages(s.Stages)
}
