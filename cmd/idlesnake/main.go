// idlesnake watches a snake steer itself around a growing board.
//
// Usage:
//
//	idlesnake boards            - List board presets
//	idlesnake watch [board]     - Watch a board in the terminal
//	idlesnake sim [board]       - Run a headless simulation
//	idlesnake runs [board]      - Show the best recorded runs
//	idlesnake trace <file>      - Summarize a decision trace
//	idlesnake serve             - Start SSH server for remote watching
//	idlesnake config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.idlesnake/runs.db)
//	--config <path>     - Use a custom config YAML
//	--profile <name>    - Engine profile: cautious, balanced, reckless
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/idle-snake/internal/config"
	"github.com/vovakirdan/idle-snake/internal/games/idlesnake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagLogLevel string
	flagLogFile  string
	flagBoards   string

	appConfig config.Config
	logger    *log.Logger
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "idlesnake",
	Short: "Idle Snake - a snake that plays itself",
	Long: `Idle Snake runs an autonomous snake on a square board. The snake
plans its own route to the fruit, avoids trapping itself and keeps
going run after run while the board grows.

Available commands:
  boards   - Show the board presets
  watch    - Watch a board live
  sim      - Simulate without a screen and report decision statistics
  runs     - Best recorded runs
  trace    - Summarize a recorded decision trace
  serve    - Start SSH server for remote watching
  config   - Print the effective configuration

Examples:
  idlesnake watch portals
  idlesnake sim classic --runs 20 --trace classic.jsonl.zst
  idlesnake runs --tui
  idlesnake serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.idlesnake/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Engine profile: cautious, balanced, reckless")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagBoards, "boards-dir", "~/.idlesnake/boards", "Directory of custom board YAML files")

	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger and the effective configuration shared by every
// command, then hands both to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	} else if cmd.Name() == "watch" {
		// The watcher owns the terminal.
		out = io.Discard
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "idlesnake",
		Level:           level,
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	name := flagProfile
	if name == "" {
		name = cfg.Engine.Profile
	}
	profile, err := config.ParseProfile(name)
	if err != nil {
		return err
	}
	config.ApplyProfile(&cfg, profile)
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	idlesnake.SetConfig(cfg)
	idlesnake.SetLogger(logger)
	loadCustomBoards()
	logger.Debug("configuration loaded", "profile", profile, "initial_size", cfg.Board.InitialSize)
	return nil
}

// seed returns the --seed value or a time-based one.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// boardArg returns the board named by args, defaulting to classic.
func boardArg(args []string) (idlesnake.Board, error) {
	id := "classic"
	if len(args) > 0 {
		id = args[0]
	}
	b, ok := idlesnake.BoardByID(id)
	if !ok {
		return idlesnake.Board{}, fmt.Errorf("unknown board %q (run 'idlesnake boards' to list them)", id)
	}
	return b, nil
}

// loadCustomBoards registers the YAML boards found in --boards-dir.
// Broken files and clashing IDs are logged and skipped.
func loadCustomBoards() {
	dir := flagBoards
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, dir[1:])
	}

	boards, skipped, err := idlesnake.LoadBoards(dir)
	if err != nil {
		logger.Warn("could not load custom boards", "error", err)
		return
	}
	for _, e := range skipped {
		logger.Warn("skipping board file", "error", e)
	}
	for _, b := range boards {
		if err := idlesnake.RegisterBoard(b); err != nil {
			logger.Warn("skipping board", "board", b.ID, "error", err)
			continue
		}
		logger.Debug("custom board loaded", "board", b.ID)
	}
}
