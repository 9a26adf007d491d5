package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Score of the current run
	Length   int  // Current snake length
	Deaths   int  // Runs lost since Reset
	GameOver bool // The current run has ended and is waiting to respawn
	Paused   bool
}

// RunSummary describes a finished run. Games emit it once per death.
type RunSummary struct {
	Board       string
	Score       int
	Length      int
	FruitsEaten int
	Ticks       uint64
	GridSize    int
	DeathReason string
	Stages      map[string]int // Decision stage histogram for the run
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished holds the run that ended during this tick, if any.
	Finished *RunSummary
}
