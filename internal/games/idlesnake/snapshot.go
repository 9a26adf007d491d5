package idlesnake

import "github.com/vovakirdan/idle-snake/internal/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StateDead    GameStateType = "dead"
	StatePaused  GameStateType = "paused"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Run       int
	Board     string
	GridSize  int
	Score     int
	Deaths    int
	SnakeLen  int
	Head      core.Position
	Dir       core.Direction
	Fruits    []core.Position
	Walls     int
	BoostLeft int
	Stage     string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.dead:
		state = StateDead
	case g.paused:
		state = StatePaused
	}

	fruits := make([]core.Position, len(g.fruits))
	for i, f := range g.fruits {
		fruits[i] = f.Position
	}

	var head core.Position
	if len(g.snake) > 0 {
		head = g.snake[0]
	}

	return Snapshot{
		Tick:      g.tick,
		Run:       g.run,
		Board:     g.board.ID,
		GridSize:  g.n,
		Score:     g.score,
		Deaths:    g.deaths,
		SnakeLen:  len(g.snake),
		Head:      head,
		Dir:       g.heading,
		Fruits:    fruits,
		Walls:     len(g.walls),
		BoostLeft: g.boostLeft,
		Stage:     g.engine.LastDecision().Stage.String(),
		State:     state,
	}
}
