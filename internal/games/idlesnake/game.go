// Package idlesnake is the autonomous snake game: the navigation engine
// steers, the game moves the snake, spawns fruit, applies wall effects,
// grows the board and restarts runs after every death.
package idlesnake

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/idle-snake/internal/config"
	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
	"github.com/vovakirdan/idle-snake/internal/registry"
)

const (
	maxMovesPerStep = 8
	minSpeedFactor  = 0.25
	maxSpeedFactor  = 16
)

// Death reasons reported in run summaries.
const (
	DeathEdge     = "edge"     // left the grid
	DeathObstacle = "obstacle" // ran into a blocking wall
	DeathSelf     = "self"     // ran into its own body
)

// Fruit is a collectible on the board.
type Fruit struct {
	Position core.Position
	Golden   bool
}

// Event is emitted for every engine decision and every finished run.
// Exactly one of Decision and Finished is set.
type Event struct {
	Tick     uint64
	Run      int
	Board    string
	GridSize int
	Decision *navigation.Decision
	Finished *core.RunSummary
}

// Game implements registry.Game for one board preset.
type Game struct {
	board    Board
	cfg      config.Config
	pace     *config.PaceManager
	engine   *navigation.Engine
	logger   *log.Logger
	observer func(Event)
	rng      *rand.Rand

	tickRate int
	lockstep bool    // one move per Step regardless of pace
	speed    float64 // user speed factor
	moveAcc  float64 // ms accumulated toward the next move

	tick     uint64
	run      int
	runStart uint64

	n          int
	snake      []core.Position // Head at index 0
	heading    core.Direction
	fruits     []Fruit
	walls      []navigation.Wall
	portalExit map[core.Position]core.Position
	boostLeft  int

	score  int
	eaten  int
	deaths int
	best   int
	stages map[string]int

	dead        bool
	deathReason string
	respawnIn   int
	paused      bool

	screenW int
	screenH int
}

// Package-level settings picked up by registry factories.
var (
	settingsMu    sync.RWMutex
	activeConfig  = config.Default()
	defaultLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	activeConfig = cfg
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	defaultLogger = l
}

func init() {
	for _, b := range Boards {
		b := b
		registry.Register(b.ID, func() registry.Game {
			return New(b)
		})
	}
}

// New creates a game for board using the package-level settings.
func New(b Board) *Game {
	settingsMu.RLock()
	cfg, logger := activeConfig, defaultLogger
	settingsMu.RUnlock()
	return NewWithConfig(b, cfg, logger)
}

// NewWithConfig creates a game with explicit settings.
func NewWithConfig(b Board, cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		board:  b,
		cfg:    cfg,
		pace:   config.NewPaceManager(cfg.Speed),
		logger: logger.With("board", b.ID),
		speed:  1,
	}
	opts := cfg.Engine.Options()
	opts.Observer = g.onDecision
	g.engine = navigation.New(opts)
	return g
}

// ID returns the board identifier.
func (g *Game) ID() string {
	return g.board.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.board.Title
}

// SetObserver registers a callback for decisions and finished runs.
func (g *Game) SetObserver(fn func(Event)) {
	g.observer = fn
}

// SetLockstep makes every Step perform exactly one move. Headless
// simulations use it to ignore pacing.
func (g *Game) SetLockstep(on bool) {
	g.lockstep = on
}

// Reset starts a fresh session: counters cleared and a new first run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.run = 0
	g.deaths = 0
	g.best = 0
	g.speed = 1
	g.paused = false
	g.startRun()
}

// startRun spawns a new snake on a fresh board of the initial size.
func (g *Game) startRun() {
	g.run++
	g.runStart = g.tick
	g.n = g.cfg.Board.InitialSize

	c := g.n / 2
	g.snake = make([]core.Position, 0, g.cfg.Board.InitialLength)
	for i := 0; i < g.cfg.Board.InitialLength; i++ {
		g.snake = append(g.snake, core.Pos(c-i, c))
	}
	g.heading = core.Right

	g.score = 0
	g.eaten = 0
	g.boostLeft = 0
	g.moveAcc = 0
	g.dead = false
	g.deathReason = ""
	g.respawnIn = 0
	g.stages = make(map[string]int)

	g.engine.Reset()
	g.fruits = nil
	g.rebuildWalls()
	g.ensureFruits()

	g.logger.Debug("run started", "run", g.run, "size", g.n)
}

// rebuildWalls recomputes the active walls for the current grid, keeping
// the snake, the cell ahead of it and every fruit clear.
func (g *Game) rebuildWalls() {
	reserved := make(map[core.Position]bool, len(g.snake)+len(g.fruits)+1)
	for _, p := range g.snake {
		reserved[p] = true
	}
	reserved[g.heading.Step(g.snake[0])] = true
	for _, f := range g.fruits {
		reserved[f.Position] = true
	}

	g.walls = g.board.Walls(g.n, reserved)
	g.portalExit = make(map[core.Position]core.Position)
	for _, w := range g.walls {
		if w.Kind == navigation.Portal && len(w.Positions) == 2 {
			g.portalExit[w.Positions[0]] = w.Positions[1]
			g.portalExit[w.Positions[1]] = w.Positions[0]
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.logger.Info("run abandoned", "run", g.run, "score", g.score)
		g.startRun()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionFaster) {
		g.speed = min(g.speed*2, maxSpeedFactor)
	}
	if in.Has(core.ActionSlower) {
		g.speed = max(g.speed/2, minSpeedFactor)
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.dead {
		if g.respawnIn <= 0 {
			g.startRun()
		} else {
			g.respawnIn--
		}
		return core.StepResult{State: g.State()}
	}

	var result core.StepResult
	for moves := g.movesDue(); moves > 0; moves-- {
		if summary := g.move(); summary != nil {
			result.Finished = summary
			break
		}
	}
	result.State = g.State()
	return result
}

// movesDue converts elapsed time into a number of moves.
func (g *Game) movesDue() int {
	if g.lockstep {
		return 1
	}
	g.moveAcc += 1000 / float64(g.tickRate) * g.speed

	moves := 0
	for moves < maxMovesPerStep {
		interval := g.pace.BoostedIntervalMs(g.score, len(g.snake), g.boostLeft > 0)
		if g.moveAcc < interval {
			break
		}
		g.moveAcc -= interval
		moves++
	}
	if moves == maxMovesPerStep {
		g.moveAcc = 0
	}
	return moves
}

// move asks the engine for a direction and applies it. It returns the run
// summary when the move kills the snake.
func (g *Game) move() *core.RunSummary {
	dir := g.engine.NextDirection(g.snake, g.chooseTarget(), g.walls, g.n)
	g.heading = dir

	next := dir.Step(g.snake[0])
	if !core.IsValid(next, g.n) {
		return g.die(DeathEdge)
	}
	if exit, ok := g.portalExit[next]; ok {
		g.logger.Debug("teleported", "from", next, "to", exit)
		next = exit
	}
	if g.blockingWallAt(next) {
		return g.die(DeathObstacle)
	}

	fruitIdx := g.fruitAt(next)
	grow := fruitIdx >= 0

	// The tail moves out of the way unless the snake grows this move.
	limit := len(g.snake) - 1
	if grow {
		limit = len(g.snake)
	}
	for i := 0; i < limit; i++ {
		if g.snake[i] == next {
			return g.die(DeathSelf)
		}
	}

	if grow {
		g.snake = append(g.snake, core.Position{})
	}
	copy(g.snake[1:], g.snake[:len(g.snake)-1])
	g.snake[0] = next

	if g.boostLeft > 0 {
		g.boostLeft--
	}
	if g.touchesBoost(next) {
		g.boostLeft = g.cfg.Speed.BoostMoves
	}

	if grow {
		g.eat(fruitIdx)
	}
	return nil
}

// eat consumes a fruit, grows the board when due and refills fruit.
func (g *Game) eat(idx int) {
	f := g.fruits[idx]
	g.fruits = append(g.fruits[:idx], g.fruits[idx+1:]...)
	g.eaten++
	if f.Golden {
		g.score += g.cfg.Fruit.GoldenValue
		g.logger.Debug("golden fruit eaten", "score", g.score)
	} else {
		g.score += g.cfg.Fruit.Value
	}
	if g.score > g.best {
		g.best = g.score
	}

	every := g.cfg.Board.ExpandEvery
	if every > 0 && g.eaten%every == 0 && g.n < g.cfg.Board.MaxSize {
		g.expand()
	}
	g.ensureFruits()
}

// expand grows the grid by one. The engine's learned state refers to the
// old board, so it is dropped.
func (g *Game) expand() {
	g.n++
	g.engine.Reset()
	g.rebuildWalls()
	g.logger.Info("board expanded", "run", g.run, "size", g.n, "score", g.score)
}

func (g *Game) die(reason string) *core.RunSummary {
	g.dead = true
	g.deathReason = reason
	g.deaths++
	g.respawnIn = g.cfg.Board.RespawnTicks

	stages := make(map[string]int, len(g.stages))
	for k, v := range g.stages {
		stages[k] = v
	}
	summary := &core.RunSummary{
		Board:       g.board.ID,
		Score:       g.score,
		Length:      len(g.snake),
		FruitsEaten: g.eaten,
		Ticks:       g.tick - g.runStart,
		GridSize:    g.n,
		DeathReason: reason,
		Stages:      stages,
	}

	g.logger.Info("run ended",
		"run", g.run,
		"score", g.score,
		"length", len(g.snake),
		"size", g.n,
		"reason", reason,
	)
	g.engine.Reset()

	if g.observer != nil {
		g.observer(Event{
			Tick:     g.tick,
			Run:      g.run,
			Board:    g.board.ID,
			GridSize: g.n,
			Finished: summary,
		})
	}
	return summary
}

func (g *Game) onDecision(d navigation.Decision) {
	g.stages[d.Stage.String()]++
	if g.observer != nil {
		g.observer(Event{
			Tick:     g.tick,
			Run:      g.run,
			Board:    g.board.ID,
			GridSize: g.n,
			Decision: &d,
		})
	}
}

// chooseTarget prefers a golden fruit, then the nearest fruit. With no fruit
// on the board the head itself is the target.
func (g *Game) chooseTarget() navigation.Target {
	head := g.snake[0]
	if len(g.fruits) == 0 {
		return navigation.Target{Position: head}
	}
	for _, f := range g.fruits {
		if f.Golden {
			return navigation.Target{Position: f.Position}
		}
	}
	best := g.fruits[0].Position
	for _, f := range g.fruits[1:] {
		if core.Manhattan(head, f.Position) < core.Manhattan(head, best) {
			best = f.Position
		}
	}
	return navigation.Target{Position: best}
}

// ensureFruits tops the fruit population up to the configured count.
func (g *Game) ensureFruits() {
	for len(g.fruits) < g.cfg.Fruit.Count {
		cells := g.spawnCells()
		if len(cells) == 0 {
			return
		}
		g.fruits = append(g.fruits, Fruit{
			Position: cells[g.rng.Intn(len(cells))],
			Golden:   g.rng.Float64() < g.cfg.Fruit.GoldenChance,
		})
	}
}

// spawnCells lists cells where fruit may appear: empty, and outside the
// radius of every repulsion wall.
func (g *Game) spawnCells() []core.Position {
	taken := navigation.NewObstacles(g.n)
	for _, p := range g.snake {
		taken.Add(p)
	}
	for _, f := range g.fruits {
		taken.Add(f.Position)
	}
	var repulsors []core.Position
	for _, w := range g.walls {
		for _, p := range w.Positions {
			taken.Add(p)
			if w.Kind == navigation.Repulsion {
				repulsors = append(repulsors, p)
			}
		}
	}

	radius := g.cfg.Walls.RepulsionRadius
	var cells []core.Position
	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			p := core.Pos(x, y)
			if taken.Has(p) || repelled(p, repulsors, radius) {
				continue
			}
			cells = append(cells, p)
		}
	}
	return cells
}

func repelled(p core.Position, repulsors []core.Position, radius int) bool {
	for _, r := range repulsors {
		if core.Manhattan(p, r) <= radius {
			return true
		}
	}
	return false
}

func (g *Game) fruitAt(p core.Position) int {
	for i, f := range g.fruits {
		if f.Position == p {
			return i
		}
	}
	return -1
}

func (g *Game) blockingWallAt(p core.Position) bool {
	for _, w := range g.walls {
		if w.Kind.Passable() {
			continue
		}
		for _, c := range w.Positions {
			if c == p {
				return true
			}
		}
	}
	return false
}

// touchesBoost reports whether p is next to a boost wall.
func (g *Game) touchesBoost(p core.Position) bool {
	for _, w := range g.walls {
		if w.Kind != navigation.Boost {
			continue
		}
		for _, c := range w.Positions {
			if core.Manhattan(p, c) == 1 {
				return true
			}
		}
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Length:   len(g.snake),
		Deaths:   g.deaths,
		GameOver: g.dead,
		Paused:   g.paused,
	}
}

// LastDecision returns the engine's most recent decision.
func (g *Game) LastDecision() navigation.Decision {
	return g.engine.LastDecision()
}

// GridSize returns the current side length of the board.
func (g *Game) GridSize() int {
	return g.n
}

// Run returns the 1-based number of the current run.
func (g *Game) Run() int {
	return g.run
}

// BestScore returns the best score since Reset.
func (g *Game) BestScore() int {
	return g.best
}

// Speed returns the user speed factor.
func (g *Game) Speed() float64 {
	return g.speed
}
