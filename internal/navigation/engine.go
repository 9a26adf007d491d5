package navigation

import (
	"fmt"
	"math"

	"github.com/vovakirdan/idle-snake/internal/core"
)

// Options tunes the decision cascade.
type Options struct {
	// MaxHoldTicks arms the smoothing window of an accepted plan. A plan is
	// followed for as long as its next waypoint stays free and the target
	// does not change; the window only counts down and is reported in the
	// decision trace.
	MaxHoldTicks int
	// GreedyTrigger is the stagnation count that enables the greedy stage.
	GreedyTrigger int
	// EarlyGreedyTrigger replaces GreedyTrigger while the snake is short.
	EarlyGreedyTrigger int
	// EarlyGameLength is the body length below which both viability checks
	// are skipped.
	EarlyGameLength int
	// AreaCap bounds the flood fill of the area check.
	AreaCap int
	// MinArea and AreaFactor give the required free area:
	// max(MinArea, floor(AreaFactor*length)).
	MinArea    int
	AreaFactor float64
	// MaxTrackedTargets bounds the per-target fail ledger.
	MaxTrackedTargets int
	// Observer, when set, receives every decision.
	Observer func(Decision)
}

// DefaultOptions returns the tuning used by the idle game.
func DefaultOptions() Options {
	return Options{
		MaxHoldTicks:       4,
		GreedyTrigger:      6,
		EarlyGreedyTrigger: 2,
		EarlyGameLength:    12,
		AreaCap:            DefaultAreaCap,
		MinArea:            8,
		AreaFactor:         0.7,
		MaxTrackedTargets:  32,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxHoldTicks < 0 {
		o.MaxHoldTicks = 0
	}
	if o.GreedyTrigger <= 0 {
		o.GreedyTrigger = def.GreedyTrigger
	}
	if o.EarlyGreedyTrigger <= 0 {
		o.EarlyGreedyTrigger = def.EarlyGreedyTrigger
	}
	if o.EarlyGameLength < 0 {
		o.EarlyGameLength = 0
	}
	if o.AreaCap <= 0 {
		o.AreaCap = def.AreaCap
	}
	if o.MinArea <= 0 {
		o.MinArea = def.MinArea
	}
	if o.AreaFactor <= 0 {
		o.AreaFactor = def.AreaFactor
	}
	if o.MaxTrackedTargets <= 0 {
		o.MaxTrackedTargets = def.MaxTrackedTargets
	}
	return o
}

// Engine picks one direction per tick for a snake chasing a target.
// It keeps a short-lived plan, a per-target fail ledger and a stagnation
// counter between calls; a single Engine must not be shared across
// goroutines.
type Engine struct {
	opts Options

	cache      pathCache
	fails      *failLedger
	stagnation stagnation

	heading    core.Direction
	hasHeading bool

	last Decision
}

// New creates an engine. Zero or negative tuning values fall back to
// DefaultOptions, except MaxHoldTicks where zero is meaningful.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		opts:  opts,
		fails: newFailLedger(opts.MaxTrackedTargets),
	}
}

// Options returns the effective tuning.
func (e *Engine) Options() Options {
	return e.opts
}

// Reset forgets everything learned about the current board. Call it after a
// death or whenever the board changes size.
func (e *Engine) Reset() {
	e.cache.clear()
	e.fails.reset()
	e.stagnation.reset()
	e.hasHeading = false
	e.last = Decision{}
}

// LastDecision returns the trace of the most recent NextDirection call.
func (e *Engine) LastDecision() Decision {
	return e.last
}

// CachedPath returns a copy of the plan currently held, head first.
func (e *Engine) CachedPath() []core.Position {
	return e.cache.snapshot()
}

// TrackedTargets returns how many targets have outstanding rejections.
func (e *Engine) TrackedTargets() int {
	return e.fails.len()
}

// board is the per-call view shared by the cascade stages.
type board struct {
	body  []core.Position
	walls []Wall
	n     int
	head  core.Position
	tail  core.Position
	obs   Obstacles
}

// NextDirection returns the direction the head should move this tick.
//
// body is head first and must hold at least two segments; n is the board
// side. Invalid input is a programming error and panics.
func (e *Engine) NextDirection(body []core.Position, target Target, walls []Wall, n int) core.Direction {
	if n <= 0 {
		panic(fmt.Sprintf("navigation: invalid board size %d", n))
	}
	if len(body) < 2 {
		panic(fmt.Sprintf("navigation: snake body has %d segments, need at least 2", len(body)))
	}

	head := body[0]
	goal := target.Position
	if !e.hasHeading {
		e.heading = inferHeading(body)
		e.hasHeading = true
	}

	b := &board{
		body:  body,
		walls: walls,
		n:     n,
		head:  head,
		tail:  body[len(body)-1],
		obs:   BuildObstacles(body, walls, n),
	}

	d := Decision{
		Head:       head,
		Target:     goal,
		BodyLength: len(body),
		Distance:   core.Manhattan(head, goal),
	}
	d.Stagnation = e.stagnation.observe(d.Distance)

	d.Direction, d.Stage = e.decide(b, goal, &d)
	e.heading = d.Direction
	e.last = d
	if e.opts.Observer != nil {
		e.opts.Observer(d)
	}
	return d.Direction
}

func (e *Engine) decide(b *board, goal core.Position, d *Decision) (core.Direction, Stage) {
	early := len(b.body) < e.opts.EarlyGameLength

	// Follow the committed plan while it still holds.
	e.cache.sync(b.head)
	if step, ok := e.cache.next(goal); ok {
		if dir, ok := core.DirectionBetween(b.head, step); ok && e.safe(b, dir) {
			e.cache.advance()
			d.PathLen = e.cache.len()
			d.Hold = e.cache.hold
			return dir, StageCache
		}
	}
	e.cache.clear()

	// Fresh search, gated by the viability checks.
	if path, found := FindPath(b.head, goal, b.obs, b.n); found && len(path) > 1 {
		fails := e.fails.get(goal)
		relaxArea := early || fails >= 1
		relaxEscape := early || fails >= 2
		d.Fails, d.RelaxArea, d.RelaxEscape = fails, relaxArea, relaxEscape

		if dir, ok := e.viable(b, path[1], relaxArea, relaxEscape); ok {
			e.fails.clear(goal)
			d.Fails = 0
			d.PathLen = len(path)
			e.cache.install(path[1:], goal, e.opts.MaxHoldTicks)
			d.Hold = e.cache.hold
			return dir, StagePath
		}
		d.Fails = e.fails.fail(goal)
		d.Rejected = true
	}

	// Chase the tail to buy time.
	if b.tail != goal {
		if path, found := FindPath(b.head, b.tail, b.obs.Without(b.tail), b.n); found && len(path) > 1 {
			if dir, ok := e.viable(b, path[1], true, false); ok {
				d.PathLen = len(path)
				return dir, StageTailChase
			}
		}
	}

	// Break a stall by stepping straight at the target.
	trigger := e.opts.GreedyTrigger
	if early {
		trigger = e.opts.EarlyGreedyTrigger
	}
	if d.Stagnation >= trigger {
		for _, dir := range neighborOrder(b.head, goal) {
			if e.safe(b, dir) {
				return dir, StageGreedy
			}
		}
	}

	if e.safe(b, e.heading) {
		return e.heading, StageHold
	}

	for _, dir := range core.Directions {
		if e.safe(b, dir) {
			return dir, StageAnySafe
		}
	}

	return e.heading, StageLastResort
}

// safe reports whether moving dir keeps the head on the board, off the body
// and walls, and does not fold the snake back onto its neck.
func (e *Engine) safe(b *board, dir core.Direction) bool {
	if e.hasHeading && dir == e.heading.Opposite() {
		return false
	}
	return IsFree(dir.Step(b.head), b.body, b.walls, b.n)
}

// viable decides whether stepping into cell is acceptable. Unless relaxed,
// the tail must stay reachable and enough free area must remain.
func (e *Engine) viable(b *board, cell core.Position, relaxArea, relaxEscape bool) (core.Direction, bool) {
	dir, ok := core.DirectionBetween(b.head, cell)
	if !ok || !e.safe(b, dir) {
		return dir, false
	}
	if !relaxEscape && !CanReachTail(cell, b.tail, b.obs, b.n) {
		return dir, false
	}
	if !relaxArea && FloodArea(cell, b.obs, b.n, e.opts.AreaCap) < e.minArea(len(b.body)) {
		return dir, false
	}
	return dir, true
}

func (e *Engine) minArea(length int) int {
	need := int(math.Floor(e.opts.AreaFactor * float64(length)))
	if need < e.opts.MinArea {
		return e.opts.MinArea
	}
	return need
}

// inferHeading reads the direction of travel from the neck to the head.
// A head that just came through a portal is not adjacent to the neck;
// Right is assumed then.
func inferHeading(body []core.Position) core.Direction {
	if dir, ok := core.DirectionBetween(body[1], body[0]); ok {
		return dir
	}
	return core.Right
}
