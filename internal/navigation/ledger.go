package navigation

import "github.com/vovakirdan/idle-snake/internal/core"

// pathCache is the plan accepted on an earlier tick.
// steps[0] is the cell the head is expected to occupy on the next call.
type pathCache struct {
	steps  []core.Position
	target core.Position
	hold   int
}

func (c *pathCache) install(path []core.Position, target core.Position, hold int) {
	c.steps = append(c.steps[:0], path...)
	c.target = target
	c.hold = hold
}

func (c *pathCache) clear() {
	c.steps = c.steps[:0]
	c.hold = 0
}

func (c *pathCache) len() int {
	return len(c.steps)
}

// sync realigns the plan with where the head actually is. A head that is no
// longer on the plan invalidates it.
func (c *pathCache) sync(head core.Position) {
	if len(c.steps) == 0 {
		return
	}
	for i, p := range c.steps {
		if p == head {
			c.steps = c.steps[i:]
			return
		}
	}
	c.clear()
}

// next returns the waypoint after the head while the plan still leads to
// target. The hold window does not gate reuse.
func (c *pathCache) next(target core.Position) (core.Position, bool) {
	if len(c.steps) < 2 || c.target != target {
		return core.Position{}, false
	}
	return c.steps[1], true
}

// advance consumes one step of the plan and one tick of the hold window.
func (c *pathCache) advance() {
	if len(c.steps) > 0 {
		c.steps = c.steps[1:]
	}
	if c.hold > 0 {
		c.hold--
	}
}

func (c *pathCache) snapshot() []core.Position {
	out := make([]core.Position, len(c.steps))
	copy(out, c.steps)
	return out
}

// failLedger counts consecutive first-step rejections per target.
// Entries are dropped on success and the oldest entry is evicted once the
// ledger holds limit targets, so fruit churn cannot grow it without bound.
type failLedger struct {
	counts map[core.Position]int
	order  []core.Position
	limit  int
}

func newFailLedger(limit int) *failLedger {
	return &failLedger{
		counts: make(map[core.Position]int),
		limit:  limit,
	}
}

func (l *failLedger) get(t core.Position) int {
	return l.counts[t]
}

// fail records a rejection and returns the new count.
func (l *failLedger) fail(t core.Position) int {
	if _, ok := l.counts[t]; !ok {
		for len(l.order) >= l.limit {
			delete(l.counts, l.order[0])
			l.order = l.order[1:]
		}
		l.order = append(l.order, t)
	}
	l.counts[t]++
	return l.counts[t]
}

func (l *failLedger) clear(t core.Position) {
	if _, ok := l.counts[t]; !ok {
		return
	}
	delete(l.counts, t)
	for i, p := range l.order {
		if p == t {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *failLedger) len() int {
	return len(l.counts)
}

func (l *failLedger) reset() {
	clear(l.counts)
	l.order = l.order[:0]
}

// stagnation tracks ticks without progress toward the target.
type stagnation struct {
	counter int
	last    int
	seen    bool
}

// observe records this tick's distance and returns the updated counter.
func (s *stagnation) observe(dist int) int {
	if !s.seen || dist < s.last {
		s.counter = 0
	} else {
		s.counter++
	}
	s.last = dist
	s.seen = true
	return s.counter
}

func (s *stagnation) reset() {
	*s = stagnation{}
}
