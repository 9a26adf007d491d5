package navigation

import "github.com/vovakirdan/idle-snake/internal/core"

// Stage identifies which step of the decision cascade produced a direction.
type Stage int

const (
	StageNone Stage = iota
	StageCache
	StagePath
	StageTailChase
	StageGreedy
	StageHold
	StageAnySafe
	StageLastResort
)

// Stages lists every cascade stage in evaluation order.
var Stages = []Stage{
	StageCache,
	StagePath,
	StageTailChase,
	StageGreedy,
	StageHold,
	StageAnySafe,
	StageLastResort,
}

func (s Stage) String() string {
	switch s {
	case StageCache:
		return "cache"
	case StagePath:
		return "path"
	case StageTailChase:
		return "tail_chase"
	case StageGreedy:
		return "greedy"
	case StageHold:
		return "hold"
	case StageAnySafe:
		return "any_safe"
	case StageLastResort:
		return "last_resort"
	default:
		return "none"
	}
}

// Decision is the trace of a single NextDirection call.
type Decision struct {
	Stage       Stage
	Direction   core.Direction
	Head        core.Position
	Target      core.Position
	BodyLength  int
	Distance    int  // Manhattan distance head→target before moving
	Stagnation  int  // ticks without getting closer, after this tick's update
	Fails       int  // consecutive rejections recorded for the target
	Rejected    bool // a fresh path was found but its first step was refused
	RelaxArea   bool
	RelaxEscape bool
	PathLen     int // length of the path behind the decision, 0 if none
	Hold        int // hold ticks left on the followed plan
}
