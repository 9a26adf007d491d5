package config

import "math"

// PaceManager derives the snake's move interval from run progress.
type PaceManager struct {
	cfg SpeedConfig
}

// NewPaceManager creates a new pace manager.
func NewPaceManager(cfg SpeedConfig) *PaceManager {
	return &PaceManager{cfg: cfg}
}

// IsEnabled returns whether the interval changes during a run.
func (p *PaceManager) IsEnabled() bool {
	return p.cfg.Progression.Type != "none" && p.cfg.MinMs < p.cfg.InitialMs
}

// Level returns run progress in [0, 1] based on score or length.
func (p *PaceManager) Level(score, length int) float64 {
	maxAt := float64(p.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch p.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "length":
		progress = float64(length) / maxAt
	default:
		return 0
	}
	return clampF(progress, 0.0, 1.0)
}

// IntervalMs returns the time between two moves.
func (p *PaceManager) IntervalMs(score, length int) float64 {
	initial := float64(p.cfg.InitialMs)
	if !p.IsEnabled() {
		return initial
	}
	level := p.Level(score, length)
	return initial - level*(initial-float64(p.cfg.MinMs))
}

// BoostedIntervalMs halves the interval while a boost is active, but never
// below one millisecond.
func (p *PaceManager) BoostedIntervalMs(score, length int, boosted bool) float64 {
	ms := p.IntervalMs(score, length)
	if boosted {
		ms /= 2
	}
	return math.Max(ms, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
