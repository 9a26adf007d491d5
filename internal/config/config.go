// Package config provides YAML-based configuration loading, schema
// validation, engine profiles and pace progression for the idle snake.
package config

import (
	"fmt"

	"github.com/vovakirdan/idle-snake/internal/navigation"
)

// Config is the complete game configuration.
type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Fruit  FruitConfig  `yaml:"fruit"`
	Speed  SpeedConfig  `yaml:"speed"`
	Walls  WallsConfig  `yaml:"walls"`
	Engine EngineConfig `yaml:"engine"`
}

// BoardConfig defines grid growth and the respawn cycle.
type BoardConfig struct {
	InitialSize   int `yaml:"initial_size"`
	MaxSize       int `yaml:"max_size"`
	ExpandEvery   int `yaml:"expand_every"`  // Fruits eaten per +1 grid size, 0 disables growth
	RespawnTicks  int `yaml:"respawn_ticks"` // Ticks between a death and the next run
	InitialLength int `yaml:"initial_length"`
}

// FruitConfig defines fruit population and rewards.
type FruitConfig struct {
	Count        int     `yaml:"count"`
	Value        int     `yaml:"value"`
	GoldenChance float64 `yaml:"golden_chance"`
	GoldenValue  int     `yaml:"golden_value"`
}

// SpeedConfig defines the move interval and how it shrinks.
type SpeedConfig struct {
	InitialMs   int               `yaml:"initial_ms"`
	MinMs       int               `yaml:"min_ms"`
	BoostMoves  int               `yaml:"boost_moves"` // Moves at double speed after touching a boost wall
	Progression ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how pace increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "length", or "none"
	MaxAt int    `yaml:"max_at"` // Score/length at which the minimum interval is reached
}

// WallsConfig defines wall side effects.
type WallsConfig struct {
	RepulsionRadius int `yaml:"repulsion_radius"` // Manhattan radius kept free of fruit
}

// EngineConfig mirrors navigation.Options.
type EngineConfig struct {
	Profile            string  `yaml:"profile"`
	MaxHoldTicks       int     `yaml:"max_hold_ticks"`
	GreedyTrigger      int     `yaml:"greedy_trigger"`
	EarlyGreedyTrigger int     `yaml:"early_greedy_trigger"`
	EarlyGameLength    int     `yaml:"early_game_length"`
	AreaCap            int     `yaml:"area_cap"`
	MinArea            int     `yaml:"min_area"`
	AreaFactor         float64 `yaml:"area_factor"`
	MaxTrackedTargets  int     `yaml:"max_tracked_targets"`
}

// Options converts the engine section into navigation options.
func (e EngineConfig) Options() navigation.Options {
	return navigation.Options{
		MaxHoldTicks:       e.MaxHoldTicks,
		GreedyTrigger:      e.GreedyTrigger,
		EarlyGreedyTrigger: e.EarlyGreedyTrigger,
		EarlyGameLength:    e.EarlyGameLength,
		AreaCap:            e.AreaCap,
		MinArea:            e.MinArea,
		AreaFactor:         e.AreaFactor,
		MaxTrackedTargets:  e.MaxTrackedTargets,
	}
}

// Validate checks constraints that span several fields.
// Per-field ranges are enforced by the schema.
func (c Config) Validate() error {
	if c.Board.MaxSize < c.Board.InitialSize {
		return fmt.Errorf("config: board.max_size %d is smaller than board.initial_size %d",
			c.Board.MaxSize, c.Board.InitialSize)
	}
	// The snake spawns centred, head at n/2, body trailing left.
	if c.Board.InitialLength > c.Board.InitialSize/2+1 {
		return fmt.Errorf("config: board.initial_length %d does not fit a %dx%d board",
			c.Board.InitialLength, c.Board.InitialSize, c.Board.InitialSize)
	}
	if c.Speed.MinMs > c.Speed.InitialMs {
		return fmt.Errorf("config: speed.min_ms %d exceeds speed.initial_ms %d",
			c.Speed.MinMs, c.Speed.InitialMs)
	}
	switch c.Speed.Progression.Type {
	case "score", "length", "none":
	default:
		return fmt.Errorf("config: unknown speed.progression.type %q", c.Speed.Progression.Type)
	}
	return nil
}
