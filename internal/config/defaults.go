package config

import (
	_ "embed"
)

//go:embed defaults/idlesnake.yaml
var defaultYAML []byte

//go:embed defaults/idlesnake.schema.json
var schemaJSON []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			InitialSize:   5,
			MaxSize:       20,
			ExpandEvery:   5,
			RespawnTicks:  30,
			InitialLength: 3,
		},
		Fruit: FruitConfig{
			Count:        1,
			Value:        1,
			GoldenChance: 0.1,
			GoldenValue:  5,
		},
		Speed: SpeedConfig{
			InitialMs:  500,
			MinMs:      50,
			BoostMoves: 10,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
		},
		Walls: WallsConfig{
			RepulsionRadius: 1,
		},
		Engine: EngineConfig{
			Profile:            string(ProfileBalanced),
			MaxHoldTicks:       4,
			GreedyTrigger:      6,
			EarlyGreedyTrigger: 2,
			EarlyGameLength:    12,
			AreaCap:            600,
			MinArea:            8,
			AreaFactor:         0.7,
			MaxTrackedTargets:  32,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}

// SchemaJSON returns the embedded JSON schema for config files.
func SchemaJSON() []byte {
	return schemaJSON
}
