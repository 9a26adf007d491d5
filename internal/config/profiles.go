package config

import "fmt"

// Profile is a named engine tuning.
type Profile string

const (
	ProfileCautious Profile = "cautious"
	ProfileBalanced Profile = "balanced"
	ProfileReckless Profile = "reckless"
)

// Profiles lists the built-in profiles.
var Profiles = []Profile{ProfileCautious, ProfileBalanced, ProfileReckless}

// ParseProfile validates a profile name. An empty name selects balanced.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case "":
		return ProfileBalanced, nil
	case ProfileCautious, ProfileBalanced, ProfileReckless:
		return Profile(s), nil
	}
	return "", fmt.Errorf("config: unknown profile %q (expected cautious, balanced or reckless)", s)
}

// ApplyProfile overwrites the engine section with the profile's tuning.
// Balanced keeps whatever the config file specified.
func ApplyProfile(cfg *Config, p Profile) {
	cfg.Engine.Profile = string(p)

	switch p {
	case ProfileCautious:
		// Commit briefly, wait long before going greedy, and insist on room.
		cfg.Engine.MaxHoldTicks = 2
		cfg.Engine.GreedyTrigger = 10
		cfg.Engine.EarlyGreedyTrigger = 4
		cfg.Engine.EarlyGameLength = 6
		cfg.Engine.AreaFactor = 1.0
	case ProfileReckless:
		cfg.Engine.MaxHoldTicks = 8
		cfg.Engine.GreedyTrigger = 3
		cfg.Engine.EarlyGreedyTrigger = 1
		cfg.Engine.EarlyGameLength = 20
		cfg.Engine.AreaFactor = 0.4
	}
}
