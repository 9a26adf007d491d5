// Package registry provides a global registry of playable boards.
// Board presets register a game factory in init(), allowing the CLI and
// the TUI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/idle-snake/internal/core"
)

// Game is the interface the platform drives. Games contain pure logic with
// no dependency on Bubble Tea; the platform handles input mapping, timing
// and rendering.
type Game interface {
	// ID returns the board identifier (e.g., "classic", "portals").
	// Used for CLI arguments and run storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Portals").
	Title() string

	// Reset initializes or resets the session.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Pause, Faster, etc.).
	// The result carries the run summary when a run ends during the tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, length, deaths, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered board.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game for one board.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a board factory to the registry.
// Typically called from init().
// Panics if a board with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: board %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered boards, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game for the board with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown board %q", id)
	}

	return f(), nil
}

// Exists checks if a board with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns the registered board IDs, sorted. Used for shell completion.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
