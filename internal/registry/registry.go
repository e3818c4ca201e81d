// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/labyrinth/internal/core"
)

// Game is the interface every labyrinth variant implements.
// Variants hold pure logic with no Bubble Tea dependency; the platform
// maps keys to actions, drives the tick loop and paints the screen.
type Game interface {
	// ID returns a unique identifier (e.g., "labyrinth", "labyrinth_daily").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Daily Labyrinth").
	Title() string

	// Reset generates a fresh maze and starts a new run.
	// The RuntimeConfig provides screen dimensions and the maze seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one tick.
	// Input is abstracted to platform-level actions (Up, Hint, Pause, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, completion, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
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

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Unregister removes a game from the registry. It reports whether the id
// was registered.
func Unregister(id string) bool {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := factories[id]; !ok {
		return false
	}
	delete(factories, id)
	delete(titles, id)
	return true
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
