// Package registry keeps the playable game variants.
// Variants register themselves in init() so the CLI and servers can list and
// create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is what a presentation adapter drives.
// Implementations keep their rules state free of terminal concerns.
type Game interface {
	// ID returns the variant identifier used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts (or restarts) the game with the given runtime settings.
	Reset(cfg core.RuntimeConfig)

	// Step applies the actions collected since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current score and status flags.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a game from the loaded configuration.
type Factory func(cfg config.T2048Config) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a variant. It panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(config.DefaultT2048Config()).Title()
}

// List returns all registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds the variant with the given ID.
func Create(id string, cfg config.T2048Config) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(cfg), nil
}

// Exists reports whether a variant is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
