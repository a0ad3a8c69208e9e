// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and seed scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sandfall/internal/sand"
)

// Scene is a named starting layout for the sandbox.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "dunes").
	// Used for CLI commands and session storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary for menus and `list`.
	Description() string

	// Seed places the initial grains into a freshly built engine.
	// Grains go through the engine's insert path, so every invariant
	// holds from tick 0.
	Seed(e *sand.Engine, seed int64)
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SceneInfo)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = SceneInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
