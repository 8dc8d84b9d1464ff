// Package registry provides a global registry for flavor-text providers.
// Providers register themselves in init() functions, allowing the CLI to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// Env carries what a provider factory may need.
type Env struct {
	Config config.FlavorConfig
	APIKey string
	Store  *storage.Store // may be nil when the journal is unavailable
	Logger *log.Logger
	Seed   int64
}

// ProviderInfo contains metadata about a registered provider.
type ProviderInfo struct {
	Name        string
	Description string
}

// Factory creates a provider for the given environment.
type Factory func(env Env) (flavor.Provider, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a provider factory to the registry.
// Typically called from a provider's init() function.
// Panics if a provider with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: provider %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered providers, sorted by name.
func List() []ProviderInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ProviderInfo, 0, len(factories))
	for name := range factories {
		result = append(result, ProviderInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a provider by name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, env Env) (flavor.Provider, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown provider %q", name)
	}

	p, err := f(env)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create provider %q: %w", name, err)
	}
	return p, nil
}

// Exists checks if a provider with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
