package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
// Lookups ignore case.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Command
	cmds   []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and aliases. Any clash with an existing
// name or alias is an error and nothing is registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for i, key := range keys {
		key = normalizeName(key)
		if key == "" {
			return fmt.Errorf("command %q: empty name or alias", c.Name())
		}
		if _, exists := r.byName[key]; exists || slices.Contains(keys[:i], key) {
			if i == 0 {
				return fmt.Errorf("command already registered: %s", key)
			}
			return fmt.Errorf("command alias already registered: %s", key)
		}
		keys[i] = key
	}

	for _, key := range keys {
		r.byName[key] = c
	}
	r.cmds = append(r.cmds, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[normalizeName(name)]
	return cmd, ok
}

// Suggest returns the primary name of the only command whose name or alias
// starts with prefix. ok is false when no command or several commands match.
func (r *Registry) Suggest(prefix string) (name string, ok bool) {
	prefix = normalizeName(prefix)
	if prefix == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var match Command
	for key, cmd := range r.byName {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if match != nil && match.Name() != cmd.Name() {
			return "", false
		}
		match = cmd
	}
	if match == nil {
		return "", false
	}
	return match.Name(), true
}

// All returns every registered command sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Clone(r.cmds)
	slices.SortFunc(result, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultRegistry holds the commands registered by this package.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
