// Package resolver maps raw document locators to canonical document
// identities using a two-source JSON mapping (bundled default plus
// user-editable override).
package resolver

import (
	"log/slog"
	"path/filepath"
	"sync"
)

// Identity is the result of resolving a raw locator.
type Identity struct {
	Identity    string
	DisplayName string
}

// Resolver holds the merged locator mapping. Resolve is a pure lookup over
// the loaded table; no I/O happens per call.
type Resolver struct {
	defaultPath string
	userPath    string
	logger      *slog.Logger

	mu    sync.RWMutex
	table map[string]target
}

// New creates a Resolver and loads both mapping sources. A missing or
// malformed source is skipped with a warning, never fatal.
func New(defaultPath, userPath string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		defaultPath: defaultPath,
		userPath:    userPath,
		logger:      logger,
	}
	r.Reload()
	return r
}

// Reload re-reads both mapping sources and swaps the lookup table.
// The user override wins on conflicting keys; both sources contribute
// new mappings.
func (r *Resolver) Reload() {
	table := make(map[string]target)
	for _, src := range []string{r.defaultPath, r.userPath} {
		if src == "" {
			continue
		}
		entries, err := loadMapping(src)
		if err != nil {
			r.logger.Warn("resolver: mapping source skipped",
				slog.String("path", src),
				slog.String("error", err.Error()))
			continue
		}
		for loc, t := range entries {
			table[loc] = t
		}
	}
	r.mu.Lock()
	r.table = table
	r.mu.Unlock()
}

// Resolve returns the canonical identity and display name for a raw
// locator. An unmapped locator resolves to itself with a basename-style
// display name.
func (r *Resolver) Resolve(rawLocator string) Identity {
	r.mu.RLock()
	t, ok := r.table[rawLocator]
	r.mu.RUnlock()

	if !ok {
		return Identity{Identity: rawLocator, DisplayName: displayDefault(rawLocator)}
	}
	name := t.displayName
	if name == "" {
		name = displayDefault(t.identity)
	}
	return Identity{Identity: t.identity, DisplayName: name}
}

// displayDefault derives a human-readable name from an identity string.
func displayDefault(identity string) string {
	return filepath.Base(identity)
}
