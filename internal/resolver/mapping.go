package resolver

import (
	"encoding/json"
	"fmt"
	"os"
)

// target is the normalized form every mapping shape reduces to:
// one locator resolves to exactly one target.
type target struct {
	identity    string
	displayName string
}

// mappingEntry is the object form of a flat mapping value.
type mappingEntry struct {
	Identity    string   `json:"identity"`
	DisplayName string   `json:"display_name"`
	Aliases     []string `json:"aliases"`
}

// loadMapping reads one JSON mapping source and normalizes all accepted
// shapes into locator → target:
//
//   - flat string entry:   {"locator": "identity"}
//   - flat object entry:   {"locator": {"identity": ..., "display_name": ..., "aliases": [...]}}
//   - grouped arrays:      {"groups": [["canonical", "other", ...], ...]}
//
// In the grouped shape the first element is the canonical identity; every
// listed locator (canonical included) resolves to it.
func loadMapping(path string) (map[string]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing: %w", err)
		}
		return nil, fmt.Errorf("read: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	out := make(map[string]target)
	for key, val := range raw {
		if key == "groups" {
			var groups [][]string
			if err := json.Unmarshal(val, &groups); err != nil {
				return nil, fmt.Errorf("parse groups: %w", err)
			}
			for _, g := range groups {
				if len(g) == 0 {
					continue
				}
				t := target{identity: g[0], displayName: displayDefault(g[0])}
				for _, loc := range g {
					out[loc] = t
				}
			}
			continue
		}

		var ident string
		if err := json.Unmarshal(val, &ident); err == nil {
			out[key] = target{identity: ident}
			continue
		}

		var entry mappingEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return nil, fmt.Errorf("parse entry %q: %w", key, err)
		}
		if entry.Identity == "" {
			return nil, fmt.Errorf("entry %q: identity is required", key)
		}
		t := target{identity: entry.Identity, displayName: entry.DisplayName}
		out[key] = t
		out[entry.Identity] = t
		for _, loc := range entry.Aliases {
			out[loc] = t
		}
	}
	return out, nil
}
