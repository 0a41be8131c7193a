package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theogravity/config-ready/internal/settings"
	"github.com/theogravity/config-ready/internal/types"
)

/*
 * Settings document loading.
 *
 * A settings document is a JSON array of entry objects:
 *
 *   [
 *     {"setting": "fullscreen", "value": true,
 *      "except": [{"value": false, "farm": ["111", "222"]}]},
 *     ...
 *   ]
 *
 * Parsing compile-checks every entry so malformed condition shapes are
 * rejected at load time, before any request is evaluated against them.
 */

// ParseDocument decodes and validates a settings document.
func ParseDocument(data []byte) ([]types.Entry, error) {
	var entries []types.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if _, err := settings.Compile(&entries[i]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		name := entries[i].Setting
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("entry %d: setting %q: %w", i, name, types.ErrDuplicateSetting)
		}
		seen[name] = struct{}{}
	}

	return entries, nil
}

// LoadDocument reads and parses a settings document from a file.
func LoadDocument(path string) ([]types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings document: %w", err)
	}
	return ParseDocument(data)
}
