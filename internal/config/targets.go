// Package config holds target profiles: per-architecture cache-line
// sizes and optional pointer-width overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Target describes one analysis target.
type Target struct {
	Name      string `yaml:"name"`
	CacheLine int    `yaml:"cacheline"`
	// Pointer overrides the pointer width read from the binary.
	// Zero means use the binary's own width.
	Pointer int `yaml:"pointer,omitempty"`
}

type targetFile struct {
	Targets []Target `yaml:"targets"`
}

// Builtin returns the target profiles that ship with the tool.
func Builtin() []Target {
	return []Target{
		{Name: "x86-64", CacheLine: 64},
		{Name: "arm64", CacheLine: 64},
		{Name: "apple-m", CacheLine: 128},
		{Name: "power9", CacheLine: 128},
		{Name: "s390x", CacheLine: 256},
	}
}

// Load reads target profiles from a YAML file and merges them over the
// built-in set.
func Load(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read targets: %w", err)
	}
	return Merge(Builtin(), data)
}

// Merge parses YAML target data and merges it over base. Entries from
// data win on name collision; order is base first, then additions.
func Merge(base []Target, data []byte) ([]Target, error) {
	var f targetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse targets: %w", err)
	}

	merged := make([]Target, len(base))
	copy(merged, base)
	for _, t := range f.Targets {
		if t.Name == "" {
			return nil, fmt.Errorf("config: target with empty name")
		}
		if t.CacheLine <= 0 {
			return nil, fmt.Errorf("config: target %q: cacheline must be positive", t.Name)
		}
		if t.Pointer != 0 && t.Pointer != 4 && t.Pointer != 8 {
			return nil, fmt.Errorf("config: target %q: pointer must be 4 or 8", t.Name)
		}
		if i := index(merged, t.Name); i >= 0 {
			merged[i] = t
		} else {
			merged = append(merged, t)
		}
	}
	return merged, nil
}

// Find returns the named target.
func Find(targets []Target, name string) (Target, bool) {
	if i := index(targets, name); i >= 0 {
		return targets[i], true
	}
	return Target{}, false
}

func index(targets []Target, name string) int {
	for i, t := range targets {
		if t.Name == name {
			return i
		}
	}
	return -1
}
