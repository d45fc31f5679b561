// Package config holds the engine's exploration limits and loads them from
// an optional pathprove.yaml file, mirroring the teacher's ext.Config /
// funxy.yaml split between declarative file config and CLI overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits are the exploration limits spec.md §6 exposes on the CLI.
type Limits struct {
	MaxDepth int  `yaml:"max_depth"`
	MaxTries int  `yaml:"max_tries"`
	MaxIter  int  `yaml:"max_iter"`
	Func     string `yaml:"func,omitempty"`
	Constant bool `yaml:"constant"`
}

// Default returns the built-in limits (depth=tries=iter=10, constant=true).
func Default() Limits {
	return Limits{
		MaxDepth: DefaultMaxDepth,
		MaxTries: DefaultMaxTries,
		MaxIter:  DefaultMaxIter,
		Constant: DefaultConstant,
	}
}

// Load reads a YAML file and overlays it on top of Default(). A missing
// field in the file keeps the default value; the file never needs to be
// complete.
func Load(path string) (Limits, error) {
	lim := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return lim, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &lim); err != nil {
		return lim, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return lim, nil
}
