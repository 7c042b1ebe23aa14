package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the handful of knobs main.go also exposes as flags, so
// a long-running invocation can pin them in a checked-in file instead.
// Flags always win over the file when both are given (see main.go).
type fileConfig struct {
	MaxSteps int64  `toml:"max_steps"`
	Trace    bool   `toml:"trace"`
	Timeout  string `toml:"timeout"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}
