// Package config loads the CLI's optional .loxconfig.yaml file. It has no
// bearing on language semantics — only on how the `lox` binary starts up
// (whether the REPL prints a banner and whether diagnostics render in
// color).
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the root of .loxconfig.yaml.
type Config struct {
	// Banner controls whether the REPL prints its startup banner line.
	Banner bool `yaml:"banner"`
	// Color enables ANSI-colored diagnostics. It is applied as set, whether
	// or not the output is a terminal.
	Color bool `yaml:"color"`
	// Extension is the default source file extension. It is loaded but not
	// consulted by the CLI: script paths are opened exactly as given.
	Extension string `yaml:"extension"`
}

// Default returns the configuration used when no .loxconfig.yaml is found.
func Default() Config {
	return Config{Banner: true, Color: false, Extension: ".lox"}
}

// Load reads and parses path, returning Default() unmodified if path does
// not exist — a missing config file is not an error, only an empty one.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
