// Package config loads default CLI flag values from an optional
// .bcrc.yaml file, so repeated invocations of `bc` in a project don't
// need to repeat the same flags. Absence of the file is not an error.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the defaults a .bcrc.yaml file can override. Every field
// is optional; the CLI layer only applies a field when the user didn't
// pass the corresponding flag explicitly.
type Config struct {
	Color           *bool    `yaml:"color"`
	NasmPath        string   `yaml:"nasm_path"`
	LdPath          string   `yaml:"ld_path"`
	UnitSearchPaths []string `yaml:"unit_search_paths"`
}

const fileName = ".bcrc.yaml"

// Load reads .bcrc.yaml from the current working directory, falling back
// to $HOME/.bcrc.yaml. A missing file in both locations yields a zero
// Config and a nil error; a malformed file that does exist is an error.
func Load() (*Config, error) {
	if cfg, err := loadFrom(fileName); err == nil {
		return cfg, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, fileName)
		if cfg, err := loadFrom(path); err == nil {
			return cfg, nil
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{}, nil
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New(path + ": " + err.Error())
	}
	return &cfg, nil
}
