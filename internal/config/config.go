package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for caenv. All fields
// are optional; CLI flags take precedence, then local config, then global.
type FileConfig struct {
	Init    *int    `yaml:"init"`
	Prob    *string `yaml:"prob"` // comma-separated probabilities
	NSimul  *int    `yaml:"nsimul"`
	Threads *int    `yaml:"threads"`

	// External collaborator command lines.
	Sampler *string `yaml:"sampler"`
	Fitter  *string `yaml:"fitter"`
	Engine  *string `yaml:"engine"`

	Output  *string `yaml:"output"` // table|text|json
	NoCache *bool   `yaml:"no_cache"`
}

// LoadFile reads a YAML config file from the provided path. Unknown keys are
// rejected: a misspelled option must fail before any simulation work.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return FileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .caenv.yml/.yaml and caenv.yml/.yaml, dotfiles first.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".caenv.yml", ".caenv.yaml", "caenv.yml", "caenv.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "caenv", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
