package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for the wire CLI.
// Pointer fields distinguish "unset" from zero values so CLI flags can win.
type FileConfig struct {
	// Schema is a comma-separated list of schema file globs.
	Schema *string `yaml:"schema"`
	// Type is the default qualified message type for redact.
	Type *string `yaml:"type"`
	// Output is a file path redact writes to instead of stdout.
	Output  *string `yaml:"output"`
	NoColor *bool   `yaml:"no_color"`
	Pretty  *bool   `yaml:"pretty"`
	// Audit enables the redaction audit log.
	Audit         *bool `yaml:"audit"`
	NoUpdateCheck *bool `yaml:"no_update_check"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a directory-local config file in the given root.
// It supports .wire.yml/.yaml and wire.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".wire.yml", ".wire.yaml", "wire.yml", "wire.yaml"} {
		p := filepath.Join(root, name)
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
	p := filepath.Join(base, "wire", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
