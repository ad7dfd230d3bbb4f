package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File represents the optional YAML configuration file. Unset fields leave
// the corresponding Config value untouched, so the file only ever narrows
// the gap between defaults and command-line flags.
type File struct {
	Font     string   `yaml:"font,omitempty"`
	Size     *float64 `yaml:"size,omitempty"`
	Margin   *int     `yaml:"margin,omitempty"`
	Fg       string   `yaml:"fg,omitempty"`
	Bg       string   `yaml:"bg,omitempty"`
	TimeOnly *bool    `yaml:"time-only,omitempty"`
}

// DefaultPath returns the conventional location of the config file,
// $XDG_CONFIG_HOME/overlay-clock/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "overlay-clock", "config.yaml")
}

// LoadOptional reads the config file at path if present. A missing file is
// not an error; a malformed one is.
func LoadOptional(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %v: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file's set fields onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Font != "" {
		cfg.FontFamily = f.Font
	}
	if f.Size != nil {
		cfg.FontSize = *f.Size
	}
	if f.Margin != nil {
		cfg.Margin = *f.Margin
	}
	if f.Fg != "" {
		col, err := ParseHex(f.Fg)
		if err != nil {
			return err
		}
		cfg.Foreground = col
	}
	if f.Bg != "" {
		col, err := ParseHex(f.Bg)
		if err != nil {
			return err
		}
		cfg.Background = col
	}
	if f.TimeOnly != nil {
		cfg.TimeOnly = *f.TimeOnly
	}
	return nil
}
