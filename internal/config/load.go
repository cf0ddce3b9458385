package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file
// when --config is not given.
const EnvConfig = "SCENEVIEW_CONFIG"

const fileName = "config.yaml"

// Load reads the config file chosen by ResolvePath.
func Load() (*Config, error) {
	return LoadFile(ResolvePath())
}

// LoadFile builds a config from defaults, the YAML file at path and the
// command line flags, each overriding the one before. An empty path skips
// the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.merge(path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ResolvePath picks the config file: the --config flag, then $SCENEVIEW_CONFIG,
// then the first config.yaml found in the working directory or ConfigDir.
// Explicit paths are returned even if the file is missing so Load reports it.
// Returns "" when nothing applies.
func ResolvePath() string {
	for _, explicit := range []string{ConfigPath(), os.Getenv(EnvConfig)} {
		if explicit != "" {
			return explicit
		}
	}
	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "sceneview")
}

// merge overlays the YAML document at path onto c. Keys the file leaves out
// keep their current values, and an empty file changes nothing.
func (c *Config) merge(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
