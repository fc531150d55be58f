package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// SettingsEnvVar overrides the settings file location.
const SettingsEnvVar = "VLOG_MANAGER_SETTINGS"

//go:embed sample_settings.toml
var sampleSettings string

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Ledger contains configuration for the episode history database.
type Ledger struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Scaffold contains knobs for how episode trees are materialized.
type Scaffold struct {
	OverwriteExisting bool `toml:"overwrite_existing"`
	Lock              bool `toml:"lock"`
}

// Settings holds per-user tool behaviour, independent of any one series.
//
// Sections:
//   - Logging: log format and level
//   - Ledger: history database location
//   - Scaffold: skeleton overwrite policy and run lock
type Settings struct {
	Logging  Logging  `toml:"logging"`
	Ledger   Ledger   `toml:"ledger"`
	Scaffold Scaffold `toml:"scaffold"`
}

// LoadSettings locates, parses, and validates the settings file. An absent
// file is not an error; defaults are used and exists is false.
func LoadSettings(path string) (*Settings, string, bool, error) {
	settings := DefaultSettings()

	resolvedPath, exists, err := resolveSettingsPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open settings: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&settings); err != nil {
			return nil, "", false, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := settings.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := settings.Validate(); err != nil {
		return nil, "", false, err
	}

	return &settings, resolvedPath, exists, nil
}

// SettingsPath returns the settings file location honouring SettingsEnvVar.
func SettingsPath() (string, error) {
	path, _, err := resolveSettingsPath("")
	return path, err
}

func resolveSettingsPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		if value, ok := os.LookupEnv(SettingsEnvVar); ok && strings.TrimSpace(value) != "" {
			path = value
		}
	}
	if strings.TrimSpace(path) == "" {
		path = defaultSettingsPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat settings: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("settings path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// CreateSampleSettings writes a commented settings file to path.
func CreateSampleSettings(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleSettings), 0o644); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	expanded, err := homedir.Expand(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	cleaned := filepath.Clean(expanded)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
