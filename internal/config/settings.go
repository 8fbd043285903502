// Package config holds host settings: where the StyxScribe bridge lives,
// where seeds are written, and what the web host binds to.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultOutputDir = "output"
	DefaultHTTPAddr  = "127.0.0.1:8080"
)

// HadesSettings is the Hades group of the host settings file.
type HadesSettings struct {
	StyxScribePath string `json:"styx_scribe_path,omitempty"`
}

type Settings struct {
	Hades     HadesSettings `json:"hades_options"`
	OutputDir string        `json:"output_dir,omitempty"`
	StorePath string        `json:"store_path,omitempty"`
	HTTPAddr  string        `json:"http_addr,omitempty"`
}

// envOverrides holds raw env values. Empty fields leave the file value alone.
type envOverrides struct {
	StyxScribePath string `env:"HADES_STYX_SCRIBE_PATH"`
	OutputDir      string `env:"HADES_OUTPUT_DIR"`
	StorePath      string `env:"HADES_STORE_PATH"`
	HTTPAddr       string `env:"HADES_HTTP_ADDR"`
}

func Defaults() Settings {
	return Settings{
		OutputDir: DefaultOutputDir,
		StorePath: defaultStorePath(),
		HTTPAddr:  DefaultHTTPAddr,
	}
}

// Load reads the settings file at SettingsPath and applies env overrides.
// A missing file yields defaults.
func Load() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Settings{}, err
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	s.normalize()
	return s, nil
}

func (s *Settings) applyEnv() error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if raw.StyxScribePath != "" {
		s.Hades.StyxScribePath = raw.StyxScribePath
	}
	if raw.OutputDir != "" {
		s.OutputDir = raw.OutputDir
	}
	if raw.StorePath != "" {
		s.StorePath = raw.StorePath
	}
	if raw.HTTPAddr != "" {
		s.HTTPAddr = raw.HTTPAddr
	}
	return nil
}

func (s *Settings) normalize() {
	s.Hades.StyxScribePath = strings.TrimSpace(s.Hades.StyxScribePath)
	if strings.TrimSpace(s.OutputDir) == "" {
		s.OutputDir = DefaultOutputDir
	}
	if strings.TrimSpace(s.HTTPAddr) == "" {
		s.HTTPAddr = DefaultHTTPAddr
	}
}

// Save writes the settings to SettingsPath.
func Save(s Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return SaveFile(path, s)
}

// SaveFile writes through a temp file and rename so a crash never leaves a
// truncated settings file behind.
func SaveFile(path string, s Settings) error {
	s.normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}

// StyxScribeFound reports whether the configured bridge path exists. The
// client needs it to talk to the game; generation does not.
func (s Settings) StyxScribeFound() bool {
	if s.Hades.StyxScribePath == "" {
		return false
	}
	_, err := os.Stat(s.Hades.StyxScribePath)
	return err == nil
}
