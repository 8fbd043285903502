package config

import (
	"errors"
	"os"
	"path/filepath"
)

const appDirName = "HadesWorld"

func appConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("user config directory not found")
	}
	return filepath.Join(dir, appDirName), nil
}

// SettingsPath is where host settings live unless HADES_SETTINGS_PATH says
// otherwise.
func SettingsPath() (string, error) {
	if p := os.Getenv("HADES_SETTINGS_PATH"); p != "" {
		return p, nil
	}
	dir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

func defaultStorePath() string {
	dir, err := appConfigDir()
	if err != nil {
		return "generations.db"
	}
	return filepath.Join(dir, "generations.db")
}
