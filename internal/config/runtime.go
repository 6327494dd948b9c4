package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".pitchcoach"

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("COACH_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
