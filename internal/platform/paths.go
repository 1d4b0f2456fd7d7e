package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the per-user directory that holds appName's config, state and log.
// It falls back to ~/.config when the OS config dir cannot be resolved.
func DataDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get data dir: %w", err)
		}
		return "", fmt.Errorf("get data dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}
