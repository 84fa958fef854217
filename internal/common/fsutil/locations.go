// fsutil/locations.go
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/osutil"
)

// GetHomeDir returns the user's home directory
func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return home, nil
}

// GetConfigDir returns the appropriate configuration directory for the application
func GetConfigDir(appName string) (string, error) {
	// In development mode, use a local config directory
	if osutil.IsDevEnvironment() {
		return "config", nil
	}

	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}

	switch osutil.GetOSType() {
	case osutil.Windows:
		// Windows: %APPDATA%\appName
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, appName), nil

	case osutil.MacOS:
		// macOS: ~/Library/Application Support/appName
		return filepath.Join(home, "Library", "Application Support", appName), nil

	default:
		// Linux/Unix: ~/.config/appName (XDG Base Directory specification)
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, appName), nil
	}
}

// GetSystemConfigDir returns the system-wide configuration directory
func GetSystemConfigDir(appName string) (string, error) {
	if osutil.IsDevEnvironment() {
		return "config", nil
	}

	switch osutil.GetOSType() {
	case osutil.Windows:
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = filepath.Join("C:", "ProgramData")
		}
		return filepath.Join(programData, appName), nil

	case osutil.MacOS:
		return filepath.Join("/Library", "Application Support", appName), nil

	default:
		return filepath.Join("/etc", appName), nil
	}
}

// GetTemplateDir returns the directory searched for templates given by name
// rather than by path
func GetTemplateDir(appName string) (string, error) {
	configDir, err := GetConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "templates"), nil
}
