package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "rsvpr"

	// Version is the application version.
	Version = "0.3.0"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// DataDir returns the rsvpr data directory path, creating it if needed.
// Linux: ~/.config/rsvpr (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\rsvpr (via os.UserCacheDir)
func DataDir() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)

	if err := os.MkdirAll(appDir, 0o700); err != nil {
		errDir = fmt.Errorf("failed to create data directory: %w", err)
	}
}
