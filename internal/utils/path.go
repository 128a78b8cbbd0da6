package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates data files relative to wherever the binary
// actually runs from, so installed and in-repo invocations both work.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver anchored at the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		pr.executablePath, pr.executableDir, pr.configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "spellserve")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "spellserve")
		}
		return filepath.Join(homeDir, ".config", "spellserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "spellserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "spellserve")
	default:
		return filepath.Join(homeDir, ".spellserve")
	}
}

// GetDictionaryPath resolves the word list file, trying in order:
// 1. User-specified path as given (absolute, or relative to cwd)
// 2. Relative to the executable directory
// 3. Under the user config directory
// The first candidate that exists as a regular file wins. When nothing
// exists the cwd-relative candidate comes back so the open error names
// the most likely intended location.
func (pr *PathResolver) GetDictionaryPath(userPath string) string {
	var candidates []string

	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	} else {
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userPath))
		}
		candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
		candidates = append(candidates, filepath.Join(pr.configDir, userPath))
	}

	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && stat.Mode().IsRegular() {
			log.Debugf("Found dictionary file: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not present: %s", path)
	}
	return candidates[0]
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetConfigDir returns the per-user config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
