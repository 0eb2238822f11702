package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Config file lookup
const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "SYMMETRY_CONFIG"

	// DefaultConfigFileName is the file looked up next to the working directory
	// and the executable.
	DefaultConfigFileName = "config.json"
)

// ErrConfigNotFound is returned when none of the candidate config paths exist.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigSearchPaths returns the candidate config paths in priority order:
// the explicit path (flag or SYMMETRY_CONFIG), the working directory and the
// directory holding the executable. Duplicates are removed.
func ConfigSearchPaths(explicit string) []string {
	var candidates []string

	if explicit != "" {
		candidates = append(candidates, explicit)
	} else if env := envConfigPath(); env != "" {
		candidates = append(candidates, env)
	}

	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, DefaultConfigFileName))
	}

	if exeDir, err := ExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(exeDir, DefaultConfigFileName))
	}

	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	return unique
}

func envConfigPath() string {
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// FindConfigFile returns the first existing regular file from the candidates.
// An explicit path is authoritative: when it is given and missing, the lookup
// fails instead of falling through to the defaults.
func FindConfigFile(explicit string) (string, error) {
	candidates := ConfigSearchPaths(explicit)
	if explicit != "" || envConfigPath() != "" {
		candidates = candidates[:1]
	}

	path, err := FindFirstExisting(candidates)
	if err != nil {
		return "", fmt.Errorf("%w (searched: %s)", ErrConfigNotFound, strings.Join(candidates, ", "))
	}
	return path, nil
}

// FindFirstExisting returns the first path that exists and is not a directory.
func FindFirstExisting(paths []string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

// ExecutableDir returns the directory that holds the running executable.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// WriteTextFile writes content to path, creating parent directories as needed.
func WriteTextFile(path, content string) error {
	if path == "" {
		return fmt.Errorf("file path is empty")
	}
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
