package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Backend address composition
const (
	BackendScheme = "http"
	BackendHost   = "127.0.0.1"
)

var (
	// ErrInvalidPort is returned when the config carries no usable port.
	ErrInvalidPort = errors.New("config: port must be between 1 and 65535")

	// ErrUnsupportedFormat is returned for config files with an unknown extension.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)

// AppConfig is the resolved application configuration shared with every service.
type AppConfig struct {
	// Port is the port of the local Symmetry backend
	Port int `json:"port" yaml:"port" toml:"port"`

	// BackendBaseURL is composed from Port, e.g. http://127.0.0.1:8000
	BackendBaseURL string `json:"-" yaml:"-" toml:"-"`
}

// ComposeBaseURL builds the backend base URL for a port.
func ComposeBaseURL(port int) string {
	return BackendScheme + "://" + BackendHost + ":" + strconv.Itoa(port)
}

// Validate checks the port range and fills BackendBaseURL.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	c.BackendBaseURL = ComposeBaseURL(c.Port)
	return nil
}

// Load reads the config file at path. The format follows the extension:
// .json (default), .yaml/.yml or .toml. Missing files, malformed content and
// invalid ports are errors; there is no fallback value.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config content in the format named by ext (".json", ".yaml",
// ".yml", ".toml"; empty means JSON).
func Parse(data []byte, ext string) (*AppConfig, error) {
	var cfg AppConfig

	switch strings.ToLower(ext) {
	case "", ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
