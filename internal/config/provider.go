package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/symmetry-wiki/symmetry-desktop/internal/platform"
)

// ChannelGetAppConfig names the config resolution request. The desktop shell
// resolves it once at startup before any view or service is created.
const ChannelGetAppConfig = "get-app-config"

// ErrNotResolved is returned when the base URL is read before a successful resolve.
var ErrNotResolved = errors.New("config: backend base URL not resolved")

// LoadFunc loads an AppConfig from a path.
type LoadFunc func(path string) (*AppConfig, error)

// Provider resolves the application config once per process. After the first
// Resolve the value (or the failure) is fixed and safe for concurrent reads.
type Provider struct {
	path   string
	load   LoadFunc
	logger *slog.Logger

	once     sync.Once
	cfg      *AppConfig
	err      error
	resolved chan struct{}
}

// NewProvider creates a provider for the config file at path.
func NewProvider(path string, logger *slog.Logger) *Provider {
	return NewProviderWithLoader(path, Load, logger)
}

// NewProviderWithLoader creates a provider that resolves through load.
func NewProviderWithLoader(path string, load LoadFunc, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		path:     path,
		load:     load,
		logger:   logger,
		resolved: make(chan struct{}),
	}
}

// Resolve loads the config on first call and returns the cached outcome afterwards.
// A cancelled context fails the call without consuming the one-time resolution.
func (p *Provider) Resolve(ctx context.Context) (*AppConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.once.Do(func() {
		p.logger.Debug("resolving app config",
			slog.String("channel", ChannelGetAppConfig),
			slog.String("path", p.path))

		cfg, err := p.load(p.path)
		if err != nil {
			p.logger.Error("failed to load the configuration file",
				slog.String("path", p.path),
				slog.Any("error", err))
			p.err = err
		} else {
			p.logger.Info("app config resolved",
				slog.String("backend_base_url", cfg.BackendBaseURL))
			p.cfg = cfg
		}
		close(p.resolved)
	})

	return p.cfg, p.err
}

// GetBackendBaseURL returns the resolved backend base URL. It never triggers a
// load: callers must Resolve first, and a failed resolution stays failed.
func (p *Provider) GetBackendBaseURL() (string, error) {
	select {
	case <-p.resolved:
	default:
		return "", ErrNotResolved
	}
	if p.err != nil {
		return "", p.err
	}
	return p.cfg.BackendBaseURL, nil
}

// LoadEnv loads a .env file from the working directory when present. A missing
// file is not an error.
func LoadEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to load .env file", slog.Any("error", err))
		}
	}
}

// Bootstrap locates the config file (explicitPath, SYMMETRY_CONFIG or the
// default search paths) and resolves it once. The returned provider is ready
// for GetBackendBaseURL.
func Bootstrap(ctx context.Context, explicitPath string, logger *slog.Logger) (*Provider, error) {
	path, err := platform.FindConfigFile(explicitPath)
	if err != nil {
		return nil, fmt.Errorf("locate config: %w", err)
	}

	provider := NewProvider(path, logger)
	if _, err := provider.Resolve(ctx); err != nil {
		return nil, err
	}
	return provider, nil
}
