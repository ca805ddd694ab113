// Package secrets resolves named credentials (database password, SMTP
// password, admin recipient list) from an ordered chain of providers. The
// first provider that knows a name wins; lookups are cached for the process
// lifetime because the sources are static once the service starts.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"supplierintake/pkg/platform/sentinel"
)

// Provider fetches one named secret. Implementations return
// sentinel.ErrNotFound when the name is not theirs to answer, so the
// resolver can fall through to the next provider.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// FileProvider reads secrets from files in a directory, one file per secret
// name. This matches mounted secret volumes where each credential appears
// as a file whose content is the value.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a FileProvider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Get reads the secret file for name. A missing file means the provider does
// not hold this secret; any other I/O failure is a real error.
func (p *FileProvider) Get(ctx context.Context, name string) (string, error) {
	path := filepath.Join(p.dir, filepath.Clean(name))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("read secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// EnvProvider maps secret names onto environment variables: dashes become
// underscores and the name is upper-cased, so "smtp-password" resolves from
// SMTP_PASSWORD.
type EnvProvider struct{}

// NewEnvProvider creates an EnvProvider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Get looks the secret up in the environment. Unset or empty variables count
// as not found.
func (p *EnvProvider) Get(ctx context.Context, name string) (string, error) {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	value := os.Getenv(key)
	if value == "" {
		return "", sentinel.ErrNotFound
	}
	return value, nil
}

// Resolver walks an ordered provider chain and caches successful lookups.
type Resolver struct {
	providers []Provider
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver creates a Resolver over the given providers, consulted in order.
func NewResolver(logger *slog.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		logger:    logger,
		cache:     make(map[string]string),
	}
}

// Get resolves name through the chain. Providers that miss are skipped;
// provider failures are logged and skipped so a broken secret backend
// degrades to the next source instead of taking the lookup down.
func (r *Resolver) Get(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	if v, ok := r.cache[name]; ok {
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	for _, p := range r.providers {
		value, err := p.Get(ctx, name)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			r.logger.WarnContext(ctx, "secret provider failed, trying next",
				"secret", name,
				"error", err.Error(),
			)
			continue
		}

		r.mu.Lock()
		r.cache[name] = value
		r.mu.Unlock()
		return value, nil
	}

	return "", fmt.Errorf("secret %s: %w", name, sentinel.ErrNotFound)
}

// GetOrDefault resolves name, falling back to def when no provider holds it.
func (r *Resolver) GetOrDefault(ctx context.Context, name, def string) string {
	value, err := r.Get(ctx, name)
	if err != nil {
		return def
	}
	return value
}
