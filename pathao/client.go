package pathao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/parceldesk/pathao-sdk-go/internal/cache"
	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/internal/transport"
	"github.com/parceldesk/pathao-sdk-go/models"
)

// Client is the entry point of the SDK. It owns the HTTP transport, the
// reference-data cache, and the resource accessors, and releases all of
// them on Close.
//
// A Client is safe for concurrent use. Close is idempotent; operations
// after Close fail with [ErrClosed].
type Client struct {
	cfg     Config
	api     transport.API
	backend cache.Backend
	stores  *StoresResource
	refresh *refreshJob
	log     *logger.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewClient resolves cfg (explicit fields win over PATHAO_* environment
// variables, which win over defaults) and builds a ready-to-use client.
// The returned client holds network and, when a cache path is
// configured, database resources; the caller must Close it.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger("pathao-sdk")

	api := transport.NewHTTPTransport(transport.Config{
		BaseURL:      resolved.BaseURL,
		ClientID:     resolved.ClientID,
		ClientSecret: resolved.ClientSecret,
		Username:     resolved.Username,
		Password:     resolved.Password,
		Timeout:      resolved.Timeout(),
		MaxRetries:   resolved.MaxRetries,
	}, log)

	backend, err := newCacheBackend(ctx, resolved, log)
	if err != nil {
		closeErr := api.Close()
		return nil, errors.Join(err, closeErr)
	}

	manager := cache.NewManager(backend, cache.DefaultTTL, log)
	stores := newStoresResource(api, manager, backend, log)

	c := &Client{
		cfg:     resolved,
		api:     api,
		backend: backend,
		stores:  stores,
		log:     log,
	}
	c.refresh = newRefreshJob(DefaultRefreshInterval, c.refreshAndCleanup, log)
	stores.guard = c.checkOpen

	log.Info().
		Str("environment", string(resolved.Environment)).
		Str("base_url", resolved.BaseURL).
		Bool("persistent_cache", resolved.CachePath != "").
		Msg("client initialised")

	return c, nil
}

func newCacheBackend(ctx context.Context, cfg Config, log *logger.Logger) (cache.Backend, error) {
	if cfg.CachePath == "" {
		return cache.NewMemoryBackend(cache.DefaultTTL), nil
	}
	return cache.NewSQLiteBackend(ctx, cfg.CachePath, cache.DefaultTTL, log)
}

// WithClient builds a client, runs fn with it, and closes the client
// regardless of how fn returns. The close error, if any, is joined with
// fn's error. Use it when the client's lifetime matches one unit of
// work.
func WithClient(ctx context.Context, cfg Config, fn func(*Client) error) error {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	fnErr := fn(client)
	return errors.Join(fnErr, client.Close())
}

// Stores returns the store and location resource.
func (c *Client) Stores() *StoresResource {
	return c.stores
}

// Config returns the fully resolved configuration this client runs with.
func (c *Client) Config() Config {
	return c.cfg
}

// Token returns the access token currently held by the transport. A
// zero token means no request has authenticated yet.
func (c *Client) Token() models.Token {
	return c.api.Token()
}

// StartRefresh launches a background job that re-validates cached
// reference data and prunes expired cache rows every interval. A
// non-positive interval uses [DefaultRefreshInterval]. The job stops
// when ctx is cancelled or the client is closed.
func (c *Client) StartRefresh(ctx context.Context, interval time.Duration) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	c.refresh.start(ctx, interval)
	return nil
}

// StopRefresh stops the background refresh job and waits for any
// in-flight run to finish.
func (c *Client) StopRefresh() {
	c.refresh.stop()
}

// Close stops the refresh job and releases the cache and transport
// resources. It is safe to call multiple times; every call returns the
// result of the first.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.refresh.stop()
		c.closeErr = errors.Join(c.backend.Close(), c.api.Close())
		c.log.Debug().Msg("client closed")
	})
	return c.closeErr
}

// checkOpen is the guard handed to resources so operations on a closed
// client fail fast.
func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Client) refreshAndCleanup(ctx context.Context) error {
	err := c.stores.refreshReferenceData(ctx)

	if s, ok := c.backend.(*cache.SQLiteBackend); ok {
		_, cleanupErr := s.CleanupExpired(ctx)
		err = errors.Join(err, cleanupErr)
	}

	return err
}
