package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/migrations"
)

const memoryDSN = ":memory:"

// SQLiteBackend is a file-based persistent cache. With the ":memory:"
// path it degrades to a non-persistent cache useful for tests.
type SQLiteBackend struct {
	db         *sql.DB
	defaultTTL time.Duration
	log        *logger.Logger
}

// NewSQLiteBackend opens (creating if necessary) the cache database at
// path and brings its schema up to date.
func NewSQLiteBackend(ctx context.Context, path string, defaultTTL time.Duration, log *logger.Logger) (*SQLiteBackend, error) {
	if path == "" {
		path = memoryDSN
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}

	if path != memoryDSN {
		if err := createCacheFileIfNotExists(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	if err = migrations.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("cache database ready")
	return &SQLiteBackend{db: db, defaultTTL: defaultTTL, log: log}, nil
}

func createCacheFileIfNotExists(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create cache file: %w", err)
		}
		f.Close()
	}

	return nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sq.Select("value").
		From("cache_entries").
		Where(sq.Eq{"key": key}).
		Where(sq.Gt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build cache get query: %w", err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	query, args, err := sq.Insert("cache_entries").
		Options("OR REPLACE").
		Columns("key", "value", "expires_at").
		Values(key, value, time.Now().Add(ttl)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cache set query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("cache_entries").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build cache delete query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteBackend) Clear(ctx context.Context) error {
	query, _, err := sq.Delete("cache_entries").ToSql()
	if err != nil {
		return fmt.Errorf("build cache clear query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}

	return nil
}

// CleanupExpired removes rows whose TTL has elapsed and reports how many
// were deleted. Expired rows are already invisible to Get; this is a
// maintenance operation for reclaiming disk space.
func (s *SQLiteBackend) CleanupExpired(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete("cache_entries").
		Where(sq.LtOrEq{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cache cleanup query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("cache cleanup: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache cleanup rows affected: %w", err)
	}
	if deleted > 0 {
		s.log.Debug().Int64("deleted", deleted).Msg("cleaned up expired cache entries")
	}

	return deleted, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
