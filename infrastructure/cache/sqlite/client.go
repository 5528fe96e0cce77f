// ABOUTME: SQLite response cache for single-node deployments that survive restarts
// ABOUTME: Expired rows are skipped on read and purged by a background sweep

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"recipe-cook-api/core/interfaces"
)

// DefaultTTL applies when Set is called with a zero ttl.
const DefaultTTL = time.Hour

const maxKeyLength = 255

const schema = `
CREATE TABLE IF NOT EXISTS cooked_responses (
	key    TEXT PRIMARY KEY,
	value  BLOB NOT NULL,
	expiry INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cooked_responses_expiry ON cooked_responses(expiry);
`

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSQLiteCache opens (or creates) the database at filePath and starts the
// expiry sweep. logger may be nil.
func NewSQLiteCache(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// go-sqlite3 serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	c := &Client{
		db:       db,
		filePath: filePath,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupRoutine(5 * time.Minute)
	return c, nil
}

func checkKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: %d bytes (max %d)", len(key), maxKeyLength)
	}
	return nil
}

// Get retrieves an unexpired value.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM cooked_responses WHERE key = ? AND expiry > ?",
		key, time.Now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set stores value until ttl elapses, replacing any previous value.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if value == nil {
		value = []byte{}
	}

	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cooked_responses (key, value, expiry) VALUES (?, ?, ?)",
		key, value, time.Now().Add(ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cooked_responses WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Clear removes all values from the cache
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cooked_responses"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func (c *Client) cleanupRoutine(interval time.Duration) {
	defer c.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := c.Purge(context.Background()); err != nil && c.logger != nil {
				c.logger.Warn("Failed to purge expired cache rows", map[string]interface{}{
					"path":  c.filePath,
					"error": err.Error(),
				})
			}
		case <-c.stop:
			return
		}
	}
}

// Purge deletes expired rows and returns how many were removed.
func (c *Client) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM cooked_responses WHERE expiry <= ?", time.Now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats returns cache statistics
func (c *Client) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total, expired int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cooked_responses").Scan(&total); err != nil {
		return nil, err
	}
	if err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cooked_responses WHERE expiry <= ?", time.Now().UnixNano(),
	).Scan(&expired); err != nil {
		return nil, err
	}
	stats["total_entries"] = total
	stats["expired_entries"] = expired
	stats["file_path"] = c.filePath

	var pageCount, pageSize int
	if err := c.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := c.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}
	return stats, nil
}

// Close stops the sweep and closes the database.
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
	return c.db.Close()
}
