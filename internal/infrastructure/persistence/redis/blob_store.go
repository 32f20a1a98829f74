// Package redis implements the Redis-backed snapshot store.
// Each collection round-trips as one string-keyed blob, which matches the
// simple key-value shape the hub's persistence contract asks for. Blobs are
// stored without TTL: they are the durable copy, not a cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/snapshot"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// MaxRetries is the maximum number of retries before giving up.
	MaxRetries int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// BLOB STORE
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrKeyEmpty is returned when an empty collection key is provided.
	ErrKeyEmpty = errors.New("redis: key cannot be empty")
)

// BlobStore implements snapshot.Store on top of Redis string values.
type BlobStore struct {
	client *redis.Client
	config Config
}

var _ snapshot.Store = (*BlobStore)(nil)

// NewBlobStore creates a BlobStore and verifies the connection.
func NewBlobStore(cfg Config) (*BlobStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: connect %s: %w", cfg.Addr(), err)
	}

	return &BlobStore{client: client, config: cfg}, nil
}

// Save writes the blob under the collection key, replacing any previous value.
func (s *BlobStore) Save(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if err := s.client.Set(ctx, key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis: save %q: %w", key, err)
	}
	return nil
}

// Load reads the blob stored under the collection key.
func (s *BlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}
	blob, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, snapshot.ErrNotFound
		}
		return nil, fmt.Errorf("redis: load %q: %w", key, err)
	}
	return blob, nil
}

// Ping verifies the Redis server is reachable.
func (s *BlobStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *BlobStore) Close() error {
	return s.client.Close()
}
