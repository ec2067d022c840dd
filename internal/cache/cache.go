// Package cache memoises calculation results. Every stored value is the
// output of a pure calculation, so a cache miss or failure only costs time.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/toolhub/pkg/constants"
)

// Cache stores encoded results by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Config selects and tunes a cache backend.
type Config struct {
	Backend         string        `yaml:"backend,omitempty" mapstructure:"backend"` // none, memory, redis
	TTL             time.Duration `yaml:"ttl,omitempty" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval,omitempty" mapstructure:"cleanupInterval"`
	Redis           RedisConfig   `yaml:"redis,omitempty" mapstructure:"redis"`
}

// RedisConfig holds the connection settings for the redis backend.
type RedisConfig struct {
	Address     string        `yaml:"address,omitempty" mapstructure:"address"`
	Password    string        `yaml:"password,omitempty" mapstructure:"password"`
	DB          int           `yaml:"db,omitempty" mapstructure:"db"`
	DialTimeout time.Duration `yaml:"dialTimeout,omitempty" mapstructure:"dialTimeout"`
}

// WithDefaults fills unset fields with the package defaults.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = constants.CacheBackendMemory
	}
	if c.TTL <= 0 {
		c.TTL, _ = time.ParseDuration(constants.DefaultCacheTTL)
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval, _ = time.ParseDuration(constants.DefaultCacheCleanupInterval)
	}
	if c.Redis.Address == "" {
		c.Redis.Address = constants.DefaultRedisAddress
	}
	return c
}

// New builds the backend named by cfg.Backend.
func New(ctx context.Context, cfg Config) (Cache, error) {
	cfg = cfg.WithDefaults()
	switch strings.ToLower(cfg.Backend) {
	case constants.CacheBackendNone:
		return Nop{}, nil
	case constants.CacheBackendMemory:
		return NewMemory(cfg.TTL, cfg.CleanupInterval), nil
	case constants.CacheBackendRedis:
		return NewRedis(ctx, cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}

// Key derives a stable cache key from a namespace and a JSON-encodable request.
func Key(namespace string, request interface{}) (string, error) {
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key for %s: %w", namespace, err)
	}
	return fmt.Sprintf("%s:%016x", namespace, xxhash.Sum64(encoded)), nil
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (Nop) Set(context.Context, string, []byte) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }
