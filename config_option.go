package resultmap

import (
	"time"

	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/logger"
	"gorm.io/resultmap/schema"
)

// Config load config
type Config struct {
	// NamingStrategy names the cache namespaces of mapper types
	NamingStrategy schema.Namer
	// Logger
	Logger logger.Interface
	// CacheFactory creates the cache of every owning namespace, defaults to an LRU cache
	// sized by CacheSize that expires entries after CacheTTL
	CacheFactory cache.Factory
	CacheSize    int
	CacheTTL     time.Duration
}

// Option use functional option for Config.
type Option func(c *Config)

// WithLogger set logger.
func WithLogger(logger logger.Interface) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithNamingStrategy set namespace namer.
func WithNamingStrategy(namer schema.Namer) Option {
	return func(c *Config) {
		c.NamingStrategy = namer
	}
}

// WithCacheFactory set cache factory, it takes precedence over WithCacheSize and WithCacheTTL.
func WithCacheFactory(factory cache.Factory) Option {
	return func(c *Config) {
		c.CacheFactory = factory
	}
}

// WithCacheSize set the size of default caches.
func WithCacheSize(size int) Option {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithCacheTTL set the entry ttl of default caches, zero never expires.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.CacheTTL = ttl
	}
}

func newConfig(opts []Option) *Config {
	config := &Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(config)
		}
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.CacheSize <= 0 {
		config.CacheSize = cache.DefaultSize
	}

	if config.CacheFactory == nil {
		config.CacheFactory = cache.LRUFactory(config.CacheSize, config.CacheTTL)
	}
	return config
}
