// Package config loads server configuration from a TOML file with
// environment-variable overrides, and opens the configured store and
// cache backends.
package config

import (
	"context"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/screenflow/pkg/cache"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/store"
)

// Backend names accepted in the [store] and [cache] sections.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"

	CacheNull  = "null"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full server configuration.
type Config struct {
	Listen string       `toml:"listen"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
}

// StoreConfig selects and parameterizes the graph store backend.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Path            string `toml:"path"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	GraphID         string `toml:"graph_id"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// LayoutConfig carries layout engine overrides. Zero values mean engine
// defaults.
type LayoutConfig struct {
	OrderingEpochs int     `toml:"ordering_epochs"`
	ComponentGap   float64 `toml:"component_gap"`
}

// Default returns the configuration used when no file is given: a file
// store next to the working directory and caching disabled.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Store: StoreConfig{
			Backend:         StoreFile,
			Path:            "data/graph.json",
			MongoDatabase:   "screenflow",
			MongoCollection: "graphs",
			GraphID:         store.DefaultGraphID,
		},
		Cache: CacheConfig{
			Backend: CacheNull,
		},
	}
}

// Load reads a TOML config file and applies environment overrides. An empty
// path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading config %s", path)
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over the file values. Environment
// wins, so containerized deployments can override a baked-in config.
func (c *Config) applyEnv() {
	if v := os.Getenv("SCREENFLOW_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("GRAPH_FILE"); v != "" {
		c.Store.Backend = StoreFile
		c.Store.Path = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Store.Backend = StoreMongo
		c.Store.MongoURI = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = CacheRedis
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Cache.RedisDB = db
		}
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreFile:
		if c.Store.Path == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.path is required for the file backend")
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case CacheNull, CacheRedis:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.dir is required for the file backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// OpenStore builds the configured store backend.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case StoreMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        c.Store.MongoURI,
			Database:   c.Store.MongoDatabase,
			Collection: c.Store.MongoCollection,
			GraphID:    c.Store.GraphID,
		})
	default:
		return store.NewFileStore(c.Store.Path)
	}
}

// OpenCache builds the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheFile:
		return cache.NewFileCache(c.Cache.Dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}
