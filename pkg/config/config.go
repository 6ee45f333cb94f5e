// Package config loads flighttree settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. The file
// is looked up in this order:
//
//  1. the path passed to [Load] (the --config flag)
//  2. $FLIGHTTREE_CONFIG
//  3. no file: [Default]
//
// Example file:
//
//	[tree]
//	min_count = 5
//	max_count = 50
//	default_count = 10
//	spread = 3.0
//
//	[server]
//	addr = ":8080"
//	log_file = "/var/log/flighttree.log"
//
//	[store]
//	backend = "redis"
//	ttl = "24h"
//
//	[store.redis]
//	addr = "localhost:6379"
//	prefix = "flighttree:"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/layout"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "FLIGHTTREE_CONFIG"

// AppName is used for default directories.
const AppName = "flighttree"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config is the complete application configuration.
type Config struct {
	Tree   Tree   `toml:"tree"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Sample Sample `toml:"sample"`
}

// Tree bounds the number of codes a tree is built from.
type Tree struct {
	MinCount     int     `toml:"min_count"`
	MaxCount     int     `toml:"max_count"`
	DefaultCount int     `toml:"default_count"`
	Spread       float64 `toml:"spread"`
}

// Server configures the HTTP API.
type Server struct {
	Addr    string `toml:"addr"`
	LogFile string `toml:"log_file"` // empty logs to stderr
}

// Store selects where uploaded schedules are kept.
type Store struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"` // file backend; empty uses the user cache dir
	TTL     Duration `toml:"ttl"` // 0 keeps schedules until deleted
	Redis   Redis    `toml:"redis"`
	Mongo   Mongo    `toml:"mongo"`
}

// Redis configures the redis store backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the MongoDB store backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Sample locates the bundled example schedule.
type Sample struct {
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tree: Tree{
			MinCount:     5,
			MaxCount:     50,
			DefaultCount: 10,
			Spread:       layout.DefaultSpread,
		},
		Server: Server{Addr: ":8080"},
		Store: Store{
			Backend: BackendFile,
			Redis:   Redis{Addr: "localhost:6379", Prefix: AppName + ":"},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   AppName,
				Collection: "datasets",
			},
		},
		Sample: Sample{Path: dataset.DefaultSamplePath},
	}
}

// Load reads the configuration file at path, or at $FLIGHTTREE_CONFIG when
// path is empty. Values missing from the file keep their defaults. Unknown
// keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %q not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks that the settings are consistent.
func (c Config) Validate() error {
	t := c.Tree
	if t.MinCount < 1 || t.MinCount > t.MaxCount {
		return errors.New(errors.ErrCodeInvalidConfig, "tree.min_count must be between 1 and max_count (%d)", t.MaxCount)
	}
	if t.DefaultCount < t.MinCount || t.DefaultCount > t.MaxCount {
		return errors.New(errors.ErrCodeInvalidConfig, "tree.default_count %d outside [%d, %d]", t.DefaultCount, t.MinCount, t.MaxCount)
	}
	if t.Spread <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tree.spread must be positive")
	}
	if c.Store.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "store.ttl must not be negative")
	}

	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis.addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo.uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store.backend %q", c.Store.Backend)
	}
	return nil
}

// CacheDir returns the user cache directory for flighttree following the
// XDG convention (~/.cache/flighttree).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// DatasetDir returns the directory of the file store backend.
func (s Store) DatasetDir() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "datasets"), nil
}
