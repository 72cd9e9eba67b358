// Package config loads paraphraser settings from a TOML file.
//
// A missing file is not an error: [Default] values are used. Keys that do not
// belong to any section are rejected so typos surface early.
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//	write_timeout = "30s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[transform]
//	max_combinations = 100000
//	nested = "reject"
//
//	[log]
//	level = "info"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
)

// appName is used for the default config and cache directories.
const appName = "paraphraser"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// DefaultMaxCombinations caps result sets unless configured otherwise.
const DefaultMaxCombinations = 100_000

// Config is the complete application configuration.
type Config struct {
	Server    Server    `toml:"server"`
	Cache     Cache     `toml:"cache"`
	Transform Transform `toml:"transform"`
	Log       Log       `toml:"log"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string        `toml:"addr"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"` // file backend; defaults to the XDG cache dir
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
}

// Transform holds defaults for paraphrase requests.
type Transform struct {
	MaxCombinations int    `toml:"max_combinations"` // 0 removes the cap
	Nested          string `toml:"nested"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 20 * time.Second,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
			TTL:       24 * time.Hour,
		},
		Transform: Transform{
			MaxCombinations: DefaultMaxCombinations,
			Nested:          paraphrase.NestedReject.String(),
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the file at path on top of the defaults. An empty path selects
// DefaultPath; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, perrors.New(perrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Transform.MaxCombinations < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "transform.max_combinations must not be negative")
	}
	if _, err := paraphrase.ParseNestedPolicy(c.Transform.Nested); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "transform.nested")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// NestedPolicy returns the parsed transform.nested value.
func (c Config) NestedPolicy() paraphrase.NestedPolicy {
	p, _ := paraphrase.ParseNestedPolicy(c.Transform.Nested)
	return p
}

// CombinationCap returns transform.max_combinations in the convention of
// pipeline.Options, where 0 in the file means no cap.
func (c Config) CombinationCap() int {
	if c.Transform.MaxCombinations == 0 {
		return -1
	}
	return c.Transform.MaxCombinations
}

// DefaultPath returns $XDG_CONFIG_HOME/paraphraser/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory: cache.dir if set, otherwise
// $XDG_CACHE_HOME/paraphraser or ~/.cache/paraphraser.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
