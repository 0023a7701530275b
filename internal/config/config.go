// Package config loads the anchorflow configuration file.
//
// The file is TOML and optional. It lives at $XDG_CONFIG_HOME/anchorflow/config.toml
// (else ~/.config/anchorflow/config.toml) unless --config names another path:
//
//	optimize_wrap = true
//	verbose = false
//
//	[cache]
//	backend = "redis"        # "file" (default), "redis" or "none"
//	redis_addr = "localhost:6379"
//	namespace = "staging"    # prefixes every key
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
//
// Command-line flags override file values.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchorflow/pkg/cache"
	"github.com/matzehuels/anchorflow/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "anchorflow"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	OptimizeWrap bool   `toml:"optimize_wrap"`
	Verbose      bool   `toml:"verbose"`
	Cache        Cache  `toml:"cache"`
	Server       Server `toml:"server"`
}

// Cache selects and configures the solve cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Namespace string   `toml:"namespace"`
	TTL       Duration `toml:"ttl"`
}

// Server configures `anchorflow serve`.
type Server struct {
	Addr    string   `toml:"addr"`
	Timeout Duration `toml:"timeout"`
}

// Duration decodes TOML strings such as "30s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: ":8080", Timeout: Duration{30 * time.Second}},
	}
}

// Load reads path over the defaults. An empty path loads the default
// location, where a missing file is not an error. A missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerations and required combinations.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if ns := c.Cache.Namespace; ns != "" && strings.ContainsAny(ns, ": /\\") {
		return errors.New(errors.ErrCodeInvalidInput, "cache namespace %q must not contain ':', '/', '\\' or spaces", ns)
	}
	if c.Cache.TTL.Duration < 0 || c.Server.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "durations must not be negative")
	}
	return nil
}

// Keyer returns the cache keyer for the configured namespace, or nil for the
// default keyer.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace)
}

// OpenCache opens the configured cache backend. A configured TTL caps the
// lifetime of every entry.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		backend, err = cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		dir := c.Cache.Dir
		if dir == "" {
			if dir, err = CacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		backend, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	return cache.Capped(backend, c.Cache.TTL.Duration), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate config: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/anchorflow/).
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
