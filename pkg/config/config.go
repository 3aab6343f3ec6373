// Package config loads MileStone settings from a TOML file and the
// environment.
//
// # Location
//
// The file lives at $XDG_CONFIG_HOME/milestone/config.toml, falling back to
// ~/.config/milestone/config.toml. A missing file is not an error; defaults
// apply.
//
// # Example
//
//	data_dir = "/home/me/.local/share/milestone"
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "milestone"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	api_token = "secret"
//
// # Environment
//
// MILESTONE_DATA_DIR, MILESTONE_STORAGE, MILESTONE_MONGO_URI, MILESTONE_CACHE,
// MILESTONE_REDIS_ADDR, MILESTONE_ADDR and MILESTONE_API_TOKEN override the
// matching file settings.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	DataDir string  `toml:"data_dir"`
	Storage Storage `toml:"storage"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
	Render  Render  `toml:"render"`
}

// Storage selects where project records live.
type Storage struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Cache selects where rendered artifacts are cached.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr     string `toml:"addr"`
	APIToken string `toml:"api_token"`
}

// Render holds default SVG geometry.
type Render struct {
	Width    float64 `toml:"width"`
	Spacing  float64 `toml:"spacing"`
	FontSize float64 `toml:"font_size"`
}

// Duration is a time.Duration written as a string such as "24h" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", b, err)
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
	dataDir := defaultDataDir()
	return Config{
		DataDir: dataDir,
		Storage: Storage{
			Backend:  StorageFile,
			MongoURI: "mongodb://localhost:27017",
			Database: "milestone",
		},
		Cache: Cache{
			Backend:   CacheFile,
			Dir:       defaultCacheDir(),
			RedisAddr: "localhost:6379",
			Prefix:    "milestone:",
			TTL:       Duration{7 * 24 * time.Hour},
		},
		Server: Server{
			Addr: "127.0.0.1:8080",
		},
		Render: Render{
			Width:    360,
			Spacing:  8,
			FontSize: 12,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "milestone", "config.toml"), nil
}

// Load reads the config at path, or at [Path] when path is empty, applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.DataDir, "MILESTONE_DATA_DIR")
	set(&c.Storage.Backend, "MILESTONE_STORAGE")
	set(&c.Storage.MongoURI, "MILESTONE_MONGO_URI")
	set(&c.Cache.Backend, "MILESTONE_CACHE")
	set(&c.Cache.RedisAddr, "MILESTONE_REDIS_ADDR")
	set(&c.Server.Addr, "MILESTONE_ADDR")
	set(&c.Server.APIToken, "MILESTONE_API_TOKEN")
}

// Validate rejects unknown backends and unusable render geometry.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("config: data_dir is required for the file backend")
		}
	case StorageMongo:
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("config: storage.mongo_uri is required for the mongo backend")
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q (want file or mongo)", c.Storage.Backend)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}

	if c.Render.Width <= 0 {
		return fmt.Errorf("config: render.width must be positive, got %v", c.Render.Width)
	}
	if c.Render.FontSize <= 0 {
		return fmt.Errorf("config: render.font_size must be positive, got %v", c.Render.FontSize)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "milestone")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "milestone")
	}
	return filepath.Join(home, ".local", "share", "milestone")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "milestone-cache")
	}
	return filepath.Join(dir, "milestone")
}
