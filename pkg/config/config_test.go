package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"MILESTONE_DATA_DIR", "MILESTONE_STORAGE", "MILESTONE_MONGO_URI",
		"MILESTONE_CACHE", "MILESTONE_REDIS_ADDR", "MILESTONE_ADDR", "MILESTONE_API_TOKEN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def := Default()
	if cfg.Storage.Backend != StorageFile || cfg.Cache.Backend != CacheFile {
		t.Errorf("backends = %q/%q", cfg.Storage.Backend, cfg.Cache.Backend)
	}
	if cfg.Render != def.Render {
		t.Errorf("Render = %+v, want %+v", cfg.Render, def.Render)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_dir = "/tmp/ms"

[storage]
backend = "mongo"
mongo_uri = "mongodb://db:27017"
database = "portfolio"

[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
ttl = "90m"

[server]
addr = ":9000"

[render]
width = 480
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != "/tmp/ms" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Storage.Backend != StorageMongo || cfg.Storage.Database != "portfolio" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("TTL = %v, want 90m", cfg.Cache.TTL.Duration)
	}
	if cfg.Render.Width != 480 {
		t.Errorf("Render.Width = %v, want 480", cfg.Render.Width)
	}
	if cfg.Render.FontSize != Default().Render.FontSize {
		t.Errorf("unset font_size lost its default: %v", cfg.Render.FontSize)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MILESTONE_DATA_DIR", "/env/data")
	t.Setenv("MILESTONE_CACHE", "none")
	t.Setenv("MILESTONE_API_TOKEN", "tok")

	path := writeConfig(t, `data_dir = "/file/data"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != "/env/data" {
		t.Errorf("DataDir = %q, want env value", cfg.DataDir)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Server.APIToken != "tok" {
		t.Errorf("APIToken = %q", cfg.Server.APIToken)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage.Backend = "sqlite" }, "unknown storage backend"},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "unknown cache backend"},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render.width"},
		{"mongo without uri", func(c *Config) { c.Storage.Backend = StorageMongo; c.Storage.MongoURI = "" }, "mongo_uri"},
		{"file without data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "data_dir = [")
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "milestone", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestEncode(t *testing.T) {
	out, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[storage]", `backend = "file"`, `ttl = "168h0m0s"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() missing %q:\n%s", want, out)
		}
	}
}
