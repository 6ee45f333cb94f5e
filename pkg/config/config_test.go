package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/flighttree/pkg/cache"
	"github.com/matzehuels/flighttree/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flighttree.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	if cfg.Tree.MinCount != 5 || cfg.Tree.MaxCount != 50 || cfg.Tree.DefaultCount != 10 {
		t.Errorf("unexpected tree defaults: %+v", cfg.Tree)
	}
	if cfg.Tree.Spread != 3.0 {
		t.Errorf("Spread = %v, want 3.0", cfg.Tree.Spread)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q", cfg.Store.Backend)
	}
}

func TestLoadNoFile(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Error("Load(\"\") without env should return defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[tree]
default_count = 20
spread = 4.5

[server]
addr = "127.0.0.1:9090"
log_file = "/tmp/flighttree.log"

[store]
backend = "redis"
ttl = "24h"

[store.redis]
addr = "redis:6379"
prefix = "ft:"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tree.DefaultCount != 20 || cfg.Tree.Spread != 4.5 {
		t.Errorf("tree = %+v", cfg.Tree)
	}
	if cfg.Tree.MinCount != 5 || cfg.Tree.MaxCount != 50 {
		t.Error("unset keys should keep defaults")
	}
	if cfg.Server.Addr != "127.0.0.1:9090" || cfg.Server.LogFile != "/tmp/flighttree.log" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.TTL.Duration != 24*time.Hour {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Redis.Addr != "redis:6379" || cfg.Store.Redis.Prefix != "ft:" {
		t.Errorf("redis = %+v", cfg.Store.Redis)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[tree]\ndefault_count = 7\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tree.DefaultCount != 7 {
		t.Errorf("DefaultCount = %d, want 7", cfg.Tree.DefaultCount)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[tree\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[tree]\ncount = 3\n", errors.ErrCodeInvalidConfig},
		{"bad duration", "[store]\nttl = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"default above max", "[tree]\ndefault_count = 80\n", errors.ErrCodeInvalidConfig},
		{"min above max", "[tree]\nmin_count = 60\n", errors.ErrCodeInvalidConfig},
		{"zero spread", "[tree]\nspread = 0.0\n", errors.ErrCodeInvalidConfig},
		{"unknown backend", "[store]\nbackend = \"s3\"\n", errors.ErrCodeInvalidConfig},
		{"redis without addr", "[store]\nbackend = \"redis\"\n[store.redis]\naddr = \"\"\n", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[store]\nttl = \"-1h\"\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestDatasetDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg")

	dir, err := Store{}.DatasetDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", AppName, "datasets"); dir != want {
		t.Errorf("DatasetDir() = %q, want %q", dir, want)
	}

	dir, _ = Store{Dir: "/data"}.DatasetDir()
	if dir != "/data" {
		t.Errorf("explicit dir = %q", dir)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		backend string
		check   func(cache.Cache) bool
	}{
		{BackendNone, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
		{BackendMemory, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{BackendFile, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s := Store{Backend: tt.backend, Dir: t.TempDir()}
			c, keyer, err := s.OpenCache(ctx)
			if err != nil {
				t.Fatalf("OpenCache() error: %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("unexpected cache type %T", c)
			}
			if keyer.DatasetKey("x") != "dataset:x" {
				t.Errorf("DatasetKey = %q", keyer.DatasetKey("x"))
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	st, c, err := Store{Backend: BackendMemory}.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	defer c.Close()

	info, _, err := st.Put(ctx, "a.csv", []byte("Kode\nGA100\n"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, err := st.Get(ctx, info.ID); err != nil {
		t.Errorf("Get() error: %v", err)
	}
}
