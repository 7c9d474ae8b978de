package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rowminer/pkg/cache"
	"github.com/matzehuels/rowminer/pkg/errors"
)

func TestCacheDirDefaultsToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", "rowminer"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCachePathCommandUsesXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	root := New(io.Discard, LogInfo).RootCommand()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path error: %v", err)
	}

	if got, want := strings.TrimSpace(out.String()), filepath.Join(xdg, "rowminer"); got != want {
		t.Errorf("cache path printed %q, want %q", got, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		name  string
		flags cacheFlags
		check func(t *testing.T, c cache.Cache)
	}{
		{
			name:  "no cache",
			flags: cacheFlags{noCache: true, redisURL: "redis://localhost:6379"},
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(cache.NullCache); !ok {
					t.Errorf("got %T, want cache.NullCache", c)
				}
			},
		},
		{
			name:  "redis",
			flags: cacheFlags{redisURL: "redis://localhost:6379/0"},
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(*cache.RedisCache); !ok {
					t.Errorf("got %T, want *cache.RedisCache", c)
				}
			},
		},
		{
			name: "file under XDG_CACHE_HOME",
			check: func(t *testing.T, c cache.Cache) {
				fc, ok := c.(*cache.FileCache)
				if !ok {
					t.Fatalf("got %T, want *cache.FileCache", c)
				}
				if want := filepath.Join(xdg, "rowminer"); fc.Dir() != want {
					t.Errorf("Dir() = %q, want %q", fc.Dir(), want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(tt.flags)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer c.Close()
			tt.check(t, c)
		})
	}
}

func TestNewCacheRejectsBadRedisURL(t *testing.T) {
	_, err := newCache(cacheFlags{redisURL: "http://localhost:6379"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("newCache() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
