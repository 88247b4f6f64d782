package testsupport

import (
	"testing"

	"cutter/internal/config"
	"cutter/internal/transcriptcache"
)

// MustOpenCache opens the transcript cache configured in cfg and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *transcriptcache.Cache {
	t.Helper()

	cache, err := transcriptcache.Open(cfg.Cache.Path, nil)
	if err != nil {
		t.Fatalf("transcriptcache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
