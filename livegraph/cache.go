package livegraph

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// DefaultExpiry is how long a cached tile is trusted before it is
// refetched.
const DefaultExpiry = 30 * 24 * time.Hour

// tileMeta is the JSON sidecar persisted next to each cached tile body,
// recording when it was fetched (and, when the server sent one, its
// ETag — kept for a future conditional-GET refresh, not yet consumed).
type tileMeta struct {
	FetchedAt time.Time `json:"fetched_at"`
	ETag      string    `json:"etag,omitempty"`
}

// diskCache is the on-disk tile store: profileID/z/x/y.osm plus a
// profileID/z/x/y.json sidecar, rooted at baseDir.
type diskCache struct {
	baseDir   string
	profileID string
	expiry    time.Duration
}

func newDiskCache(baseDir, profileID string, expiry time.Duration) *diskCache {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	return &diskCache{baseDir: baseDir, profileID: profileID, expiry: expiry}
}

func (c *diskCache) bodyPath(t Tile) string {
	return filepath.Join(c.baseDir, c.profileID, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.osm", t.Y))
}

func (c *diskCache) metaPath(t Tile) string {
	return filepath.Join(c.baseDir, c.profileID, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.json", t.Y))
}

func (c *diskCache) lockPath(t Tile) string {
	return filepath.Join(c.baseDir, c.profileID, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.lock", t.Y))
}

// fresh reports whether t has a cache entry younger than the cache's
// expiry. A missing entry is never fresh.
func (c *diskCache) fresh(t Tile) bool {
	raw, err := os.ReadFile(c.metaPath(t))
	if err != nil {
		return false
	}
	var meta tileMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return false
	}

	return time.Since(meta.FetchedAt) < c.expiry
}

// load returns a cached tile's body bytes, or an error if absent.
func (c *diskCache) load(t Tile) ([]byte, error) {
	b, err := os.ReadFile(c.bodyPath(t))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	return b, nil
}

// store writes body and a fresh meta sidecar for t.
func (c *diskCache) store(t Tile, body []byte, etag string) error {
	dir := filepath.Dir(c.bodyPath(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if err := os.WriteFile(c.bodyPath(t), body, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	meta := tileMeta{FetchedAt: time.Now(), ETag: etag}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if err := os.WriteFile(c.metaPath(t), raw, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	return nil
}

// lock acquires an advisory, cross-process lock for t by atomically
// creating a lock file (O_CREATE|O_EXCL), polling with backoff until
// timeout elapses. The returned unlock func removes the lock file; callers
// must call it exactly once, however acquisition finished.
func (c *diskCache) lock(t Tile, timeout time.Duration) (unlock func(), err error) {
	path := c.lockPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	deadline := time.Now().Add(timeout)
	wait := 10 * time.Millisecond
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()

			return func() { os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, t)
		}
		time.Sleep(wait)
		if wait < 200*time.Millisecond {
			wait *= 2
		}
	}
}
