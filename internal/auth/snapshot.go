package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// CacheWindow is how long a persisted snapshot is trusted without a
// remote re-verification.
const CacheWindow = 5 * time.Minute

// Snapshot is the locally persisted copy of auth state. It is the
// terminal-client analog of the browser's localStorage entry, extended
// with the session secret that a browser would keep in a cookie.
type Snapshot struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	LastFetch       time.Time    `json:"lastFetch"`
	SessionSecret   string       `json:"sessionSecret,omitempty"`
}

// Usable reports whether the snapshot can be presented without a
// synchronous remote check: authenticated, has a user, and fetched
// within the cache window.
func (s *Snapshot) Usable(now time.Time) bool {
	if s == nil || !s.IsAuthenticated || s.User == nil {
		return false
	}
	return !Stale(s.LastFetch, now)
}

// Stale reports whether a snapshot fetched at lastFetch has aged out of
// the cache window at time now.
func Stale(lastFetch, now time.Time) bool {
	if lastFetch.IsZero() {
		return true
	}
	return now.Sub(lastFetch) >= CacheWindow
}

// LoadSnapshot reads the snapshot file. A missing, unreadable or
// expired snapshot returns nil; an expired file is removed, matching
// the cache-or-purge behavior on every other path.
func LoadSnapshot(path string, now time.Time) *Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		os.Remove(path) //nolint:errcheck // corrupt snapshot, best-effort purge
		return nil
	}
	if Stale(s.LastFetch, now) {
		os.Remove(path) //nolint:errcheck
		return nil
	}
	return &s
}

// SaveSnapshot persists the snapshot with owner-only permissions.
// Unauthenticated snapshots are never persisted; saving one removes
// the file instead.
func SaveSnapshot(path string, s Snapshot) error {
	if !s.IsAuthenticated || s.User == nil {
		ClearSnapshot(path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ClearSnapshot removes the snapshot file, ignoring errors.
func ClearSnapshot(path string) {
	os.Remove(path) //nolint:errcheck
}
