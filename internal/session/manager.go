package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jonathan/resume-finalizer/internal/reconcile"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// DefaultTTL is how long an idle preview session survives.
const DefaultTTL = 1 * time.Hour

// Manager holds live preview sessions in an expiring in-memory cache.
type Manager struct {
	cache     *cache.Cache
	snapshots reconcile.SnapshotStore
}

// NewManager creates a manager whose sessions expire after ttl of
// inactivity and are purged at twice that interval. A zero ttl falls back
// to DefaultTTL.
func NewManager(ttl time.Duration, snapshots reconcile.SnapshotStore) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		cache:     cache.New(ttl, 2*ttl),
		snapshots: snapshots,
	}
}

// Create builds a session from a raw payload and registers it.
func (m *Manager) Create(payload *types.RawPayload) (*Session, error) {
	s, err := New(payload, m.snapshots)
	if err != nil {
		return nil, err
	}
	m.cache.Set(s.ID().String(), s, cache.DefaultExpiration)
	return s, nil
}

// Get returns a live session by ID, refreshing its expiry.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	x, found := m.cache.Get(id.String())
	if !found {
		return nil, false
	}
	s := x.(*Session)
	m.cache.Set(id.String(), s, cache.DefaultExpiration)
	return s, true
}

// Delete drops a session.
func (m *Manager) Delete(id uuid.UUID) {
	m.cache.Delete(id.String())
}
