package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager hands out the Session of each slot.  Slots not seen by this
// process are restored from the store, so a signed-in client keeps its
// identity across restarts.  Slots idle for longer than a token lives are
// evicted by Sweep; the persisted slot is kept, so a later request with a
// fresh token restores it.
type Manager struct {
	mu       sync.Mutex
	store    Store
	sessions map[string]*entry
	onEvict  func(slot string)
	now      func() time.Time
}

type entry struct {
	s    *Session
	seen time.Time
}

func NewManager(store Store) *Manager {
	if store == nil {
		panic("nil store passed to NewManager")
	}
	return &Manager{store: store, sessions: make(map[string]*entry), now: time.Now}
}

// NewSlot returns a fresh slot id.
func (m *Manager) NewSlot() string { return uuid.NewString() }

// OnEvict registers fn to run for every slot Sweep removes.  Per-slot state
// kept elsewhere (booking desks, weather trackers) is released there.
func (m *Manager) OnEvict(fn func(slot string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the session for slot, restoring it on first use.
func (m *Manager) Get(ctx context.Context, slot string) (*Session, error) {
	m.mu.Lock()
	if e, ok := m.sessions[slot]; ok {
		e.seen = m.now()
		m.mu.Unlock()
		return e.s, nil
	}
	m.mu.Unlock()

	s := New(m.store, slot)
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[slot]; ok {
		e.seen = m.now()
		return e.s, nil
	}
	m.sessions[slot] = &entry{s: s, seen: m.now()}
	return s, nil
}

// Forget drops the in-process session of slot.  The persisted slot is not
// touched; use Session.Logout for that.
func (m *Manager) Forget(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, slot)
}

// Len reports how many slots are held in process.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts slots not used for longer than idle and returns them.
func (m *Manager) Sweep(idle time.Duration) []string {
	m.mu.Lock()
	cutoff := m.now().Add(-idle)
	var evicted []string
	for slot, e := range m.sessions {
		if e.seen.Before(cutoff) {
			delete(m.sessions, slot)
			evicted = append(evicted, slot)
		}
	}
	fn := m.onEvict
	m.mu.Unlock()

	if fn != nil {
		for _, slot := range evicted {
			fn(slot)
		}
	}
	return evicted
}

// RunSweeper calls Sweep(idle) every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep(idle)
		}
	}
}
