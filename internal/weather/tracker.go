package weather

import "sync"

// Ticket identifies one lookup started through a Tracker.
type Ticket uint64

// Tracker keeps the result of the most recently started lookup.  A result
// that arrives after a newer lookup began is discarded, so a slow response
// cannot overwrite a fresher one.
type Tracker struct {
	mu     sync.Mutex
	seq    Ticket
	latest *Report
}

// Begin starts a lookup and supersedes every earlier ticket.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return t.seq
}

// IsLatest reports whether no lookup was started after tk.
func (t *Tracker) IsLatest(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk == t.seq
}

// Commit stores r if tk is still the latest ticket and reports whether it did.
func (t *Tracker) Commit(tk Ticket, r Report) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk != t.seq {
		return false
	}
	t.latest = &r
	return true
}

// Latest returns the last committed report.
func (t *Tracker) Latest() (Report, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		return Report{}, false
	}
	return *t.latest, true
}
