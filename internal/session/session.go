// Package session holds the signed-in identity of a client.
//
// Sign-in is simulated: any non-empty email and password are accepted and
// nothing is verified.  The identity is written to a Store slot so it
// survives a restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// KeyPrefix namespaces persisted slots.
const KeyPrefix = "cinebook_user"

// ErrMissingCredentials is returned by Login when email or password is empty.
var ErrMissingCredentials = errors.New("email and password are required")

// Identity is the signed-in user.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName is the part of email before the first "@", or the whole
// string when there is none.
func DisplayName(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// Session is one client's authentication state.
type Session struct {
	mu    sync.RWMutex
	store Store
	key   string
	user  *Identity
}

// New returns a signed-out session bound to slot.
func New(store Store, slot string) *Session {
	if store == nil {
		panic("nil store passed to session.New")
	}
	return &Session{store: store, key: KeyPrefix + ":" + slot}
}

// Key is the store key of this session's slot.
func (s *Session) Key() string { return s.key }

// Login signs in, replacing any current identity.  The slot is written
// before the in-memory value changes; on a store error nothing changes.
func (s *Session) Login(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrMissingCredentials
	}
	id := Identity{Email: email, Name: DisplayName(email)}
	bs, err := json.Marshal(id)
	if err != nil {
		return Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, s.key, bs); err != nil {
		return Identity{}, fmt.Errorf("persist session: %w", err)
	}
	s.user = &id
	return id, nil
}

// Logout deletes the slot, then clears the identity.  On a store error the
// session stays signed in.  Logging out twice is fine.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.user = nil
	return nil
}

// Current returns the identity, if signed in.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Identity{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Restore loads the persisted identity.  An empty slot leaves the session
// signed out and is not an error; an undecodable one is treated the same.
func (s *Session) Restore(ctx context.Context) error {
	bs, err := s.store.Load(ctx, s.key)
	if errors.Is(err, ErrNoRecord) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	var id Identity
	if err := json.Unmarshal(bs, &id); err != nil || id.Email == "" {
		return nil
	}
	s.mu.Lock()
	s.user = &id
	s.mu.Unlock()
	return nil
}
