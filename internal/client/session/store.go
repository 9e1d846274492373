package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// remoteRefreshTimeout bounds the storage read triggered by another process.
const remoteRefreshTimeout = 5 * time.Second

var ErrEmptyToken = errors.New("empty token")

// Store is the single source of truth for the current Session.
type Store struct {
	storage storage.Storage
	local   Signal
	remote  Signal
	log     logging.Logger

	mu      sync.RWMutex
	current Session
	stop    []func()

	subs listeners[Session]
}

// NewStore builds a Store over st and subscribes it to the change signals.
// local links Stores of this process and must not be nil; remote may be nil
// when no other process shares st. The Session stays logged out until
// Initialize.
func NewStore(st storage.Storage, local, remote Signal, log logging.Logger) *Store {
	s := &Store{
		storage: st,
		local:   local,
		remote:  remote,
		log:     log.With("component", "session"),
	}

	s.stop = append(s.stop, local.Subscribe(func() {
		s.refresh(context.Background(), true, "local")
	}))
	if remote != nil {
		s.stop = append(s.stop, remote.Subscribe(func() {
			ctx, cancel := context.WithTimeout(context.Background(), remoteRefreshTimeout)
			defer cancel()
			s.refresh(ctx, false, "remote")
		}))
	}
	return s
}

// Load reads the stored session. Read failures yield a logged-out Session.
func Load(ctx context.Context, st storage.Storage) Session {
	token, ok, err := st.Get(ctx, storage.KeyToken)
	if err != nil || !ok {
		return LoggedOut()
	}
	userJSON, ok, err := st.Get(ctx, storage.KeyUser)
	if err != nil || !ok {
		return LoggedOut()
	}
	return Derive(token, userJSON)
}

// Initialize derives the Session from storage. It never fails: anything
// unreadable counts as logged out.
func (s *Store) Initialize(ctx context.Context) Session {
	sess := Load(ctx, s.storage)
	s.set(sess)

	s.log.Debug(ctx, "session initialized", "authenticated", sess.Authenticated)
	return sess
}

// Current returns the in-memory Session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to receive every Session change, local or remote.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	return s.subs.add(fn)
}

// Login persists token and user and announces the change.
func (s *Store) Login(ctx context.Context, token string, user User) error {
	if token == "" {
		return ErrEmptyToken
	}

	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := s.storage.SetMany(ctx, map[string]string{
		storage.KeyToken: token,
		storage.KeyUser:  string(b),
	}); err != nil {
		s.failSafe(ctx)
		return fmt.Errorf("save session: %w", err)
	}

	s.set(newSession(token, &user))
	s.log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role.Name)
	s.announce(ctx)
	return nil
}

// Logout removes the stored session and announces the change.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx, "logged out")
}

// Clear is the forced logout used when the API rejects the token.
func (s *Store) Clear(ctx context.Context) error {
	return s.clear(ctx, "session cleared")
}

func (s *Store) clear(ctx context.Context, msg string) error {
	err := s.storage.DeleteMany(ctx, storage.KeyToken, storage.KeyUser)
	s.set(LoggedOut())
	if err != nil {
		s.log.Error(ctx, "remove stored session", "error", err)
		s.subs.notify(LoggedOut())
		return fmt.Errorf("remove session: %w", err)
	}
	s.log.Info(ctx, msg)
	s.announce(ctx)
	return nil
}

// Close stops listening to change signals.
func (s *Store) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	for _, fn := range stop {
		fn()
	}
}

func (s *Store) set(sess Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// announce publishes locally (which re-derives and notifies every Store of
// this process, this one included) and then to other processes.
func (s *Store) announce(ctx context.Context) {
	if err := s.local.Publish(ctx); err != nil {
		s.log.Warn(ctx, "local change publish failed", "error", err)
	}
	if s.remote != nil {
		if err := s.remote.Publish(ctx); err != nil {
			s.log.Warn(ctx, "remote change publish failed", "error", err)
		}
	}
}

// failSafe drops to logged out after a failed write.
func (s *Store) failSafe(ctx context.Context) {
	prev := s.Current()
	s.set(LoggedOut())
	if prev.Authenticated {
		s.log.Warn(ctx, "session dropped after storage failure")
		s.subs.notify(LoggedOut())
	}
}

// refresh re-derives the Session from storage. Local refreshes always
// notify; remote ones only when the Session actually changed.
func (s *Store) refresh(ctx context.Context, force bool, source string) {
	sess := Load(ctx, s.storage)

	s.mu.Lock()
	changed := !s.current.Equal(sess)
	s.current = sess
	s.mu.Unlock()

	if !force && !changed {
		return
	}
	s.log.Debug(ctx, "session changed", "source", source, "authenticated", sess.Authenticated)
	s.subs.notify(sess)
}
