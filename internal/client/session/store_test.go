package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: Role{ID: 2, Name: RoleUser}}
	root  = User{ID: 1, Name: "Root", Email: "root@example.com", Role: Role{ID: 1, Name: RoleAdmin}}
)

// recorder collects notified Sessions.
type recorder struct {
	mu  sync.Mutex
	got []Session
}

func (r *recorder) fn(s Session) {
	r.mu.Lock()
	r.got = append(r.got, s)
	r.mu.Unlock()
}

func (r *recorder) all() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Session(nil), r.got...)
}

// failingStorage fails every write.
type failingStorage struct {
	storage.Storage
}

func (failingStorage) SetMany(context.Context, map[string]string) error {
	return storage.ErrUnavailable
}

func (failingStorage) DeleteMany(context.Context, ...string) error {
	return storage.ErrUnavailable
}

func newMemoryStore(t *testing.T) (*Store, storage.Storage, *LocalBus) {
	t.Helper()
	st := storage.NewMemory()
	bus := NewLocalBus()
	s := NewStore(st, bus, nil, logging.Discard())
	t.Cleanup(s.Close)
	return s, st, bus
}

func TestStore_InitializeEmpty(t *testing.T) {
	s, _, _ := newMemoryStore(t)
	sess := s.Initialize(context.Background())
	assert.False(t, sess.Authenticated)
	assert.True(t, s.Current().Equal(LoggedOut()))
}

func TestStore_LoginPersistsAndSurvivesReload(t *testing.T) {
	s, st, _ := newMemoryStore(t)
	ctx := context.Background()
	s.Initialize(ctx)

	require.NoError(t, s.Login(ctx, "tok-1", alice))

	cur := s.Current()
	require.True(t, cur.Authenticated)
	assert.Equal(t, "tok-1", cur.Token)
	assert.Equal(t, alice, *cur.User)

	// a fresh Store over the same storage simulates a reload
	reloaded := NewStore(st, NewLocalBus(), nil, logging.Discard())
	defer reloaded.Close()
	got := reloaded.Initialize(ctx)
	assert.True(t, got.Equal(Session{Authenticated: true, User: &alice, Token: "tok-1"}))
}

func TestStore_LogoutClearsStorage(t *testing.T) {
	s, st, _ := newMemoryStore(t)
	ctx := context.Background()
	s.Initialize(ctx)
	require.NoError(t, s.Login(ctx, "tok", alice))

	require.NoError(t, s.Logout(ctx))

	for _, k := range []string{storage.KeyToken, storage.KeyUser} {
		_, ok, err := st.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	assert.False(t, s.Current().Authenticated)
}

func TestStore_InvariantOverLoginLogoutSequences(t *testing.T) {
	s, _, _ := newMemoryStore(t)
	ctx := context.Background()
	s.Initialize(ctx)

	check := func() {
		cur := s.Current()
		require.Equal(t, cur.Token != "" && cur.User != nil, cur.Authenticated)
	}

	steps := []func() error{
		func() error { return s.Logout(ctx) },
		func() error { return s.Login(ctx, "a", alice) },
		func() error { return s.Login(ctx, "b", root) },
		func() error { return s.Clear(ctx) },
		func() error { return s.Login(ctx, "c", alice) },
		func() error { return s.Logout(ctx) },
		func() error { return s.Logout(ctx) },
	}
	for _, step := range steps {
		require.NoError(t, step())
		check()
	}
}

func TestStore_UnparsableStoredUserIsLoggedOut(t *testing.T) {
	s, st, _ := newMemoryStore(t)
	ctx := context.Background()
	require.NoError(t, st.SetMany(ctx, map[string]string{
		storage.KeyToken: "tok",
		storage.KeyUser:  "{broken",
	}))

	sess := s.Initialize(ctx)
	assert.False(t, sess.Authenticated)
}

func TestStore_EmptyTokenRejected(t *testing.T) {
	s, _, _ := newMemoryStore(t)
	require.ErrorIs(t, s.Login(context.Background(), "", alice), ErrEmptyToken)
	assert.False(t, s.Current().Authenticated)
}

func TestStore_SubscribersNotifiedBeforeReturn(t *testing.T) {
	s, _, _ := newMemoryStore(t)
	ctx := context.Background()
	s.Initialize(ctx)

	var rec recorder
	unsub := s.Subscribe(rec.fn)

	require.NoError(t, s.Login(ctx, "tok", alice))
	got := rec.all()
	require.Len(t, got, 1)
	assert.True(t, got[0].Authenticated)

	require.NoError(t, s.Logout(ctx))
	got = rec.all()
	require.Len(t, got, 2)
	assert.False(t, got[1].Authenticated)

	unsub()
	require.NoError(t, s.Login(ctx, "tok", alice))
	assert.Len(t, rec.all(), 2)
}

func TestStore_SameProcessStoresStayInSync(t *testing.T) {
	st := storage.NewMemory()
	bus := NewLocalBus()
	a := NewStore(st, bus, nil, logging.Discard())
	defer a.Close()
	b := NewStore(st, bus, nil, logging.Discard())
	defer b.Close()

	ctx := context.Background()
	a.Initialize(ctx)
	b.Initialize(ctx)

	var rec recorder
	b.Subscribe(rec.fn)

	require.NoError(t, a.Login(ctx, "tok", root))
	assert.True(t, b.Current().Authenticated, "b observes a's login before Login returns")
	assert.True(t, b.Current().IsAdmin())
	require.Len(t, rec.all(), 1)

	require.NoError(t, b.Clear(ctx))
	assert.False(t, a.Current().Authenticated)
}

func TestStore_WriteFailureFallsBackToLoggedOut(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.SetMany(ctx, map[string]string{
		storage.KeyToken: "old",
		storage.KeyUser:  `{"id":7,"name":"Alice","email":"alice@example.com","role":{"id":2,"name":"user"}}`,
	}))

	s := NewStore(failingStorage{Storage: mem}, NewLocalBus(), nil, logging.Discard())
	defer s.Close()
	require.True(t, s.Initialize(ctx).Authenticated)

	var rec recorder
	s.Subscribe(rec.fn)

	err := s.Login(ctx, "new", root)
	require.ErrorIs(t, err, storage.ErrUnavailable)
	assert.False(t, s.Current().Authenticated)
	require.Len(t, rec.all(), 1)

	err = s.Logout(ctx)
	require.True(t, errors.Is(err, storage.ErrUnavailable))
	assert.False(t, s.Current().Authenticated)
}

func TestStore_CrossProcessViaSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	stA, err := storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer stA.Close()
	stB, err := storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer stB.Close()

	sigB, err := NewFileSignal(path, logging.Discard())
	require.NoError(t, err)
	defer sigB.Close()

	a := NewStore(stA, NewLocalBus(), nil, logging.Discard())
	defer a.Close()
	b := NewStore(stB, NewLocalBus(), sigB, logging.Discard())
	defer b.Close()
	a.Initialize(ctx)
	b.Initialize(ctx)

	changed := make(chan Session, 16)
	b.Subscribe(func(s Session) { changed <- s })

	require.NoError(t, a.Login(ctx, "tok", alice))

	waitFor(t, changed, func(s Session) bool { return s.Authenticated })
	assert.Equal(t, "tok", b.Current().Token)

	require.NoError(t, a.Logout(ctx))
	waitFor(t, changed, func(s Session) bool { return !s.Authenticated })
}

func TestStore_CrossProcessViaRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	open := func() (*Store, func()) {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		st := storage.NewRedis(rdb, storage.DefaultRedisPrefix)
		sig, err := NewRedisSignal(ctx, rdb, RedisChannel, logging.Discard())
		require.NoError(t, err)
		s := NewStore(st, NewLocalBus(), sig, logging.Discard())
		s.Initialize(ctx)
		return s, func() {
			s.Close()
			_ = sig.Close()
			_ = st.Close()
		}
	}

	a, closeA := open()
	defer closeA()
	b, closeB := open()
	defer closeB()

	changed := make(chan Session, 16)
	b.Subscribe(func(s Session) { changed <- s })

	require.NoError(t, a.Login(ctx, "shared", root))
	waitFor(t, changed, func(s Session) bool { return s.Authenticated && s.IsAdmin() })

	require.NoError(t, a.Logout(ctx))
	waitFor(t, changed, func(s Session) bool { return !s.Authenticated })
}

func waitFor(t *testing.T, ch <-chan Session, ok func(Session) bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case s := <-ch:
			if ok(s) {
				return
			}
		case <-deadline:
			t.Fatal("expected session change was not observed")
		}
	}
}
