package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/httpclient"
	"github.com/dmitrijs2005/notekeeper/internal/client/listing"
	"github.com/dmitrijs2005/notekeeper/internal/client/router"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

type App struct {
	cfg    *config.Config
	log    logging.Logger
	store  *session.Store
	api    *api.Client
	router *router.Router
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	location string
	target   router.Target
	// stale is set when the session or the location changed outside a
	// navigation; the next refresh re-resolves.
	stale atomic.Bool

	notes      *listing.View[api.Note, listing.NoteFilter]
	categories *listing.View[api.Category, listing.CategoryFilter]
	users      *listing.View[session.User, listing.UserFilter]
	profile    *session.User

	closers []func() error
}

// NewApp wires storage, session, HTTP and routing from cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	a, err := newApp(cfg, log, b.storage, b.remote, os.Stdin, os.Stdout,
		httpclient.WithMetrics(httpclient.NewMetrics(reg)))
	if err != nil {
		_ = b.close()
		return nil, err
	}
	a.closers = append(a.closers, b.close)

	if cfg.MetricsAddr != "" {
		a.closers = append(a.closers, startMetricsServer(cfg.MetricsAddr, reg, log))
		log.Info(ctx, "metrics listener started", "addr", cfg.MetricsAddr)
	}
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, st storage.Storage, remote session.Signal,
	in io.Reader, out io.Writer, opts ...httpclient.Option) (*App, error) {

	a := &App{
		cfg:        cfg,
		log:        log,
		router:     router.New(),
		reader:     bufio.NewReader(in),
		out:        out,
		notes:      listing.NewView[api.Note](listing.NotesPerPage, listing.NoteFilter{}),
		categories: listing.NewView[api.Category](listing.CategoriesPerPage, listing.CategoryFilter{}),
		users:      listing.NewView[session.User](listing.UsersPerPage, listing.UserFilter{Role: listing.RoleAll}),
	}

	a.store = session.NewStore(st, session.NewLocalBus(), remote, log)
	a.closers = append(a.closers, func() error { a.store.Close(); return nil })
	a.store.Subscribe(func(session.Session) { a.stale.Store(true) })

	opts = append([]httpclient.Option{
		httpclient.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)),
		httpclient.WithLogger(log),
	}, opts...)
	hc := httpclient.New(st, a.store, a, opts...)

	client, err := api.New(cfg.APIBaseURL, hc, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(log))
	if err != nil {
		return nil, err
	}
	a.api = client
	return a, nil
}

// Run restores the session, shows the start screen and blocks in the REPL
// until the user exits. Resources are released on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Warn(ctx, "shutdown", "error", err)
		}
	}()

	printlnFn("Notekeeper CLI (type 'help' for commands)")
	a.start(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) start(ctx context.Context) {
	sess := a.store.Initialize(ctx)
	a.log.Info(ctx, "session restored", "authenticated", sess.Authenticated, "role", sess.RoleName(), "api", a.api.BaseURL())
	// land on a canonical path so a 401 on the first login does not
	// re-navigate to the screen already showing
	start := router.LoginPath
	if sess.Authenticated {
		start = router.Home(sess)
	}
	a.navigate(ctx, start)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().Authenticated
}

func (a *App) getStatus() string {
	s := a.Location()
	if u := a.store.Current().User; u != nil {
		s = fmt.Sprintf("%s %s (%s)", s, u.Name, u.Role.Name)
	}
	return s
}
