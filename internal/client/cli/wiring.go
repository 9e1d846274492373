package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/filex"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// backend is the durable session storage plus the signal other processes
// sharing it use to announce changes.
type backend struct {
	storage storage.Storage
	remote  session.Signal
	closers []func() error
}

func (b *backend) close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

func openBackend(ctx context.Context, cfg *config.Config, log logging.Logger) (*backend, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		path, err := filex.EnsureDataFile(cfg.DataDir, cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("prepare data dir: %w", err)
		}
		st, err := storage.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		b := &backend{storage: st, closers: []func() error{st.Close}}

		sig, err := session.NewFileSignal(path, log)
		if err != nil {
			// still usable, just without cross-process sync
			log.Warn(ctx, "file watch unavailable", "path", path, "error", err)
			return b, nil
		}
		b.remote = sig
		b.closers = append(b.closers, sig.Close)
		return b, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("%w: redis %s: %v", storage.ErrUnavailable, cfg.RedisAddr, err)
		}
		st := storage.NewRedis(rdb, storage.DefaultRedisPrefix)
		b := &backend{storage: st, closers: []func() error{st.Close}}

		sig, err := session.NewRedisSignal(ctx, rdb, session.RedisChannel, log)
		if err != nil {
			_ = b.close()
			return nil, err
		}
		b.remote = sig
		b.closers = append(b.closers, sig.Close)
		return b, nil

	case config.StoreMemory:
		st := storage.NewMemory()
		return &backend{storage: st, closers: []func() error{st.Close}}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// startMetricsServer exposes reg on addr under /metrics until shutdown is
// called.
func startMetricsServer(addr string, reg *prometheus.Registry, log logging.Logger) (shutdown func() error) {
	srv := &http.Server{Addr: addr, Handler: metricsRouter(reg), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(context.Background(), "metrics listener stopped", "addr", addr, "error", err)
		}
	}()

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func metricsRouter(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}
