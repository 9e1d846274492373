package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendConfig(store string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Store = store
	return cfg
}

func roundTrip(t *testing.T, st storage.Storage) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.SetMany(ctx, map[string]string{storage.KeyToken: "tok"}))
	v, ok, err := st.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestOpenBackend_Memory(t *testing.T) {
	b, err := openBackend(context.Background(), backendConfig(config.StoreMemory), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.close() })

	assert.Nil(t, b.remote)
	roundTrip(t, b.storage)
}

func TestOpenBackend_SQLite(t *testing.T) {
	cfg := backendConfig(config.StoreSQLite)
	cfg.DataDir = t.TempDir()
	cfg.StorePath = "session.db"

	b, err := openBackend(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.close() })

	assert.NotNil(t, b.remote)
	roundTrip(t, b.storage)
}

func TestOpenBackend_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := backendConfig(config.StoreRedis)
	cfg.RedisAddr = mr.Addr()

	b, err := openBackend(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.close() })

	assert.NotNil(t, b.remote)
	roundTrip(t, b.storage)
	assert.Equal(t, "tok", mustGet(t, mr, storage.DefaultRedisPrefix+storage.KeyToken))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestOpenBackend_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := backendConfig(config.StoreRedis)
	cfg.RedisAddr = mr.Addr()
	mr.Close()

	_, err := openBackend(context.Background(), cfg, logging.Discard())
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, err := openBackend(context.Background(), backendConfig("etcd"), logging.Discard())
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "notekeeper_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	srv := httptest.NewServer(metricsRouter(reg))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "notekeeper_test_total 1")

	resp, err = http.Post(srv.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
