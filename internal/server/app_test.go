package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StoreBackend = "memory"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.LogLevel = "error"
	c.SeedDemoData = true
	require.NoError(t, c.Validate())
	return c
}

func TestNewApp_SeedsAndServes(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.store.Close() })

	require.NoError(t, app.prepare(ctx))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"mobileNumber":"9876543210"}`))
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"FL000001"`)

	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `freelancehub_index_entries{index="mobile"} 2`)
	assert.Contains(t, rec.Body.String(), `freelancehub_kv_operations_total`)
}

func TestNewApp_PebbleRegistersCollector(t *testing.T) {
	c := testConfig(t)
	c.StoreBackend = "pebble"
	c.DataDir = t.TempDir()

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.store.Close() })

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "pebble_memtable_size_bytes")
}

func TestNewApp_BadBackend(t *testing.T) {
	c := testConfig(t)
	c.StoreBackend = "postgres"
	c.DatabaseDSN = ""

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
