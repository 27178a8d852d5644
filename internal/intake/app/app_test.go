package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StoreDSN = ":memory:"
	cfg.LogLevel = "error"
	cfg.TokenSecret = "0123456789abcdef0123456789abcdef"
	return cfg
}

func TestApplicationServesSQLite(t *testing.T) {
	application, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c := intakesdk.NewSDKClient(srv.URL)

	_, err = c.SubmitClient(ctx, intakesdk.SubmitClientRequest{
		FullName: "Jo Smith", Email: "jo@x.com", PhoneNumber: "1 (555) 123-4567",
	})
	require.NoError(t, err)

	s, err := c.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.TotalClients)
}

func TestApplicationServesRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := testConfig()
	cfg.StoreDriver = DriverRedis
	cfg.StoreDSN = "redis://" + mr.Addr() + "/0"
	cfg.TokenMode = string(service.TokenModeLegacy)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	h := application.Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"full_name":"Jo","email":"jo@x.com","phone_number":"5551234567"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+service.ComputeToken("admin", "admin123"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"total_clients":1,"recent_submissions":1}`, rec.Body.String())

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	for _, k := range keys {
		require.True(t, strings.HasPrefix(k, "client_form_db:"), k)
	}
}

func TestNewFailsOnUnreachableStore(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = DriverRedis
	cfg.StoreDSN = "redis://127.0.0.1:1/0"

	_, err := New(cfg)
	require.Error(t, err)
}
