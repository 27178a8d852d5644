package intake_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/app"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Helpers for the intake end-to-end tests. Each test gets a fresh Redis
 * container and an in-process intake server bound to it.
 */

const (
	redisImage = "redis:7-alpine"

	adminUsername = "admin"
	adminPassword = "S3cret-e2e"
	tokenSecret   = "e2e-secret-0123456789abcdef"
	keyPrefix     = "client_form_db"
)

// setupRedisContainer starts Redis and returns its URL.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, mappedPort.Port())
}

func testConfig(redisURL string) app.Config {
	cfg := app.DefaultConfig()
	cfg.StoreDriver = app.DriverRedis
	cfg.StoreDSN = redisURL
	cfg.StoreDatabase = keyPrefix
	cfg.AdminUsername = adminUsername
	cfg.AdminPassword = adminPassword
	cfg.TokenSecret = tokenSecret
	cfg.LogLevel = "error"
	return cfg
}

// setupIntake starts an intake server backed by a Redis container and
// returns an SDK client pointed at it.
func setupIntake(t *testing.T, mutate ...func(*app.Config)) *intakesdk.SDKClient {
	t.Helper()

	cfg := testConfig(setupRedisContainer(t))
	for _, m := range mutate {
		m(&cfg)
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	return intakesdk.NewSDKClient(srv.URL)
}

func submit(t *testing.T, c *intakesdk.SDKClient, name, email, phone string) *intakesdk.SubmitClientResponse {
	t.Helper()

	resp, err := c.SubmitClient(t.Context(), intakesdk.SubmitClientRequest{
		FullName:    name,
		Email:       email,
		PhoneNumber: phone,
	})
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, c *intakesdk.SDKClient) *intakesdk.Session {
	t.Helper()

	s, err := c.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, s.AccessToken())
	return s
}
