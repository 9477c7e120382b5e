package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_UnsupportedStore(t *testing.T) {
	cfg := newTestConfig()
	cfg.Database.Store = "sqlite"

	_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported user store "sqlite"`)
}

func TestNewApplication_MemoryStoreHasNoDatabase(t *testing.T) {
	app := newTestApp(t)

	assert.Nil(t, app.db)
	assert.NotNil(t, app.userStore)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestLoadDotenv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotenv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("existing file populates unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("USERS_TEST_DOTENV=from-file\n"), 0o600))
		t.Setenv("USERS_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("USERS_TEST_DOTENV"))

		require.NoError(t, loadDotenv(path))
		t.Cleanup(func() { _ = os.Unsetenv("USERS_TEST_DOTENV") })

		assert.Equal(t, "from-file", os.Getenv("USERS_TEST_DOTENV"))
	})
}
