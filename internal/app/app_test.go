package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/bank-ledger/internal/config"
	"github.com/fsdevblog/bank-ledger/internal/logger"
	"github.com/fsdevblog/bank-ledger/internal/transport/api/testutils"
)

func newTestApp(t *testing.T, seedContent string, knownUsers ...string) *App {
	t.Helper()
	var seedFile string
	if seedContent != "" {
		seedFile = filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(seedFile, []byte(seedContent), 0o600))
	}
	return New(&config.Config{
		RunAddress:      "127.0.0.1:0",
		SeedFile:        seedFile,
		KnownUsers:      knownUsers,
		ShutdownTimeout: time.Second,
	}, logger.New(io.Discard))
}

func TestBuildHandler(t *testing.T) {
	a := newTestApp(t, "usernames: [user1]\naccounts:\n  - id: 1234567890\n    balance: 3448\n", "user3")

	handler, err := a.buildHandler()
	require.NoError(t, err)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: handler,
		Method: http.MethodPost,
		URL:    "/api/accounts",
		Body:   strings.NewReader(`{"username":"user3","age":30,"account_number":1234567899}`),
	}, testutils.WithJSON())
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, err = testutils.MakeRequest(testutils.RequestArgs{
		Router: handler,
		Method: http.MethodGet,
		URL:    "/api/accounts/1234567890/balance",
	}, testutils.WithJSON())
	require.NoError(t, err)

	var balance struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, testutils.DecodeJSON(res, &balance))
	assert.InDelta(t, 3448, balance.Balance, 0)
}

func TestBuildHandler_BrokenSeed(t *testing.T) {
	a := newTestApp(t, "accounts:\n  - id: 12\n    balance: 1\n")
	_, err := a.buildHandler()
	require.Error(t, err)

	a = newTestApp(t, "")
	a.Config.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = a.buildHandler()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := newTestApp(t, "")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- a.run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
