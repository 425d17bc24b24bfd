package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/config"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:          config.EnvDev,
		HTTPAddr:        "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		DataSource:      config.DataSourceSample,
		MatchThreshold:  70,
	}
}

func TestRun_StartupFailureReturnsInsteadOfExiting(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DataSource = config.DataSourceCSV
	cfg.DataDir = filepath.Join(t.TempDir(), "missing")

	err := run(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build app")
	assert.Contains(t, err.Error(), "load csv dataset")
}

func TestRun_StopsWhenContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(), logging.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_ListenFailureIsReported(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = "127.0.0.1:-1"

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, logging.NewNop()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after listen failure")
	}
}
