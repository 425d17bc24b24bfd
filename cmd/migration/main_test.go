package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = parseSteps([]string{"two"})
	assert.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	v, err := parseVersion("1760918400")
	require.NoError(t, err)
	assert.Equal(t, 1760918400, v)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	target, err := parseTarget("1760918400")
	require.NoError(t, err)
	assert.Equal(t, uint(1760918400), target)

	_, err = parseTarget("-1")
	assert.Error(t, err)
}

func TestRun_ValidatesBeforeConnecting(t *testing.T) {
	t.Setenv("DB_URL", "")
	logger := logging.NewNop()

	err := run(nil, logger, io.Discard)
	assert.True(t, crerr.Is(err, errUsage))

	err = run([]string{"sideways"}, logger, io.Discard)
	assert.True(t, crerr.Is(err, errUsage))

	err = run([]string{"force"}, logger, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "force requires a version")

	err = run([]string{"up"}, logger, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL is required")
}

func TestResolveMigrationsDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	require.NoError(t, err)
	want, _ := filepath.Abs(dir)
	assert.Equal(t, want, got)
}

func TestResolveMigrationsDir_Missing(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", filepath.Join(t.TempDir(), "nope"))
	t.Setenv("MIGRATIONS_PATH", "")

	wd, err := os.Getwd()
	require.NoError(t, err)
	if _, statErr := os.Stat(filepath.Join(wd, "db", "migrations")); statErr == nil {
		t.Skip("working directory has db/migrations")
	}

	_, err = resolveMigrationsDir()
	assert.Error(t, err)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("FLAG_UNDER_TEST", "")
	assert.True(t, envBool("FLAG_UNDER_TEST", true))

	t.Setenv("FLAG_UNDER_TEST", "off")
	assert.False(t, envBool("FLAG_UNDER_TEST", true))

	t.Setenv("FLAG_UNDER_TEST", "Yes")
	assert.True(t, envBool("FLAG_UNDER_TEST", false))
}
