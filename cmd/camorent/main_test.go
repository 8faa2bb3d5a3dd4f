package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/camorent/internal/db"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/store"
)

func seedDatabase(t *testing.T, path string) {
	t.Helper()
	database, err := db.Open(path)
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, db.EnsureSchema(database))

	ctx := context.Background()
	_, err = store.CreateUser(ctx, database, "ana@example.com", "ana", "x")
	require.NoError(t, err)
	for _, name := range []string{"Canon EOS R5", "Sony A7IV", "Nikon Z6", "Fuji X-T4"} {
		_, err = store.CreateSKU(ctx, database, model.SKU{Name: name, Brand: name, Category: model.CategoryCameras, IsActive: true})
		require.NoError(t, err)
	}
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.db")
	seedDatabase(t, path)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check", "--db", path})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "ana@example.com")
	assert.Contains(t, got, "Canon EOS R5")
	assert.Contains(t, got, "Nikon Z6")
	assert.NotContains(t, got, "Fuji X-T4", "only the first rows are printed")
	for _, table := range db.Tables {
		assert.Contains(t, got, table)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("CAMORENT_DB", "from-env.db")
	t.Setenv("CAMORENT_ADDR", ":7000")

	var flags overrides
	serveCmd := newServeCommand(&flags)
	require.NoError(t, serveCmd.ParseFlags([]string{"--addr", ":9000"}))

	cfg, err := loadConfig(serveCmd, &flags)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DBPath)
	assert.Equal(t, ":9000", cfg.Addr)
}

func TestLevelRouter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "camorent.log")
	logger, closeLog, err := newLogger(&stdout, &stderr, logPath)
	require.NoError(t, err)

	logger.Info("hello", "k", "v")
	logger.Debug("hidden")
	logger.Error("broken")
	closeLog()

	assert.Contains(t, stdout.String(), "hello")
	assert.NotContains(t, stdout.String(), "broken")
	assert.Contains(t, stderr.String(), "broken")
	assert.NotContains(t, stdout.String(), "hidden")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "level="))
}
