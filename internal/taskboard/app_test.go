package taskboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/data/db"
)

func testConfig(dataDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	return &cfg
}

func TestOpen_MemoryStore(t *testing.T) {
	app, err := Open(context.Background(), testConfig(config.MemoryDataDir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.DB)
	assert.Equal(t, 6, app.Tasks.Len())
}

func TestOpen_SQLitePersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	clock := WithClock(func() time.Time { return fixedNow })

	first, err := Open(ctx, testConfig(dir), clock)
	require.NoError(t, err)
	created, err := first.Tasks.Create(ctx, "persist me", task.TypeGeneral, task.PriorityHigh, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, testConfig(dir), clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, ok := second.Tasks.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "persist me", got.Text)
	assert.Equal(t, 7, second.Tasks.Len())
}

func TestOpen_RecoversCorruptedDatabase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte(strings.Repeat("not a database ", 300)), 0o644))

	app, err := Open(context.Background(), testConfig(dir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	backups, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.NotEmpty(t, backups)
	assert.Equal(t, 6, app.Tasks.Len())
}
