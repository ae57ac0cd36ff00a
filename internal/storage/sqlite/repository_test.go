package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/storage"
)

func setupTestDB(t *testing.T) *Repository {
	repo, err := New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleSnapshot() storage.Snapshot {
	due1 := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	due3 := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	done := domain.NewTask(1, "Finish project", 1, &due1)
	done.MarkComplete()

	return storage.Snapshot{
		NextID: 4,
		Tasks: []domain.Task{
			done,
			domain.NewTask(3, "Call mom", 2, &due3),
			domain.NewTask(2, "Go grocery shopping", 3, nil),
		},
	}
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := setupTestDB(t)

	snapshot, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Tasks)
	assert.Equal(t, int64(1), snapshot.NextID)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	repo, err := New(path)
	require.NoError(t, err)
	expected := sampleSnapshot()
	require.NoError(t, repo.Save(ctx, expected))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, loaded, "order, fields and counter survive a reopen")
}

func TestRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	smaller := sampleSnapshot()
	smaller.Tasks = smaller.Tasks[1:2]
	smaller.NextID = 9
	require.NoError(t, repo.Save(ctx, smaller))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, "Call mom", loaded.Tasks[0].Name)
	assert.Equal(t, int64(9), loaded.NextID)
}

func TestRepository_InMemory(t *testing.T) {
	ctx := context.Background()
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Tasks, 3)
	assert.Equal(t, ":memory:", repo.Location())
}

func TestRepository_LoadCorruptRow(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	_, err := repo.db.Exec(`INSERT INTO tasks (position, task_id, name, priority, due_date, status) VALUES (0, 1, 'x', 1, 'someday', 'Pending')`)
	require.NoError(t, err)

	snapshot, err := repo.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
	assert.Empty(t, snapshot.Tasks)
}

func TestRepository_SaveCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, sampleSnapshot())
	require.Error(t, err)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Tasks, "a failed save leaves nothing behind")
}
