package dao

import (
	"context"
	"testing"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngine(Config{Type: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	return New(db)
}

func TestCategoryRepository_UpsertListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDao(t))

	c := &domain.Category{
		ID:        "cat-1",
		Name:      "上肢",
		Order:     0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, c))

	// upsert 同 ID 覆盖
	c.Name = "上肢力量"
	c.Order = 2
	require.NoError(t, repo.Upsert(ctx, c))

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "上肢力量", list[0].Name)
	assert.Equal(t, 2, list[0].Order)

	require.NoError(t, repo.Delete(ctx, "cat-1"))
	// 不存在时静默成功
	require.NoError(t, repo.Delete(ctx, "cat-1"))

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewEntryRepository(newTestDao(t))

	base := time.Now()
	for _, e := range []*domain.Entry{
		{ID: "e-2", CategoryID: "cat-1", Kind: domain.EntryKindVideo, Title: "b", VideoID: "dQw4w9WgXcQ", Order: 1, CreatedAt: base},
		{ID: "e-1", CategoryID: "cat-1", Kind: domain.EntryKindNote, Title: "a", Order: 0, CreatedAt: base},
	} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e-1", list[0].ID)
	assert.Equal(t, "e-2", list[1].ID)
	assert.True(t, list[1].IsVideo())
	assert.True(t, list[0].IsNoteOnly())
}

func TestSessionRepository_CategoryIDsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDao(t))

	s := &domain.WorkoutSession{
		ID:          "s-1",
		Date:        "2026-08-24",
		Time:        "07:30",
		CategoryIDs: []string{"cat-1", "cat-2"},
		Completed:   true,
		Notes:       "早训",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, s))

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"cat-1", "cat-2"}, list[0].CategoryIDs)
	assert.True(t, list[0].Completed)
}

func TestWatchTimeRepository_LoadSave(t *testing.T) {
	ctx := context.Background()
	repo := NewWatchTimeRepository(newTestDao(t))

	// 文档不存在时返回空映射
	m, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, repo.Save(ctx, domain.WatchTimeMap{"e-1": 30}))
	require.NoError(t, repo.Save(ctx, domain.WatchTimeMap{"e-1": 45, "e-2": 10}))

	m, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WatchTimeMap{"e-1": 45, "e-2": 10}, m)
}
