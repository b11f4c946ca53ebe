package sync

import (
	"context"
	"testing"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/dao"
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateways(t *testing.T) *Gateways {
	t.Helper()
	db, err := dao.NewDBEngine(dao.Config{Type: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	d := dao.New(db)
	g := NewGateways(
		dao.NewCategoryRepository(d),
		dao.NewEntryRepository(d),
		dao.NewSessionRepository(d),
		dao.NewWatchTimeRepository(d),
		nil,
	)
	t.Cleanup(g.Close)
	return g
}

func waitSnapshot[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot not delivered")
		panic("unreachable")
	}
}

// 订阅时立即收到当前快照
func TestCategoryGateway_SubscribeInitialSnapshot(t *testing.T) {
	ctx := context.Background()
	g := newTestGateways(t)

	require.NoError(t, g.Category.SaveAll(ctx, []*domain.Category{
		{ID: "cat-1", Name: "核心", Order: 0, CreatedAt: time.Now()},
	}))

	snapshots := make(chan []*domain.Category, 8)
	unsub, err := g.Category.Subscribe(ctx, func(cs []*domain.Category) {
		snapshots <- cs
	})
	require.NoError(t, err)
	defer unsub()

	first := waitSnapshot(t, snapshots)
	require.Len(t, first, 1)
	assert.Equal(t, "核心", first[0].Name)
}

// 自己的写入会作为新快照回显给自己
func TestCategoryGateway_OwnWriteEchoes(t *testing.T) {
	ctx := context.Background()
	g := newTestGateways(t)

	snapshots := make(chan []*domain.Category, 8)
	unsub, err := g.Category.Subscribe(ctx, func(cs []*domain.Category) {
		snapshots <- cs
	})
	require.NoError(t, err)
	defer unsub()

	empty := waitSnapshot(t, snapshots)
	assert.Empty(t, empty)

	require.NoError(t, g.Category.SaveAll(ctx, []*domain.Category{
		{ID: "cat-1", Name: "腿部", Order: 0, CreatedAt: time.Now()},
	}))

	echoed := waitSnapshot(t, snapshots)
	require.Len(t, echoed, 1)
	assert.Equal(t, "cat-1", echoed[0].ID)
}

// DeleteOne 对不存在的记录静默成功，但仍发布快照
func TestEntryGateway_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	g := newTestGateways(t)

	require.NoError(t, g.Entry.DeleteOne(ctx, "nope"))
}

func TestWatchTimeGateway_SaveEchoes(t *testing.T) {
	ctx := context.Background()
	g := newTestGateways(t)

	snapshots := make(chan domain.WatchTimeMap, 8)
	unsub, err := g.WatchTime.Subscribe(ctx, func(m domain.WatchTimeMap) {
		snapshots <- m
	})
	require.NoError(t, err)
	defer unsub()

	assert.Empty(t, waitSnapshot(t, snapshots))

	require.NoError(t, g.WatchTime.Save(ctx, domain.WatchTimeMap{"e-1": 45}))
	m := waitSnapshot(t, snapshots)
	assert.Equal(t, 45, m.Seconds("e-1"))

	loaded, err := g.WatchTime.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 45, loaded.Seconds("e-1"))
}

// 多订阅者看到一致的快照顺序
func TestHub_ConsistentOrder(t *testing.T) {
	hub := NewHub[int](nil)
	defer hub.Close()

	a := make(chan int, 64)
	b := make(chan int, 64)
	unsubA, err := hub.Subscribe(func(v int) { a <- v }, func() (int, error) { return 0, nil })
	require.NoError(t, err)
	defer unsubA()
	unsubB, err := hub.Subscribe(func(v int) { b <- v }, func() (int, error) { return 0, nil })
	require.NoError(t, err)
	defer unsubB()

	for i := 1; i <= 5; i++ {
		hub.Publish(i)
	}

	var seqA, seqB []int
	for i := 0; i < 6; i++ {
		seqA = append(seqA, waitSnapshot(t, a))
		seqB = append(seqB, waitSnapshot(t, b))
	}
	assert.Equal(t, seqA, seqB)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, seqA)
}
