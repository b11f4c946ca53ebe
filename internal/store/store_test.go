package store

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	syncpkg "github.com/fitkeys/workout-sync-service/internal/sync"
	"github.com/fitkeys/workout-sync-service/pkg/code"
	apperrors "github.com/fitkeys/workout-sync-service/pkg/errors"
	"github.com/fitkeys/workout-sync-service/pkg/writequeue"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateways 内存网关桩：SaveAll/DeleteOne 只记录调用，不回显快照，
// 乐观状态在测试中保持权威；publish* 用于模拟远端快照到达
type fakeGateways struct {
	mu gosync.Mutex

	categorySaves [][]*domain.Category
	entrySaves    [][]*domain.Entry
	sessionSaves  [][]*domain.WorkoutSession
	watchSaves    []domain.WatchTimeMap

	deletedCategories []string
	deletedEntries    []string
	deletedSessions   []string

	failNext error

	onCategories func([]*domain.Category)
	onEntries    func([]*domain.Entry)
	onSessions   func([]*domain.WorkoutSession)
	onWatchTime  func(domain.WatchTimeMap)
}

func newFakeGatewaySet(f *fakeGateways) *syncpkg.Gateways {
	return &syncpkg.Gateways{
		Category:  &fakeCategoryGateway{f: f},
		Entry:     &fakeEntryGateway{f: f},
		Session:   &fakeSessionGateway{f: f},
		WatchTime: &fakeWatchTimeGateway{f: f},
	}
}

func (f *fakeGateways) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

type fakeCategoryGateway struct{ f *fakeGateways }

func (g *fakeCategoryGateway) Subscribe(ctx context.Context, onChange func([]*domain.Category)) (domain.Unsubscribe, error) {
	g.f.mu.Lock()
	g.f.onCategories = onChange
	g.f.mu.Unlock()
	onChange(nil)
	return func() {}, nil
}

func (g *fakeCategoryGateway) SaveAll(ctx context.Context, cs []*domain.Category) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.categorySaves = append(g.f.categorySaves, cs)
	return nil
}

func (g *fakeCategoryGateway) DeleteOne(ctx context.Context, id string) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.deletedCategories = append(g.f.deletedCategories, id)
	return nil
}

type fakeEntryGateway struct{ f *fakeGateways }

func (g *fakeEntryGateway) Subscribe(ctx context.Context, onChange func([]*domain.Entry)) (domain.Unsubscribe, error) {
	g.f.mu.Lock()
	g.f.onEntries = onChange
	g.f.mu.Unlock()
	onChange(nil)
	return func() {}, nil
}

func (g *fakeEntryGateway) SaveAll(ctx context.Context, es []*domain.Entry) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.entrySaves = append(g.f.entrySaves, es)
	return nil
}

func (g *fakeEntryGateway) DeleteOne(ctx context.Context, id string) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.deletedEntries = append(g.f.deletedEntries, id)
	return nil
}

type fakeSessionGateway struct{ f *fakeGateways }

func (g *fakeSessionGateway) Subscribe(ctx context.Context, onChange func([]*domain.WorkoutSession)) (domain.Unsubscribe, error) {
	g.f.mu.Lock()
	g.f.onSessions = onChange
	g.f.mu.Unlock()
	onChange(nil)
	return func() {}, nil
}

func (g *fakeSessionGateway) SaveAll(ctx context.Context, ws []*domain.WorkoutSession) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.sessionSaves = append(g.f.sessionSaves, ws)
	return nil
}

func (g *fakeSessionGateway) DeleteOne(ctx context.Context, id string) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.deletedSessions = append(g.f.deletedSessions, id)
	return nil
}

type fakeWatchTimeGateway struct{ f *fakeGateways }

func (g *fakeWatchTimeGateway) Subscribe(ctx context.Context, onChange func(domain.WatchTimeMap)) (domain.Unsubscribe, error) {
	g.f.mu.Lock()
	g.f.onWatchTime = onChange
	g.f.mu.Unlock()
	onChange(domain.WatchTimeMap{})
	return func() {}, nil
}

func (g *fakeWatchTimeGateway) Save(ctx context.Context, m domain.WatchTimeMap) error {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	if err := g.f.takeErr(); err != nil {
		return err
	}
	g.f.watchSaves = append(g.f.watchSaves, m)
	return nil
}

func (g *fakeWatchTimeGateway) Load(ctx context.Context) (domain.WatchTimeMap, error) {
	return domain.WatchTimeMap{}, nil
}

func newTestStore(t *testing.T) (*Store, *fakeGateways) {
	t.Helper()
	f := &fakeGateways{}
	gws := newFakeGatewaySet(f)
	wq := writequeue.New(nil, nil)
	t.Cleanup(wq.Close)

	s := New(gws, wq, nil)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.WaitReady(ctx))
	return s, f
}

func mustWait(t *testing.T, c *Commit) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))
}

// ------------------------------------> categories

func TestAddCategory_NameRequired(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.AddCategory("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrorCategoryNameRequired)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, s.Categories())
}

func TestAddCategory_OrderSequence(t *testing.T) {
	s, _ := newTestStore(t)

	for _, name := range []string{"上肢", "下肢", "核心"} {
		_, c, err := s.AddCategory(name)
		require.NoError(t, err)
		mustWait(t, c)
	}

	cs := s.Categories()
	require.Len(t, cs, 3)
	for i, c := range cs {
		assert.Equal(t, i, c.Order)
	}
	assert.Equal(t, "上肢", cs[0].Name)
}

func TestReorderCategories_Renumbers(t *testing.T) {
	s, _ := newTestStore(t)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		cat, c, err := s.AddCategory(name)
		require.NoError(t, err)
		mustWait(t, c)
		ids = append(ids, cat.ID)
	}

	c, err := s.ReorderCategories([]string{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	mustWait(t, c)

	cs := s.Categories()
	require.Len(t, cs, 3)
	assert.Equal(t, "c", cs[0].Name)
	assert.Equal(t, "a", cs[1].Name)
	assert.Equal(t, "b", cs[2].Name)
	for i, cat := range cs {
		assert.Equal(t, i, cat.Order)
	}
}

func TestUpdateCategory_UnknownIsNoop(t *testing.T) {
	s, f := newTestStore(t)

	c, err := s.UpdateCategory("missing", "新名字")
	require.NoError(t, err)
	mustWait(t, c)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Empty(t, f.categorySaves)
}

func TestDeleteCategory_CascadesWithoutRenumber(t *testing.T) {
	s, f := newTestStore(t)

	keep, c1, err := s.AddCategory("keep")
	require.NoError(t, err)
	mustWait(t, c1)
	gone, c2, err := s.AddCategory("gone")
	require.NoError(t, err)
	mustWait(t, c2)

	_, c3, err := s.AddVideo(gone.ID, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "", "", "")
	require.NoError(t, err)
	mustWait(t, c3)
	kept, c4, err := s.AddVideo(keep.ID, "https://youtu.be/abcdefghijk", "", "", "")
	require.NoError(t, err)
	mustWait(t, c4)

	c5, err := s.DeleteCategory(gone.ID)
	require.NoError(t, err)
	mustWait(t, c5)

	cs := s.Categories()
	require.Len(t, cs, 1)
	// 幸存者不重排
	assert.Equal(t, keep.Order, cs[0].Order)

	assert.Empty(t, s.EntriesForCategory(gone.ID))
	stillThere := s.EntriesForCategory(keep.ID)
	require.Len(t, stillThere, 1)
	assert.Equal(t, kept.ID, stillThere[0].ID)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []string{gone.ID}, f.deletedCategories)
	require.Len(t, f.deletedEntries, 1)
}

// ------------------------------------> entries

func TestAddVideo_InvalidURL(t *testing.T) {
	s, _ := newTestStore(t)

	cat, c, err := s.AddCategory("拉伸")
	require.NoError(t, err)
	mustWait(t, c)

	_, _, err = s.AddVideo(cat.ID, "not a url", "", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrorInvalidVideoURL)
	assert.Equal(t, "Invalid YouTube URL", code.ErrorInvalidVideoURL.Msg())
	assert.Empty(t, s.EntriesForCategory(cat.ID))
}

func TestAddVideo_ExtractsIDAndThumbnail(t *testing.T) {
	s, _ := newTestStore(t)

	cat, c, err := s.AddCategory("拉伸")
	require.NoError(t, err)
	mustWait(t, c)

	e, c2, err := s.AddVideo(cat.ID, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s", "热身", "轻强度", "")
	require.NoError(t, err)
	mustWait(t, c2)

	assert.Equal(t, "dQw4w9WgXcQ", e.VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s", e.SourceURL)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg", e.ThumbnailURL)
	assert.Equal(t, "热身", e.Title)
	assert.True(t, e.IsVideo())
	assert.Equal(t, 0, e.Order)
}

func TestAddNote_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.AddNote("", "t", "n", "")
	assert.ErrorIs(t, err, code.ErrorEntryCategoryRequired)

	_, _, err = s.AddNote("cat", "t", "  ", "")
	assert.ErrorIs(t, err, code.ErrorEntryNotesRequired)

	_, _, err = s.AddNote("cat", "", "n", "")
	assert.ErrorIs(t, err, code.ErrorEntryTitleRequired)
}

func TestReorderEntries_OtherCategoriesUntouched(t *testing.T) {
	s, _ := newTestStore(t)

	catA, c, err := s.AddCategory("A")
	require.NoError(t, err)
	mustWait(t, c)
	catB, c2, err := s.AddCategory("B")
	require.NoError(t, err)
	mustWait(t, c2)

	var aIDs []string
	for i := 0; i < 3; i++ {
		e, cm, err := s.AddNote(catA.ID, "a", "text", "")
		require.NoError(t, err)
		mustWait(t, cm)
		aIDs = append(aIDs, e.ID)
	}
	bEntry, cm, err := s.AddNote(catB.ID, "b", "text", "")
	require.NoError(t, err)
	mustWait(t, cm)

	cm2, err := s.ReorderEntries(catA.ID, []string{aIDs[2], aIDs[1], aIDs[0]})
	require.NoError(t, err)
	mustWait(t, cm2)

	got := s.EntriesForCategory(catA.ID)
	require.Len(t, got, 3)
	assert.Equal(t, aIDs[2], got[0].ID)
	assert.Equal(t, aIDs[0], got[2].ID)
	for i, e := range got {
		assert.Equal(t, i, e.Order)
	}

	// B 分类不受影响
	b := s.EntriesForCategory(catB.ID)
	require.Len(t, b, 1)
	assert.Equal(t, bEntry.Order, b[0].Order)
}

func TestUpdateEntry_PartialMerge(t *testing.T) {
	s, _ := newTestStore(t)

	cat, c, err := s.AddCategory("A")
	require.NoError(t, err)
	mustWait(t, c)
	e, cm, err := s.AddNote(cat.ID, "旧标题", "旧笔记", "")
	require.NoError(t, err)
	mustWait(t, cm)

	title := "新标题"
	cm2, err := s.UpdateEntry(e.ID, EntryPatch{Title: &title})
	require.NoError(t, err)
	mustWait(t, cm2)

	got := s.EntryByID(e.ID)
	require.NotNil(t, got)
	assert.Equal(t, "新标题", got.Title)
	// 未出现在补丁里的字段保持原值
	assert.Equal(t, "旧笔记", got.Notes)

	// 未知 ID 静默空操作
	cm3, err := s.UpdateEntry("missing", EntryPatch{Title: &title})
	require.NoError(t, err)
	mustWait(t, cm3)

	// 标题补丁为空白则校验失败
	blank := "  "
	_, err = s.UpdateEntry(e.ID, EntryPatch{Title: &blank})
	assert.ErrorIs(t, err, code.ErrorEntryTitleRequired)
}

// ------------------------------------> watch time

func TestWatchTime_Accumulates(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.AddWatchTime("e-1", 30)
	require.NoError(t, err)
	mustWait(t, c)
	c, err = s.AddWatchTime("e-1", 15)
	require.NoError(t, err)
	mustWait(t, c)

	assert.Equal(t, 45, s.WatchTimeFor("e-1"))
}

func TestWatchTime_NegativeRejected(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddWatchTime("e-1", -1)
	assert.ErrorIs(t, err, code.ErrorNegativeWatchTime)
	assert.Equal(t, 0, s.WatchTimeFor("e-1"))
}

func TestSetWatchTime_ReplacesWholeMap(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.AddWatchTime("e-1", 30)
	require.NoError(t, err)
	mustWait(t, c)

	c, err = s.SetWatchTime(domain.WatchTimeMap{"e-2": 10})
	require.NoError(t, err)
	mustWait(t, c)

	assert.Equal(t, 0, s.WatchTimeFor("e-1"))
	assert.Equal(t, 10, s.WatchTimeFor("e-2"))
}

func TestTotalWatchTimeForCategory_IgnoresOrphans(t *testing.T) {
	s, _ := newTestStore(t)

	cat, c, err := s.AddCategory("A")
	require.NoError(t, err)
	mustWait(t, c)
	e, cm, err := s.AddNote(cat.ID, "t", "n", "")
	require.NoError(t, err)
	mustWait(t, cm)

	c, err = s.AddWatchTime(e.ID, 60)
	require.NoError(t, err)
	mustWait(t, c)
	// 孤儿键：条目已不存在
	c, err = s.AddWatchTime("ghost", 600)
	require.NoError(t, err)
	mustWait(t, c)

	assert.Equal(t, 60, s.TotalWatchTimeForCategory(cat.ID))
}

// ------------------------------------> sessions

func TestAddWorkoutSession_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.AddWorkoutSession("", "07:00", []string{"c"}, "")
	assert.ErrorIs(t, err, code.ErrorSessionDateRequired)

	_, _, err = s.AddWorkoutSession("2026-08-24", "07:00", nil, "")
	assert.ErrorIs(t, err, code.ErrorSessionCategoriesEmpty)
}

func TestWorkoutSession_Lifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	w, c, err := s.AddWorkoutSession("2026-08-24", "07:00", []string{"cat-1"}, "晨练")
	require.NoError(t, err)
	mustWait(t, c)
	assert.False(t, w.Completed)

	completed := true
	cm, err := s.UpdateWorkoutSession(w.ID, SessionPatch{Completed: &completed})
	require.NoError(t, err)
	mustWait(t, cm)

	onDate := s.SessionsForDate("2026-08-24")
	require.Len(t, onDate, 1)
	assert.True(t, onDate[0].Completed)
	assert.Empty(t, s.SessionsForDate("2026-08-25"))

	// 变更分类集合为空被拒绝
	empty := []string{}
	_, err = s.UpdateWorkoutSession(w.ID, SessionPatch{CategoryIDs: &empty})
	assert.ErrorIs(t, err, code.ErrorSessionCategoriesEmpty)

	cm, err = s.DeleteWorkoutSession(w.ID)
	require.NoError(t, err)
	mustWait(t, cm)
	assert.Empty(t, s.Sessions())
}

// ------------------------------------> persistence failure & reconciliation

func TestPersistenceFailure_StateNotRolledBack(t *testing.T) {
	s, f := newTestStore(t)

	f.mu.Lock()
	f.failNext = errors.New("db down")
	f.mu.Unlock()

	cat, c, err := s.AddCategory("瑜伽")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	perr := c.Wait(ctx)
	require.Error(t, perr)
	assert.True(t, apperrors.IsPersistence(perr))

	// 乐观状态不回滚
	assert.NotNil(t, s.CategoryByID(cat.ID))
}

// 远端快照整集合替换本地状态：本地乐观写与远端写竞争时，最后到达的快照胜出。
// 本地未持久化的变更会被更晚的远端快照覆盖，这里固化该行为而不是合并
func TestRemoteSnapshot_LastWriteWins(t *testing.T) {
	s, f := newTestStore(t)

	_, c, err := s.AddCategory("本地")
	require.NoError(t, err)
	mustWait(t, c)

	remote := []*domain.Category{
		{ID: "remote-1", Name: "远端", Order: 0, CreatedAt: time.Now()},
	}
	f.mu.Lock()
	onCategories := f.onCategories
	f.mu.Unlock()
	onCategories(remote)

	cs := s.Categories()
	require.Len(t, cs, 1)
	assert.Equal(t, "remote-1", cs[0].ID)
}

// ------------------------------------> properties

func TestReorderCategories_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("重排后排序号总是 0..N-1 且顺序与输入一致", prop.ForAll(
		func(n int, seed int64) bool {
			s, _ := newTestStore(t)
			var ids []string
			for i := 0; i < n; i++ {
				cat, c, err := s.AddCategory("c")
				if err != nil {
					return false
				}
				mustWait(t, c)
				ids = append(ids, cat.ID)
			}

			perm := permute(ids, seed)
			c, err := s.ReorderCategories(perm)
			if err != nil {
				return false
			}
			mustWait(t, c)

			got := s.Categories()
			if len(got) != n {
				return false
			}
			for i, cat := range got {
				if cat.Order != i || cat.ID != perm[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// permute 用给定种子做确定性洗牌
func permute(ids []string, seed int64) []string {
	out := append([]string{}, ids...)
	r := seed
	for i := len(out) - 1; i > 0; i-- {
		r = r*6364136223846793005 + 1442695040888963407
		j := int((r % int64(i+1) + int64(i+1)) % int64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
