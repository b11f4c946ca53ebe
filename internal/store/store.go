package store

import (
	"context"
	"strings"
	gosync "sync"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/sync"
	"github.com/fitkeys/workout-sync-service/pkg/code"
	"github.com/fitkeys/workout-sync-service/pkg/logger"
	"github.com/fitkeys/workout-sync-service/pkg/util"
	"github.com/fitkeys/workout-sync-service/pkg/writequeue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 写队列键，一个集合一条串行队列
const (
	queueCategories = "categories"
	queueEntries    = "entries"
	queueSessions   = "sessions"
	queueWatchTime  = "watchtime"
)

// persistTimeout 单次持久化写入的超时
const persistTimeout = 30 * time.Second

// Store 领域状态仓库
// 内存中的四个集合是规范状态：变更先同步校验、立即生效，
// 随后经写队列异步持久化；远端快照到达时整集合替换（最后快照胜出）
type Store struct {
	gateways *sync.Gateways
	wq       *writequeue.Manager
	logger   *zap.Logger

	mu         gosync.RWMutex
	categories []*domain.Category
	entries    []*domain.Entry
	sessions   []*domain.WorkoutSession
	watchTime  domain.WatchTimeMap

	loaded   chan struct{}
	loadOnce gosync.Once

	unsubs []domain.Unsubscribe

	// now 可注入，测试用
	now func() time.Time
}

// New 创建仓库，Start 之前所有集合为空
func New(gateways *sync.Gateways, wq *writequeue.Manager, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		gateways:  gateways,
		wq:        wq,
		logger:    log,
		watchTime: domain.WatchTimeMap{},
		loaded:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start 订阅四个集合的快照流
// loading 状态在分类流投递第一份快照时结束
func (s *Store) Start(ctx context.Context) error {
	// 快照与枢纽缓存共享，入库前克隆，后续变更不污染其他订阅者
	unsubCategories, err := s.gateways.Category.Subscribe(ctx, func(cs []*domain.Category) {
		s.mu.Lock()
		s.categories = domain.CloneCategories(cs)
		s.mu.Unlock()
		s.loadOnce.Do(func() { close(s.loaded) })
	})
	if err != nil {
		return err
	}
	s.unsubs = append(s.unsubs, unsubCategories)

	unsubEntries, err := s.gateways.Entry.Subscribe(ctx, func(es []*domain.Entry) {
		s.mu.Lock()
		s.entries = domain.CloneEntries(es)
		s.mu.Unlock()
	})
	if err != nil {
		s.Close()
		return err
	}
	s.unsubs = append(s.unsubs, unsubEntries)

	unsubSessions, err := s.gateways.Session.Subscribe(ctx, func(ws []*domain.WorkoutSession) {
		s.mu.Lock()
		s.sessions = domain.CloneSessions(ws)
		s.mu.Unlock()
	})
	if err != nil {
		s.Close()
		return err
	}
	s.unsubs = append(s.unsubs, unsubSessions)

	unsubWatchTime, err := s.gateways.WatchTime.Subscribe(ctx, func(m domain.WatchTimeMap) {
		s.mu.Lock()
		s.watchTime = m.Clone()
		s.mu.Unlock()
	})
	if err != nil {
		s.Close()
		return err
	}
	s.unsubs = append(s.unsubs, unsubWatchTime)

	s.logger.Info("store started")
	return nil
}

// WaitReady 阻塞到第一份分类快照到达
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading 是否仍在等待首份快照
func (s *Store) Loading() bool {
	select {
	case <-s.loaded:
		return false
	default:
		return true
	}
}

// Close 释放订阅
func (s *Store) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.logger.Info("store closed")
}

// enqueue 将持久化写入排入集合队列
func (s *Store) enqueue(key string, fn func(ctx context.Context) error) *Commit {
	raw := s.wq.SubmitAsync(key, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return fn(ctx)
	})
	return newCommit(raw)
}

// ------------------------------------> categories

// AddCategory 新增分类，排序号取当前集合长度
func (s *Store) AddCategory(name string) (*domain.Category, *Commit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, code.ErrorCategoryNameRequired
	}

	s.mu.Lock()
	c := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Order:     len(s.categories),
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.categories = append(s.categories, c)
	snapshot := domain.CloneCategories(s.categories)
	s.mu.Unlock()

	s.logger.Info("category added",
		zap.String(logger.FieldCategoryID, c.ID),
		zap.String(logger.FieldAction, "add"))

	cc := *c
	return &cc, s.enqueue(queueCategories, func(ctx context.Context) error {
		return s.gateways.Category.SaveAll(ctx, snapshot)
	}), nil
}

// ReorderCategories 用给定的 ID 序列整体替换集合次序，排序号重排为 0..N-1
// 未知 ID 被忽略，序列中缺失的分类被移除（调用方提供完整序列）
func (s *Store) ReorderCategories(orderedIDs []string) (*Commit, error) {
	s.mu.Lock()
	byID := make(map[string]*domain.Category, len(s.categories))
	for _, c := range s.categories {
		byID[c.ID] = c
	}
	next := make([]*domain.Category, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		c, ok := byID[id]
		if !ok {
			continue
		}
		c.Order = len(next)
		c.UpdatedAt = s.now()
		next = append(next, c)
	}
	s.categories = next
	snapshot := domain.CloneCategories(s.categories)
	s.mu.Unlock()

	return s.enqueue(queueCategories, func(ctx context.Context) error {
		return s.gateways.Category.SaveAll(ctx, snapshot)
	}), nil
}

// UpdateCategory 重命名分类，未知 ID 静默空操作
func (s *Store) UpdateCategory(id string, name string) (*Commit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, code.ErrorCategoryNameRequired
	}

	s.mu.Lock()
	var target *domain.Category
	for _, c := range s.categories {
		if c.ID == id {
			target = c
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	target.Name = name
	target.UpdatedAt = s.now()
	snapshot := domain.CloneCategories(s.categories)
	s.mu.Unlock()

	return s.enqueue(queueCategories, func(ctx context.Context) error {
		return s.gateways.Category.SaveAll(ctx, snapshot)
	}), nil
}

// DeleteCategory 删除分类并级联删除其条目
// 幸存分类与条目的排序号不重排；未知 ID 静默空操作
func (s *Store) DeleteCategory(id string) (*Commit, error) {
	s.mu.Lock()
	found := false
	nextCategories := s.categories[:0:0]
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		nextCategories = append(nextCategories, c)
	}
	if !found {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	s.categories = nextCategories

	var removedEntryIDs []string
	nextEntries := s.entries[:0:0]
	for _, e := range s.entries {
		if e.CategoryID == id {
			removedEntryIDs = append(removedEntryIDs, e.ID)
			continue
		}
		nextEntries = append(nextEntries, e)
	}
	s.entries = nextEntries
	s.mu.Unlock()

	s.logger.Info("category deleted",
		zap.String(logger.FieldCategoryID, id),
		zap.Int(logger.FieldCount, len(removedEntryIDs)))

	categoryCommit := s.enqueue(queueCategories, func(ctx context.Context) error {
		return s.gateways.Category.DeleteOne(ctx, id)
	})
	entryCommit := s.enqueue(queueEntries, func(ctx context.Context) error {
		var firstErr error
		for _, entryID := range removedEntryIDs {
			if err := s.gateways.Entry.DeleteOne(ctx, entryID); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})
	return mergeCommits(categoryCommit, entryCommit), nil
}

// ------------------------------------> entries

// AddVideo 新增视频条目，URL 解析失败返回校验错误
// title 为空时沿用视频 ID 作为标题，imageURL 为空时使用视频封面
func (s *Store) AddVideo(categoryID, videoURL, title, notes, imageURL string) (*domain.Entry, *Commit, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, nil, code.ErrorEntryCategoryRequired
	}
	videoID := util.ExtractYouTubeID(videoURL)
	if videoID == "" {
		return nil, nil, code.ErrorInvalidVideoURL
	}
	if strings.TrimSpace(title) == "" {
		title = videoID
	}
	if imageURL == "" {
		imageURL = util.YouTubeThumbnailURL(videoID)
	}

	s.mu.Lock()
	order := 0
	for _, e := range s.entries {
		if e.CategoryID == categoryID {
			order++
		}
	}
	e := &domain.Entry{
		ID:           uuid.NewString(),
		CategoryID:   categoryID,
		Kind:         domain.EntryKindVideo,
		Title:        title,
		SourceURL:    videoURL,
		VideoID:      videoID,
		ThumbnailURL: imageURL,
		Notes:        notes,
		Order:        order,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	s.entries = append(s.entries, e)
	snapshot := domain.CloneEntries(s.entries)
	s.mu.Unlock()

	s.logger.Info("video entry added",
		zap.String(logger.FieldEntryID, e.ID),
		zap.String(logger.FieldVideoID, videoID))

	ee := *e
	return &ee, s.enqueue(queueEntries, func(ctx context.Context) error {
		return s.gateways.Entry.SaveAll(ctx, snapshot)
	}), nil
}

// AddNote 新增纯笔记条目，imageURL 可选
func (s *Store) AddNote(categoryID, title, notes, imageURL string) (*domain.Entry, *Commit, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, nil, code.ErrorEntryCategoryRequired
	}
	if strings.TrimSpace(notes) == "" {
		return nil, nil, code.ErrorEntryNotesRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil, code.ErrorEntryTitleRequired
	}

	s.mu.Lock()
	order := 0
	for _, e := range s.entries {
		if e.CategoryID == categoryID {
			order++
		}
	}
	e := &domain.Entry{
		ID:           uuid.NewString(),
		CategoryID:   categoryID,
		Kind:         domain.EntryKindNote,
		Title:        title,
		ThumbnailURL: imageURL,
		Notes:        notes,
		Order:        order,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	s.entries = append(s.entries, e)
	snapshot := domain.CloneEntries(s.entries)
	s.mu.Unlock()

	ee := *e
	return &ee, s.enqueue(queueEntries, func(ctx context.Context) error {
		return s.gateways.Entry.SaveAll(ctx, snapshot)
	}), nil
}

// ReorderEntries 重排指定分类内的条目，其他分类不受影响
func (s *Store) ReorderEntries(categoryID string, orderedIDs []string) (*Commit, error) {
	s.mu.Lock()
	byID := make(map[string]*domain.Entry, len(s.entries))
	for _, e := range s.entries {
		if e.CategoryID == categoryID {
			byID[e.ID] = e
		}
	}
	pos := 0
	for _, id := range orderedIDs {
		e, ok := byID[id]
		if !ok {
			continue
		}
		e.Order = pos
		e.UpdatedAt = s.now()
		pos++
	}
	snapshot := domain.CloneEntries(s.entries)
	s.mu.Unlock()

	return s.enqueue(queueEntries, func(ctx context.Context) error {
		return s.gateways.Entry.SaveAll(ctx, snapshot)
	}), nil
}

// EntryPatch 浅合并补丁，nil 字段保持原值
type EntryPatch struct {
	Title        *string
	Notes        *string
	ThumbnailURL *string
}

// UpdateEntry 浅合并更新条目，未知 ID 静默空操作
func (s *Store) UpdateEntry(id string, patch EntryPatch) (*Commit, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, code.ErrorEntryTitleRequired
	}

	s.mu.Lock()
	var target *domain.Entry
	for _, e := range s.entries {
		if e.ID == id {
			target = e
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	if patch.Title != nil {
		target.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Notes != nil {
		target.Notes = *patch.Notes
	}
	if patch.ThumbnailURL != nil {
		target.ThumbnailURL = *patch.ThumbnailURL
	}
	target.UpdatedAt = s.now()
	snapshot := domain.CloneEntries(s.entries)
	s.mu.Unlock()

	return s.enqueue(queueEntries, func(ctx context.Context) error {
		return s.gateways.Entry.SaveAll(ctx, snapshot)
	}), nil
}

// DeleteEntry 删除条目，observed watch-time 键保留（由维护任务清理）
// 未知 ID 静默空操作
func (s *Store) DeleteEntry(id string) (*Commit, error) {
	s.mu.Lock()
	found := false
	next := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ID == id {
			found = true
			continue
		}
		next = append(next, e)
	}
	if !found {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	s.entries = next
	s.mu.Unlock()

	return s.enqueue(queueEntries, func(ctx context.Context) error {
		return s.gateways.Entry.DeleteOne(ctx, id)
	}), nil
}

// ------------------------------------> watch time

// AddWatchTime 为条目累加观看秒数
func (s *Store) AddWatchTime(entryID string, seconds int) (*Commit, error) {
	if seconds < 0 {
		return nil, code.ErrorNegativeWatchTime
	}

	s.mu.Lock()
	s.watchTime = s.watchTime.AddSeconds(entryID, seconds)
	snapshot := s.watchTime.Clone()
	s.mu.Unlock()

	return s.enqueue(queueWatchTime, func(ctx context.Context) error {
		return s.gateways.WatchTime.Save(ctx, snapshot)
	}), nil
}

// SetWatchTime 整体替换观看时长映射
func (s *Store) SetWatchTime(m domain.WatchTimeMap) (*Commit, error) {
	for _, v := range m {
		if v < 0 {
			return nil, code.ErrorNegativeWatchTime
		}
	}

	s.mu.Lock()
	s.watchTime = m.Clone()
	snapshot := s.watchTime.Clone()
	s.mu.Unlock()

	return s.enqueue(queueWatchTime, func(ctx context.Context) error {
		return s.gateways.WatchTime.Save(ctx, snapshot)
	}), nil
}

// ------------------------------------> sessions

// AddWorkoutSession 新增训练会话，分类集合不能为空
func (s *Store) AddWorkoutSession(date, timeStr string, categoryIDs []string, notes string) (*domain.WorkoutSession, *Commit, error) {
	if strings.TrimSpace(date) == "" {
		return nil, nil, code.ErrorSessionDateRequired
	}
	if len(categoryIDs) == 0 {
		return nil, nil, code.ErrorSessionCategoriesEmpty
	}

	s.mu.Lock()
	w := &domain.WorkoutSession{
		ID:          uuid.NewString(),
		Date:        date,
		Time:        timeStr,
		CategoryIDs: append([]string{}, categoryIDs...),
		Completed:   false,
		Notes:       notes,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	s.sessions = append(s.sessions, w)
	snapshot := domain.CloneSessions(s.sessions)
	s.mu.Unlock()

	s.logger.Info("session added",
		zap.String(logger.FieldSessionID, w.ID),
		zap.String(logger.FieldAction, "add"))

	ww := *w
	ww.CategoryIDs = append([]string{}, w.CategoryIDs...)
	return &ww, s.enqueue(queueSessions, func(ctx context.Context) error {
		return s.gateways.Session.SaveAll(ctx, snapshot)
	}), nil
}

// SessionPatch 浅合并补丁，nil 字段保持原值
type SessionPatch struct {
	Date        *string
	Time        *string
	CategoryIDs *[]string
	Completed   *bool
	Notes       *string
}

// UpdateWorkoutSession 浅合并更新会话，未知 ID 静默空操作
// 变更分类集合时集合不能为空
func (s *Store) UpdateWorkoutSession(id string, patch SessionPatch) (*Commit, error) {
	if patch.Date != nil && strings.TrimSpace(*patch.Date) == "" {
		return nil, code.ErrorSessionDateRequired
	}
	if patch.CategoryIDs != nil && len(*patch.CategoryIDs) == 0 {
		return nil, code.ErrorSessionCategoriesEmpty
	}

	s.mu.Lock()
	var target *domain.WorkoutSession
	for _, w := range s.sessions {
		if w.ID == id {
			target = w
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	if patch.Date != nil {
		target.Date = *patch.Date
	}
	if patch.Time != nil {
		target.Time = *patch.Time
	}
	if patch.CategoryIDs != nil {
		target.CategoryIDs = append([]string{}, (*patch.CategoryIDs)...)
	}
	if patch.Completed != nil {
		target.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		target.Notes = *patch.Notes
	}
	target.UpdatedAt = s.now()
	snapshot := domain.CloneSessions(s.sessions)
	s.mu.Unlock()

	return s.enqueue(queueSessions, func(ctx context.Context) error {
		return s.gateways.Session.SaveAll(ctx, snapshot)
	}), nil
}

// DeleteWorkoutSession 删除会话，未知 ID 静默空操作
func (s *Store) DeleteWorkoutSession(id string) (*Commit, error) {
	s.mu.Lock()
	found := false
	next := s.sessions[:0:0]
	for _, w := range s.sessions {
		if w.ID == id {
			found = true
			continue
		}
		next = append(next, w)
	}
	if !found {
		s.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	s.sessions = next
	s.mu.Unlock()

	return s.enqueue(queueSessions, func(ctx context.Context) error {
		return s.gateways.Session.DeleteOne(ctx, id)
	}), nil
}

// ------------------------------------> reads

// Categories 返回按排序号升序的分类副本
func (s *Store) Categories() []*domain.Category {
	s.mu.RLock()
	out := domain.CloneCategories(s.categories)
	s.mu.RUnlock()
	domain.SortCategories(out)
	return out
}

// CategoryByID 未知 ID 返回 nil
func (s *Store) CategoryByID(id string) *domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			cc := *c
			return &cc
		}
	}
	return nil
}

// Entries 返回全部条目副本
func (s *Store) Entries() []*domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneEntries(s.entries)
}

// EntriesForCategory 返回指定分类的条目，排序号升序、创建时间兜底
func (s *Store) EntriesForCategory(categoryID string) []*domain.Entry {
	s.mu.RLock()
	var out []*domain.Entry
	for _, e := range s.entries {
		if e.CategoryID == categoryID {
			ee := *e
			out = append(out, &ee)
		}
	}
	s.mu.RUnlock()
	domain.SortEntries(out)
	return out
}

// EntryByID 未知 ID 返回 nil
func (s *Store) EntryByID(id string) *domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			ee := *e
			return &ee
		}
	}
	return nil
}

// Sessions 返回全部会话副本
func (s *Store) Sessions() []*domain.WorkoutSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneSessions(s.sessions)
}

// SessionsForDate 返回指定日期（"2006-01-02"）的会话
func (s *Store) SessionsForDate(date string) []*domain.WorkoutSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.WorkoutSession
	for _, w := range s.sessions {
		if w.IsOnDate(date) {
			ww := *w
			ww.CategoryIDs = append([]string{}, w.CategoryIDs...)
			out = append(out, &ww)
		}
	}
	return out
}

// WatchTime 返回观看时长映射副本
func (s *Store) WatchTime() domain.WatchTimeMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watchTime.Clone()
}

// WatchTimeFor 返回条目累计秒数，未知条目为 0
func (s *Store) WatchTimeFor(entryID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watchTime.Seconds(entryID)
}

// TotalWatchTimeForCategory 汇总分类下所有条目的观看秒数
// 只统计仍然存在的条目，孤儿键不参与
func (s *Store) TotalWatchTimeForCategory(categoryID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.entries {
		if e.CategoryID == categoryID {
			total += s.watchTime.Seconds(e.ID)
		}
	}
	return total
}
