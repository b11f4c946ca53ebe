package task

import (
	"context"

	"github.com/fitkeys/workout-sync-service/internal/store"
	"github.com/fitkeys/workout-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// WatchTimePruneTask 清理观看时长映射中的孤儿键
// 删除条目时其观看时长键会留在映射里，读路径不统计孤儿键，
// 这里定期把它们从持久化映射中剔除
type WatchTimePruneTask struct {
	store  *store.Store
	logger *zap.Logger
}

// NewWatchTimePruneTask 创建清理任务
func NewWatchTimePruneTask(s *store.Store, log *zap.Logger) *WatchTimePruneTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &WatchTimePruneTask{store: s, logger: log}
}

// Name 返回任务名称
func (t *WatchTimePruneTask) Name() string {
	return "WatchTimePrune"
}

// CronSpec 每天凌晨三点半执行
func (t *WatchTimePruneTask) CronSpec() string {
	return "30 3 * * *"
}

// IsStartupRun 是否启动时立即执行一次
func (t *WatchTimePruneTask) IsStartupRun() bool {
	return false
}

// Run 执行一次清理
func (t *WatchTimePruneTask) Run(ctx context.Context) error {
	if t.store.Loading() {
		t.logger.Info("task skipped, store not ready", zap.String("name", t.Name()))
		return nil
	}

	wt := t.store.WatchTime()
	live := map[string]struct{}{}
	for _, e := range t.store.Entries() {
		live[e.ID] = struct{}{}
	}

	pruned := wt.Clone()
	removed := 0
	for id := range wt {
		if _, ok := live[id]; !ok {
			delete(pruned, id)
			removed++
		}
	}
	if removed == 0 {
		return nil
	}

	commit, err := t.store.SetWatchTime(pruned)
	if err != nil {
		return err
	}
	if err := commit.Wait(ctx); err != nil {
		return err
	}

	t.logger.Info("orphan watch time pruned", zap.Int(logger.FieldCount, removed))
	return nil
}
