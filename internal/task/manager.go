package task

import (
	"github.com/fitkeys/workout-sync-service/internal/store"
	"github.com/fitkeys/workout-sync-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks(s *store.Store) {
	m.scheduler.AddTask(NewWatchTimePruneTask(s, m.logger))
}

// Start 启动所有已注册的任务
func (m *Manager) Start() error {
	return m.scheduler.Start()
}
