// Package task 实现后台维护任务的注册与调度
package task

import (
	"context"

	"github.com/fitkeys/workout-sync-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	CronSpec() string              // cron 表达式
	IsStartupRun() bool            // 是否启动时立即执行一次
}

// Scheduler 基于 cron 的任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	cron   *cron.Cron
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		cron:   cron.New(),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务，随关闭信号停止
func (s *Scheduler) Start() error {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return nil
	}

	for _, task := range s.tasks {
		task := task
		if task.IsStartupRun() {
			go s.runTask(task, true)
		}
		if task.CronSpec() == "" {
			continue
		}
		if _, err := s.cron.AddFunc(task.CronSpec(), func() {
			s.runTask(task, false)
		}); err != nil {
			return err
		}
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))
	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.logger.Info("tasks stopped")
	})
	return nil
}

// runTask 执行单个任务，panic 不外溢
func (s *Scheduler) runTask(task Task, startupRun bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", startupRun))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Error(err))
	}
}
