package sync

import (
	"context"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// Gateways 聚合四个集合的同步网关
type Gateways struct {
	Category  domain.CategoryGateway
	Entry     domain.EntryGateway
	Session   domain.SessionGateway
	WatchTime domain.WatchTimeGateway
}

// NewGateways 装配同步网关
func NewGateways(
	categoryRepo domain.CategoryRepository,
	entryRepo domain.EntryRepository,
	sessionRepo domain.SessionRepository,
	watchTimeRepo domain.WatchTimeRepository,
	log *zap.Logger,
) *Gateways {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateways{
		Category: &categoryGateway{
			repo:   categoryRepo,
			hub:    NewHub[[]*domain.Category](log),
			logger: log,
		},
		Entry: &entryGateway{
			repo:   entryRepo,
			hub:    NewHub[[]*domain.Entry](log),
			logger: log,
		},
		Session: &sessionGateway{
			repo:   sessionRepo,
			hub:    NewHub[[]*domain.WorkoutSession](log),
			logger: log,
		},
		WatchTime: &watchTimeGateway{
			repo:   watchTimeRepo,
			hub:    NewHub[domain.WatchTimeMap](log),
			logger: log,
		},
	}
}

// Close 关闭所有枢纽
func (g *Gateways) Close() {
	if cg, ok := g.Category.(*categoryGateway); ok {
		cg.hub.Close()
	}
	if eg, ok := g.Entry.(*entryGateway); ok {
		eg.hub.Close()
	}
	if sg, ok := g.Session.(*sessionGateway); ok {
		sg.hub.Close()
	}
	if wg, ok := g.WatchTime.(*watchTimeGateway); ok {
		wg.hub.Close()
	}
}

// ------------------------------------> categories

type categoryGateway struct {
	repo   domain.CategoryRepository
	hub    *Hub[[]*domain.Category]
	logger *zap.Logger
}

func (g *categoryGateway) Subscribe(ctx context.Context, onChange func([]*domain.Category)) (domain.Unsubscribe, error) {
	return g.hub.Subscribe(onChange, func() ([]*domain.Category, error) {
		return g.repo.ListAll(ctx)
	})
}

// SaveAll 逐条 upsert，单条失败后继续写剩余记录，错误最终上抛
// 无论是否有失败，都以当前库状态重新发布快照（自身写入同样会回显）
func (g *categoryGateway) SaveAll(ctx context.Context, categories []*domain.Category) error {
	var firstErr error
	for _, c := range categories {
		if err := g.repo.Upsert(ctx, c); err != nil {
			g.logger.Error("category upsert failed",
				zap.String(logger.FieldCollection, "categories"),
				zap.String(logger.FieldCategoryID, c.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	g.publish(ctx)
	return firstErr
}

func (g *categoryGateway) DeleteOne(ctx context.Context, id string) error {
	if err := g.repo.Delete(ctx, id); err != nil {
		return err
	}
	g.publish(ctx)
	return nil
}

func (g *categoryGateway) publish(ctx context.Context) {
	snapshot, err := g.repo.ListAll(ctx)
	if err != nil {
		g.logger.Error("category snapshot reload failed",
			zap.String(logger.FieldCollection, "categories"),
			zap.Error(err))
		return
	}
	g.hub.Publish(snapshot)
}

// ------------------------------------> entries

type entryGateway struct {
	repo   domain.EntryRepository
	hub    *Hub[[]*domain.Entry]
	logger *zap.Logger
}

func (g *entryGateway) Subscribe(ctx context.Context, onChange func([]*domain.Entry)) (domain.Unsubscribe, error) {
	return g.hub.Subscribe(onChange, func() ([]*domain.Entry, error) {
		return g.repo.ListAll(ctx)
	})
}

func (g *entryGateway) SaveAll(ctx context.Context, entries []*domain.Entry) error {
	var firstErr error
	for _, e := range entries {
		if err := g.repo.Upsert(ctx, e); err != nil {
			g.logger.Error("entry upsert failed",
				zap.String(logger.FieldCollection, "entries"),
				zap.String(logger.FieldEntryID, e.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	g.publish(ctx)
	return firstErr
}

func (g *entryGateway) DeleteOne(ctx context.Context, id string) error {
	if err := g.repo.Delete(ctx, id); err != nil {
		return err
	}
	g.publish(ctx)
	return nil
}

func (g *entryGateway) publish(ctx context.Context) {
	snapshot, err := g.repo.ListAll(ctx)
	if err != nil {
		g.logger.Error("entry snapshot reload failed",
			zap.String(logger.FieldCollection, "entries"),
			zap.Error(err))
		return
	}
	g.hub.Publish(snapshot)
}

// ------------------------------------> sessions

type sessionGateway struct {
	repo   domain.SessionRepository
	hub    *Hub[[]*domain.WorkoutSession]
	logger *zap.Logger
}

func (g *sessionGateway) Subscribe(ctx context.Context, onChange func([]*domain.WorkoutSession)) (domain.Unsubscribe, error) {
	return g.hub.Subscribe(onChange, func() ([]*domain.WorkoutSession, error) {
		return g.repo.ListAll(ctx)
	})
}

func (g *sessionGateway) SaveAll(ctx context.Context, sessions []*domain.WorkoutSession) error {
	var firstErr error
	for _, s := range sessions {
		if err := g.repo.Upsert(ctx, s); err != nil {
			g.logger.Error("session upsert failed",
				zap.String(logger.FieldCollection, "sessions"),
				zap.String(logger.FieldSessionID, s.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	g.publish(ctx)
	return firstErr
}

func (g *sessionGateway) DeleteOne(ctx context.Context, id string) error {
	if err := g.repo.Delete(ctx, id); err != nil {
		return err
	}
	g.publish(ctx)
	return nil
}

func (g *sessionGateway) publish(ctx context.Context) {
	snapshot, err := g.repo.ListAll(ctx)
	if err != nil {
		g.logger.Error("session snapshot reload failed",
			zap.String(logger.FieldCollection, "sessions"),
			zap.Error(err))
		return
	}
	g.hub.Publish(snapshot)
}

// ------------------------------------> watch time

type watchTimeGateway struct {
	repo   domain.WatchTimeRepository
	hub    *Hub[domain.WatchTimeMap]
	logger *zap.Logger
}

func (g *watchTimeGateway) Subscribe(ctx context.Context, onChange func(domain.WatchTimeMap)) (domain.Unsubscribe, error) {
	return g.hub.Subscribe(onChange, func() (domain.WatchTimeMap, error) {
		return g.repo.Load(ctx)
	})
}

func (g *watchTimeGateway) Load(ctx context.Context) (domain.WatchTimeMap, error) {
	return g.repo.Load(ctx)
}

// Save 原子替换整个映射并发布新快照
func (g *watchTimeGateway) Save(ctx context.Context, m domain.WatchTimeMap) error {
	if err := g.repo.Save(ctx, m); err != nil {
		return err
	}
	g.hub.Publish(m.Clone())
	return nil
}
