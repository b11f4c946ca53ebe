package websocket_router

import (
	"context"

	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/dto"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/code"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// SnapshotWSHandler 快照推送处理器
// 客户端订阅集合名后，每次写入都会收到该集合的整集合快照，
// 包括自己写入的回声（另一台设备视角下这是远端变更）
type SnapshotWSHandler struct {
	*WSHandler
	WSS *pkgapp.WebsocketServer

	unsubs []domain.Unsubscribe
}

// NewSnapshotWSHandler 创建 SnapshotWSHandler 实例
func NewSnapshotWSHandler(a *app.App, wss *pkgapp.WebsocketServer) *SnapshotWSHandler {
	return &SnapshotWSHandler{
		WSHandler: NewWSHandler(a),
		WSS:       wss,
	}
}

// Subscribe 处理订阅消息：登记集合并立刻补发当前快照
func (h *SnapshotWSHandler) Subscribe(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.SubscribeRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		h.respondError(c, code.ErrorInvalidParams.WithData(errs.Maps()), errs, "websocket_router.snapshot.Subscribe.BindAndValid")
		return
	}

	c.Subscribe(params.Collections...)
	c.ToResponse(code.Success, "Subscribe")

	// 补发当前快照，订阅者无需等待下一次写入
	for _, collection := range params.Collections {
		c.ToResponse(code.Success.WithData(h.snapshotFor(collection)), "Snapshot")
	}
}

// Unsubscribe 处理退订消息
func (h *SnapshotWSHandler) Unsubscribe(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.SubscribeRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		h.respondError(c, code.ErrorInvalidParams.WithData(errs.Maps()), errs, "websocket_router.snapshot.Unsubscribe.BindAndValid")
		return
	}

	c.Unsubscribe(params.Collections...)
	c.ToResponse(code.Success, "Unsubscribe")
}

// snapshotFor 取集合的当前快照并转 DTO
func (h *SnapshotWSHandler) snapshotFor(collection string) *dto.SnapshotMessage {
	switch collection {
	case dto.CollectionCategories:
		list := dto.CategoriesToDTO(h.App.Store.Categories())
		return &dto.SnapshotMessage{Collection: collection, Data: list, Count: len(list)}
	case dto.CollectionEntries:
		list := dto.EntriesToDTO(h.App.Store.Entries())
		return &dto.SnapshotMessage{Collection: collection, Data: list, Count: len(list)}
	case dto.CollectionSessions:
		list := dto.SessionsToDTO(h.App.Store.Sessions())
		return &dto.SnapshotMessage{Collection: collection, Data: list, Count: len(list)}
	case dto.CollectionWatchTime:
		list := dto.WatchTimeMapToDTO(h.App.Store.WatchTime())
		return &dto.SnapshotMessage{Collection: collection, Data: list, Count: len(list)}
	}
	return &dto.SnapshotMessage{Collection: collection}
}

// StartBridge 订阅四条快照流并向已订阅的客户端扇出
// 扇出任务经 Worker Pool 限界，慢客户端不会阻塞枢纽
func (h *SnapshotWSHandler) StartBridge(ctx context.Context) error {
	unsub, err := h.App.Gateways.Category.Subscribe(ctx, func(list []*domain.Category) {
		snap := dto.SnapshotMessage{Collection: dto.CollectionCategories, Data: dto.CategoriesToDTO(list), Count: len(list)}
		h.broadcast(ctx, snap)
	})
	if err != nil {
		return err
	}
	h.unsubs = append(h.unsubs, unsub)

	unsub, err = h.App.Gateways.Entry.Subscribe(ctx, func(list []*domain.Entry) {
		snap := dto.SnapshotMessage{Collection: dto.CollectionEntries, Data: dto.EntriesToDTO(list), Count: len(list)}
		h.broadcast(ctx, snap)
	})
	if err != nil {
		return err
	}
	h.unsubs = append(h.unsubs, unsub)

	unsub, err = h.App.Gateways.Session.Subscribe(ctx, func(list []*domain.WorkoutSession) {
		snap := dto.SnapshotMessage{Collection: dto.CollectionSessions, Data: dto.SessionsToDTO(list), Count: len(list)}
		h.broadcast(ctx, snap)
	})
	if err != nil {
		return err
	}
	h.unsubs = append(h.unsubs, unsub)

	unsub, err = h.App.Gateways.WatchTime.Subscribe(ctx, func(m domain.WatchTimeMap) {
		list := dto.WatchTimeMapToDTO(m)
		snap := dto.SnapshotMessage{Collection: dto.CollectionWatchTime, Data: list, Count: len(list)}
		h.broadcast(ctx, snap)
	})
	if err != nil {
		return err
	}
	h.unsubs = append(h.unsubs, unsub)

	return nil
}

// StopBridge 退订快照流
func (h *SnapshotWSHandler) StopBridge() {
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.unsubs = nil
}

func (h *SnapshotWSHandler) broadcast(ctx context.Context, snap dto.SnapshotMessage) {
	payload, err := sonic.Marshal(pkgapp.Res{
		Code:   code.Success.Code(),
		Status: true,
		Data:   snap,
	})
	if err != nil {
		h.App.Logger().Error("websocket_router.snapshot.broadcast marshal err", zap.Error(err))
		return
	}

	collection := snap.Collection
	if err := h.App.SubmitTaskAsync(ctx, func(context.Context) error {
		h.WSS.BroadcastSnapshot(collection, payload)
		return nil
	}); err != nil {
		h.App.Logger().Warn("websocket_router.snapshot.broadcast submit err",
			zap.String("collection", collection), zap.Error(err))
	}
}
