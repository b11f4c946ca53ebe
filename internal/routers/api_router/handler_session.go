package api_router

import (
	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/dto"
	"github.com/fitkeys/workout-sync-service/internal/store"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/code"
	apperrors "github.com/fitkeys/workout-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler 训练计划 API 路由处理器
type SessionHandler struct {
	*Handler
}

// NewSessionHandler 创建 SessionHandler 实例
func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{
		Handler: NewHandler(a),
	}
}

// List 获取训练计划，date 存在时只返回当日计划
func (h *SessionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	var list []*dto.SessionDTO
	if params.Date != "" {
		list = dto.SessionsToDTO(h.App.Store.SessionsForDate(params.Date))
	} else {
		list = dto.SessionsToDTO(h.App.Store.Sessions())
	}
	response.ToResponseList(code.Success, list, len(list))
}

// Add 添加训练计划
func (h *SessionHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Add.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	session, commit, err := h.App.Store.AddWorkoutSession(params.Date, params.Time, params.CategoryIDs, params.Notes)
	if err != nil {
		h.logError(ctx, "SessionHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "SessionHandler.Add.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(dto.SessionToDTO(session)))
}

// Update 浅合并更新训练计划，未知 ID 静默无操作
// 更新分类集合时空集合被拒绝
func (h *SessionHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.UpdateWorkoutSession(params.ID, store.SessionPatch{
		Date:        params.Date,
		Time:        params.Time,
		CategoryIDs: params.CategoryIDs,
		Completed:   params.Completed,
		Notes:       params.Notes,
	})
	if err != nil {
		h.logError(ctx, "SessionHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "SessionHandler.Update.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate)
}

// Delete 删除训练计划
func (h *SessionHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.DeleteWorkoutSession(params.ID)
	if err != nil {
		h.logError(ctx, "SessionHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "SessionHandler.Delete.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
