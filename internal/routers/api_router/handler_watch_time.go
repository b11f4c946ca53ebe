package api_router

import (
	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/dto"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/code"
	apperrors "github.com/fitkeys/workout-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WatchTimeHandler 观看时长 API 路由处理器
type WatchTimeHandler struct {
	*Handler
}

// NewWatchTimeHandler 创建 WatchTimeHandler 实例
func NewWatchTimeHandler(a *app.App) *WatchTimeHandler {
	return &WatchTimeHandler{
		Handler: NewHandler(a),
	}
}

// List 获取整张观看时长表
func (h *WatchTimeHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	list := dto.WatchTimeMapToDTO(h.App.Store.WatchTime())
	response.ToResponseList(code.Success, list, len(list))
}

// Get 获取单条目观看时长，未知条目返回 0
func (h *WatchTimeHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.WatchTimeGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("WatchTimeHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	seconds := h.App.Store.WatchTimeFor(params.EntryID)
	response.ToResponse(code.Success.WithData(dto.WatchTimeToDTO(params.EntryID, seconds)))
}

// Category 获取分类观看总时长，只累计仍归属该分类的条目
func (h *WatchTimeHandler) Category(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.WatchTimeCategoryRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("WatchTimeHandler.Category.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	seconds := h.App.Store.TotalWatchTimeForCategory(params.CategoryID)
	response.ToResponse(code.Success.WithData(dto.WatchTimeToDTO(params.CategoryID, seconds)))
}

// Add 为条目累加观看秒数，负数被领域层拒绝
func (h *WatchTimeHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.WatchTimeAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("WatchTimeHandler.Add.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.AddWatchTime(params.EntryID, params.Seconds)
	if err != nil {
		h.logError(ctx, "WatchTimeHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "WatchTimeHandler.Add.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	seconds := h.App.Store.WatchTimeFor(params.EntryID)
	response.ToResponse(code.SuccessUpdate.WithData(dto.WatchTimeToDTO(params.EntryID, seconds)))
}
