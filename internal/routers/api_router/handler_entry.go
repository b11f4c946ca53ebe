package api_router

import (
	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/dto"
	"github.com/fitkeys/workout-sync-service/internal/store"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/code"
	apperrors "github.com/fitkeys/workout-sync-service/pkg/errors"
	"github.com/fitkeys/workout-sync-service/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler 条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type EntryHandler struct {
	*Handler
}

// NewEntryHandler 创建 EntryHandler 实例
func NewEntryHandler(a *app.App) *EntryHandler {
	return &EntryHandler{
		Handler: NewHandler(a),
	}
}

// List 获取条目，categoryId 存在时只返回该分类下的条目（按 order 排序）
func (h *EntryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	var list []*dto.EntryDTO
	if params.CategoryID != "" {
		list = dto.EntriesToDTO(h.App.Store.EntriesForCategory(params.CategoryID))
	} else {
		list = dto.EntriesToDTO(h.App.Store.Entries())
	}
	response.ToResponseList(code.Success, list, len(list))
}

// AddVideo 从 YouTube 链接创建视频条目
// 标题缺省时先尝试元数据查询，查询不到退回视频 ID
func (h *EntryHandler) AddVideo(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VideoAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.AddVideo.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	title := params.Title
	if title == "" {
		// 尽力而为：没有 API key 或查询失败时得到空标题
		if videoID := util.ExtractYouTubeID(params.URL); videoID != "" {
			title, _ = h.App.VideoMetaService.LookupTitle(ctx, videoID)
		}
	}

	entry, commit, err := h.App.Store.AddVideo(params.CategoryID, params.URL, title, params.Notes, params.ImageURL)
	if err != nil {
		h.logError(ctx, "EntryHandler.AddVideo", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "EntryHandler.AddVideo.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(dto.EntryToDTO(entry)))
}

// AddNote 创建纯笔记条目
func (h *EntryHandler) AddNote(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.AddNote.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	entry, commit, err := h.App.Store.AddNote(params.CategoryID, params.Title, params.Notes, params.ImageURL)
	if err != nil {
		h.logError(ctx, "EntryHandler.AddNote", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "EntryHandler.AddNote.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(dto.EntryToDTO(entry)))
}

// Update 浅合并更新条目，未知 ID 静默无操作
func (h *EntryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.UpdateEntry(params.ID, store.EntryPatch{
		Title:        params.Title,
		Notes:        params.Notes,
		ThumbnailURL: params.ImageURL,
	})
	if err != nil {
		h.logError(ctx, "EntryHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "EntryHandler.Update.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate)
}

// Reorder 分类内重排条目，其他分类不受影响
func (h *EntryHandler) Reorder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryReorderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Reorder.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.ReorderEntries(params.CategoryID, params.IDs)
	if err != nil {
		h.logError(ctx, "EntryHandler.Reorder", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "EntryHandler.Reorder.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate)
}

// Delete 删除条目；其观看时长键留待维护任务清理
func (h *EntryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.DeleteEntry(params.ID)
	if err != nil {
		h.logError(ctx, "EntryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "EntryHandler.Delete.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
