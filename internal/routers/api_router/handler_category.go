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

// CategoryHandler 分类 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type CategoryHandler struct {
	*Handler
}

// NewCategoryHandler 创建 CategoryHandler 实例
func NewCategoryHandler(a *app.App) *CategoryHandler {
	return &CategoryHandler{
		Handler: NewHandler(a),
	}
}

// List 获取全部分类（按 order 排序）
func (h *CategoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	categories := h.App.Store.Categories()
	list := dto.CategoriesToDTO(categories)
	response.ToResponseList(code.Success, list, len(list))
}

// Add 创建分类
// 乐观生效后等待持久化结果；持久化失败时本地状态不回滚
func (h *CategoryHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryAddRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Add.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	category, commit, err := h.App.Store.AddCategory(params.Name)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "CategoryHandler.Add.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(dto.CategoryToDTO(category)))
}

// Update 重命名分类，未知 ID 静默无操作
func (h *CategoryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.UpdateCategory(params.ID, params.Name)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "CategoryHandler.Update.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate)
}

// Reorder 按给定顺序重排分类，order 重编号为 0..N-1
func (h *CategoryHandler) Reorder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryReorderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Reorder.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.ReorderCategories(params.IDs)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Reorder", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "CategoryHandler.Reorder.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate)
}

// Delete 删除分类并级联删除其条目，幸存分类不重编号
func (h *CategoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	commit, err := h.App.Store.DeleteCategory(params.ID)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := commit.Wait(ctx); err != nil {
		h.logError(ctx, "CategoryHandler.Delete.Commit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
