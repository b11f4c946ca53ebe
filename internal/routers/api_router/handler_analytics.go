package api_router

import (
	"time"

	"github.com/fitkeys/workout-sync-service/internal/analytics"
	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/dto"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计与建议 API 路由处理器
// 分析层是纯函数，直接在当前快照上计算，不产生写入
type AnalyticsHandler struct {
	*Handler
}

// NewAnalyticsHandler 创建 AnalyticsHandler 实例
func NewAnalyticsHandler(a *app.App) *AnalyticsHandler {
	return &AnalyticsHandler{
		Handler: NewHandler(a),
	}
}

// Stats 周/月统计、分类维度与连续天数
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	stats := analytics.ComputeStats(h.App.Store.Sessions(), time.Now())
	response.ToResponse(code.Success.WithData(stats))
}

// Suggestions 固定顺序启发式产生的智能建议
func (h *AnalyticsHandler) Suggestions(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	suggestions := analytics.SmartSuggestions(h.App.Store.Sessions(), h.App.Store.Categories(), time.Now())
	list := dto.SuggestionsToDTO(suggestions)
	response.ToResponseList(code.Success, list, len(list))
}

// Summary 单行周总结
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	summary := analytics.WeeklySummary(h.App.Store.Sessions(), h.App.Store.Categories(), time.Now())
	response.ToResponse(code.Success.WithData(dto.SummaryDTO{Summary: summary}))
}
