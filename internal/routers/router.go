package routers

import (
	"context"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/middleware"
	"github.com/fitkeys/workout-sync-service/internal/routers/api_router"
	"github.com/fitkeys/workout-sync-service/internal/routers/websocket_router"
	pkgapp "github.com/fitkeys/workout-sync-service/pkg/app"
	"github.com/fitkeys/workout-sync-service/pkg/limiter"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		// 观看时长由播放器定时冲刷，限住异常客户端的突发写入
		Key:          "/api/watchtime",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
)

// NewRouter 装配 HTTP API 与 WebSocket 快照流
// 返回的清理函数退订快照流，应挂接到关闭流程
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) (*gin.Engine, func(), error) {

	// 获取配置
	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:  true,
			ParallelEnabled:   true,                                 // 开启并行消息处理
			Recovery:          gws.Recovery,                         // 开启异常恢复
			PermessageDeflate: gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:   8,
		},
	}, appContainer.Logger())

	// 创建 WebSocket Handler（注入 App Container）
	snapshotWSHandler := websocket_router.NewSnapshotWSHandler(appContainer, wss)

	// 订阅
	wss.Use("Subscribe", snapshotWSHandler.Subscribe)
	// 退订
	wss.Use("Unsubscribe", snapshotWSHandler.Unsubscribe)

	// 网关快照 -> 已订阅客户端
	if err := snapshotWSHandler.StartBridge(context.Background()); err != nil {
		return nil, nil, err
	}

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		categoryHandler := api_router.NewCategoryHandler(appContainer)
		entryHandler := api_router.NewEntryHandler(appContainer)
		sessionHandler := api_router.NewSessionHandler(appContainer)
		watchTimeHandler := api_router.NewWatchTimeHandler(appContainer)
		analyticsHandler := api_router.NewAnalyticsHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 系统接口
		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		// 快照流
		api.GET("/sync", wss.Run())

		// 分类
		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", categoryHandler.Add)
		api.PUT("/categories", categoryHandler.Update)
		api.PUT("/categories/reorder", categoryHandler.Reorder)
		api.DELETE("/categories", categoryHandler.Delete)

		// 条目
		api.GET("/entries", entryHandler.List)
		api.POST("/entries/video", entryHandler.AddVideo)
		api.POST("/entries/note", entryHandler.AddNote)
		api.PUT("/entries", entryHandler.Update)
		api.PUT("/entries/reorder", entryHandler.Reorder)
		api.DELETE("/entries", entryHandler.Delete)

		// 训练计划
		api.GET("/sessions", sessionHandler.List)
		api.POST("/sessions", sessionHandler.Add)
		api.PUT("/sessions", sessionHandler.Update)
		api.DELETE("/sessions", sessionHandler.Delete)

		// 观看时长
		api.GET("/watchtime", watchTimeHandler.List)
		api.GET("/watchtime/entry", watchTimeHandler.Get)
		api.GET("/watchtime/category", watchTimeHandler.Category)
		api.POST("/watchtime", watchTimeHandler.Add)

		// 统计与建议
		api.GET("/stats", analyticsHandler.Stats)
		api.GET("/suggestions", analyticsHandler.Suggestions)
		api.GET("/summary", analyticsHandler.Summary)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r, snapshotWSHandler.StopBridge, nil
}
