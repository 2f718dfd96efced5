package routers

import (
	"time"

	_ "github.com/haierkeys/block-note-service/docs"
	"github.com/haierkeys/block-note-service/internal/app"
	"github.com/haierkeys/block-note-service/internal/middleware"
	"github.com/haierkeys/block-note-service/internal/routers/api_router"
	"github.com/haierkeys/block-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 登录与注册接口限流，防止撞库
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	authKey := cfg.Security.AuthTokenKey

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(middleware.TraceConfig{
			Enabled: cfg.Tracer.Enabled,
			Header:  cfg.Tracer.Header,
		}))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		pageHandler := api_router.NewPageHandler(appContainer)
		blockHandler := api_router.NewBlockHandler(appContainer)
		documentHandler := api_router.NewDocumentHandler(appContainer)
		revisionHandler := api_router.NewRevisionHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		fileHandler := api_router.NewFileHandler(appContainer)
		eventHandler := api_router.NewEventHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		adminHandler := api_router.NewAdminHandler(appContainer)

		// 无需认证的接口
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// 用户接口
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/user/info", userHandler.UserInfo)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/user/change_password", userHandler.UserChangePassword)

		// 页面接口
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/pages", pageHandler.List)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/pages/all", pageHandler.ListAll)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/pages/search", pageHandler.Search)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/page", pageHandler.Get)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/page", pageHandler.Create)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/page", pageHandler.Update)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/page", pageHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/page/soft-delete", pageHandler.SoftDelete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/page/restore", pageHandler.Restore)

		// 内容块接口
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/blocks", blockHandler.List)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/block", blockHandler.Create)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/block", blockHandler.Update)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/block", blockHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/blocks/reorder", blockHandler.Reorder)

		// 文档合成与保存
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/page/document", documentHandler.Get)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/page/document", documentHandler.Save)

		// 版本历史
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/page/revisions", revisionHandler.List)

		// 页面分享
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/page/share", shareHandler.Create)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/page/share", shareHandler.Delete)

		// 文件接口
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/file", fileHandler.Upload)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/file", fileHandler.Get)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/file", fileHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/files", fileHandler.List)

		// 变更通知流，浏览器 EventSource 通过 token 查询参数携带令牌
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/events", eventHandler.Stream)

		// 管理接口
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/admin/config", adminHandler.GetConfig)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/admin/config", adminHandler.UpdateConfig)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/admin/systeminfo", adminHandler.GetSystemInfo)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/admin/gc", adminHandler.GC)
	}

	if cfg.Server.RunMode == "debug" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
