// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/block-note-service/internal/dao"
	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/service"
	pkgapp "github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/storage"
	"github.com/haierkeys/block-note-service/pkg/workerpool"
	"github.com/haierkeys/block-note-service/pkg/writequeue"
	"golang.org/x/mod/semver"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// 变更通知中心
	eventHub *pkgapp.EventHub

	// Repository 层
	PageRepo     domain.PageRepository
	BlockRepo    domain.BlockRepository
	UserRepo     domain.UserRepository
	FileRepo     domain.FileRepository
	ShareRepo    domain.PageShareRepository
	RevisionRepo domain.PageRevisionRepository

	// Service 层
	UserService     service.UserService
	PageService     service.PageService
	BlockService    service.BlockService
	DocumentService service.DocumentService
	FileService     service.FileService
	ShareService    service.ShareService
	RevisionService service.RevisionService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// StartTime 进程启动时间，用于健康检查的 uptime
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db,
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    "block-note-service",
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化变更通知中心
	a.eventHub = pkgapp.NewEventHub(logger)

	// 初始化 Repository 层
	a.PageRepo = dao.NewPageRepository(a.Dao)
	a.BlockRepo = dao.NewBlockRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.FileRepo = dao.NewFileRepository(a.Dao)
	a.ShareRepo = dao.NewPageShareRepository(a.Dao)
	a.RevisionRepo = dao.NewPageRevisionRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.Config{
		RegisterIsEnable:  cfg.User.RegisterIsEnable,
		RevisionSaveDelay: cfg.GetRevisionSaveDelay(),
		RevisionKeep:      cfg.App.RevisionKeep,
	}

	// 初始化文件存储后端，未启用时文件内容仅保存在数据库
	var store storage.Storager
	if cfg.Storage.IsEnabled && storage.StorageTypeMap[cfg.Storage.Type] {
		var err error
		store, err = storage.NewClient(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("init storage backend: %w", err)
		}
	} else {
		logger.Info("file storage backend disabled, file content kept in database only")
	}

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, svcConfig, logger)
	a.PageService = service.NewPageService(a.PageRepo, a.BlockRepo, a.ShareRepo, a.FileRepo, a.RevisionRepo, a.eventHub, logger)
	a.BlockService = service.NewBlockService(a.BlockRepo, a.PageRepo, a.eventHub, logger)
	a.RevisionService = service.NewRevisionService(a.RevisionRepo, a.PageRepo, svcConfig, a.workerPool.SubmitAsync, logger)
	a.DocumentService = service.NewDocumentService(a.BlockRepo, a.PageRepo, a.RevisionService, a.eventHub, logger)
	a.FileService = service.NewFileService(a.FileRepo, store, cfg.Storage.Type, logger)
	a.ShareService = service.NewShareService(a.ShareRepo, a.PageRepo, a.UserRepo, a.eventHub, logger)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// EventHub 获取变更通知中心
func (a *App) EventHub() *pkgapp.EventHub {
	return a.eventHub
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 比较版本检查任务记录的最新发布与当前运行版本
func (a *App) CheckVersion() CheckVersionInfo {
	a.checkVersionMu.RLock()
	cv := a.checkVersion
	a.checkVersionMu.RUnlock()

	if cv.VersionNewName != "" {
		v1 := Version
		if !strings.HasPrefix(v1, "v") {
			v1 = "v" + v1
		}
		v2 := cv.VersionNewName
		if !strings.HasPrefix(v2, "v") {
			v2 = "v" + v2
		}
		cv.VersionIsNew = semver.Compare(v2, v1) > 0
	}

	// 没有更新时不返回版本名称
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
		cv.VersionNewLink = ""
		return cv
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	if cv.VersionNewLink == "" {
		cv.VersionNewLink = "https://github.com/haierkeys/block-note-service/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// ExecuteWrite 执行写操作（通过 Write Queue 串行化）
// uid: 用户 ID，用于确定写队列
// fn: 写操作函数
func (a *App) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, uid, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Revision Flush -> Event Hub -> Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 0. 落盘尚在防抖窗口内的版本快照
	if a.RevisionService != nil {
		a.logger.Info("Flushing pending page revisions...")
		a.RevisionService.Flush()
	}

	// 1. 关闭变更通知中心（断开所有 SSE 客户端）
	if a.eventHub != nil {
		a.logger.Info("Closing event hub...")
		a.eventHub.Close()
	}

	// 2. 关闭 Worker Pool（停止接受新任务，等待现有任务完成）
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		} else {
			a.logger.Info("Worker pool shutdown completed")
		}
	}

	// 3. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		} else {
			a.logger.Info("write queue manager shutdown completed")
		}
	}

	// 4. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 5. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
