// Package dao 数据访问层
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/block-note-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dao wraps the shared gorm engine plus the write serialization queue.
// Dao 封装共享的 gorm 引擎与写入串行队列
type Dao struct {
	db         *gorm.DB
	logger     *zap.Logger
	writeQueue *writequeue.Manager
}

// Option 配置选项函数类型
type Option func(*Dao)

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// WithWriteQueueManager 设置写入队列管理器
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) {
		d.writeQueue = m
	}
}

// New 创建数据访问层实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{
		db:     db,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB returns the engine bound to the request context.
// DB 返回绑定请求上下文的引擎
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// Transaction runs fn inside one database transaction.
// Transaction 在单个数据库事务内执行 fn
func (d *Dao) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}

// ExecuteWrite serializes a write through the per-user queue when one is
// configured, otherwise runs it inline.
// ExecuteWrite 在配置了写入队列时按用户串行执行写操作，否则直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	if d.writeQueue == nil {
		return fn()
	}
	return d.writeQueue.Execute(ctx, uid, fn)
}

// DBConfig database engine configuration.
// DBConfig 数据库引擎配置
type DBConfig struct {
	Type         string // sqlite / mysql / postgres
	Path         string // sqlite 数据文件路径
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	TablePrefix  string
	MaxIdleConns int
	MaxOpenConns int
	MaxLifetime  time.Duration
	LogLevel     string
}

// NewDBEngineWithConfig builds the gorm engine for the configured backend
// and installs the tracing plugin.
// NewDBEngineWithConfig 按配置构建 gorm 引擎并安装链路追踪插件
func NewDBEngineWithConfig(c *DBConfig) (*gorm.DB, error) {

	var dialector gorm.Dialector

	switch c.Type {
	case "sqlite":
		dialector = sqlite.Open(c.Path)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Name)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Name)
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Errorf("dao: unsupported database type %q", c.Type)
	}

	logLevel := gormlogger.Warn
	if c.LogLevel == "info" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "dao: open database")
	}

	if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
		return nil, errors.Wrap(err, "dao: tracing plugin")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "dao: sql db")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.MaxLifetime)
	}

	return db, nil
}
