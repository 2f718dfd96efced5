package task

import (
	"context"
	"time"

	"github.com/haierkeys/block-note-service/internal/app"

	"go.uber.org/zap"
)

// init 自动注册版本快照修剪任务
func init() {
	Register(NewRevisionPruneTask)
}

// RevisionPruneTask 修剪每个页面超出保留数量的旧版本快照
// 版本服务在写入时也会修剪,本任务兜底处理配置调低后遗留的历史
type RevisionPruneTask struct {
	app      *app.App
	keep     int
	interval time.Duration
}

// NewRevisionPruneTask 创建版本修剪任务,保留数量为 0 时禁用
func NewRevisionPruneTask(a *app.App) (Task, error) {
	keep := a.Config().App.RevisionKeep
	if keep <= 0 {
		return nil, nil
	}

	return &RevisionPruneTask{
		app:      a,
		keep:     keep,
		interval: 24 * time.Hour,
	}, nil
}

// Name 返回任务名称
func (t *RevisionPruneTask) Name() string {
	return "RevisionPruneTask"
}

// Run 执行修剪
func (t *RevisionPruneTask) Run(ctx context.Context) error {
	logger := t.app.Logger()

	if err := t.app.RevisionRepo.PruneKeep(ctx, t.keep); err != nil {
		logger.Error(t.Name()+" failed: ", zap.Error(err))
		return err
	}

	logger.Info(t.Name()+" completed", zap.Int("keep", t.keep))
	return nil
}

// LoopInterval 返回执行间隔
func (t *RevisionPruneTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *RevisionPruneTask) IsStartupRun() bool {
	return false
}
