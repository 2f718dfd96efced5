package task

import (
	"context"
	"time"

	"github.com/haierkeys/block-note-service/internal/app"

	"go.uber.org/zap"
)

// init 自动注册回收站清理任务
func init() {
	Register(NewTrashPurgeTask)
}

// TrashPurgeTask 物理删除超过保留时间的软删除页面
type TrashPurgeTask struct {
	app       *app.App
	retention time.Duration
	interval  time.Duration
	firstRun  bool
}

// NewTrashPurgeTask 创建回收站清理任务,保留时间为 0 时禁用
func NewTrashPurgeTask(a *app.App) (Task, error) {
	retention := a.Config().GetTrashRetention()
	if retention <= 0 {
		return nil, nil
	}

	return &TrashPurgeTask{
		app:       a,
		retention: retention,
		interval:  10 * time.Minute,
		firstRun:  true,
	}, nil
}

// Name 返回任务名称
func (t *TrashPurgeTask) Name() string {
	return "TrashPurgeTask"
}

// Run 执行清理,逐页级联删除块、分享与版本
func (t *TrashPurgeTask) Run(ctx context.Context) error {
	logger := t.app.Logger()

	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	cutoff := time.Now().Add(-t.retention)
	pages, err := t.app.PageRepo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		logger.Error(t.Name()+" failed ["+status+"]: ", zap.Error(err))
		return err
	}

	purged := 0
	for _, page := range pages {
		if err := t.app.PageRepo.DeleteCascade(ctx, page.ID, page.UID); err != nil {
			logger.Error(t.Name()+" purge page failed ["+status+"]",
				zap.Int64("pageId", page.ID), zap.Error(err))
			continue
		}
		purged++
	}

	logger.Info(t.Name()+" completed ["+status+"]",
		zap.Int("expired", len(pages)), zap.Int("purged", purged))

	return nil
}

// LoopInterval 返回执行间隔
func (t *TrashPurgeTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *TrashPurgeTask) IsStartupRun() bool {
	return true
}
