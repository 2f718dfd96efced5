package task

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/haierkeys/block-note-service/internal/app"

	"go.uber.org/zap"
)

// init 自动注册版本检查任务
func init() {
	Register(NewVersionCheckTask)
}

// releasesURL 最新发布查询地址
const releasesURL = "https://api.github.com/repos/haierkeys/block-note-service/releases/latest"

// VersionCheckTask 定期查询最新发布版本,供版本接口提示更新
type VersionCheckTask struct {
	app      *app.App
	client   *http.Client
	interval time.Duration
}

// NewVersionCheckTask 创建版本检查任务
func NewVersionCheckTask(a *app.App) (Task, error) {
	return &VersionCheckTask{
		app:      a,
		client:   &http.Client{Timeout: 10 * time.Second},
		interval: 6 * time.Hour,
	}, nil
}

// Name 返回任务名称
func (t *VersionCheckTask) Name() string {
	return "VersionCheckTask"
}

// latestRelease 发布接口响应中用到的字段
type latestRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Run 查询最新发布并记录到应用容器
func (t *VersionCheckTask) Run(ctx context.Context) error {
	logger := t.app.Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := t.client.Do(req)
	if err != nil {
		// 网络不可达时保留上一次的检查结果
		logger.Debug(t.Name()+" request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug(t.Name()+" unexpected status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var release latestRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		logger.Debug(t.Name()+" decode failed", zap.Error(err))
		return nil
	}
	if release.TagName == "" {
		return nil
	}

	t.app.SetCheckVersionInfo(app.CheckVersionInfo{
		VersionNewName: release.TagName,
		VersionNewLink: release.HTMLURL,
	})

	logger.Info(t.Name()+" completed", zap.String("latest", release.TagName))
	return nil
}

// LoopInterval 返回执行间隔
func (t *VersionCheckTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *VersionCheckTask) IsStartupRun() bool {
	return true
}
