package service

import "time"

// Config carries the application-level options consumed by services.
// Config 服务层使用的应用级配置
type Config struct {
	// RegisterIsEnable 是否开放注册
	RegisterIsEnable bool

	// RevisionSaveDelay 文档保存后记录版本快照的防抖窗口
	RevisionSaveDelay time.Duration

	// RevisionKeep 每个页面保留的版本数量
	RevisionKeep int
}
