package domain

import "time"

// PageShare 页面分享领域模型
type PageShare struct {
	ID        int64
	PageID    int64
	UID       int64
	CreatedAt time.Time
}
