package domain

import "time"

// PageRevision 页面版本领域模型
type PageRevision struct {
	ID        int64
	PageID    int64
	UID       int64
	Content   string
	Version   int
	CreatedAt time.Time
}
