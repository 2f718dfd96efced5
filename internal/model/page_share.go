package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// PageShare grants one user read access to a shared page.
// PageShare 将共享页面授权给一个用户
type PageShare struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	PageID    int64      `gorm:"column:page_id;index;uniqueIndex:idx_page_share"`
	UID       int64      `gorm:"column:uid;index;uniqueIndex:idx_page_share"`
	CreatedAt timex.Time `gorm:"column:created_at"`
}
