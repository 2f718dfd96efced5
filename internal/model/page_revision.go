package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// PageRevision is a point-in-time snapshot of a page's composed document,
// recorded after debounced document saves.
// PageRevision 是页面文档的时点快照，在防抖保存后记录
type PageRevision struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	PageID    int64      `gorm:"column:page_id;index"`
	UID       int64      `gorm:"column:uid;index"`
	Content   string     `gorm:"column:content;type:text"`
	Version   int        `gorm:"column:version;default:1"`
	CreatedAt timex.Time `gorm:"column:created_at"`
}
