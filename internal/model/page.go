package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// Page lifecycle status values.
// Page 生命周期状态
const (
	PageStatusActive  = "active"
	PageStatusDeleted = "deleted"
)

// Page visibility values.
// Page 可见性
const (
	PageVisibilityPrivate = "private"
	PageVisibilityShared  = "shared"
)

// Page is a titled container of ordered blocks. BlockIDs is an advisory
// JSON list of block ids; authoritative order lives on each block.
// Page 是有序内容块的容器，BlockIDs 为参考性的块 ID JSON 列表
type Page struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID        int64      `gorm:"column:uid;index"`
	Title      string     `gorm:"column:title;size:512"`
	Icon       string     `gorm:"column:icon;size:64"`
	Visibility string     `gorm:"column:visibility;size:16;default:private"`
	Status     string     `gorm:"column:status;size:16;index;default:active"`
	BlockIDs   string     `gorm:"column:block_ids;type:text"`
	CreatedAt  timex.Time `gorm:"column:created_at"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;index"`
}
