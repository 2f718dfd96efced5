package model

import (
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// Block content types.
// Block 内容类型
const (
	BlockTypeText    = "text"
	BlockTypeHeading = "heading"
	BlockTypeList    = "list"
	BlockTypeTodo    = "todo"
	BlockTypeImage   = "image"
	BlockTypeCode    = "code"
	BlockTypeQuote   = "quote"
	BlockTypeDivider = "divider"
)

// BlockTypeMap valid block types.
var BlockTypeMap = map[string]bool{
	BlockTypeText:    true,
	BlockTypeHeading: true,
	BlockTypeList:    true,
	BlockTypeTodo:    true,
	BlockTypeImage:   true,
	BlockTypeCode:    true,
	BlockTypeQuote:   true,
	BlockTypeDivider: true,
}

// Block is one typed unit of page content. Sort defines its position among
// siblings; ties break by id (insertion order).
// Block 是页面内容的一个类型化单元，Sort 决定同级顺序
type Block struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID         int64      `gorm:"column:uid;index"`
	PageID      int64      `gorm:"column:page_id;index"`
	Type        string     `gorm:"column:type;size:16"`
	Content     string     `gorm:"column:content;type:text"`
	Sort        int        `gorm:"column:sort;default:0"`
	IsCompleted int        `gorm:"column:is_completed;default:0"`
	CreatedAt   timex.Time `gorm:"column:created_at"`
	UpdatedAt   timex.Time `gorm:"column:updated_at"`
}
