package domain

import "time"

// Block content types.
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

// Block 内容块领域模型
type Block struct {
	ID        int64
	UID       int64
	PageID    int64
	Type      string
	Content   string
	Sort      int
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTodo 判断是否为待办块
func (b *Block) IsTodo() bool {
	return b.Type == BlockTypeTodo
}

// IsDivider 判断是否为分割线块
func (b *Block) IsDivider() bool {
	return b.Type == BlockTypeDivider
}

// BlockOrder is one entry of a reorder assignment.
// BlockOrder 重排序分配的一项
type BlockOrder struct {
	ID   int64
	Sort int
}
