package domain

import (
	"strings"
	"time"
)

// Page status values.
const (
	PageStatusActive  = "active"
	PageStatusDeleted = "deleted"
)

// Page visibility values.
const (
	PageVisibilityPrivate = "private"
	PageVisibilityShared  = "shared"
)

// Page 页面领域模型
type Page struct {
	ID         int64
	UID        int64
	Title      string
	Icon       string
	Visibility string
	Status     string
	BlockIDs   []int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeTitle enforces the non-empty title invariant.
// NormalizeTitle 保证标题非空
func (p *Page) NormalizeTitle() {
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Untitled"
	}
}

// IsActive 判断页面是否处于活跃状态
func (p *Page) IsActive() bool {
	return p.Status == PageStatusActive
}

// IsShared 判断页面是否共享可见
func (p *Page) IsShared() bool {
	return p.Visibility == PageVisibilityShared
}

// AppendBlockID adds a block id to the advisory reference list if absent.
// AppendBlockID 将块 ID 追加到参考列表（已存在则忽略）
func (p *Page) AppendBlockID(id int64) {
	for _, existing := range p.BlockIDs {
		if existing == id {
			return
		}
	}
	p.BlockIDs = append(p.BlockIDs, id)
}

// RemoveBlockID removes a block id from the advisory reference list.
// RemoveBlockID 从参考列表移除块 ID
func (p *Page) RemoveBlockID(id int64) {
	out := p.BlockIDs[:0]
	for _, existing := range p.BlockIDs {
		if existing != id {
			out = append(out, existing)
		}
	}
	p.BlockIDs = out
}
