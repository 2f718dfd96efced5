// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// PageRepository 页面仓储接口
type PageRepository interface {
	// GetByID 根据ID获取页面（仅限所有者）
	GetByID(ctx context.Context, id, uid int64) (*Page, error)

	// GetAnyByID 根据ID获取页面（不校验所有者，供分享读取）
	GetAnyByID(ctx context.Context, id int64) (*Page, error)

	// Create 创建页面
	Create(ctx context.Context, page *Page) (*Page, error)

	// Update 更新页面（标题/图标/可见性）
	Update(ctx context.Context, page *Page, uid int64) (*Page, error)

	// UpdateStatus 更新页面生命周期状态
	UpdateStatus(ctx context.Context, status string, id, uid int64) error

	// UpdateBlockIDs 更新页面的参考块ID列表
	UpdateBlockIDs(ctx context.Context, blockIDs []int64, id int64) error

	// DeleteCascade 物理删除页面及其块、分享与版本（事务内）
	DeleteCascade(ctx context.Context, id, uid int64) error

	// List 获取用户拥有的页面列表，按更新时间倒序
	List(ctx context.Context, uid int64, status string) ([]*Page, error)

	// ListSharedWith 获取分享给用户的页面列表，按更新时间倒序
	ListSharedWith(ctx context.Context, uid int64, status string) ([]*Page, error)

	// ListByIDs 根据ID集合获取页面
	ListByIDs(ctx context.Context, ids []int64, uid int64, status string) ([]*Page, error)

	// SearchByTitle 按标题关键字搜索活跃页面（不区分大小写的子串匹配）
	SearchByTitle(ctx context.Context, keyword string, uid int64) ([]*Page, error)

	// ListDeletedBefore 获取在指定时间前软删除的页面（回收站清理）
	ListDeletedBefore(ctx context.Context, before time.Time) ([]*Page, error)
}

// BlockRepository 内容块仓储接口
type BlockRepository interface {
	// GetByID 根据ID获取块
	GetByID(ctx context.Context, id int64) (*Block, error)

	// ListByPageID 获取页面的块列表，按排序值升序（相同排序值按ID升序）
	ListByPageID(ctx context.Context, pageID int64) ([]*Block, error)

	// Create 创建块
	Create(ctx context.Context, block *Block) (*Block, error)

	// Update 更新块
	Update(ctx context.Context, block *Block) (*Block, error)

	// Delete 物理删除块
	Delete(ctx context.Context, id int64) error

	// DeleteByPageID 物理删除页面的全部块
	DeleteByPageID(ctx context.Context, pageID int64) error

	// Reorder 在事务内应用排序分配，读取方不会观察到部分应用
	Reorder(ctx context.Context, pageID int64, orders []*BlockOrder) error

	// ReplaceAll 在事务内删除页面全部块并按序创建新块，返回创建结果
	ReplaceAll(ctx context.Context, pageID int64, blocks []*Block) ([]*Block, error)

	// SearchPageIDs 返回内容匹配关键字的块所属页面ID（去重，仅限用户活跃页面）
	SearchPageIDs(ctx context.Context, keyword string, uid int64) ([]int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error
}

// PageShareRepository 页面分享仓储接口
type PageShareRepository interface {
	// Get 获取指定页面对指定用户的分享记录
	Get(ctx context.Context, pageID, uid int64) (*PageShare, error)

	// Create 创建分享记录
	Create(ctx context.Context, share *PageShare) (*PageShare, error)

	// Delete 删除分享记录
	Delete(ctx context.Context, pageID, uid int64) error

	// ListUIDsByPageID 获取页面分享到的用户ID列表
	ListUIDsByPageID(ctx context.Context, pageID int64) ([]int64, error)

	// DeleteByPageID 删除页面的全部分享记录
	DeleteByPageID(ctx context.Context, pageID int64) error
}

// FileRepository 文件仓储接口
type FileRepository interface {
	// GetByID 根据ID获取文件
	GetByID(ctx context.Context, id, uid int64) (*File, error)

	// Create 创建文件
	Create(ctx context.Context, file *File) (*File, error)

	// List 获取用户文件列表，按更新时间倒序，offset/limit 分页
	List(ctx context.Context, uid int64, offset, limit int) ([]*File, error)

	// CountByUID 获取用户文件总数
	CountByUID(ctx context.Context, uid int64) (int64, error)

	// Delete 物理删除文件
	Delete(ctx context.Context, id, uid int64) error

	// Search 按名称或内容关键字搜索文件（不区分大小写的子串匹配）
	Search(ctx context.Context, keyword string, uid int64) ([]*File, error)
}

// PageRevisionRepository 页面版本仓储接口
type PageRevisionRepository interface {
	// Create 创建版本记录，版本号取当前最大值加一
	Create(ctx context.Context, revision *PageRevision) (*PageRevision, error)

	// GetLatest 获取页面最新版本
	GetLatest(ctx context.Context, pageID int64) (*PageRevision, error)

	// ListByPageID 获取页面版本列表，按版本倒序
	ListByPageID(ctx context.Context, pageID int64, limit int) ([]*PageRevision, error)

	// DeleteByPageID 删除页面的全部版本
	DeleteByPageID(ctx context.Context, pageID int64) error

	// PruneKeep 仅保留每个页面最新的 keep 个版本
	PruneKeep(ctx context.Context, keep int) error
}
