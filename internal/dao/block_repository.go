package dao

import (
	"context"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"gorm.io/gorm"
)

// blockRepository 内容块仓储实现
type blockRepository struct {
	dao *Dao
}

// NewBlockRepository 创建内容块仓储
func NewBlockRepository(dao *Dao) domain.BlockRepository {
	return &blockRepository{dao: dao}
}

func (r *blockRepository) toDomain(m *model.Block) *domain.Block {
	if m == nil {
		return nil
	}
	return &domain.Block{
		ID:        m.ID,
		UID:       m.UID,
		PageID:    m.PageID,
		Type:      m.Type,
		Content:   m.Content,
		Sort:      m.Sort,
		Completed: m.IsCompleted == 1,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

func (r *blockRepository) toModel(d *domain.Block) *model.Block {
	isCompleted := 0
	if d.Completed {
		isCompleted = 1
	}
	return &model.Block{
		ID:          d.ID,
		UID:         d.UID,
		PageID:      d.PageID,
		Type:        d.Type,
		Content:     d.Content,
		Sort:        d.Sort,
		IsCompleted: isCompleted,
		CreatedAt:   timex.Time(d.CreatedAt),
		UpdatedAt:   timex.Time(d.UpdatedAt),
	}
}

// GetByID 根据ID获取块
func (r *blockRepository) GetByID(ctx context.Context, id int64) (*domain.Block, error) {
	var m model.Block
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByPageID 获取页面的块列表，按排序值升序，相同排序值按ID升序
func (r *blockRepository) ListByPageID(ctx context.Context, pageID int64) ([]*domain.Block, error) {
	var ms []*model.Block
	err := r.dao.DB(ctx).
		Where("page_id = ?", pageID).
		Order("sort ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Block, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Create 创建块
func (r *blockRepository) Create(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	m := r.toModel(block)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	err := r.dao.ExecuteWrite(ctx, block.UID, func() error {
		return r.dao.DB(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新块
func (r *blockRepository) Update(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	isCompleted := 0
	if block.Completed {
		isCompleted = 1
	}
	values := map[string]interface{}{
		"type":         block.Type,
		"content":      block.Content,
		"is_completed": isCompleted,
		"updated_at":   timex.Now(),
	}
	err := r.dao.ExecuteWrite(ctx, block.UID, func() error {
		return r.dao.DB(ctx).Model(&model.Block{}).
			Where("id = ?", block.ID).
			Updates(values).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, block.ID)
}

// Delete 物理删除块
func (r *blockRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.DB(ctx).Where("id = ?", id).Delete(&model.Block{}).Error
}

// DeleteByPageID 物理删除页面的全部块
func (r *blockRepository) DeleteByPageID(ctx context.Context, pageID int64) error {
	return r.dao.DB(ctx).Where("page_id = ?", pageID).Delete(&model.Block{}).Error
}

// Reorder 在事务内应用排序分配
func (r *blockRepository) Reorder(ctx context.Context, pageID int64, orders []*domain.BlockOrder) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		now := timex.Now()
		for _, o := range orders {
			err := tx.Model(&model.Block{}).
				Where("id = ? AND page_id = ?", o.ID, pageID).
				Updates(map[string]interface{}{
					"sort":       o.Sort,
					"updated_at": now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceAll 在事务内删除页面全部块并按序创建新块
func (r *blockRepository) ReplaceAll(ctx context.Context, pageID int64, blocks []*domain.Block) ([]*domain.Block, error) {
	created := make([]*model.Block, 0, len(blocks))
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", pageID).Delete(&model.Block{}).Error; err != nil {
			return err
		}
		now := timex.Now()
		for _, b := range blocks {
			m := r.toModel(b)
			m.ID = 0
			m.PageID = pageID
			m.CreatedAt = now
			m.UpdatedAt = now
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			created = append(created, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Block, 0, len(created))
	for _, m := range created {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// SearchPageIDs 返回内容匹配关键字的块所属页面ID（去重，仅限用户活跃页面）
func (r *blockRepository) SearchPageIDs(ctx context.Context, keyword string, uid int64) ([]int64, error) {
	var ownedPageIDs []int64
	err := r.dao.DB(ctx).Model(&model.Page{}).
		Where("uid = ? AND status = ?", uid, model.PageStatusActive).
		Pluck("id", &ownedPageIDs).Error
	if err != nil {
		return nil, err
	}
	if len(ownedPageIDs) == 0 {
		return []int64{}, nil
	}

	var pageIDs []int64
	err = r.dao.DB(ctx).Model(&model.Block{}).
		Distinct("page_id").
		Where("page_id IN ?", ownedPageIDs).
		Where("LOWER(content) LIKE ?", likeContains(keyword)).
		Pluck("page_id", &pageIDs).Error
	if err != nil {
		return nil, err
	}
	return pageIDs, nil
}

var _ domain.BlockRepository = (*blockRepository)(nil)
