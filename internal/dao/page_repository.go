package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"gorm.io/gorm"
)

// pageRepository 页面仓储实现
type pageRepository struct {
	dao *Dao
}

// NewPageRepository 创建页面仓储
func NewPageRepository(dao *Dao) domain.PageRepository {
	return &pageRepository{dao: dao}
}

func (r *pageRepository) toDomain(m *model.Page) *domain.Page {
	if m == nil {
		return nil
	}
	var blockIDs []int64
	if m.BlockIDs != "" {
		// advisory list, a decode failure just yields an empty list
		_ = json.Unmarshal([]byte(m.BlockIDs), &blockIDs)
	}
	return &domain.Page{
		ID:         m.ID,
		UID:        m.UID,
		Title:      m.Title,
		Icon:       m.Icon,
		Visibility: m.Visibility,
		Status:     m.Status,
		BlockIDs:   blockIDs,
		CreatedAt:  m.CreatedAt.Time(),
		UpdatedAt:  m.UpdatedAt.Time(),
	}
}

func (r *pageRepository) toModel(d *domain.Page) *model.Page {
	blockIDs := "[]"
	if d.BlockIDs != nil {
		if data, err := json.Marshal(d.BlockIDs); err == nil {
			blockIDs = string(data)
		}
	}
	return &model.Page{
		ID:         d.ID,
		UID:        d.UID,
		Title:      d.Title,
		Icon:       d.Icon,
		Visibility: d.Visibility,
		Status:     d.Status,
		BlockIDs:   blockIDs,
		CreatedAt:  timex.Time(d.CreatedAt),
		UpdatedAt:  timex.Time(d.UpdatedAt),
	}
}

func (r *pageRepository) toDomainList(ms []*model.Page) []*domain.Page {
	out := make([]*domain.Page, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

// GetByID 根据ID获取页面（仅限所有者）
func (r *pageRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Page, error) {
	var m model.Page
	err := r.dao.DB(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetAnyByID 根据ID获取页面（不校验所有者）
func (r *pageRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Page, error) {
	var m model.Page
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建页面
func (r *pageRepository) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	m := r.toModel(page)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	err := r.dao.ExecuteWrite(ctx, page.UID, func() error {
		return r.dao.DB(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新页面
func (r *pageRepository) Update(ctx context.Context, page *domain.Page, uid int64) (*domain.Page, error) {
	values := map[string]interface{}{
		"title":      page.Title,
		"icon":       page.Icon,
		"visibility": page.Visibility,
		"updated_at": timex.Now(),
	}
	err := r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.dao.DB(ctx).Model(&model.Page{}).
			Where("id = ? AND uid = ?", page.ID, uid).
			Updates(values).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, page.ID, uid)
}

// UpdateStatus 更新页面生命周期状态
func (r *pageRepository) UpdateStatus(ctx context.Context, status string, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.dao.DB(ctx).Model(&model.Page{}).
			Where("id = ? AND uid = ?", id, uid).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": timex.Now(),
			}).Error
	})
}

// UpdateBlockIDs 更新页面的参考块ID列表
func (r *pageRepository) UpdateBlockIDs(ctx context.Context, blockIDs []int64, id int64) error {
	data, err := json.Marshal(blockIDs)
	if err != nil {
		return err
	}
	return r.dao.DB(ctx).Model(&model.Page{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"block_ids":  string(data),
			"updated_at": timex.Now(),
		}).Error
}

// DeleteCascade 物理删除页面及其块、分享与版本
func (r *pageRepository) DeleteCascade(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
			result := tx.Where("id = ? AND uid = ?", id, uid).Delete(&model.Page{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			if err := tx.Where("page_id = ?", id).Delete(&model.Block{}).Error; err != nil {
				return err
			}
			if err := tx.Where("page_id = ?", id).Delete(&model.PageShare{}).Error; err != nil {
				return err
			}
			return tx.Where("page_id = ?", id).Delete(&model.PageRevision{}).Error
		})
	})
}

// List 获取用户拥有的页面列表
func (r *pageRepository) List(ctx context.Context, uid int64, status string) ([]*domain.Page, error) {
	var ms []*model.Page
	err := r.dao.DB(ctx).
		Where("uid = ? AND status = ?", uid, status).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListSharedWith 获取分享给用户的页面列表
func (r *pageRepository) ListSharedWith(ctx context.Context, uid int64, status string) ([]*domain.Page, error) {
	var pageIDs []int64
	err := r.dao.DB(ctx).Model(&model.PageShare{}).
		Where("uid = ?", uid).
		Pluck("page_id", &pageIDs).Error
	if err != nil {
		return nil, err
	}
	if len(pageIDs) == 0 {
		return []*domain.Page{}, nil
	}

	var ms []*model.Page
	err = r.dao.DB(ctx).
		Where("id IN ? AND status = ? AND visibility = ?", pageIDs, status, model.PageVisibilityShared).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListByIDs 根据ID集合获取页面
func (r *pageRepository) ListByIDs(ctx context.Context, ids []int64, uid int64, status string) ([]*domain.Page, error) {
	if len(ids) == 0 {
		return []*domain.Page{}, nil
	}
	var ms []*model.Page
	err := r.dao.DB(ctx).
		Where("id IN ? AND uid = ? AND status = ?", ids, uid, status).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// SearchByTitle 按标题关键字搜索活跃页面
func (r *pageRepository) SearchByTitle(ctx context.Context, keyword string, uid int64) ([]*domain.Page, error) {
	var ms []*model.Page
	err := r.dao.DB(ctx).
		Where("uid = ? AND status = ?", uid, model.PageStatusActive).
		Where("LOWER(title) LIKE ?", likeContains(keyword)).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListDeletedBefore 获取在指定时间前软删除的页面
func (r *pageRepository) ListDeletedBefore(ctx context.Context, before time.Time) ([]*domain.Page, error) {
	var ms []*model.Page
	err := r.dao.DB(ctx).
		Where("status = ? AND updated_at < ?", model.PageStatusDeleted, timex.Time(before)).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

var _ domain.PageRepository = (*pageRepository)(nil)
