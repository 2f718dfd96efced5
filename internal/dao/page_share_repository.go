package dao

import (
	"context"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// pageShareRepository 页面分享仓储实现
type pageShareRepository struct {
	dao *Dao
}

// NewPageShareRepository 创建页面分享仓储
func NewPageShareRepository(dao *Dao) domain.PageShareRepository {
	return &pageShareRepository{dao: dao}
}

func (r *pageShareRepository) toDomain(m *model.PageShare) *domain.PageShare {
	if m == nil {
		return nil
	}
	return &domain.PageShare{
		ID:        m.ID,
		PageID:    m.PageID,
		UID:       m.UID,
		CreatedAt: m.CreatedAt.Time(),
	}
}

// Get 获取指定页面对指定用户的分享记录
func (r *pageShareRepository) Get(ctx context.Context, pageID, uid int64) (*domain.PageShare, error) {
	var m model.PageShare
	err := r.dao.DB(ctx).Where("page_id = ? AND uid = ?", pageID, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建分享记录
func (r *pageShareRepository) Create(ctx context.Context, share *domain.PageShare) (*domain.PageShare, error) {
	m := &model.PageShare{
		PageID:    share.PageID,
		UID:       share.UID,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除分享记录
func (r *pageShareRepository) Delete(ctx context.Context, pageID, uid int64) error {
	return r.dao.DB(ctx).
		Where("page_id = ? AND uid = ?", pageID, uid).
		Delete(&model.PageShare{}).Error
}

// ListUIDsByPageID 获取页面分享到的用户ID列表
func (r *pageShareRepository) ListUIDsByPageID(ctx context.Context, pageID int64) ([]int64, error) {
	var uids []int64
	err := r.dao.DB(ctx).Model(&model.PageShare{}).
		Where("page_id = ?", pageID).
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// DeleteByPageID 删除页面的全部分享记录
func (r *pageShareRepository) DeleteByPageID(ctx context.Context, pageID int64) error {
	return r.dao.DB(ctx).Where("page_id = ?", pageID).Delete(&model.PageShare{}).Error
}

var _ domain.PageShareRepository = (*pageShareRepository)(nil)
