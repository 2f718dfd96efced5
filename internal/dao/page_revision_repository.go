package dao

import (
	"context"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"gorm.io/gorm"
)

// pageRevisionRepository 页面版本仓储实现
type pageRevisionRepository struct {
	dao *Dao
}

// NewPageRevisionRepository 创建页面版本仓储
func NewPageRevisionRepository(dao *Dao) domain.PageRevisionRepository {
	return &pageRevisionRepository{dao: dao}
}

func (r *pageRevisionRepository) toDomain(m *model.PageRevision) *domain.PageRevision {
	if m == nil {
		return nil
	}
	return &domain.PageRevision{
		ID:        m.ID,
		PageID:    m.PageID,
		UID:       m.UID,
		Content:   m.Content,
		Version:   m.Version,
		CreatedAt: m.CreatedAt.Time(),
	}
}

// Create 创建版本记录，版本号取当前最大值加一
func (r *pageRevisionRepository) Create(ctx context.Context, revision *domain.PageRevision) (*domain.PageRevision, error) {
	m := &model.PageRevision{
		PageID:    revision.PageID,
		UID:       revision.UID,
		Content:   revision.Content,
		CreatedAt: timex.Now(),
	}
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		var maxVersion int
		err := tx.Model(&model.PageRevision{}).
			Where("page_id = ?", revision.PageID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return err
		}
		m.Version = maxVersion + 1
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetLatest 获取页面最新版本
func (r *pageRevisionRepository) GetLatest(ctx context.Context, pageID int64) (*domain.PageRevision, error) {
	var m model.PageRevision
	err := r.dao.DB(ctx).
		Where("page_id = ?", pageID).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByPageID 获取页面版本列表，按版本倒序
func (r *pageRevisionRepository) ListByPageID(ctx context.Context, pageID int64, limit int) ([]*domain.PageRevision, error) {
	var ms []*model.PageRevision
	q := r.dao.DB(ctx).
		Where("page_id = ?", pageID).
		Order("version DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.PageRevision, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// DeleteByPageID 删除页面的全部版本
func (r *pageRevisionRepository) DeleteByPageID(ctx context.Context, pageID int64) error {
	return r.dao.DB(ctx).Where("page_id = ?", pageID).Delete(&model.PageRevision{}).Error
}

// PruneKeep 仅保留每个页面最新的 keep 个版本
func (r *pageRevisionRepository) PruneKeep(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	var pageIDs []int64
	err := r.dao.DB(ctx).Model(&model.PageRevision{}).
		Distinct("page_id").
		Pluck("page_id", &pageIDs).Error
	if err != nil {
		return err
	}
	for _, pageID := range pageIDs {
		var keepIDs []int64
		err := r.dao.DB(ctx).Model(&model.PageRevision{}).
			Where("page_id = ?", pageID).
			Order("version DESC").
			Limit(keep).
			Pluck("id", &keepIDs).Error
		if err != nil {
			return err
		}
		err = r.dao.DB(ctx).
			Where("page_id = ? AND id NOT IN ?", pageID, keepIDs).
			Delete(&model.PageRevision{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

var _ domain.PageRevisionRepository = (*pageRevisionRepository)(nil)
