package dao

import (
	"context"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// fileRepository 文件仓储实现
type fileRepository struct {
	dao *Dao
}

// NewFileRepository 创建文件仓储
func NewFileRepository(dao *Dao) domain.FileRepository {
	return &fileRepository{dao: dao}
}

func (r *fileRepository) toDomain(m *model.File) *domain.File {
	if m == nil {
		return nil
	}
	return &domain.File{
		ID:          m.ID,
		UID:         m.UID,
		Name:        m.Name,
		Content:     m.Content,
		Size:        m.Size,
		SavePath:    m.SavePath,
		StorageType: m.StorageType,
		CreatedAt:   m.CreatedAt.Time(),
		UpdatedAt:   m.UpdatedAt.Time(),
	}
}

func (r *fileRepository) toDomainList(ms []*model.File) []*domain.File {
	out := make([]*domain.File, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

// GetByID 根据ID获取文件
func (r *fileRepository) GetByID(ctx context.Context, id, uid int64) (*domain.File, error) {
	var m model.File
	err := r.dao.DB(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建文件
func (r *fileRepository) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	now := timex.Now()
	m := &model.File{
		UID:         file.UID,
		Name:        file.Name,
		Content:     file.Content,
		Size:        file.Size,
		SavePath:    file.SavePath,
		StorageType: file.StorageType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := r.dao.ExecuteWrite(ctx, file.UID, func() error {
		return r.dao.DB(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// List 获取用户文件列表
func (r *fileRepository) List(ctx context.Context, uid int64, offset, limit int) ([]*domain.File, error) {
	query := r.dao.DB(ctx).
		Where("uid = ?", uid).
		Order("updated_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []*model.File
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// CountByUID 获取用户文件总数
func (r *fileRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.DB(ctx).Model(&model.File{}).
		Where("uid = ?", uid).
		Count(&count).Error
	return count, err
}

// Delete 物理删除文件
func (r *fileRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.dao.DB(ctx).
			Where("id = ? AND uid = ?", id, uid).
			Delete(&model.File{}).Error
	})
}

// Search 按名称或内容关键字搜索文件
func (r *fileRepository) Search(ctx context.Context, keyword string, uid int64) ([]*domain.File, error) {
	pattern := likeContains(keyword)
	var ms []*model.File
	err := r.dao.DB(ctx).
		Where("uid = ?", uid).
		Where("LOWER(name) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

var _ domain.FileRepository = (*fileRepository)(nil)
