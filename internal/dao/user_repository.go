package dao

import (
	"context"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"
	"github.com/haierkeys/block-note-service/pkg/timex"
)

// userRepository 用户仓储实现
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建用户仓储
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Username:  m.Username,
		Nickname:  m.Nickname,
		Password:  m.Password,
		Avatar:    m.Avatar,
		IsDeleted: m.IsDeleted == 1,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.DB(ctx).Where("uid = ? AND is_deleted = 0", uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB(ctx).Where("email = ? AND is_deleted = 0", email).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB(ctx).Where("username = ? AND is_deleted = 0", username).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := timex.Now()
	m := &model.User{
		Email:     user.Email,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Password:  user.Password,
		Avatar:    user.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, password string, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.dao.DB(ctx).Model(&model.User{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{
				"password":   password,
				"updated_at": timex.Now(),
			}).Error
	})
}

var _ domain.UserRepository = (*userRepository)(nil)
