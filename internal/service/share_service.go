package service

import (
	"context"
	"errors"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareService grants and revokes read access to a page for other
// users, addressed by email.
// ShareService 按邮箱授予或撤销其他用户对页面的读取权限
type ShareService interface {
	// Create 将页面分享给指定邮箱的用户，重复分享幂等
	Create(ctx context.Context, uid int64, params *dto.ShareCreateRequest) (*Page, error)

	// Delete 撤销分享，最后一个分享撤销后页面回到私有
	Delete(ctx context.Context, uid int64, params *dto.ShareDeleteRequest) (*Page, error)
}

type shareService struct {
	shareRepo domain.PageShareRepository
	pageRepo  domain.PageRepository
	userRepo  domain.UserRepository
	hub       *app.EventHub
	logger    *zap.Logger
}

// NewShareService 创建页面分享服务
func NewShareService(
	shareRepo domain.PageShareRepository,
	pageRepo domain.PageRepository,
	userRepo domain.UserRepository,
	hub *app.EventHub,
	logger *zap.Logger,
) ShareService {
	return &shareService{
		shareRepo: shareRepo,
		pageRepo:  pageRepo,
		userRepo:  userRepo,
		hub:       hub,
		logger:    logger,
	}
}

// targetUser resolves the share recipient by email.
// targetUser 按邮箱解析被分享用户
func (s *shareService) targetUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorShareUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if user == nil || !user.IsActive() {
		return nil, code.ErrorShareUserNotFound
	}
	return user, nil
}

// pageWithShares 组装携带分享用户列表的页面响应
func (s *shareService) pageWithShares(ctx context.Context, page *domain.Page) *Page {
	result := pageToDTO(page)
	uids, err := s.shareRepo.ListUIDsByPageID(ctx, page.ID)
	if err != nil {
		s.logger.Warn("list page share uids failed",
			zap.Int64("pageId", page.ID), zap.Error(err))
		return result
	}
	result.SharedWith = uids
	return result
}

// Create 分享页面
func (s *shareService) Create(ctx context.Context, uid int64, params *dto.ShareCreateRequest) (*Page, error) {
	page, err := s.pageRepo.GetByID(ctx, params.PageID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	target, err := s.targetUser(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if target.UID == uid {
		return nil, code.ErrorShareSelf
	}

	existing, err := s.shareRepo.Get(ctx, params.PageID, target.UID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing == nil {
		if _, err := s.shareRepo.Create(ctx, &domain.PageShare{
			PageID: params.PageID,
			UID:    target.UID,
		}); err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}

	// shared visibility is what exposes the page to recipients
	if !page.IsShared() {
		page.Visibility = domain.PageVisibilityShared
		if page, err = s.pageRepo.Update(ctx, page, uid); err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}

	s.logger.Info("page shared",
		zap.Int64("pageId", page.ID), zap.Int64("withUid", target.UID))

	result := s.pageWithShares(ctx, page)
	s.hub.Publish(app.EventPageUpdated, map[string]any{"page": result})
	return result, nil
}

// Delete 撤销分享
func (s *shareService) Delete(ctx context.Context, uid int64, params *dto.ShareDeleteRequest) (*Page, error) {
	page, err := s.pageRepo.GetByID(ctx, params.PageID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	target, err := s.targetUser(ctx, params.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.shareRepo.Get(ctx, params.PageID, target.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorShareNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing == nil {
		return nil, code.ErrorShareNotFound
	}

	if err := s.shareRepo.Delete(ctx, params.PageID, target.UID); err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	remaining, err := s.shareRepo.ListUIDsByPageID(ctx, params.PageID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if len(remaining) == 0 && page.IsShared() {
		page.Visibility = domain.PageVisibilityPrivate
		if page, err = s.pageRepo.Update(ctx, page, uid); err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}

	result := pageToDTO(page)
	result.SharedWith = remaining
	s.hub.Publish(app.EventPageUpdated, map[string]any{"page": result})
	return result, nil
}

var _ ShareService = (*shareService)(nil)
