package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// PageService 页面服务接口
type PageService interface {
	// List 获取用户拥有的页面列表，按更新时间倒序
	List(ctx context.Context, uid int64, status string) ([]*Page, error)

	// ListAll 获取用户拥有及被分享的页面并集，按 ID 去重，按更新时间倒序
	ListAll(ctx context.Context, uid int64, status string) ([]*Page, error)

	// Get 获取单个页面及其有序块列表（仅限所有者）
	Get(ctx context.Context, id, uid int64) (*PageDetail, error)

	// Create 创建页面，空标题回落为 Untitled
	Create(ctx context.Context, uid int64, params *dto.PageCreateRequest) (*Page, error)

	// Update 更新页面标题/图标/可见性
	Update(ctx context.Context, uid int64, params *dto.PageUpdateRequest) (*Page, error)

	// SoftDelete 软删除页面（可恢复，块保持不动）
	SoftDelete(ctx context.Context, id, uid int64) (*Page, error)

	// Restore 恢复软删除页面
	Restore(ctx context.Context, id, uid int64) (*Page, error)

	// Delete 物理删除页面并级联删除其块、分享与版本；force 为假时拒绝
	Delete(ctx context.Context, id, uid int64, force bool) error

	// Search 搜索页面（标题或块内容匹配）与文件（名称或内容匹配）
	Search(ctx context.Context, uid int64, query string) (*SearchResult, error)
}

// Page 页面响应对象
type Page struct {
	ID         int64      `json:"id"`
	UID        int64      `json:"uid"`
	Title      string     `json:"title"`
	Icon       string     `json:"icon"`
	Visibility string     `json:"visibility"`
	Status     string     `json:"status"`
	BlockIDs   []int64    `json:"blockIds"`
	SharedWith []int64    `json:"sharedWith,omitempty"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}

// PageDetail 页面与其有序块列表
type PageDetail struct {
	Page   *Page    `json:"page"`
	Blocks []*Block `json:"blocks"`
}

// SearchResult 搜索结果的两个集合
type SearchResult struct {
	Pages []*Page `json:"pages"`
	Files []*File `json:"files"`
}

type pageService struct {
	pageRepo     domain.PageRepository
	blockRepo    domain.BlockRepository
	shareRepo    domain.PageShareRepository
	fileRepo     domain.FileRepository
	revisionRepo domain.PageRevisionRepository
	hub          *app.EventHub
	logger       *zap.Logger
	sfGroup      singleflight.Group
}

// NewPageService 创建页面服务
func NewPageService(
	pageRepo domain.PageRepository,
	blockRepo domain.BlockRepository,
	shareRepo domain.PageShareRepository,
	fileRepo domain.FileRepository,
	revisionRepo domain.PageRevisionRepository,
	hub *app.EventHub,
	logger *zap.Logger,
) PageService {
	return &pageService{
		pageRepo:     pageRepo,
		blockRepo:    blockRepo,
		shareRepo:    shareRepo,
		fileRepo:     fileRepo,
		revisionRepo: revisionRepo,
		hub:          hub,
		logger:       logger,
	}
}

func pageToDTO(d *domain.Page) *Page {
	if d == nil {
		return nil
	}
	return &Page{
		ID:         d.ID,
		UID:        d.UID,
		Title:      d.Title,
		Icon:       d.Icon,
		Visibility: d.Visibility,
		Status:     d.Status,
		BlockIDs:   d.BlockIDs,
		CreatedAt:  timex.Time(d.CreatedAt),
		UpdatedAt:  timex.Time(d.UpdatedAt),
	}
}

func pagesToDTO(ds []*domain.Page) []*Page {
	out := make([]*Page, 0, len(ds))
	for _, d := range ds {
		out = append(out, pageToDTO(d))
	}
	return out
}

func normalizeStatus(status string) string {
	if status != domain.PageStatusDeleted {
		return domain.PageStatusActive
	}
	return status
}

// List 获取用户拥有的页面列表
func (s *pageService) List(ctx context.Context, uid int64, status string) ([]*Page, error) {
	pages, err := s.pageRepo.List(ctx, uid, normalizeStatus(status))
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return pagesToDTO(pages), nil
}

// ListAll 获取拥有及被分享页面的并集
func (s *pageService) ListAll(ctx context.Context, uid int64, status string) ([]*Page, error) {
	st := normalizeStatus(status)

	owned, err := s.pageRepo.List(ctx, uid, st)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	shared, err := s.pageRepo.ListSharedWith(ctx, uid, st)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	seen := make(map[int64]bool, len(owned))
	merged := make([]*domain.Page, 0, len(owned)+len(shared))
	for _, p := range owned {
		seen[p.ID] = true
		merged = append(merged, p)
	}
	for _, p := range shared {
		if !seen[p.ID] {
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})

	return pagesToDTO(merged), nil
}

// Get 获取单个页面及其块列表
func (s *pageService) Get(ctx context.Context, id, uid int64) (*PageDetail, error) {
	page, err := s.pageRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	blocks, err := s.blockRepo.ListByPageID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	pageDTO := pageToDTO(page)
	if sharedWith, err := s.shareRepo.ListUIDsByPageID(ctx, id); err == nil {
		pageDTO.SharedWith = sharedWith
	}

	return &PageDetail{
		Page:   pageDTO,
		Blocks: blocksToDTO(blocks),
	}, nil
}

// Create 创建页面
func (s *pageService) Create(ctx context.Context, uid int64, params *dto.PageCreateRequest) (*Page, error) {
	page := &domain.Page{
		UID:        uid,
		Title:      params.Title,
		Icon:       params.Icon,
		Visibility: params.Visibility,
		Status:     domain.PageStatusActive,
		BlockIDs:   []int64{},
	}
	page.NormalizeTitle()
	if page.Visibility == "" {
		page.Visibility = domain.PageVisibilityPrivate
	}

	created, err := s.pageRepo.Create(ctx, page)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := pageToDTO(created)
	s.hub.Publish(app.EventPageCreated, map[string]any{"page": result})
	return result, nil
}

// Update 更新页面
func (s *pageService) Update(ctx context.Context, uid int64, params *dto.PageUpdateRequest) (*Page, error) {
	page, err := s.pageRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if params.Title != nil {
		page.Title = *params.Title
	}
	if params.Icon != nil {
		page.Icon = *params.Icon
	}
	if params.Visibility != nil {
		page.Visibility = *params.Visibility
	}
	page.NormalizeTitle()

	updated, err := s.pageRepo.Update(ctx, page, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := pageToDTO(updated)
	s.hub.Publish(app.EventPageUpdated, map[string]any{"page": result})
	return result, nil
}

// SoftDelete 软删除页面
func (s *pageService) SoftDelete(ctx context.Context, id, uid int64) (*Page, error) {
	return s.transition(ctx, id, uid, domain.PageStatusDeleted)
}

// Restore 恢复软删除页面
func (s *pageService) Restore(ctx context.Context, id, uid int64) (*Page, error) {
	return s.transition(ctx, id, uid, domain.PageStatusActive)
}

func (s *pageService) transition(ctx context.Context, id, uid int64, status string) (*Page, error) {
	if _, err := s.pageRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.pageRepo.UpdateStatus(ctx, status, id, uid); err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	page, err := s.pageRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := pageToDTO(page)
	s.hub.Publish(app.EventPageUpdated, map[string]any{"page": result})
	return result, nil
}

// Delete 物理删除页面（级联）
func (s *pageService) Delete(ctx context.Context, id, uid int64, force bool) error {
	if !force {
		return code.ErrorPageDeleteNotForced
	}

	if err := s.pageRepo.DeleteCascade(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorPageNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.hub.Publish(app.EventPageDeleted, map[string]any{"id": id})
	return nil
}

// Search 搜索页面与文件；相同关键词的并发请求经 singleflight 合并
func (s *pageService) Search(ctx context.Context, uid int64, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, code.ErrorSearchQueryRequired
	}

	key := fmt.Sprintf("search:%d:%s", uid, query)
	v, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		return s.doSearch(ctx, uid, query)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResult), nil
}

func (s *pageService) doSearch(ctx context.Context, uid int64, query string) (*SearchResult, error) {
	byTitle, err := s.pageRepo.SearchByTitle(ctx, query, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	pageIDs, err := s.blockRepo.SearchPageIDs(ctx, query, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	byContent, err := s.pageRepo.ListByIDs(ctx, pageIDs, uid, domain.PageStatusActive)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	seen := make(map[int64]bool, len(byTitle))
	merged := make([]*domain.Page, 0, len(byTitle)+len(byContent))
	for _, p := range byTitle {
		seen[p.ID] = true
		merged = append(merged, p)
	}
	for _, p := range byContent {
		if !seen[p.ID] {
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})

	files, err := s.fileRepo.Search(ctx, query, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	return &SearchResult{
		Pages: pagesToDTO(merged),
		Files: filesToDTO(files),
	}, nil
}

var _ PageService = (*pageService)(nil)
