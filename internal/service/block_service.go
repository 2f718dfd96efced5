package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlockService 内容块服务接口
type BlockService interface {
	// List 获取页面的块列表，按排序值升序（仅限页面所有者）
	List(ctx context.Context, pageID, uid int64) ([]*Block, error)

	// Create 创建块并追加到页面的参考块列表
	Create(ctx context.Context, uid int64, params *dto.BlockCreateRequest) (*Block, error)

	// Update 部分更新块（类型/内容/完成标记）
	Update(ctx context.Context, uid int64, params *dto.BlockUpdateRequest) (*Block, error)

	// Delete 删除块并从页面参考块列表移除
	Delete(ctx context.Context, id, uid int64) (int64, error)

	// Reorder 校验每个块都属于目标页面后在事务内应用全部排序；
	// 任一块不属于页面则整体失败且不做任何修改
	Reorder(ctx context.Context, uid int64, params *dto.BlockReorderRequest) ([]*BlockOrder, error)
}

// Block 内容块响应对象
type Block struct {
	ID        int64      `json:"id"`
	PageID    int64      `json:"pageId"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	Order     int        `json:"order"`
	Completed bool       `json:"completed"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// BlockOrder 排序分配响应项
type BlockOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

type blockService struct {
	blockRepo domain.BlockRepository
	pageRepo  domain.PageRepository
	hub       *app.EventHub
	logger    *zap.Logger
}

// NewBlockService 创建内容块服务
func NewBlockService(
	blockRepo domain.BlockRepository,
	pageRepo domain.PageRepository,
	hub *app.EventHub,
	logger *zap.Logger,
) BlockService {
	return &blockService{
		blockRepo: blockRepo,
		pageRepo:  pageRepo,
		hub:       hub,
		logger:    logger,
	}
}

func blockToDTO(d *domain.Block) *Block {
	if d == nil {
		return nil
	}
	return &Block{
		ID:        d.ID,
		PageID:    d.PageID,
		Type:      d.Type,
		Content:   d.Content,
		Order:     d.Sort,
		Completed: d.Completed,
		CreatedAt: timex.Time(d.CreatedAt),
		UpdatedAt: timex.Time(d.UpdatedAt),
	}
}

func blocksToDTO(ds []*domain.Block) []*Block {
	out := make([]*Block, 0, len(ds))
	for _, d := range ds {
		out = append(out, blockToDTO(d))
	}
	return out
}

// ownedPage resolves the page and enforces ownership. Absence and
// ownership mismatch both surface as not found so foreign page ids are
// never confirmed to exist.
// ownedPage 解析页面并校验所有权，不存在与非所有者统一返回未找到
func (s *blockService) ownedPage(ctx context.Context, pageID, uid int64) (*domain.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return page, nil
}

// ownedBlock resolves a block and enforces ownership through its page.
// ownedBlock 解析块并通过其页面校验所有权
func (s *blockService) ownedBlock(ctx context.Context, id, uid int64) (*domain.Block, error) {
	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBlockNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if _, err := s.ownedPage(ctx, block.PageID, uid); err != nil {
		if errors.Is(err, code.ErrorPageNotFound) {
			return nil, code.ErrorBlockNotFound
		}
		return nil, err
	}
	return block, nil
}

// List 获取页面的块列表
func (s *blockService) List(ctx context.Context, pageID, uid int64) ([]*Block, error) {
	if _, err := s.ownedPage(ctx, pageID, uid); err != nil {
		return nil, err
	}
	blocks, err := s.blockRepo.ListByPageID(ctx, pageID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return blocksToDTO(blocks), nil
}

// Create 创建块
func (s *blockService) Create(ctx context.Context, uid int64, params *dto.BlockCreateRequest) (*Block, error) {
	page, err := s.ownedPage(ctx, params.PageID, uid)
	if err != nil {
		return nil, err
	}

	sortValue := 0
	if params.Order != nil {
		sortValue = *params.Order
	}
	block := &domain.Block{
		UID:     uid,
		PageID:  params.PageID,
		Type:    params.Type,
		Content: params.Content,
		Sort:    sortValue,
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// advisory reference list, order authority stays with the blocks
	page.AppendBlockID(created.ID)
	if err := s.pageRepo.UpdateBlockIDs(ctx, page.BlockIDs, page.ID); err != nil {
		s.logger.Warn("update page block reference list failed",
			zap.Int64("pageId", page.ID), zap.Error(err))
	}

	result := blockToDTO(created)
	s.hub.Publish(app.EventBlockCreated, map[string]any{"pageId": params.PageID, "block": result})
	return result, nil
}

// Update 部分更新块
func (s *blockService) Update(ctx context.Context, uid int64, params *dto.BlockUpdateRequest) (*Block, error) {
	block, err := s.ownedBlock(ctx, params.ID, uid)
	if err != nil {
		return nil, err
	}

	if params.Type != nil {
		block.Type = *params.Type
	}
	if params.Content != nil {
		block.Content = *params.Content
	}
	if params.Completed != nil {
		block.Completed = *params.Completed
	}

	updated, err := s.blockRepo.Update(ctx, block)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := blockToDTO(updated)
	s.hub.Publish(app.EventBlockUpdated, map[string]any{"pageId": block.PageID, "block": result})
	return result, nil
}

// Delete 删除块
func (s *blockService) Delete(ctx context.Context, id, uid int64) (int64, error) {
	block, err := s.ownedBlock(ctx, id, uid)
	if err != nil {
		return 0, err
	}

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if page, err := s.pageRepo.GetByID(ctx, block.PageID, uid); err == nil {
		page.RemoveBlockID(id)
		if err := s.pageRepo.UpdateBlockIDs(ctx, page.BlockIDs, page.ID); err != nil {
			s.logger.Warn("update page block reference list failed",
				zap.Int64("pageId", page.ID), zap.Error(err))
		}
	}

	s.hub.Publish(app.EventBlockDeleted, map[string]any{"pageId": block.PageID, "id": id})
	return id, nil
}

// Reorder 校验后在事务内应用排序分配
func (s *blockService) Reorder(ctx context.Context, uid int64, params *dto.BlockReorderRequest) ([]*BlockOrder, error) {
	if _, err := s.ownedPage(ctx, params.PageID, uid); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.ListByPageID(ctx, params.PageID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	inPage := make(map[int64]bool, len(blocks))
	for _, b := range blocks {
		inPage[b.ID] = true
	}

	// all-or-nothing: validation completes before any order is touched
	orders := make([]*domain.BlockOrder, 0, len(params.BlockOrders))
	for _, item := range params.BlockOrders {
		if !inPage[item.ID] {
			return nil, code.ErrorBlockNotFound.WithDetails(fmt.Sprintf("Block %d not found", item.ID))
		}
		orders = append(orders, &domain.BlockOrder{ID: item.ID, Sort: item.Order})
	}

	if err := s.blockRepo.Reorder(ctx, params.PageID, orders); err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := make([]*BlockOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, &BlockOrder{ID: o.ID, Order: o.Sort})
	}
	s.hub.Publish(app.EventBlocksReordered, map[string]any{"pageId": params.PageID, "blockOrders": result})
	return result, nil
}

var _ BlockService = (*blockService)(nil)
