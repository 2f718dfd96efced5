package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"

	"go.uber.org/zap"
)

// DocumentService composes a page's ordered blocks into one editable
// rich-text document and re-segments an edited document back into blocks.
// DocumentService 将页面的有序块合成为单个可编辑文档，并把编辑后的文档重新切分为块
type DocumentService interface {
	// Compose 将页面的块按序合成为文档标记（加载方向）
	Compose(ctx context.Context, pageID, uid int64) (*Document, error)

	// Apply 将编辑后的文档整体替换页面的块集合（保存方向）。
	// 空白文档跳过保存，现有块保持不动。
	Apply(ctx context.Context, uid int64, params *dto.DocumentSaveRequest) (*DocumentSaveResult, error)
}

// Document 合成文档响应对象
type Document struct {
	PageID  int64  `json:"pageId"`
	Content string `json:"content"` // 文档标记
}

// DocumentSaveResult 文档保存结果
type DocumentSaveResult struct {
	PageID  int64    `json:"pageId"`
	Skipped bool     `json:"skipped"` // 空白文档未执行替换
	Blocks  []*Block `json:"blocks"`
}

type documentService struct {
	blockRepo   domain.BlockRepository
	pageRepo    domain.PageRepository
	revisionSvc RevisionService
	hub         *app.EventHub
	logger      *zap.Logger
}

// NewDocumentService 创建文档服务
func NewDocumentService(
	blockRepo domain.BlockRepository,
	pageRepo domain.PageRepository,
	revisionSvc RevisionService,
	hub *app.EventHub,
	logger *zap.Logger,
) DocumentService {
	return &documentService{
		blockRepo:   blockRepo,
		pageRepo:    pageRepo,
		revisionSvc: revisionSvc,
		hub:         hub,
		logger:      logger,
	}
}

// headingLevel derives the level from the content's leading '#' run:
// three or more for level 3, two for 2, anything else is 1.
// headingLevel 从内容前缀的 '#' 数量推导标题级别
func headingLevel(content string) int {
	if strings.HasPrefix(content, "###") {
		return 3
	}
	if strings.HasPrefix(content, "##") {
		return 2
	}
	return 1
}

// stripHeadingPrefix removes the leading '#' run and following whitespace.
// stripHeadingPrefix 去掉前缀的 '#' 与其后的空白
func stripHeadingPrefix(content string) string {
	trimmed := strings.TrimLeft(content, "#")
	return strings.TrimLeft(trimmed, " \t")
}

// composeBlock renders one block as its document markup fragment.
// composeBlock 将单个块渲染为文档标记片段
func composeBlock(b *domain.Block) string {
	content := html.EscapeString(b.Content)
	switch b.Type {
	case domain.BlockTypeHeading:
		level := headingLevel(b.Content)
		text := html.EscapeString(stripHeadingPrefix(b.Content))
		return fmt.Sprintf("<h%d>%s</h%d>", level, text, level)
	case domain.BlockTypeList:
		return "<ul><li>" + content + "</li></ul>"
	case domain.BlockTypeTodo:
		checked := "false"
		if b.Completed {
			checked = "true"
		}
		return `<ul data-type="taskList"><li data-type="taskItem" data-checked="` + checked + `">` + content + "</li></ul>"
	case domain.BlockTypeCode:
		return "<pre><code>" + content + "</code></pre>"
	case domain.BlockTypeQuote:
		return "<blockquote>" + content + "</blockquote>"
	case domain.BlockTypeDivider:
		return "<hr>"
	default:
		return "<p>" + content + "</p>"
	}
}

// Compose 将页面的块合成为文档
func (s *documentService) Compose(ctx context.Context, pageID, uid int64) (*Document, error) {
	if _, err := s.pageRepo.GetByID(ctx, pageID, uid); err != nil {
		return nil, code.ErrorPageNotFound
	}

	blocks, err := s.blockRepo.ListByPageID(ctx, pageID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(composeBlock(b))
	}

	return &Document{PageID: pageID, Content: sb.String()}, nil
}

// nodeText concatenates the text of every descendant text node.
// nodeText 连接所有后代文本节点的文本
func nodeText(n *dto.DocumentNode) string {
	if n == nil {
		return ""
	}
	if n.Type == "text" {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Content {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

// findTaskItem returns the first descendant taskItem node, if any.
// findTaskItem 返回第一个后代 taskItem 节点
func findTaskItem(n *dto.DocumentNode) *dto.DocumentNode {
	for _, child := range n.Content {
		if child.Type == "taskItem" {
			return child
		}
		if found := findTaskItem(child); found != nil {
			return found
		}
	}
	return nil
}

// firstListItemText returns the text of the first list item.
// firstListItemText 返回第一个列表项的文本
func firstListItemText(n *dto.DocumentNode) string {
	for _, child := range n.Content {
		if child.Type == "listItem" || child.Type == "taskItem" {
			return nodeText(child)
		}
	}
	return nodeText(n)
}

func attrLevel(n *dto.DocumentNode) int {
	if n.Attrs == nil {
		return 1
	}
	switch v := n.Attrs["level"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 1
}

func attrChecked(n *dto.DocumentNode) bool {
	if n == nil || n.Attrs == nil {
		return false
	}
	checked, _ := n.Attrs["checked"].(bool)
	return checked
}

// blockFromNode synthesizes the block for one top-level document element.
// Nil means the element produces no block.
// blockFromNode 从一个顶层文档元素合成块，返回 nil 表示不产生块
func blockFromNode(n *dto.DocumentNode) *domain.Block {
	switch n.Type {
	case "heading":
		level := attrLevel(n)
		if level < 1 || level > 3 {
			level = 1
		}
		text := strings.TrimSpace(nodeText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{
			Type:    domain.BlockTypeHeading,
			Content: strings.Repeat("#", level) + " " + text,
		}
	case "taskList":
		item := findTaskItem(n)
		text := strings.TrimSpace(nodeText(item))
		if text == "" {
			return nil
		}
		return &domain.Block{
			Type:      domain.BlockTypeTodo,
			Content:   text,
			Completed: attrChecked(item),
		}
	case "bulletList":
		if item := findTaskItem(n); item != nil {
			text := strings.TrimSpace(nodeText(item))
			if text == "" {
				return nil
			}
			return &domain.Block{
				Type:      domain.BlockTypeTodo,
				Content:   text,
				Completed: attrChecked(item),
			}
		}
		text := strings.TrimSpace(firstListItemText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{Type: domain.BlockTypeList, Content: text}
	case "orderedList":
		// 有序列表始终映射为 list，任务项不在此降级
		text := strings.TrimSpace(firstListItemText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{Type: domain.BlockTypeList, Content: text}
	case "codeBlock":
		text := strings.TrimSpace(nodeText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{Type: domain.BlockTypeCode, Content: text}
	case "blockquote":
		text := strings.TrimSpace(nodeText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{Type: domain.BlockTypeQuote, Content: text}
	case "horizontalRule":
		// divider is created regardless of its (empty) content
		return &domain.Block{Type: domain.BlockTypeDivider, Content: ""}
	default:
		text := strings.TrimSpace(nodeText(n))
		if text == "" {
			return nil
		}
		return &domain.Block{Type: domain.BlockTypeText, Content: text}
	}
}

// Apply 将文档整体替换页面的块集合
func (s *documentService) Apply(ctx context.Context, uid int64, params *dto.DocumentSaveRequest) (*DocumentSaveResult, error) {
	page, err := s.pageRepo.GetByID(ctx, params.PageID, uid)
	if err != nil {
		return nil, code.ErrorPageNotFound
	}

	// whitespace-only documents are never applied, the block set stays
	// untouched
	if params.Document == nil || strings.TrimSpace(nodeText(params.Document)) == "" {
		blocks, err := s.blockRepo.ListByPageID(ctx, params.PageID)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		return &DocumentSaveResult{
			PageID:  params.PageID,
			Skipped: true,
			Blocks:  blocksToDTO(blocks),
		}, nil
	}

	oldBlocks, err := s.blockRepo.ListByPageID(ctx, params.PageID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// order counts created blocks only, skipped elements leave no gap
	newBlocks := make([]*domain.Block, 0, len(params.Document.Content))
	order := 0
	for _, node := range params.Document.Content {
		block := blockFromNode(node)
		if block == nil {
			continue
		}
		block.UID = uid
		block.Sort = order
		order++
		newBlocks = append(newBlocks, block)
	}

	created, err := s.blockRepo.ReplaceAll(ctx, params.PageID, newBlocks)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	blockIDs := make([]int64, 0, len(created))
	for _, b := range created {
		blockIDs = append(blockIDs, b.ID)
	}
	if err := s.pageRepo.UpdateBlockIDs(ctx, blockIDs, page.ID); err != nil {
		s.logger.Warn("update page block reference list failed",
			zap.Int64("pageId", page.ID), zap.Error(err))
	}

	result := &DocumentSaveResult{
		PageID: params.PageID,
		Blocks: blocksToDTO(created),
	}

	// mirror the per-block change feed of an interactive edit session
	for _, b := range oldBlocks {
		s.hub.Publish(app.EventBlockDeleted, map[string]any{"pageId": params.PageID, "id": b.ID})
	}
	for _, b := range result.Blocks {
		s.hub.Publish(app.EventBlockCreated, map[string]any{"pageId": params.PageID, "block": b})
	}

	// debounced revision snapshot of the applied document
	if s.revisionSvc != nil {
		var sb strings.Builder
		for _, b := range created {
			sb.WriteString(composeBlock(b))
		}
		s.revisionSvc.SchedulePush(params.PageID, uid, sb.String())
	}

	return result, nil
}

var _ DocumentService = (*documentService)(nil)
