package service

import (
	"context"
	"testing"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"

	"go.uber.org/zap"
)

func (m *mockBlockRepo) ReplaceAll(ctx context.Context, pageID int64, blocks []*domain.Block) ([]*domain.Block, error) {
	var kept []*domain.Block
	for _, b := range m.blocks {
		if b.PageID != pageID {
			kept = append(kept, b)
		}
	}
	m.blocks = kept
	for _, b := range blocks {
		m.nextID++
		b.ID = m.nextID
		b.PageID = pageID
		m.blocks = append(m.blocks, b)
	}
	return blocks, nil
}

func newTestDocumentService(blockRepo *mockBlockRepo, pageRepo *mockPageRepo) *documentService {
	return &documentService{
		blockRepo: blockRepo,
		pageRepo:  pageRepo,
		hub:       app.NewEventHub(zap.NewNop()),
		logger:    zap.NewNop(),
	}
}

func textNode(text string) *dto.DocumentNode {
	return &dto.DocumentNode{Type: "text", Text: text}
}

func TestComposeBlockMarkup(t *testing.T) {
	tests := []struct {
		name  string
		block *domain.Block
		want  string
	}{
		{"text", &domain.Block{Type: domain.BlockTypeText, Content: "hello"}, "<p>hello</p>"},
		{"heading level 1", &domain.Block{Type: domain.BlockTypeHeading, Content: "# Title"}, "<h1>Title</h1>"},
		{"heading level 2", &domain.Block{Type: domain.BlockTypeHeading, Content: "## Sub"}, "<h2>Sub</h2>"},
		{"heading level 3", &domain.Block{Type: domain.BlockTypeHeading, Content: "### Deep"}, "<h3>Deep</h3>"},
		{"heading no prefix", &domain.Block{Type: domain.BlockTypeHeading, Content: "Bare"}, "<h1>Bare</h1>"},
		{"list", &domain.Block{Type: domain.BlockTypeList, Content: "item"}, "<ul><li>item</li></ul>"},
		{"todo unchecked", &domain.Block{Type: domain.BlockTypeTodo, Content: "buy milk"},
			`<ul data-type="taskList"><li data-type="taskItem" data-checked="false">buy milk</li></ul>`},
		{"todo checked", &domain.Block{Type: domain.BlockTypeTodo, Content: "done", Completed: true},
			`<ul data-type="taskList"><li data-type="taskItem" data-checked="true">done</li></ul>`},
		{"code", &domain.Block{Type: domain.BlockTypeCode, Content: "x := 1"}, "<pre><code>x := 1</code></pre>"},
		{"quote", &domain.Block{Type: domain.BlockTypeQuote, Content: "wise"}, "<blockquote>wise</blockquote>"},
		{"divider", &domain.Block{Type: domain.BlockTypeDivider}, "<hr>"},
		{"escaped text", &domain.Block{Type: domain.BlockTypeText, Content: "a < b"}, "<p>a &lt; b</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composeBlock(tt.block); got != tt.want {
				t.Errorf("composeBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlockFromNode(t *testing.T) {
	tests := []struct {
		name string
		node *dto.DocumentNode
		want *domain.Block
	}{
		{
			name: "paragraph",
			node: &dto.DocumentNode{Type: "paragraph", Content: []*dto.DocumentNode{textNode("hello")}},
			want: &domain.Block{Type: domain.BlockTypeText, Content: "hello"},
		},
		{
			name: "empty paragraph skipped",
			node: &dto.DocumentNode{Type: "paragraph", Content: []*dto.DocumentNode{textNode("   ")}},
			want: nil,
		},
		{
			name: "heading restores prefix",
			node: &dto.DocumentNode{
				Type:    "heading",
				Attrs:   map[string]any{"level": float64(2)},
				Content: []*dto.DocumentNode{textNode("Sub")},
			},
			want: &domain.Block{Type: domain.BlockTypeHeading, Content: "## Sub"},
		},
		{
			name: "bullet list takes first item",
			node: &dto.DocumentNode{Type: "bulletList", Content: []*dto.DocumentNode{
				{Type: "listItem", Content: []*dto.DocumentNode{textNode("first")}},
				{Type: "listItem", Content: []*dto.DocumentNode{textNode("second")}},
			}},
			want: &domain.Block{Type: domain.BlockTypeList, Content: "first"},
		},
		{
			name: "bullet list with task item downgrades to todo",
			node: &dto.DocumentNode{Type: "bulletList", Content: []*dto.DocumentNode{
				{
					Type:    "taskItem",
					Attrs:   map[string]any{"checked": true},
					Content: []*dto.DocumentNode{textNode("done")},
				},
			}},
			want: &domain.Block{Type: domain.BlockTypeTodo, Content: "done", Completed: true},
		},
		{
			name: "ordered list stays list even with task item",
			node: &dto.DocumentNode{Type: "orderedList", Content: []*dto.DocumentNode{
				{
					Type:    "taskItem",
					Attrs:   map[string]any{"checked": true},
					Content: []*dto.DocumentNode{textNode("step one")},
				},
			}},
			want: &domain.Block{Type: domain.BlockTypeList, Content: "step one"},
		},
		{
			name: "ordered list takes first item",
			node: &dto.DocumentNode{Type: "orderedList", Content: []*dto.DocumentNode{
				{Type: "listItem", Content: []*dto.DocumentNode{textNode("one")}},
				{Type: "listItem", Content: []*dto.DocumentNode{textNode("two")}},
			}},
			want: &domain.Block{Type: domain.BlockTypeList, Content: "one"},
		},
		{
			name: "task list",
			node: &dto.DocumentNode{Type: "taskList", Content: []*dto.DocumentNode{
				{
					Type:    "taskItem",
					Attrs:   map[string]any{"checked": true},
					Content: []*dto.DocumentNode{textNode("ship it")},
				},
			}},
			want: &domain.Block{Type: domain.BlockTypeTodo, Content: "ship it", Completed: true},
		},
		{
			name: "code block",
			node: &dto.DocumentNode{Type: "codeBlock", Content: []*dto.DocumentNode{textNode("x := 1")}},
			want: &domain.Block{Type: domain.BlockTypeCode, Content: "x := 1"},
		},
		{
			name: "blockquote",
			node: &dto.DocumentNode{Type: "blockquote", Content: []*dto.DocumentNode{
				{Type: "paragraph", Content: []*dto.DocumentNode{textNode("wise")}},
			}},
			want: &domain.Block{Type: domain.BlockTypeQuote, Content: "wise"},
		},
		{
			name: "horizontal rule always yields divider",
			node: &dto.DocumentNode{Type: "horizontalRule"},
			want: &domain.Block{Type: domain.BlockTypeDivider, Content: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blockFromNode(tt.node)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("blockFromNode() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("blockFromNode() = nil, want block")
			}
			if got.Type != tt.want.Type || got.Content != tt.want.Content || got.Completed != tt.want.Completed {
				t.Errorf("blockFromNode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocumentApplyReplacesBlocks(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{blocks: []*domain.Block{
		{ID: 1, PageID: 1, UID: 1, Type: domain.BlockTypeText, Content: "old", Sort: 0},
	}, nextID: 1}
	svc := newTestDocumentService(blockRepo, pageRepo)

	doc := &dto.DocumentNode{Type: "doc", Content: []*dto.DocumentNode{
		{Type: "heading", Attrs: map[string]any{"level": float64(1)}, Content: []*dto.DocumentNode{textNode("Title")}},
		{Type: "paragraph", Content: []*dto.DocumentNode{textNode("   ")}},
		{Type: "paragraph", Content: []*dto.DocumentNode{textNode("body")}},
	}}

	result, err := svc.Apply(ctx, 1, &dto.DocumentSaveRequest{PageID: 1, Document: doc})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Skipped {
		t.Fatal("apply was skipped unexpectedly")
	}
	if len(result.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(result.Blocks))
	}

	if result.Blocks[0].Type != domain.BlockTypeHeading || result.Blocks[0].Content != "# Title" {
		t.Errorf("blocks[0] = %+v, want heading '# Title'", result.Blocks[0])
	}
	if result.Blocks[1].Type != domain.BlockTypeText || result.Blocks[1].Content != "body" {
		t.Errorf("blocks[1] = %+v, want text 'body'", result.Blocks[1])
	}

	// orders count created blocks only, the skipped element leaves no gap
	if result.Blocks[0].Order != 0 || result.Blocks[1].Order != 1 {
		t.Errorf("orders = [%d %d], want [0 1]", result.Blocks[0].Order, result.Blocks[1].Order)
	}

	// page reference list now points at the replacement blocks
	saved := pageRepo.blockIDSaves[1]
	if len(saved) != 2 {
		t.Errorf("page reference list = %v, want 2 entries", saved)
	}
}

func TestDocumentApplyLeadingEmptyElementOrder(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{}
	svc := newTestDocumentService(blockRepo, pageRepo)

	doc := &dto.DocumentNode{Type: "doc", Content: []*dto.DocumentNode{
		{Type: "paragraph", Content: []*dto.DocumentNode{textNode("  ")}},
		{Type: "paragraph", Content: []*dto.DocumentNode{textNode("body")}},
	}}

	result, err := svc.Apply(ctx, 1, &dto.DocumentSaveRequest{PageID: 1, Document: doc})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(result.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(result.Blocks))
	}
	if result.Blocks[0].Order != 0 {
		t.Errorf("first created block order = %d, want 0", result.Blocks[0].Order)
	}
}

func TestDocumentApplySkipsEmptyDocument(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{blocks: []*domain.Block{
		{ID: 1, PageID: 1, UID: 1, Type: domain.BlockTypeText, Content: "kept", Sort: 0},
	}, nextID: 1}
	svc := newTestDocumentService(blockRepo, pageRepo)

	tests := []struct {
		name string
		doc  *dto.DocumentNode
	}{
		{"nil document", nil},
		{"whitespace only", &dto.DocumentNode{Type: "doc", Content: []*dto.DocumentNode{
			{Type: "paragraph", Content: []*dto.DocumentNode{textNode("  \t ")}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Apply(ctx, 1, &dto.DocumentSaveRequest{PageID: 1, Document: tt.doc})
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if !result.Skipped {
				t.Error("expected the save to be skipped")
			}
			if len(blockRepo.blocks) != 1 || blockRepo.blocks[0].Content != "kept" {
				t.Errorf("existing blocks modified: %+v", blockRepo.blocks)
			}
		})
	}
}

func TestDocumentComposeOrdersBlocks(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{blocks: []*domain.Block{
		{ID: 1, PageID: 1, Type: domain.BlockTypeHeading, Content: "# Title", Sort: 0},
		{ID: 2, PageID: 1, Type: domain.BlockTypeDivider, Sort: 1},
		{ID: 3, PageID: 1, Type: domain.BlockTypeText, Content: "body", Sort: 2},
	}}
	svc := newTestDocumentService(blockRepo, pageRepo)

	doc, err := svc.Compose(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	want := "<h1>Title</h1><hr><p>body</p>"
	if doc.Content != want {
		t.Errorf("Content = %q, want %q", doc.Content, want)
	}
}
