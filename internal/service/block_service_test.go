package service

import (
	"context"
	"testing"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPageRepo struct {
	domain.PageRepository
	pages        map[int64]*domain.Page
	blockIDSaves map[int64][]int64
}

func newMockPageRepo(pages ...*domain.Page) *mockPageRepo {
	m := &mockPageRepo{
		pages:        make(map[int64]*domain.Page),
		blockIDSaves: make(map[int64][]int64),
	}
	for _, p := range pages {
		m.pages[p.ID] = p
	}
	return m
}

func (m *mockPageRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Page, error) {
	p, ok := m.pages[id]
	if !ok || p.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockPageRepo) UpdateBlockIDs(ctx context.Context, blockIDs []int64, id int64) error {
	m.blockIDSaves[id] = blockIDs
	return nil
}

type mockBlockRepo struct {
	domain.BlockRepository
	blocks     []*domain.Block
	nextID     int64
	reorders   []*domain.BlockOrder
	deletedIDs []int64
}

func (m *mockBlockRepo) GetByID(ctx context.Context, id int64) (*domain.Block, error) {
	for _, b := range m.blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockRepo) ListByPageID(ctx context.Context, pageID int64) ([]*domain.Block, error) {
	var out []*domain.Block
	for _, b := range m.blocks {
		if b.PageID == pageID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBlockRepo) Create(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	m.nextID++
	block.ID = m.nextID
	m.blocks = append(m.blocks, block)
	return block, nil
}

func (m *mockBlockRepo) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockBlockRepo) Reorder(ctx context.Context, pageID int64, orders []*domain.BlockOrder) error {
	m.reorders = orders
	return nil
}

func newTestBlockService(blockRepo *mockBlockRepo, pageRepo *mockPageRepo) *blockService {
	return &blockService{
		blockRepo: blockRepo,
		pageRepo:  pageRepo,
		hub:       app.NewEventHub(zap.NewNop()),
		logger:    zap.NewNop(),
	}
}

func TestBlockCreateAppendsPageReference(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{}
	svc := newTestBlockService(blockRepo, pageRepo)

	block, err := svc.Create(ctx, 1, &dto.BlockCreateRequest{
		PageID:  1,
		Type:    domain.BlockTypeText,
		Content: "hello",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if block.ID == 0 {
		t.Error("expected a non-zero block id")
	}

	saved := pageRepo.blockIDSaves[1]
	if len(saved) != 1 || saved[0] != block.ID {
		t.Errorf("page reference list = %v, want [%d]", saved, block.ID)
	}
}

func TestBlockCreateForeignPage(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 2, Status: domain.PageStatusActive})
	svc := newTestBlockService(&mockBlockRepo{}, pageRepo)

	_, err := svc.Create(ctx, 1, &dto.BlockCreateRequest{PageID: 1, Type: domain.BlockTypeText})
	if err != code.ErrorPageNotFound {
		t.Errorf("err = %v, want ErrorPageNotFound", err)
	}
}

func TestBlockDeleteForeignBlock(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 2, Status: domain.PageStatusActive})
	blockRepo := &mockBlockRepo{blocks: []*domain.Block{{ID: 10, PageID: 1, UID: 2}}}
	svc := newTestBlockService(blockRepo, pageRepo)

	// another user's block answers not found, not forbidden
	_, err := svc.Delete(ctx, 10, 1)
	if err != code.ErrorBlockNotFound {
		t.Errorf("err = %v, want ErrorBlockNotFound", err)
	}
	if len(blockRepo.deletedIDs) != 0 {
		t.Errorf("deletedIDs = %v, want empty", blockRepo.deletedIDs)
	}
}

func TestBlockReorder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		orders      []*dto.BlockOrderItem
		wantErr     bool
		wantApplied int
	}{
		{
			name: "full reorder",
			orders: []*dto.BlockOrderItem{
				{ID: 1, Order: 2},
				{ID: 2, Order: 0},
				{ID: 3, Order: 1},
			},
			wantApplied: 3,
		},
		{
			name: "partial reorder",
			orders: []*dto.BlockOrderItem{
				{ID: 2, Order: 5},
			},
			wantApplied: 1,
		},
		{
			name: "foreign block rejects everything",
			orders: []*dto.BlockOrderItem{
				{ID: 1, Order: 0},
				{ID: 99, Order: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
			blockRepo := &mockBlockRepo{blocks: []*domain.Block{
				{ID: 1, PageID: 1, UID: 1, Sort: 0},
				{ID: 2, PageID: 1, UID: 1, Sort: 1},
				{ID: 3, PageID: 1, UID: 1, Sort: 2},
			}}
			svc := newTestBlockService(blockRepo, pageRepo)

			result, err := svc.Reorder(ctx, 1, &dto.BlockReorderRequest{
				PageID:      1,
				BlockOrders: tt.orders,
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if blockRepo.reorders != nil {
					t.Errorf("reorder applied despite validation failure: %v", blockRepo.reorders)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reorder failed: %v", err)
			}
			if len(result) != tt.wantApplied {
				t.Errorf("applied %d orders, want %d", len(result), tt.wantApplied)
			}
			if len(blockRepo.reorders) != tt.wantApplied {
				t.Errorf("repo received %d orders, want %d", len(blockRepo.reorders), tt.wantApplied)
			}
		})
	}
}
