package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (m *mockPageRepo) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	page.ID = int64(len(m.pages) + 1)
	m.pages[page.ID] = page
	return page, nil
}

func (m *mockPageRepo) UpdateStatus(ctx context.Context, status string, id, uid int64) error {
	p, ok := m.pages[id]
	if !ok || p.UID != uid {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (m *mockPageRepo) DeleteCascade(ctx context.Context, id, uid int64) error {
	p, ok := m.pages[id]
	if !ok || p.UID != uid {
		return gorm.ErrRecordNotFound
	}
	delete(m.pages, id)
	return nil
}

func (m *mockPageRepo) List(ctx context.Context, uid int64, status string) ([]*domain.Page, error) {
	var out []*domain.Page
	for _, p := range m.pages {
		if p.UID == uid && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPageRepo) ListSharedWith(ctx context.Context, uid int64, status string) ([]*domain.Page, error) {
	var out []*domain.Page
	for _, p := range m.pages {
		if p.UID != uid && p.IsShared() && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPageRepo) SearchByTitle(ctx context.Context, keyword string, uid int64) ([]*domain.Page, error) {
	return nil, nil
}

func (m *mockPageRepo) ListByIDs(ctx context.Context, ids []int64, uid int64, status string) ([]*domain.Page, error) {
	var out []*domain.Page
	for _, id := range ids {
		if p, ok := m.pages[id]; ok && p.UID == uid && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockBlockRepo) SearchPageIDs(ctx context.Context, keyword string, uid int64) ([]int64, error) {
	return nil, nil
}

type mockShareRepo struct {
	domain.PageShareRepository
	uidsByPage map[int64][]int64
}

func (m *mockShareRepo) ListUIDsByPageID(ctx context.Context, pageID int64) ([]int64, error) {
	return m.uidsByPage[pageID], nil
}

type mockFileRepo struct {
	domain.FileRepository
	files []*domain.File
}

func (m *mockFileRepo) Search(ctx context.Context, keyword string, uid int64) ([]*domain.File, error) {
	return m.files, nil
}

func newTestPageService(pageRepo *mockPageRepo, blockRepo *mockBlockRepo) *pageService {
	return &pageService{
		pageRepo:  pageRepo,
		blockRepo: blockRepo,
		shareRepo: &mockShareRepo{uidsByPage: make(map[int64][]int64)},
		fileRepo:  &mockFileRepo{},
		hub:       app.NewEventHub(zap.NewNop()),
		logger:    zap.NewNop(),
	}
}

func TestPageCreateNormalizesTitle(t *testing.T) {
	ctx := context.Background()
	svc := newTestPageService(newMockPageRepo(), &mockBlockRepo{})

	tests := []struct {
		name      string
		title     string
		wantTitle string
	}{
		{"empty title", "", "Untitled"},
		{"whitespace title", "   ", "Untitled"},
		{"kept title", "Reading list", "Reading list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Create(ctx, 1, &dto.PageCreateRequest{Title: tt.title})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if page.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", page.Title, tt.wantTitle)
			}
			if page.Visibility != domain.PageVisibilityPrivate {
				t.Errorf("visibility = %q, want private", page.Visibility)
			}
		})
	}
}

func TestPageDeleteRequiresForce(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	svc := newTestPageService(pageRepo, &mockBlockRepo{})

	if err := svc.Delete(ctx, 1, 1, false); err != code.ErrorPageDeleteNotForced {
		t.Errorf("err = %v, want ErrorPageDeleteNotForced", err)
	}
	if _, ok := pageRepo.pages[1]; !ok {
		t.Error("page removed without force")
	}

	if err := svc.Delete(ctx, 1, 1, true); err != nil {
		t.Fatalf("forced Delete failed: %v", err)
	}
	if _, ok := pageRepo.pages[1]; ok {
		t.Error("page still present after forced delete")
	}
}

func TestPageSoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	svc := newTestPageService(pageRepo, &mockBlockRepo{})

	page, err := svc.SoftDelete(ctx, 1, 1)
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if page.Status != domain.PageStatusDeleted {
		t.Errorf("status = %q, want deleted", page.Status)
	}

	page, err = svc.Restore(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if page.Status != domain.PageStatusActive {
		t.Errorf("status = %q, want active", page.Status)
	}
}

func TestPageListAllMergesSharedNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Now()
	pageRepo := newMockPageRepo(
		&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive, UpdatedAt: base.Add(-2 * time.Hour)},
		&domain.Page{ID: 2, UID: 2, Status: domain.PageStatusActive, Visibility: domain.PageVisibilityShared, UpdatedAt: base.Add(-1 * time.Hour)},
		&domain.Page{ID: 3, UID: 1, Status: domain.PageStatusActive, UpdatedAt: base},
	)
	svc := newTestPageService(pageRepo, &mockBlockRepo{})

	pages, err := svc.ListAll(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	wantOrder := []int64{3, 2, 1}
	for i, want := range wantOrder {
		if pages[i].ID != want {
			t.Errorf("pages[%d].ID = %d, want %d", i, pages[i].ID, want)
		}
	}
}

func TestPageSearchRequiresQuery(t *testing.T) {
	ctx := context.Background()
	svc := newTestPageService(newMockPageRepo(), &mockBlockRepo{})

	for _, q := range []string{"", "   "} {
		if _, err := svc.Search(ctx, 1, q); err != code.ErrorSearchQueryRequired {
			t.Errorf("Search(%q) err = %v, want ErrorSearchQueryRequired", q, err)
		}
	}
}

func TestPageGetNotFound(t *testing.T) {
	ctx := context.Background()
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 2, Status: domain.PageStatusActive})
	svc := newTestPageService(pageRepo, &mockBlockRepo{})

	// foreign and absent pages are indistinguishable
	for _, id := range []int64{1, 99} {
		if _, err := svc.Get(ctx, id, 1); err != code.ErrorPageNotFound {
			t.Errorf("Get(%d) err = %v, want ErrorPageNotFound", id, err)
		}
	}
}
