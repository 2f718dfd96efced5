package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errFull = errors.New("pool full")

type mockRevisionRepo struct {
	domain.PageRevisionRepository
	mu        sync.Mutex
	revisions []*domain.PageRevision
}

func (m *mockRevisionRepo) Create(ctx context.Context, revision *domain.PageRevision) (*domain.PageRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	revision.ID = int64(len(m.revisions) + 1)
	revision.Version = len(m.revisions) + 1
	revision.CreatedAt = time.Now()
	m.revisions = append(m.revisions, revision)
	return revision, nil
}

func (m *mockRevisionRepo) GetLatest(ctx context.Context, pageID int64) (*domain.PageRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.revisions) - 1; i >= 0; i-- {
		if m.revisions[i].PageID == pageID {
			return m.revisions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRevisionRepo) ListByPageID(ctx context.Context, pageID int64, limit int) ([]*domain.PageRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.PageRevision
	for i := len(m.revisions) - 1; i >= 0; i-- {
		if m.revisions[i].PageID == pageID {
			out = append(out, m.revisions[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockRevisionRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revisions)
}

func (m *mockRevisionRepo) last() *domain.PageRevision {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.revisions) == 0 {
		return nil
	}
	return m.revisions[len(m.revisions)-1]
}

func newTestRevisionService(repo *mockRevisionRepo, pageRepo *mockPageRepo, delay time.Duration) *revisionService {
	return &revisionService{
		revisionRepo: repo,
		pageRepo:     pageRepo,
		delay:        delay,
		logger:       zap.NewNop(),
		pending:      make(map[int64]*pendingRevision),
	}
}

func TestRevisionDebounceKeepsLastContent(t *testing.T) {
	repo := &mockRevisionRepo{}
	svc := newTestRevisionService(repo, newMockPageRepo(), 20*time.Millisecond)

	svc.SchedulePush(1, 1, "<p>first</p>")
	svc.SchedulePush(1, 1, "<p>second</p>")
	svc.SchedulePush(1, 1, "<p>third</p>")

	time.Sleep(100 * time.Millisecond)

	if repo.count() != 1 {
		t.Fatalf("got %d revisions, want 1", repo.count())
	}
	if got := repo.last().Content; got != "<p>third</p>" {
		t.Errorf("content = %q, want the last scheduled content", got)
	}
}

func TestRevisionDebouncedSaveUsesSubmitter(t *testing.T) {
	repo := &mockRevisionRepo{}
	svc := newTestRevisionService(repo, newMockPageRepo(), 10*time.Millisecond)

	var submitted int32
	svc.submit = func(ctx context.Context, fn func(context.Context) error) error {
		atomic.AddInt32(&submitted, 1)
		go fn(ctx)
		return nil
	}

	svc.SchedulePush(1, 1, "<p>pooled</p>")
	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&submitted) != 1 {
		t.Fatalf("submitter called %d times, want 1", submitted)
	}
	if repo.count() != 1 {
		t.Fatalf("got %d revisions, want 1", repo.count())
	}
}

func TestRevisionSubmitFailureFallsBackInline(t *testing.T) {
	repo := &mockRevisionRepo{}
	svc := newTestRevisionService(repo, newMockPageRepo(), 10*time.Millisecond)
	svc.submit = func(ctx context.Context, fn func(context.Context) error) error {
		return errFull
	}

	svc.SchedulePush(1, 1, "<p>inline</p>")
	time.Sleep(100 * time.Millisecond)

	if repo.count() != 1 {
		t.Fatalf("got %d revisions, want 1", repo.count())
	}
}

func TestRevisionFlushWritesPending(t *testing.T) {
	repo := &mockRevisionRepo{}
	svc := newTestRevisionService(repo, newMockPageRepo(), time.Hour)

	svc.SchedulePush(1, 1, "<p>pending</p>")
	svc.SchedulePush(2, 1, "<p>other</p>")

	svc.Flush()

	if repo.count() != 2 {
		t.Fatalf("got %d revisions, want 2", repo.count())
	}
	if len(svc.pending) != 0 {
		t.Errorf("pending map not drained: %d entries", len(svc.pending))
	}
}

func TestRevisionSkipsIdenticalContent(t *testing.T) {
	repo := &mockRevisionRepo{}
	svc := newTestRevisionService(repo, newMockPageRepo(), time.Hour)

	svc.save(1, 1, "<p>same</p>")
	svc.save(1, 1, "<p>same</p>")
	svc.save(1, 1, "<p>changed</p>")

	if repo.count() != 2 {
		t.Errorf("got %d revisions, want 2", repo.count())
	}
}

func TestRevisionListComputesDiffStats(t *testing.T) {
	ctx := context.Background()
	repo := &mockRevisionRepo{}
	pageRepo := newMockPageRepo(&domain.Page{ID: 1, UID: 1, Status: domain.PageStatusActive})
	svc := newTestRevisionService(repo, pageRepo, time.Hour)

	svc.save(1, 1, "<p>one</p>")
	svc.save(1, 1, "<p>one two</p>")

	revisions, err := svc.List(ctx, 1, &dto.RevisionListRequest{PageID: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("got %d revisions, want 2", len(revisions))
	}

	// newest first: the head entry added " two" over its predecessor
	if revisions[0].Version != 2 {
		t.Errorf("revisions[0].Version = %d, want 2", revisions[0].Version)
	}
	if revisions[0].CharsAdded != 4 {
		t.Errorf("CharsAdded = %d, want 4", revisions[0].CharsAdded)
	}
	if revisions[1].CharsAdded == 0 {
		t.Error("oldest revision should count its full content as added")
	}
}
