package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/model"

	"github.com/gookit/goutil/dump"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngineWithConfig(&DBConfig{
		Type: "sqlite",
		Path: ":memory:",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := model.AutoMigrateAll(db); err != nil {
		t.Fatal(err)
	}

	return New(db)
}

func TestPageRepositoryCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	params := &domain.Page{
		UID:        1,
		Title:      "Meeting notes",
		Icon:       "📝",
		Visibility: domain.PageVisibilityPrivate,
		Status:     domain.PageStatusActive,
		BlockIDs:   []int64{},
	}

	page, err := repo.Create(ctx, params)

	dump.P(page)

	assert.Nil(t, err)
	assert.NotZero(t, page.ID)
	assert.Equal(t, params.UID, page.UID)
	assert.Equal(t, params.Title, page.Title)
	assert.Equal(t, domain.PageStatusActive, page.Status)

	got, err := repo.GetByID(ctx, page.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, page.ID, got.ID)
	assert.Equal(t, "Meeting notes", got.Title)

	// 其他用户不可见
	_, err = repo.GetByID(ctx, page.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPageRepositoryBlockIDsRoundTrip(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	page, err := repo.Create(ctx, &domain.Page{
		UID:        1,
		Title:      "Ordered",
		Visibility: domain.PageVisibilityPrivate,
		Status:     domain.PageStatusActive,
	})
	assert.Nil(t, err)

	err = repo.UpdateBlockIDs(ctx, []int64{3, 1, 2}, page.ID)
	assert.Nil(t, err)

	got, err := repo.GetByID(ctx, page.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, []int64{3, 1, 2}, got.BlockIDs)
}

func TestPageRepositoryDeleteCascade(t *testing.T) {
	d := newTestDao(t)
	pageRepo := NewPageRepository(d)
	blockRepo := NewBlockRepository(d)
	ctx := context.Background()

	page, err := pageRepo.Create(ctx, &domain.Page{
		UID:        1,
		Title:      "Doomed",
		Visibility: domain.PageVisibilityPrivate,
		Status:     domain.PageStatusActive,
	})
	assert.Nil(t, err)

	block, err := blockRepo.Create(ctx, &domain.Block{
		UID:     1,
		PageID:  page.ID,
		Type:    domain.BlockTypeText,
		Content: "soon gone",
		Sort:    0,
	})
	assert.Nil(t, err)

	err = pageRepo.DeleteCascade(ctx, page.ID, 1)
	assert.Nil(t, err)

	_, err = pageRepo.GetByID(ctx, page.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = blockRepo.GetByID(ctx, block.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 重复删除返回未找到
	err = pageRepo.DeleteCascade(ctx, page.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPageRepositoryListDeletedBefore(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	page, err := repo.Create(ctx, &domain.Page{
		UID:        1,
		Title:      "Trash me",
		Visibility: domain.PageVisibilityPrivate,
		Status:     domain.PageStatusActive,
	})
	assert.Nil(t, err)

	err = repo.UpdateStatus(ctx, domain.PageStatusDeleted, page.ID, 1)
	assert.Nil(t, err)

	expired, err := repo.ListDeletedBefore(ctx, time.Now().Add(time.Hour))
	assert.Nil(t, err)
	assert.Len(t, expired, 1)
	assert.Equal(t, page.ID, expired[0].ID)

	fresh, err := repo.ListDeletedBefore(ctx, time.Now().Add(-time.Hour))
	assert.Nil(t, err)
	assert.Len(t, fresh, 0)
}

func TestBlockRepositoryReplaceAll(t *testing.T) {
	d := newTestDao(t)
	pageRepo := NewPageRepository(d)
	blockRepo := NewBlockRepository(d)
	ctx := context.Background()

	page, err := pageRepo.Create(ctx, &domain.Page{
		UID:        1,
		Title:      "Doc",
		Visibility: domain.PageVisibilityPrivate,
		Status:     domain.PageStatusActive,
	})
	assert.Nil(t, err)

	_, err = blockRepo.Create(ctx, &domain.Block{
		UID: 1, PageID: page.ID, Type: domain.BlockTypeText, Content: "old", Sort: 0,
	})
	assert.Nil(t, err)

	created, err := blockRepo.ReplaceAll(ctx, page.ID, []*domain.Block{
		{UID: 1, PageID: page.ID, Type: domain.BlockTypeHeading, Content: "Title", Sort: 0},
		{UID: 1, PageID: page.ID, Type: domain.BlockTypeTodo, Content: "task", Sort: 1, Completed: true},
	})
	assert.Nil(t, err)
	assert.Len(t, created, 2)

	list, err := blockRepo.ListByPageID(ctx, page.ID)
	assert.Nil(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, domain.BlockTypeHeading, list[0].Type)
	assert.Equal(t, "task", list[1].Content)
	assert.True(t, list[1].Completed)
}
