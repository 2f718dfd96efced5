package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/diff"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultRevisionSaveDelay 版本快照防抖窗口默认值
const defaultRevisionSaveDelay = 2 * time.Second

// RevisionService records debounced snapshots of composed documents and
// serves the per-page revision history.
// RevisionService 记录文档快照版本并提供页面版本历史
type RevisionService interface {
	// SchedulePush 在防抖窗口后记录一次版本快照；同一页面在窗口内的
	// 再次调用只保留最后一次内容
	SchedulePush(pageID, uid int64, content string)

	// List 获取页面版本历史（版本倒序），附带相邻版本的增删统计
	List(ctx context.Context, uid int64, params *dto.RevisionListRequest) ([]*Revision, error)

	// Flush 立即落盘所有待写入的快照，关闭前调用
	Flush()
}

// Revision 页面版本响应对象
type Revision struct {
	ID           int64      `json:"id"`
	PageID       int64      `json:"pageId"`
	Version      int        `json:"version"`
	Content      string     `json:"content"`
	CharsAdded   int        `json:"charsAdded"`
	CharsRemoved int        `json:"charsRemoved"`
	CreatedAt    timex.Time `json:"createdAt"`
}

type pendingRevision struct {
	timer   *time.Timer
	uid     int64
	content string
}

// SubmitFunc hands a job to the shared worker pool.
// SubmitFunc 将任务提交到共享 Worker Pool
type SubmitFunc func(ctx context.Context, fn func(context.Context) error) error

type revisionService struct {
	revisionRepo domain.PageRevisionRepository
	pageRepo     domain.PageRepository
	delay        time.Duration
	keep         int
	submit       SubmitFunc
	logger       *zap.Logger

	mu      sync.Mutex
	pending map[int64]*pendingRevision
}

// NewRevisionService 创建页面版本服务。submit 为 nil 时快照写入在
// 定时器协程内执行
func NewRevisionService(
	revisionRepo domain.PageRevisionRepository,
	pageRepo domain.PageRepository,
	conf *Config,
	submit SubmitFunc,
	logger *zap.Logger,
) RevisionService {
	delay := conf.RevisionSaveDelay
	if delay <= 0 {
		delay = defaultRevisionSaveDelay
	}
	return &revisionService{
		revisionRepo: revisionRepo,
		pageRepo:     pageRepo,
		delay:        delay,
		keep:         conf.RevisionKeep,
		submit:       submit,
		logger:       logger,
		pending:      make(map[int64]*pendingRevision),
	}
}

// SchedulePush 防抖记录版本快照
func (s *revisionService) SchedulePush(pageID, uid int64, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[pageID]; ok {
		p.uid = uid
		p.content = content
		p.timer.Reset(s.delay)
		return
	}

	p := &pendingRevision{uid: uid, content: content}
	p.timer = time.AfterFunc(s.delay, func() {
		s.push(pageID)
	})
	s.pending[pageID] = p
}

// push 将单个页面的待写入快照经 Worker Pool 落盘
func (s *revisionService) push(pageID int64) {
	s.mu.Lock()
	p, ok := s.pending[pageID]
	if ok {
		delete(s.pending, pageID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	if s.submit != nil {
		err := s.submit(context.Background(), func(context.Context) error {
			s.save(pageID, p.uid, p.content)
			return nil
		})
		if err == nil {
			return
		}
		s.logger.Warn("submit page revision save failed, running inline",
			zap.Int64("pageId", pageID), zap.Error(err))
	}
	s.save(pageID, p.uid, p.content)
}

// save skips the write when the content matches the latest revision so
// repeated identical saves do not grow the history.
// save 内容与最新版本相同则跳过写入
func (s *revisionService) save(pageID, uid int64, content string) {
	ctx := context.Background()

	latest, err := s.revisionRepo.GetLatest(ctx, pageID)
	if err == nil && latest.Content == content {
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("load latest page revision failed",
			zap.Int64("pageId", pageID), zap.Error(err))
	}

	if _, err := s.revisionRepo.Create(ctx, &domain.PageRevision{
		PageID:  pageID,
		UID:     uid,
		Content: content,
	}); err != nil {
		s.logger.Error("save page revision failed",
			zap.Int64("pageId", pageID), zap.Error(err))
		return
	}

	if s.keep > 0 {
		if err := s.revisionRepo.PruneKeep(ctx, s.keep); err != nil {
			s.logger.Warn("prune page revisions failed", zap.Error(err))
		}
	}
}

// Flush 立即落盘所有待写入的快照
func (s *revisionService) Flush() {
	s.mu.Lock()
	flush := make(map[int64]*pendingRevision, len(s.pending))
	for pageID, p := range s.pending {
		p.timer.Stop()
		flush[pageID] = p
	}
	s.pending = make(map[int64]*pendingRevision)
	s.mu.Unlock()

	for pageID, p := range flush {
		s.save(pageID, p.uid, p.content)
	}
}

// List 获取页面版本历史
func (s *revisionService) List(ctx context.Context, uid int64, params *dto.RevisionListRequest) ([]*Revision, error) {
	if _, err := s.pageRepo.GetByID(ctx, params.PageID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	revisions, err := s.revisionRepo.ListByPageID(ctx, params.PageID, params.Limit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// revisions are newest first, each entry is compared to the next
	// older one
	result := make([]*Revision, 0, len(revisions))
	for i, r := range revisions {
		item := &Revision{
			ID:        r.ID,
			PageID:    r.PageID,
			Version:   r.Version,
			Content:   r.Content,
			CreatedAt: timex.Time(r.CreatedAt),
		}
		previous := ""
		if i+1 < len(revisions) {
			previous = revisions[i+1].Content
		}
		item.CharsAdded, item.CharsRemoved = diff.Stats(previous, r.Content)
		result = append(result, item)
	}
	return result, nil
}

var _ RevisionService = (*revisionService)(nil)
