package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/storage"
	"github.com/haierkeys/block-note-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileService 纯文本附件服务接口
type FileService interface {
	// Upload 保存文本文件，内容同时写入存储后端与检索库
	Upload(ctx context.Context, uid int64, params *dto.FileUploadRequest) (*File, error)

	// List 获取用户文件列表，按更新时间倒序，offset/limit 分页，返回总数
	List(ctx context.Context, uid int64, offset, limit int) ([]*File, int, error)

	// Get 获取单个文件
	Get(ctx context.Context, id, uid int64) (*File, error)

	// Delete 删除文件及其存储后端副本
	Delete(ctx context.Context, id, uid int64) (int64, error)
}

// File 文件响应对象
type File struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content,omitempty"`
	Size      int64      `json:"size"`
	URL       string     `json:"url,omitempty"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

type fileService struct {
	fileRepo    domain.FileRepository
	store       storage.Storager
	storageType string
	logger      *zap.Logger
}

// NewFileService 创建文件服务。store 为 nil 时内容仅保存在数据库
func NewFileService(
	fileRepo domain.FileRepository,
	store storage.Storager,
	storageType string,
	logger *zap.Logger,
) FileService {
	return &fileService{
		fileRepo:    fileRepo,
		store:       store,
		storageType: storageType,
		logger:      logger,
	}
}

func fileToDTO(d *domain.File) *File {
	if d == nil {
		return nil
	}
	return &File{
		ID:        d.ID,
		Name:      d.Name,
		Content:   d.Content,
		Size:      d.Size,
		URL:       d.SavePath,
		CreatedAt: timex.Time(d.CreatedAt),
		UpdatedAt: timex.Time(d.UpdatedAt),
	}
}

func filesToDTO(ds []*domain.File) []*File {
	out := make([]*File, 0, len(ds))
	for _, d := range ds {
		out = append(out, fileToDTO(d))
	}
	return out
}

// savePathKey 生成存储后端的对象路径，按用户与日期分目录
func savePathKey(uid int64, name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return fmt.Sprintf("files/%d/%s/%s", uid, time.Now().Format("2006-01-02"), name)
}

// Upload 保存文本文件
func (s *fileService) Upload(ctx context.Context, uid int64, params *dto.FileUploadRequest) (*File, error) {
	file := &domain.File{
		UID:         uid,
		Name:        params.Name,
		Content:     params.Content,
		Size:        int64(len(params.Content)),
		StorageType: s.storageType,
	}

	if s.store != nil {
		pathKey := savePathKey(uid, params.Name)
		url, err := s.store.SendContent(pathKey, []byte(params.Content), time.Now())
		if err != nil {
			return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
		}
		file.SavePath = url
	}

	created, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("file uploaded",
		zap.Int64("uid", uid), zap.String("name", created.Name), zap.Int64("size", created.Size))
	return fileToDTO(created), nil
}

// List 获取用户文件列表
func (s *fileService) List(ctx context.Context, uid int64, offset, limit int) ([]*File, int, error) {
	total, err := s.fileRepo.CountByUID(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	files, err := s.fileRepo.List(ctx, uid, offset, limit)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	result := filesToDTO(files)
	// listings carry metadata only
	for _, f := range result {
		f.Content = ""
	}
	return result, int(total), nil
}

// Get 获取单个文件
func (s *fileService) Get(ctx context.Context, id, uid int64) (*File, error) {
	file, err := s.fileRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorFileNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return fileToDTO(file), nil
}

// Delete 删除文件
func (s *fileService) Delete(ctx context.Context, id, uid int64) (int64, error) {
	file, err := s.fileRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, code.ErrorFileNotFound
		}
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.fileRepo.Delete(ctx, id, uid); err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// storage copy removal is best effort, the record is authoritative
	if s.store != nil && file.SavePath != "" {
		if err := s.store.Delete(savePathKeyFromURL(file)); err != nil {
			s.logger.Warn("delete stored file copy failed",
				zap.Int64("id", id), zap.Error(err))
		}
	}
	return id, nil
}

// savePathKeyFromURL 从保存记录还原对象路径
func savePathKeyFromURL(file *domain.File) string {
	if idx := strings.Index(file.SavePath, "files/"); idx >= 0 {
		return file.SavePath[idx:]
	}
	return file.SavePath
}

var _ FileService = (*fileService)(nil)
