package api_router

import (
	"github.com/haierkeys/block-note-service/internal/app"
	"github.com/haierkeys/block-note-service/internal/dto"
	pkgapp "github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"
	apperrors "github.com/haierkeys/block-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler plain-text file API router handler
// FileHandler 纯文本文件 API 路由处理器
type FileHandler struct {
	*Handler
}

// NewFileHandler creates FileHandler instance
// NewFileHandler 创建 FileHandler 实例
func NewFileHandler(a *app.App) *FileHandler {
	return &FileHandler{
		Handler: NewHandler(a),
	}
}

// Upload text file
// @Summary Upload a plain-text file
// @Description Save a named text file. The content is written to the storage backend and indexed for search.
// @Description 保存命名文本文件，内容写入存储后端并参与搜索。
// @Tags File
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.FileUploadRequest true "Upload Parameters"
// @Success 200 {object} pkgapp.Res{data=service.File} "Success"
// @Failure 400 {object} pkgapp.Res "Upload Failed"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/file [post]
func (h *FileHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileUploadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FileHandler.Upload.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	file, err := h.App.FileService.Upload(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "FileHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(file))
}

// List user files
// @Summary List files
// @Description List the current user's files, newest updated first. Entries carry metadata only.
// @Description 获取当前用户的文件列表，按更新时间倒序，仅含元数据。
// @Tags File
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/files [get]
func (h *FileHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	appCfg := h.App.Config()
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: appCfg.App.DefaultPageSize,
		MaxPageSize:     appCfg.App.MaxPageSize,
	})

	files, total, err := h.App.FileService.List(ctx, uid, pkgapp.GetPageOffset(page, pageSize), pageSize)
	if err != nil {
		h.logError(ctx, "FileHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, files, total)
}

// Get single file
// @Summary Get a file
// @Description Fetch one file with its content.
// @Description 获取单个文件及其内容。
// @Tags File
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query int true "File ID"
// @Success 200 {object} pkgapp.Res{data=service.File} "Success"
// @Failure 400 {object} pkgapp.Res "File Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/file [get]
func (h *FileHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FileHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	file, err := h.App.FileService.Get(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "FileHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(file))
}

// Delete file
// @Summary Delete a file
// @Description Delete a file record and its storage backend copy.
// @Description 删除文件记录及其存储后端副本。
// @Tags File
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.FileDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "File Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/file [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FileHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	id, err := h.App.FileService.Delete(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "FileHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"id": id}))
}
