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

// PageHandler page API router handler
// PageHandler 页面 API 路由处理器
type PageHandler struct {
	*Handler
}

// NewPageHandler creates PageHandler instance
// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(a *app.App) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(a),
	}
}

// List owned pages
// @Summary List owned pages
// @Description List the current user's pages, newest updated first. Status selects the active set or the trash.
// @Description 获取当前用户的页面列表，按更新时间倒序。status 参数选择活跃集合或回收站。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param status query string false "Lifecycle status: active / deleted"
// @Success 200 {object} pkgapp.Res{data=[]service.Page} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/pages [get]
func (h *PageHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	pages, err := h.App.PageService.List(ctx, uid, params.Status)
	if err != nil {
		h.logError(ctx, "PageHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(pages))
}

// ListAll owned and shared pages
// @Summary List owned and shared pages
// @Description List the union of owned pages and pages shared with the current user, deduplicated, newest updated first.
// @Description 获取用户拥有及被分享页面的并集，去重后按更新时间倒序。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param status query string false "Lifecycle status: active / deleted"
// @Success 200 {object} pkgapp.Res{data=[]service.Page} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/pages/all [get]
func (h *PageHandler) ListAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.ListAll.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	pages, err := h.App.PageService.ListAll(ctx, uid, params.Status)
	if err != nil {
		h.logError(ctx, "PageHandler.ListAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(pages))
}

// Get single page with blocks
// @Summary Get a page with its ordered blocks
// @Description Fetch one owned page together with its blocks in display order.
// @Description 获取单个页面及其有序块列表（仅限所有者）。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query int true "Page ID"
// @Success 200 {object} pkgapp.Res{data=service.PageDetail} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page [get]
func (h *PageHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	detail, err := h.App.PageService.Get(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "PageHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(detail))
}

// Create page
// @Summary Create a page
// @Description Create a page owned by the current user. An empty title falls back to Untitled.
// @Description 创建当前用户的页面，空标题回落为 Untitled。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page [post]
func (h *PageHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.PageService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "PageHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Update page
// @Summary Update a page
// @Description Partially update a page's title, icon or visibility. Omitted fields stay unchanged.
// @Description 部分更新页面的标题、图标或可见性，未传字段保持不变。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page [put]
func (h *PageHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.PageService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "PageHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// SoftDelete moves a page to the trash
// @Summary Soft delete a page
// @Description Move a page to the trash. Blocks are untouched and the page can be restored.
// @Description 将页面移入回收站，块保持不动，可恢复。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageStatusRequest true "Page ID"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/soft-delete [post]
func (h *PageHandler) SoftDelete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageStatusRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.SoftDelete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.PageService.SoftDelete(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "PageHandler.SoftDelete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Restore brings a page back from the trash
// @Summary Restore a page
// @Description Restore a soft-deleted page to the active set.
// @Description 将软删除的页面恢复为活跃状态。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageStatusRequest true "Page ID"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/restore [post]
func (h *PageHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageStatusRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Restore.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.PageService.Restore(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "PageHandler.Restore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Delete permanently removes a page
// @Summary Permanently delete a page
// @Description Hard delete a page and cascade to its blocks, shares and revisions. Requires force=true.
// @Description 物理删除页面并级联删除其块、分享与版本，必须传 force=true。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found / Force Required"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.PageService.Delete(ctx, params.ID, uid, params.Force == "true"); err != nil {
		h.logError(ctx, "PageHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"id": params.ID}))
}

// Search pages and files
// @Summary Search pages and files
// @Description Search active pages by title or block content and files by name or content. The query must not be empty.
// @Description 按标题或块内容搜索活跃页面，按名称或内容搜索文件，关键词不能为空。
// @Tags Page
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param q query string true "Keyword"
// @Success 200 {object} pkgapp.Res{data=service.SearchResult} "Success"
// @Failure 400 {object} pkgapp.Res "Query Required"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/pages/search [get]
func (h *PageHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageSearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Search.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	result, err := h.App.PageService.Search(ctx, uid, params.Query)
	if err != nil {
		h.logError(ctx, "PageHandler.Search", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
