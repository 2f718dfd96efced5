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

// DocumentHandler composed document API router handler
// DocumentHandler 合成文档 API 路由处理器
type DocumentHandler struct {
	*Handler
}

// NewDocumentHandler creates DocumentHandler instance
// NewDocumentHandler 创建 DocumentHandler 实例
func NewDocumentHandler(a *app.App) *DocumentHandler {
	return &DocumentHandler{
		Handler: NewHandler(a),
	}
}

// Get composed document
// @Summary Compose a page into one document
// @Description Render the page's ordered blocks as a single rich-text document for editor loading.
// @Description 将页面的有序块合成为单个富文本文档，供编辑器加载。
// @Tags Document
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query int true "Page ID"
// @Success 200 {object} pkgapp.Res{data=service.Document} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/document [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DocumentGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("DocumentHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	doc, err := h.App.DocumentService.Compose(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "DocumentHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(doc))
}

// Save edited document
// @Summary Save an edited document back into blocks
// @Description Re-segment the edited document into typed blocks and replace the page's block set. A whitespace-only document is skipped.
// @Description 将编辑后的文档重新切分为类型化块并整体替换页面块集合，空白文档跳过保存。
// @Tags Document
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.DocumentSaveRequest true "Save Parameters"
// @Success 200 {object} pkgapp.Res{data=service.DocumentSaveResult} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/document [put]
func (h *DocumentHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DocumentSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("DocumentHandler.Save.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	result, err := h.App.DocumentService.Apply(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "DocumentHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
