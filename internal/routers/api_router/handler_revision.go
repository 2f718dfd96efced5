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

// RevisionHandler page revision API router handler
// RevisionHandler 页面版本 API 路由处理器
type RevisionHandler struct {
	*Handler
}

// NewRevisionHandler creates RevisionHandler instance
// NewRevisionHandler 创建 RevisionHandler 实例
func NewRevisionHandler(a *app.App) *RevisionHandler {
	return &RevisionHandler{
		Handler: NewHandler(a),
	}
}

// List page revisions
// @Summary List the revision history of a page
// @Description List document snapshots of a page, newest first, with per-revision change statistics.
// @Description 获取页面的文档快照历史，版本倒序，附带每个版本的变更统计。
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param pageId query int true "Page ID"
// @Param limit query int false "Maximum entries, 0 for unlimited"
// @Success 200 {object} pkgapp.Res{data=[]service.Revision} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/revisions [get]
func (h *RevisionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	revisions, err := h.App.RevisionService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "RevisionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(revisions))
}
