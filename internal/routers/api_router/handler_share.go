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

// ShareHandler page share API router handler
// ShareHandler 页面分享 API 路由处理器
type ShareHandler struct {
	*Handler
}

// NewShareHandler creates ShareHandler instance
// NewShareHandler 创建 ShareHandler 实例
func NewShareHandler(a *app.App) *ShareHandler {
	return &ShareHandler{
		Handler: NewHandler(a),
	}
}

// Create page share
// @Summary Share a page with another user
// @Description Grant read access to an owned page for the user with the given email. Sharing twice is idempotent.
// @Description 将页面分享给指定邮箱的用户，重复分享幂等。
// @Tags Share
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.ShareCreateRequest true "Share Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found / User Not Found / Cannot Share With Yourself"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/share [post]
func (h *ShareHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.ShareService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ShareHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Delete page share
// @Summary Revoke a page share
// @Description Revoke read access for the user with the given email. When the last share is revoked the page returns to private.
// @Description 撤销指定邮箱用户的读取权限，最后一个分享撤销后页面回到私有。
// @Tags Share
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.ShareDeleteRequest true "Revoke Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Page} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found / Share Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/page/share [delete]
func (h *ShareHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page, err := h.App.ShareService.Delete(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ShareHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}
