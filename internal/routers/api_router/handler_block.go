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

// BlockHandler block API router handler
// BlockHandler 内容块 API 路由处理器
type BlockHandler struct {
	*Handler
}

// NewBlockHandler creates BlockHandler instance
// NewBlockHandler 创建 BlockHandler 实例
func NewBlockHandler(a *app.App) *BlockHandler {
	return &BlockHandler{
		Handler: NewHandler(a),
	}
}

// List page blocks
// @Summary List the blocks of a page
// @Description List the blocks of an owned page in display order.
// @Description 获取页面的内容块列表，按排序值升序（仅限页面所有者）。
// @Tags Block
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param pageId query int true "Page ID"
// @Success 200 {object} pkgapp.Res{data=[]service.Block} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/blocks [get]
func (h *BlockHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BlockListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BlockHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	blocks, err := h.App.BlockService.List(ctx, params.PageID, uid)
	if err != nil {
		h.logError(ctx, "BlockHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(blocks))
}

// Create block
// @Summary Create a block
// @Description Create a typed block on an owned page and append it to the page's block reference list.
// @Description 在页面上创建类型化内容块，并追加到页面的参考块列表。
// @Tags Block
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.BlockCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Block} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/block [post]
func (h *BlockHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BlockCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BlockHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	block, err := h.App.BlockService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BlockHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(block))
}

// Update block
// @Summary Update a block
// @Description Partially update a block's type, content or completed flag. Omitted fields stay unchanged.
// @Description 部分更新块的类型、内容或完成标记，未传字段保持不变。
// @Tags Block
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.BlockUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=service.Block} "Success"
// @Failure 400 {object} pkgapp.Res "Block Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/block [put]
func (h *BlockHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BlockUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BlockHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	block, err := h.App.BlockService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BlockHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(block))
}

// Delete block
// @Summary Delete a block
// @Description Delete a block and remove it from its page's block reference list.
// @Description 删除内容块并从页面参考块列表移除。
// @Tags Block
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.BlockDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Block Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/block [delete]
func (h *BlockHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BlockDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BlockHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	id, err := h.App.BlockService.Delete(ctx, params.ID, uid)
	if err != nil {
		h.logError(ctx, "BlockHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"id": id}))
}

// Reorder page blocks
// @Summary Reorder the blocks of a page
// @Description Apply a batch of order assignments atomically. If any block does not belong to the page the whole batch is rejected.
// @Description 批量应用排序分配，任一块不属于页面则整体拒绝且不做任何修改。
// @Tags Block
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.BlockReorderRequest true "Reorder Parameters"
// @Success 200 {object} pkgapp.Res{data=[]service.BlockOrder} "Success"
// @Failure 400 {object} pkgapp.Res "Page Not Found / Block Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/blocks/reorder [post]
func (h *BlockHandler) Reorder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BlockReorderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BlockHandler.Reorder.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	orders, err := h.App.BlockService.Reorder(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BlockHandler.Reorder", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"blockOrders": orders}))
}
