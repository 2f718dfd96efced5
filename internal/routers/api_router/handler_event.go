package api_router

import (
	"net/http"

	"github.com/haierkeys/block-note-service/internal/app"
	pkgapp "github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler SSE change feed router handler
// EventHandler SSE 变更通知路由处理器
type EventHandler struct {
	*Handler
}

// NewEventHandler creates EventHandler instance
// NewEventHandler 创建 EventHandler 实例
func NewEventHandler(a *app.App) *EventHandler {
	return &EventHandler{
		Handler: NewHandler(a),
	}
}

// Stream opens the change notification stream
// @Summary Subscribe to the change notification stream
// @Description Open a Server-Sent Events stream carrying page and block change events. Browsers pass the auth token as the token query parameter.
// @Description 打开携带页面与块变更事件的 SSE 流，浏览器通过 token 查询参数传递认证令牌。
// @Tags Event
// @Security UserAuthToken
// @Param token query string true "Auth Token"
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response := pkgapp.NewResponse(c)
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response := pkgapp.NewResponse(c)
		response.ToResponse(code.ErrorServerInternal.WithDetails("streaming unsupported"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	hub := h.App.EventHub()
	client := hub.AddClient(uid)
	defer hub.RemoveClient(client.ID)

	// an immediate comment frame confirms the subscription
	if _, err := c.Writer.Write(pkgapp.KeepAliveFrame()); err != nil {
		return
	}
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-client.Receive():
			if !ok {
				return
			}
			if _, err := c.Writer.Write(frame); err != nil {
				h.App.Logger().Debug("sse write failed",
					zap.String("clientId", client.ID), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}
