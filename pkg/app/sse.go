package app

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/block-note-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SSE event names published by the stores.
// 存储层发布的 SSE 事件名
const (
	EventPageCreated     = "pageCreated"
	EventPageUpdated     = "pageUpdated"
	EventPageDeleted     = "pageDeleted"
	EventBlockCreated    = "blockCreated"
	EventBlockUpdated    = "blockUpdated"
	EventBlockDeleted    = "blockDeleted"
	EventBlocksReordered = "blocksReordered"
)

// keepAliveFrame is a comment frame; subscribers ignore it but proxies keep
// the connection open.
var keepAliveFrame = []byte(":ok\n\n")

// EventClient is one subscriber connection. Frames are consumed from
// Receive until the hub closes the channel.
// EventClient 表示一个订阅连接
type EventClient struct {
	ID  string
	UID int64

	ch     chan []byte
	closed bool
	mu     sync.Mutex
}

// Receive returns the frame channel for this client.
func (c *EventClient) Receive() <-chan []byte {
	return c.ch
}

func (c *EventClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

// send drops the frame when the client buffer is full. A slow subscriber
// misses events instead of blocking the publisher.
// send 在客户端缓冲满时丢弃该帧，慢订阅者丢事件而不阻塞发布方
func (c *EventClient) send(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- frame:
		return true
	default:
		return false
	}
}

// EventHub fans change notifications out to every subscribed client. It is
// owned by the App container: constructed at startup, closed at shutdown.
// EventHub 将变更通知扇出给所有订阅客户端，由 App 容器持有
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*EventClient
	logger  *zap.Logger

	keepAlive time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// EventHubOption configuration option function type
// EventHubOption 配置选项函数类型
type EventHubOption func(*EventHub)

// WithKeepAliveInterval overrides the keepalive comment interval.
func WithKeepAliveInterval(d time.Duration) EventHubOption {
	return func(h *EventHub) {
		h.keepAlive = d
	}
}

func NewEventHub(lg *zap.Logger, opts ...EventHubOption) *EventHub {
	if lg == nil {
		lg = zap.NewNop()
	}
	h := &EventHub{
		clients:   make(map[string]*EventClient),
		logger:    lg,
		keepAlive: 30 * time.Second,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.keepAliveLoop()
	return h
}

// AddClient registers a subscriber and returns its client handle.
// AddClient 注册一个订阅者
func (h *EventHub) AddClient(uid int64) *EventClient {
	client := &EventClient{
		ID:  uuid.NewString(),
		UID: uid,
		ch:  make(chan []byte, 64),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client subscribed",
		zap.String(logger.FieldSessionID, client.ID),
		zap.Int64(logger.FieldUID, uid),
		zap.Int("clients", count))

	return client
}

// RemoveClient unregisters a subscriber and closes its channel.
// RemoveClient 注销订阅者并关闭其通道
func (h *EventHub) RemoveClient(id string) {
	h.mu.Lock()
	client, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		client.close()
		h.logger.Info("sse client unsubscribed",
			zap.String(logger.FieldSessionID, id),
			zap.Int("clients", count))
	}
}

// ClientCount returns the number of live subscribers.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish serializes the payload once and writes a framed event to every
// open channel. Best effort: failures on individual clients are swallowed
// and never propagate to the mutation that triggered the event.
// Publish 将负载序列化一次并写入所有通道，尽力而为
func (h *EventHub) Publish(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("sse payload marshal failed",
			zap.String(logger.FieldAction, event),
			zap.Error(err))
		return
	}
	frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.send(frame) {
			h.logger.Debug("sse frame dropped",
				zap.String(logger.FieldSessionID, client.ID),
				zap.String(logger.FieldAction, event))
		}
	}
}

func (h *EventHub) keepAliveLoop() {
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.mu.RLock()
			for _, client := range h.clients {
				client.send(keepAliveFrame)
			}
			h.mu.RUnlock()
		}
	}
}

// KeepAliveFrame returns the comment frame sent on subscribe and on each
// keepalive tick.
func KeepAliveFrame() []byte {
	return keepAliveFrame
}

// Close tears down the hub: stops the keepalive loop and closes every
// client channel.
// Close 关闭保活循环并断开所有客户端
func (h *EventHub) Close() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.close()
		delete(h.clients, id)
	}
}
