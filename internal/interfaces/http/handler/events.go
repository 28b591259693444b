package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tinytodo/backend/internal/infrastructure/log"
	infraWS "github.com/tinytodo/backend/internal/infrastructure/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// EventsHandler 待办变更事件订阅（WebSocket）
type EventsHandler struct {
	hub      *infraWS.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewEventsHandler 创建事件订阅处理器
func NewEventsHandler(hub *infraWS.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 与 CORS 策略一致，允许所有来源
			},
		},
		logger: log.NewModuleLogger("http", "events_handler"),
	}
}

// Subscribe 订阅待办变更事件
// @Summary 订阅待办变更
// @Description WebSocket 连接，每次创建/更新/删除后推送 {"type": "...", "todo": {...}}
// @Tags 待办
// @Success 101
// @Router /todos/events [get]
func (h *EventsHandler) Subscribe(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已写入错误响应
		h.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	sub := infraWS.NewConnection()
	if !h.hub.Register(sub) {
		_ = conn.Close()
		return
	}

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

// readPump 丢弃客户端消息，仅用于检测断开和处理 pong
func (h *EventsHandler) readPump(conn *websocket.Conn, sub *infraWS.Connection) {
	defer func() {
		h.hub.Unregister(sub)
		_ = conn.Close()
	}()

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump 发送广播消息与心跳
func (h *EventsHandler) writePump(conn *websocket.Conn, sub *infraWS.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
