package websocket

import (
	"log/slog"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	"github.com/tinytodo/backend/internal/infrastructure/log"
)

// TodoEventPusher 通过 Hub 推送待办变更事件
type TodoEventPusher struct {
	hub    *Hub
	logger *slog.Logger
}

// NewTodoEventPusher 创建事件推送器
func NewTodoEventPusher(hub *Hub) *TodoEventPusher {
	return &TodoEventPusher{
		hub:    hub,
		logger: log.NewModuleLogger("websocket", "pusher"),
	}
}

// Push 推送事件，失败只记录日志
func (p *TodoEventPusher) Push(event appTodo.Event) {
	if err := p.hub.Broadcast(event); err != nil {
		p.logger.Error("failed to push todo event",
			"type", event.Type,
			"error", err,
		)
	}
}

var _ appTodo.Pusher = (*TodoEventPusher)(nil)
