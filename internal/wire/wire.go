//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/tinytodo/backend/internal/application"
	appTodo "github.com/tinytodo/backend/internal/application/todo"
	"github.com/tinytodo/backend/internal/infrastructure"
	"github.com/tinytodo/backend/internal/infrastructure/websocket"
	"github.com/tinytodo/backend/internal/interfaces"
)

// InitializeAll 初始化所有服务（HTTP + MCP）
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：application.Pusher -> infrastructure.TodoEventPusher
		wire.Bind(
			new(appTodo.Pusher),
			new(*websocket.TodoEventPusher),
		),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}
