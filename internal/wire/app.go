package wire

import (
	"database/sql"
	"log/slog"
	"net"

	applog "github.com/tinytodo/backend/internal/infrastructure/log"
	"github.com/tinytodo/backend/internal/infrastructure/websocket"
	"github.com/tinytodo/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	wsHub      *websocket.Hub
	db         *sql.DB
	logger     *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	wsHub *websocket.Hub,
	db *sql.DB,
) *App {
	return &App{
		HTTPServer: httpServer,
		wsHub:      wsHub,
		db:         db,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
// listener 为单例锁获取的监听器；为 nil 时由 HTTP 服务器自行监听
func (a *App) Start(listener net.Listener) error {
	a.logger.Info("Starting todo backend application")

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		var err error
		if listener != nil {
			err = a.HTTPServer.Serve(listener)
		} else {
			err = a.HTTPServer.Start()
		}
		if err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	// MCP 服务器通过 HTTP Handler 提供服务，已在 HTTP 服务器中注册 /mcp/sse 端点
	a.logger.Info("Todo backend application started successfully")
	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping todo backend application")

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.wsHub.Stop()

	// 关闭数据库连接
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database connection",
				"error", err,
			)
			return err
		}
	}

	a.logger.Info("Todo backend application stopped successfully")
	return nil
}
