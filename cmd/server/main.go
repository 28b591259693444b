// @title Todo API
// @version 1.0
// @description 待办事项后端 API 服务
// @host localhost:3000
// @BasePath /api
// @schemes http
package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/tinytodo/backend/internal/infrastructure/config"
	applog "github.com/tinytodo/backend/internal/infrastructure/log"
	"github.com/tinytodo/backend/internal/infrastructure/singleton"
	"github.com/tinytodo/backend/internal/wire"
)

func main() {
	// 初始化日志系统
	applog.Init(nil)
	logger := applog.GetLogger()

	// 加载配置获取监听地址
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	addr := cfg.Server.Addr()

	// 单例锁检查：尝试获取端口锁
	listener, err := singleton.CheckAndLock(addr)
	if err != nil {
		logger.Error("Single instance check failed", "addr", addr, "error", err)
		os.Exit(1)
	}
	if listener == nil {
		// 已有实例运行，直接退出
		logger.Info("Another instance is already running, exiting", "addr", addr)
		os.Exit(0)
	}

	// Wire 自动生成的初始化函数
	app, err := wire.InitializeAll()
	if err != nil {
		_ = listener.Close()
		logger.Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}

	// 启动所有服务，直接复用单例锁的 listener
	if err := app.Start(listener); err != nil {
		logger.Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		logger.Error("Error during application shutdown",
			"error", err,
		)
	}
	logger.Info("Application stopped")
}
