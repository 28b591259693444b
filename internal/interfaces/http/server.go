package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tinytodo/backend/internal/infrastructure/config"
	"github.com/tinytodo/backend/internal/infrastructure/log"
	"github.com/tinytodo/backend/internal/interfaces/http/handler"
	"github.com/tinytodo/backend/internal/interfaces/http/middleware"
	"github.com/tinytodo/backend/internal/interfaces/mcp"

	_ "github.com/tinytodo/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router *gin.Engine
	addr   string
	server *http.Server
	logger *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	todoHandler *handler.TodoHandler,
	eventsHandler *handler.EventsHandler,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	logger := log.NewModuleLogger("http", "server")

	var mcpHandler http.Handler
	if mcpServer != nil {
		mcpHandler = mcpServer.GetHandler()
	}

	router := NewRouter(cfg.StaticDir, todoHandler, eventsHandler, mcpHandler)
	return newHTTPServer(router, cfg.Addr(), logger)
}

// newHTTPServer 创建时即构造 http.Server，Shutdown 早于 Serve 时 Serve 直接返回
func newHTTPServer(router *gin.Engine, addr string, logger *slog.Logger) *HTTPServer {
	return &HTTPServer{
		router: router,
		addr:   addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter 注册路由；未匹配的路径回退到静态文件目录
func NewRouter(
	staticDir string,
	todoHandler *handler.TodoHandler,
	eventsHandler *handler.EventsHandler,
	mcpHandler http.Handler,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log.NewModuleLogger("http", "access")),
		middleware.CORS(),
		middleware.EnsureUTF8Body(),
	)

	api := router.Group("/api")
	{
		todos := api.Group("/todos")
		todos.GET("", todoHandler.List)
		todos.POST("", todoHandler.Create)
		todos.PUT("/:id", todoHandler.Update)
		todos.DELETE("/:id", todoHandler.Delete)

		if eventsHandler != nil {
			todos.GET("/events", eventsHandler.Subscribe)
		}
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if mcpHandler != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpHandler))
	}

	// 静态文件回退
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))

	return router
}

// Handler 返回路由
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 启动服务器，阻塞直到关闭；正常关闭返回 nil
func (s *HTTPServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve 在给定 listener 上提供服务
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.logger.Info("HTTP server starting",
		"addr", listener.Addr().String(),
	)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
