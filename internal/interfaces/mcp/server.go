package mcp

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	"github.com/tinytodo/backend/internal/infrastructure/log"
)

// MCPServer MCP 服务器，提供与 REST 接口相同的待办操作
type MCPServer struct {
	server  *mcp.Server
	handler http.Handler
	service *appTodo.Service
	logger  *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(service *appTodo.Service) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "todo-backend",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	s := &MCPServer{
		server:  server,
		service: service,
		logger:  log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_todos",
		Description: "List all todo items, newest first. No parameters required. Returns: todos array with id, title, completed and created_at (RFC3339).",
	}, s.listTodosTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_todo",
		Description: "Create a todo item. Parameters: title (string, required) - non-empty title. Returns: the created todo with server generated id and created_at.",
	}, s.createTodoTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_todo",
		Description: "Update a todo item. Parameters: id (string, required); title (string, optional); completed (bool, optional). Fields not provided keep their current value. Returns: the updated todo.",
	}, s.updateTodoTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo item. Parameters: id (string, required). Returns: deleted flag and id.",
	}, s.deleteTodoTool)

	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil,
	)

	return s
}

// GetHandler 获取 HTTP Handler（挂载到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
