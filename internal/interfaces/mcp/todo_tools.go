package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	domainTodo "github.com/tinytodo/backend/internal/domain/todo"
)

// ListTodosInput 列表工具输入（空输入）
type ListTodosInput struct{}

// ListTodosOutput 列表工具输出
type ListTodosOutput struct {
	Todos []*appTodo.TodoDTO `json:"todos" jsonschema:"todo items ordered by created_at descending"`
}

// CreateTodoInput 创建工具输入
type CreateTodoInput struct {
	Title string `json:"title" jsonschema:"non-empty todo title"`
}

// UpdateTodoInput 更新工具输入
type UpdateTodoInput struct {
	ID        string  `json:"id" jsonschema:"todo id"`
	Title     *string `json:"title,omitempty" jsonschema:"new title"`
	Completed *bool   `json:"completed,omitempty" jsonschema:"new completed flag"`
}

// DeleteTodoInput 删除工具输入
type DeleteTodoInput struct {
	ID string `json:"id" jsonschema:"todo id"`
}

// DeleteTodoOutput 删除工具输出
type DeleteTodoOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (s *MCPServer) listTodosTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListTodosInput,
) (*mcp.CallToolResult, ListTodosOutput, error) {
	dtos, err := s.service.List(ctx)
	if err != nil {
		return nil, ListTodosOutput{}, s.toolError("list", err)
	}
	return nil, ListTodosOutput{Todos: dtos}, nil
}

func (s *MCPServer) createTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CreateTodoInput,
) (*mcp.CallToolResult, appTodo.TodoDTO, error) {
	dto, err := s.service.Create(ctx, &appTodo.CreateTodoDTO{Title: input.Title})
	if err != nil {
		return nil, appTodo.TodoDTO{}, s.toolError("create", err)
	}
	return nil, *dto, nil
}

func (s *MCPServer) updateTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpdateTodoInput,
) (*mcp.CallToolResult, appTodo.TodoDTO, error) {
	if input.ID == "" {
		return nil, appTodo.TodoDTO{}, errors.New("id is required")
	}

	dto, err := s.service.Update(ctx, input.ID, &appTodo.UpdateTodoDTO{
		Title:     input.Title,
		Completed: input.Completed,
	})
	if err != nil {
		return nil, appTodo.TodoDTO{}, s.toolError("update", err)
	}
	return nil, *dto, nil
}

func (s *MCPServer) deleteTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DeleteTodoInput,
) (*mcp.CallToolResult, DeleteTodoOutput, error) {
	if input.ID == "" {
		return nil, DeleteTodoOutput{}, errors.New("id is required")
	}

	if err := s.service.Delete(ctx, input.ID); err != nil {
		return nil, DeleteTodoOutput{}, s.toolError("delete", err)
	}
	return nil, DeleteTodoOutput{Deleted: true, ID: input.ID}, nil
}

// toolError 客户端错误原样返回，存储错误只返回概要
func (s *MCPServer) toolError(op string, err error) error {
	switch {
	case errors.Is(err, domainTodo.ErrNotFound), errors.Is(err, domainTodo.ErrInvalidTitle):
		return err
	default:
		s.logger.Error("todo tool failed", "op", op, "error", err)
		return fmt.Errorf("failed to %s todo", op)
	}
}
