package mcp

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	domainTodo "github.com/tinytodo/backend/internal/domain/todo"
	"github.com/tinytodo/backend/internal/infrastructure/config"
	"github.com/tinytodo/backend/internal/infrastructure/storage"
)

func setupTestServer(t *testing.T) (*MCPServer, *sql.DB) {
	t.Helper()

	db, err := storage.ProvideDB(&config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "todos.db"),
		MaxOpenConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewServer(appTodo.NewService(storage.NewTodoRepository(db), nil)), db
}

func TestNewServer_Handler(t *testing.T) {
	s, _ := setupTestServer(t)
	assert.NotNil(t, s.GetHandler())
}

func TestTodoTools_Lifecycle(t *testing.T) {
	s, _ := setupTestServer(t)
	ctx := context.Background()

	_, created, err := s.createTodoTool(ctx, nil, CreateTodoInput{Title: "Write report"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Write report", created.Title)
	assert.False(t, created.Completed)

	completed := true
	_, updated, err := s.updateTodoTool(ctx, nil, UpdateTodoInput{ID: created.ID, Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, "Write report", updated.Title)
	assert.True(t, updated.Completed)

	_, listed, err := s.listTodosTool(ctx, nil, ListTodosInput{})
	require.NoError(t, err)
	require.Len(t, listed.Todos, 1)
	assert.Equal(t, updated, *listed.Todos[0])

	_, deleted, err := s.deleteTodoTool(ctx, nil, DeleteTodoInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, DeleteTodoOutput{Deleted: true, ID: created.ID}, deleted)

	_, listed, err = s.listTodosTool(ctx, nil, ListTodosInput{})
	require.NoError(t, err)
	assert.NotNil(t, listed.Todos)
	assert.Empty(t, listed.Todos)
}

func TestTodoTools_ClientErrors(t *testing.T) {
	s, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := s.createTodoTool(ctx, nil, CreateTodoInput{Title: "  "})
	assert.ErrorIs(t, err, domainTodo.ErrInvalidTitle)

	_, _, err = s.updateTodoTool(ctx, nil, UpdateTodoInput{})
	assert.EqualError(t, err, "id is required")

	_, _, err = s.updateTodoTool(ctx, nil, UpdateTodoInput{ID: "missing"})
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)

	_, _, err = s.deleteTodoTool(ctx, nil, DeleteTodoInput{ID: "missing"})
	assert.ErrorIs(t, err, domainTodo.ErrNotFound)
}

func TestTodoTools_StorageErrorHidden(t *testing.T) {
	s, db := setupTestServer(t)
	require.NoError(t, db.Close())

	_, _, err := s.listTodosTool(context.Background(), nil, ListTodosInput{})
	assert.EqualError(t, err, "failed to list todo")
}
