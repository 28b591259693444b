package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tinytodo/backend/internal/domain/todo"
)

// todoRepository 待办事项 SQLite 仓储实现
type todoRepository struct {
	db *sql.DB
}

// NewTodoRepository 创建待办事项仓储实例
func NewTodoRepository(db *sql.DB) todo.Repository {
	return &todoRepository{db: db}
}

// todoRow 数据库行表示：completed 以 0/1 存储，created_at 以文本存储
type todoRow struct {
	ID        string
	Title     string
	Completed int
	CreatedAt string
}

// toRow 领域模型 -> 行
func toRow(item *todo.Todo) todoRow {
	return todoRow{
		ID:        item.ID,
		Title:     item.Title,
		Completed: boolToInt(item.Completed),
		CreatedAt: todo.FormatTime(item.CreatedAt),
	}
}

// toDomain 行 -> 领域模型
func (r todoRow) toDomain() (*todo.Todo, error) {
	createdAt, err := todo.ParseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q for todo %s: %w", r.CreatedAt, r.ID, err)
	}
	return &todo.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed == 1,
		CreatedAt: createdAt,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(s rowScanner) (*todo.Todo, error) {
	var row todoRow
	if err := s.Scan(&row.ID, &row.Title, &row.Completed, &row.CreatedAt); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// List 按创建时间倒序获取所有待办，同一时间戳按插入顺序倒序
func (r *todoRepository) List(ctx context.Context) ([]*todo.Todo, error) {
	query := `
		SELECT id, title, completed, created_at
		FROM todos
		ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	items := make([]*todo.Todo, 0)
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return items, nil
}

// Insert 插入新待办
func (r *todoRepository) Insert(ctx context.Context, item *todo.Todo) error {
	query := `INSERT INTO todos (id, title, completed, created_at) VALUES (?, ?, ?, ?)`

	row := toRow(item)
	if _, err := r.db.ExecContext(ctx, query, row.ID, row.Title, row.Completed, row.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// Find 根据 ID 查找待办
func (r *todoRepository) Find(ctx context.Context, id string) (*todo.Todo, error) {
	query := `SELECT id, title, completed, created_at FROM todos WHERE id = ?`

	item, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, todo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}
	return item, nil
}

// Update 覆盖可变字段
func (r *todoRepository) Update(ctx context.Context, id, title string, completed bool) (int64, error) {
	query := `UPDATE todos SET title = ?, completed = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, title, boolToInt(completed), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update todo: %w", err)
	}
	return result.RowsAffected()
}

// Delete 删除待办
func (r *todoRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM todos WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}
	return result.RowsAffected()
}

// 编译时检查接口实现
var _ todo.Repository = (*todoRepository)(nil)
