package todo

import "context"

// Repository 待办事项仓储接口
type Repository interface {
	// List 按创建时间倒序返回全部待办
	List(ctx context.Context) ([]*Todo, error)

	// Insert 持久化新待办
	Insert(ctx context.Context, item *Todo) error

	// Find 根据 ID 查找，不存在时返回 ErrNotFound
	Find(ctx context.Context, id string) (*Todo, error)

	// Update 覆盖 title 和 completed，返回受影响行数
	Update(ctx context.Context, id, title string, completed bool) (int64, error)

	// Delete 删除待办，返回受影响行数（0 或 1）
	Delete(ctx context.Context, id string) (int64, error)
}
