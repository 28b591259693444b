package todo

import domainTodo "github.com/tinytodo/backend/internal/domain/todo"

// TodoDTO 待办事项线上表示
type TodoDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"` // RFC3339
}

// CreateTodoDTO 创建待办请求
type CreateTodoDTO struct {
	Title string `json:"title" binding:"required"`
}

// UpdateTodoDTO 更新待办请求，字段均可选
type UpdateTodoDTO struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// Patch 转换为领域更新
func (d *UpdateTodoDTO) Patch() domainTodo.Patch {
	return domainTodo.Patch{Title: d.Title, Completed: d.Completed}
}

// ToDTO 领域模型 -> DTO
func ToDTO(item *domainTodo.Todo) *TodoDTO {
	return &TodoDTO{
		ID:        item.ID,
		Title:     item.Title,
		Completed: item.Completed,
		CreatedAt: domainTodo.FormatTime(item.CreatedAt),
	}
}

// ToDTOs 批量转换，空输入返回空切片
func ToDTOs(items []*domainTodo.Todo) []*TodoDTO {
	dtos := make([]*TodoDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ToDTO(item))
	}
	return dtos
}
