package todo

import "errors"

var (
	// ErrNotFound 待办不存在
	ErrNotFound = errors.New("todo not found")

	// ErrInvalidTitle 标题为空
	ErrInvalidTitle = errors.New("todo title must not be empty")
)
