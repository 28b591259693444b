package todo

import (
	"strings"
	"time"
)

// Todo 待办事项实体
type Todo struct {
	ID        string    // 唯一标识，创建后不可变
	Title     string    // 标题，非空
	Completed bool      // 是否完成
	CreatedAt time.Time // 创建时间，列表排序键
}

// New 创建待办事项
func New(id, title string, createdAt time.Time) (*Todo, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	return &Todo{
		ID:        id,
		Title:     title,
		Completed: false,
		CreatedAt: createdAt,
	}, nil
}

// Patch 局部更新，nil 字段保持原值
type Patch struct {
	Title     *string
	Completed *bool
}

// Apply 合并更新字段，ID 和 CreatedAt 不会改变
func (t *Todo) Apply(p Patch) error {
	if p.Title != nil {
		if err := ValidateTitle(*p.Title); err != nil {
			return err
		}
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return nil
}

// ValidateTitle 校验标题
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// TimeLayout 固定宽度的 RFC3339（纳秒，UTC），保证文本顺序与时间顺序一致
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime 格式化时间戳
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime 解析 RFC3339 时间戳（兼容任意小数位与时区）
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
