package todo

// EventType 变更事件类型
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event 待办变更事件
// 删除事件只保证 Todo.ID 有值
type Event struct {
	Type EventType `json:"type"`
	Todo *TodoDTO  `json:"todo"`
}

// Pusher 推送接口（定义在 application 层，由基础设施实现）
// 实现不得阻塞调用方
type Pusher interface {
	Push(event Event)
}

// NopPusher 不推送任何事件
type NopPusher struct{}

// Push 丢弃事件
func (NopPusher) Push(Event) {}
