package todo

import (
	"context"
	"fmt"
	"log/slog"

	domainTodo "github.com/tinytodo/backend/internal/domain/todo"
	"github.com/tinytodo/backend/internal/infrastructure/log"
	"github.com/google/uuid"
)

// Service 待办应用服务（用例编排）
type Service struct {
	repo   domainTodo.Repository
	pusher Pusher
	clock  *monotonicClock
	newID  func() string
	logger *slog.Logger
}

// NewService 创建待办应用服务
func NewService(repo domainTodo.Repository, pusher Pusher) *Service {
	if pusher == nil {
		pusher = NopPusher{}
	}
	return &Service{
		repo:   repo,
		pusher: pusher,
		clock:  newMonotonicClock(nil),
		newID:  func() string { return uuid.New().String() },
		logger: log.NewModuleLogger("todo", "service"),
	}
}

// List 获取全部待办（按创建时间倒序）
func (s *Service) List(ctx context.Context) ([]*TodoDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToDTOs(items), nil
}

// Create 创建待办
func (s *Service) Create(ctx context.Context, req *CreateTodoDTO) (*TodoDTO, error) {
	item, err := domainTodo.New(s.newID(), req.Title, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	dto := ToDTO(item)
	log.FromContext(ctx, s.logger).Debug("todo created", "todo_id", item.ID)
	s.pusher.Push(Event{Type: EventCreated, Todo: dto})
	return dto, nil
}

// Update 局部更新待办
// 读取与写入之间不加锁：同一 ID 的并发更新以最后写入为准
func (s *Service) Update(ctx context.Context, id string, req *UpdateTodoDTO) (*TodoDTO, error) {
	// 先查记录：不存在的 ID 无论请求体如何都返回未找到
	item, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	// 标题校验失败时不写入
	if err := item.Apply(req.Patch()); err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, item.ID, item.Title, item.Completed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 读取后被并发删除
		return nil, domainTodo.ErrNotFound
	}

	dto := ToDTO(item)
	log.FromContext(ctx, s.logger).Debug("todo updated", "todo_id", id)
	s.pusher.Push(Event{Type: EventUpdated, Todo: dto})
	return dto, nil
}

// Delete 删除待办
func (s *Service) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainTodo.ErrNotFound
	}
	if affected > 1 {
		return fmt.Errorf("delete todo %s affected %d rows", id, affected)
	}

	log.FromContext(ctx, s.logger).Debug("todo deleted", "todo_id", id)
	s.pusher.Push(Event{Type: EventDeleted, Todo: &TodoDTO{ID: id}})
	return nil
}
