package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	domainTodo "github.com/tinytodo/backend/internal/domain/todo"
	"github.com/tinytodo/backend/internal/infrastructure/log"
	"github.com/tinytodo/backend/internal/interfaces/http/response"
)

// 错误码
const (
	codeInvalidParams = 100001
	codeListFailed    = 800001
	codeCreateFailed  = 800002
	codeUpdateFailed  = 800003
	codeNotFound      = 800004
	codeDeleteFailed  = 800005
)

// TodoHandler 待办事项处理器
type TodoHandler struct {
	service *appTodo.Service
	logger  *slog.Logger
}

// NewTodoHandler 创建待办事项处理器
func NewTodoHandler(service *appTodo.Service) *TodoHandler {
	return &TodoHandler{
		service: service,
		logger:  log.NewModuleLogger("http", "todo_handler"),
	}
}

// List 获取待办列表
// @Summary 获取待办列表
// @Description 按创建时间倒序返回全部待办
// @Tags 待办
// @Produce json
// @Success 200 {array} appTodo.TodoDTO
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	dtos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, codeListFailed, "获取待办列表失败")
		return
	}

	response.OK(c, dtos)
}

// Create 创建待办
// @Summary 创建待办
// @Tags 待办
// @Accept json
// @Produce json
// @Param body body appTodo.CreateTodoDTO true "待办标题"
// @Success 200 {object} appTodo.TodoDTO
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req appTodo.CreateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, codeCreateFailed, "创建待办失败")
		return
	}

	response.OK(c, dto)
}

// Update 更新待办
// @Summary 更新待办
// @Description title 与 completed 均可选，未提供的字段保持原值
// @Tags 待办
// @Accept json
// @Produce json
// @Param id path string true "待办ID"
// @Param body body appTodo.UpdateTodoDTO true "更新内容"
// @Success 200 {object} appTodo.TodoDTO
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id := c.Param("id")
	c.Request = c.Request.WithContext(log.WithTodoID(c.Request.Context(), id))

	var req appTodo.UpdateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, codeUpdateFailed, "更新待办失败")
		return
	}

	response.OK(c, dto)
}

// Delete 删除待办
// @Summary 删除待办
// @Tags 待办
// @Param id path string true "待办ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	c.Request = c.Request.WithContext(log.WithTodoID(c.Request.Context(), id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, codeDeleteFailed, "删除待办失败")
		return
	}

	response.NoContent(c)
}

// badRequest 请求体无法解析或缺少必填字段
func (h *TodoHandler) badRequest(c *gin.Context, err error) {
	log.FromContext(c.Request.Context(), h.logger).Debug("invalid request body", "error", err)
	response.Error(c, http.StatusBadRequest, codeInvalidParams, "参数错误")
}

// fail 将应用层错误映射为 HTTP 状态码，存储错误只记录日志不返回细节
func (h *TodoHandler) fail(c *gin.Context, err error, code int, message string) {
	switch {
	case errors.Is(err, domainTodo.ErrInvalidTitle):
		h.badRequest(c, err)
	case errors.Is(err, domainTodo.ErrNotFound):
		response.Error(c, http.StatusNotFound, codeNotFound, "待办不存在")
	default:
		log.FromContext(c.Request.Context(), h.logger).Error(message, "error", err)
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}
