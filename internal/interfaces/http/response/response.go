package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应，不包含内部错误细节
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OK 成功响应，直接返回数据本身
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent 成功响应，无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
	})
}
