package response

import (
	"errors"
	"net/http"

	"pinory-system/internal/errs"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// Conflict 409错误
func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// FromError 按哨兵错误映射响应码
// 不在已知分类内的错误按500处理，不向客户端泄露内部细节
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, errs.ErrUnauthenticated):
		Unauthorized(c, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, errs.ErrSelfRequest):
		BadRequest(c, err.Error())
	case errors.Is(err, errs.ErrAlreadyFriends),
		errors.Is(err, errs.ErrRequestAlreadySent),
		errors.Is(err, errs.ErrUserExists):
		Conflict(c, err.Error())
	case errors.Is(err, errs.ErrRequestForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, errs.ErrSlugExhausted):
		// 可重试的服务端错误
		InternalError(c, err.Error())
	default:
		InternalError(c, "internal error")
	}
}
