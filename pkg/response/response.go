package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`           // 状态码
	Message string `json:"message"`        // 响应消息
	Data    any    `json:"data"`           // 响应数据
	Meta    any    `json:"meta,omitempty"` // 元数据，如分页信息
}

// PageMeta 分页元数据
type PageMeta struct {
	Offset int   `json:"offset"` // 跳过条数
	Limit  int   `json:"limit"`  // 每页条数
	Total  int64 `json:"total"`  // 总记录数
}

// Success 返回成功响应
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 返回创建成功响应
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// SuccessPage 返回分页成功响应
func SuccessPage(c *gin.Context, message string, data any, offset, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
		Meta: PageMeta{
			Offset: offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string, err error) {
	// 记录详细错误信息，但不向客户端暴露
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context, message string, err error) {
	Error(c, http.StatusUnauthorized, message, err)
}

// StatusOf 业务错误对应的HTTP状态码
func StatusOf(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errcode.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errcode.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errcode.ErrUnauthenticated), errors.Is(err, errcode.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errcode.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError 按错误类别输出响应，未分类错误统一返回 fallback 消息
func FromError(c *gin.Context, fallback string, err error) {
	status := StatusOf(err)

	message := errcode.Message(err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		message = FormatValidationError(verrs)
	}
	if message == "" || status == http.StatusInternalServerError {
		message = fallback
	}

	Error(c, status, message, err)
}
