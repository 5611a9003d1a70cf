package errcode

import (
	"errors"
	"fmt"
)

// 错误类别哨兵，调用方通过 errors.Is 判断
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error 带可读消息的业务错误
type Error struct {
	Err     error  // 错误类别
	Message string // 返回给调用方的消息
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 资源不存在
func NotFound(format string, args ...any) *Error {
	return &Error{Err: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// ArticleNotFound 按slug查找文章失败
func ArticleNotFound(slug string) *Error {
	return NotFound("Article not found by slug: `%s`", slug)
}

// CommentNotFound 按ID查找评论失败
func CommentNotFound(id uint) *Error {
	return NotFound("Comment not found by id: `%d`", id)
}

// UserNotFound 按用户名查找用户失败
func UserNotFound(username string) *Error {
	return NotFound("User(`%s`) not found", username)
}

func Forbidden(message string) *Error {
	return &Error{Err: ErrForbidden, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Err: ErrUnauthenticated, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Err: ErrConflict, Message: message}
}

func InvalidCredentials(message string) *Error {
	return &Error{Err: ErrInvalidCredentials, Message: message}
}

// Message 取出业务错误消息，非业务错误返回空串
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
