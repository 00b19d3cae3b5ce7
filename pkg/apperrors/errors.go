// Package apperrors 定义了跨层使用的错误分类，以及到 HTTP 状态码的映射。
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// ReferenceNotFoundError 表示写入时引用的实体（user、solution、protocol 等）不存在。
type ReferenceNotFoundError struct {
	Reference string
	ID        string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Reference, e.ID)
}

// Unwrap 使 errors.Is(err, ErrNotFound) 成立。
func (e *ReferenceNotFoundError) Unwrap() error {
	return ErrNotFound
}

// HTTPStatus 将错误映射为 HTTP 状态码，未分类的错误一律视为 500。
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
