package errs

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

// CodeError 业务错误，携带 HTTP 状态码
type CodeError struct {
	Code int    `json:"-"`
	Msg  string `json:"error"`
}

func (e *CodeError) Error() string {
	return e.Msg
}

func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func Unauthorized(msg string) *CodeError {
	return New(http.StatusUnauthorized, msg)
}

func InvalidInput(msg string) *CodeError {
	return New(http.StatusBadRequest, msg)
}

func NotFound(msg string) *CodeError {
	return New(http.StatusNotFound, msg)
}

// ErrorBody is the JSON body returned for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// HTTPHandler maps errors to status codes for httpx.SetErrorHandlerCtx.
// 未知错误一律 500，细节只进日志不出接口
func HTTPHandler(ctx context.Context, err error) (int, any) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code, ErrorBody{Error: ce.Msg}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, ErrorBody{Error: "not found"}
	}
	logx.WithContext(ctx).Errorf("internal error: %v", err)
	return http.StatusInternalServerError, ErrorBody{Error: "internal server error"}
}
