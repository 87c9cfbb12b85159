// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 限流错误
	CodeRateLimited ErrorCode = "rate_limited"

	// 校验错误
	CodeMissingField        ErrorCode = "missing_field"
	CodeUnsupportedType     ErrorCode = "unsupported_type"
	CodeUnsupportedFormat   ErrorCode = "unsupported_format"
	CodeUnsupportedProvider ErrorCode = "unsupported_provider"
	CodeInvalidType         ErrorCode = "invalid_type"

	// 提供商错误
	CodeInvalidAPIKey       ErrorCode = "invalid_api_key"
	CodeNoImageReturned     ErrorCode = "no_image_returned"
	CodeBadRequest          ErrorCode = "bad_request"
	CodeProviderRateLimited ErrorCode = "provider_rate_limited"
	CodeProviderError       ErrorCode = "provider_error"

	// 持久化错误
	CodePersistFailed ErrorCode = "persist_failed"

	// 其他错误
	CodeUnknown ErrorCode = "unknown"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeRateLimited, CodeProviderRateLimited:
		return http.StatusTooManyRequests
	case CodeMissingField, CodeUnsupportedType, CodeUnsupportedFormat,
		CodeUnsupportedProvider, CodeInvalidType, CodeBadRequest:
		return http.StatusBadRequest
	case CodeInvalidAPIKey:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// MissingField 创建字段缺失错误
func MissingField(field string) *AppError {
	return New(CodeMissingField, fmt.Sprintf("missing required field: %s", field)).
		WithDetail(field)
}

// InvalidType 创建字段类型错误
func InvalidType(field string) *AppError {
	return New(CodeInvalidType, fmt.Sprintf("invalid type for field: %s", field)).
		WithDetail(field)
}

// 预定义错误，调用方只读，细节另建新错误携带
var (
	ErrRateLimited     = New(CodeRateLimited, "rate limit exceeded, try again later")
	ErrNoImageReturned = New(CodeNoImageReturned, "provider returned no image")
)

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "internal server error")
}
