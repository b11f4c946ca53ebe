package errors

import (
	"errors"
	"time"

	"github.com/fitkeys/workout-sync-service/pkg/code"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails 设置详情并返回自身（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// IsValidation reports whether err carries a validation code
// IsValidation 判断错误是否属于校验类（本地状态未变化）
func IsValidation(err error) bool {
	var c *code.Code
	if errors.As(err, &c) {
		return code.IsValidation(c)
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code >= 20000 && appErr.Code < 30000
	}
	return false
}

// IsPersistence 判断错误是否属于持久化类（乐观状态已生效）
func IsPersistence(err error) bool {
	var c *code.Code
	if errors.As(err, &c) {
		return code.IsPersistence(c)
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code >= 30000 && appErr.Code < 40000
	}
	return false
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
