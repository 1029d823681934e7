// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrInternalError   = New(1002, "内部错误")
	ErrExternalService = New(1003, "外部服务错误")
	ErrRateLimitExceed = New(1004, "请求过于频繁")
	ErrCacheError      = New(1005, "缓存错误")
)

// 起名错误码 (2000-2999)
var (
	ErrSurnameRequired      = New(2000, "请输入姓氏")
	ErrPaymentProofRequired = New(2001, "请输入支付宝交易单号")
	ErrNamingUnavailable    = New(2002, "起名服务暂时不可用")
)

// 外卖搜索错误码 (3000-3999)
var (
	ErrInvalidCategory = New(3000, "无效的商家分类")
	ErrInvalidPage     = New(3001, "无效的页码")
	ErrPOIUnavailable  = New(3002, "周边商家查询暂时不可用")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
