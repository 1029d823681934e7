// Package errors 错误处理测试
package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("错误消息格式", func(t *testing.T) {
		err := New(2000, "请输入姓氏")
		assert.Equal(t, "[2000] 请输入姓氏", err.Error())
	})

	t.Run("包装原始错误", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(1003, "外部服务错误", cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, cause, stderrors.Unwrap(err))
	})

	t.Run("WithMessage不修改原错误", func(t *testing.T) {
		modified := ErrInvalidCategory.WithMessage("自定义消息")
		assert.Equal(t, "自定义消息", modified.Message)
		assert.Equal(t, ErrInvalidCategory.Code, modified.Code)
		assert.Equal(t, "无效的商家分类", ErrInvalidCategory.Message)
	})

	t.Run("WithError保留错误码", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := ErrNamingUnavailable.WithError(cause)
		assert.Equal(t, 2002, err.Code)
		assert.Equal(t, cause, err.Err)
	})
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrSurnameRequired))
	assert.False(t, IsAppError(stderrors.New("plain")))
}

func TestGetAppError(t *testing.T) {
	t.Run("透传应用错误", func(t *testing.T) {
		assert.Equal(t, ErrInvalidPage, GetAppError(ErrInvalidPage))
	})

	t.Run("普通错误归为未知错误", func(t *testing.T) {
		err := GetAppError(stderrors.New("boom"))
		assert.Equal(t, ErrUnknown.Code, err.Code)
	})
}

func TestErrorCodeRanges(t *testing.T) {
	// 错误码分段：1xxx 通用 / 2xxx 起名 / 3xxx 外卖
	for _, err := range []*AppError{ErrUnknown, ErrInvalidParams, ErrInternalError, ErrExternalService, ErrRateLimitExceed, ErrCacheError} {
		assert.GreaterOrEqual(t, err.Code, 1000)
		assert.Less(t, err.Code, 2000)
	}
	for _, err := range []*AppError{ErrSurnameRequired, ErrPaymentProofRequired, ErrNamingUnavailable} {
		assert.GreaterOrEqual(t, err.Code, 2000)
		assert.Less(t, err.Code, 3000)
	}
	for _, err := range []*AppError{ErrInvalidCategory, ErrInvalidPage, ErrPOIUnavailable} {
		assert.GreaterOrEqual(t, err.Code, 3000)
		assert.Less(t, err.Code, 4000)
	}
}
