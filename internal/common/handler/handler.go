// Package handler 提供 API Handler 的通用辅助函数
// 用于减少 Handler 层的代码重复，统一错误处理和参数解析
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/campus-life-backend/internal/common/errors"
	"github.com/dumeirei/campus-life-backend/internal/common/response"
)

// HandleError 处理错误并发送适当的响应
// 如果 err 为 nil，返回 false（表示无错误需要处理）
// 如果 err 不为 nil，发送错误响应并返回 true（表示已处理错误，调用方应该 return）
//
// 使用示例:
//
//	result, err := service.DoSomething()
//	if HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		response.Error(c, appErr.Code, appErr.Message)
		return true
	}
	response.InternalError(c, err.Error())
	return true
}

// MustSucceed 便捷封装：如果有错误则返回错误响应，否则返回成功响应
// 适用于简单的「调用服务 -> 返回结果」场景
//
// 使用示例:
//
//	result, err := service.GetData()
//	MustSucceed(c, err, result)
//	return  // 注意：调用 MustSucceed 后必须 return
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.Success(c, data)
}

// ParseQueryInt 解析查询参数为 int，参数缺失或非法时使用默认值
func ParseQueryInt(c *gin.Context, name string, defaultValue int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

// ParsePage 解析页码参数，保证结果 >= 1
func ParsePage(c *gin.Context) int {
	page := ParseQueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	return page
}
