package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
)

// Response 定义统一的响应格式
// 前端以 success 字段为准判断请求结果，code 保留给调用方排查问题
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// 是否在错误响应中携带底层错误详情（生产环境关闭）
var exposeErrorDetail = true

// SetExposeErrorDetail 配置错误详情透出开关
func SetExposeErrorDetail(expose bool) {
	exposeErrorDetail = expose
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// SuccessWithMessage 成功响应（自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    code.ErrSuccess,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Code:    code.ErrSuccess,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int, data interface{}) {
	httpStatus := code.GetStatus(errorCode)
	message := code.GetMessage(errorCode)

	c.JSON(httpStatus, Response{
		Success: false,
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	httpStatus := code.GetStatus(errorCode)

	c.JSON(httpStatus, Response{
		Success: false,
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithError 失败响应（附带底层错误，生产环境不透出详情）
func FailWithError(c *gin.Context, errorCode int, message string, err error) {
	httpStatus := code.GetStatus(errorCode)

	resp := Response{
		Success: false,
		Code:    errorCode,
		Message: message,
	}
	if err != nil && exposeErrorDetail {
		resp.Error = err.Error()
	}

	c.JSON(httpStatus, resp)
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError 服务器错误响应
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	FailWithMessage(c, code.ErrRecordNotFound, message, nil)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, errorCode int) {
	Fail(c, errorCode, nil)
}

// Forbidden 权限不足响应
func Forbidden(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrPermissionDenied, message, nil)
}
