package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketdesk/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Code       int          `json:"code"`
	Message    string       `json:"message"`
	Detail     string       `json:"detail,omitempty"` // 详细错误信息（可选）
	Data       interface{}  `json:"data,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"` // 字段级校验错误
}

// Pagination 分页元信息
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// FieldError 字段校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// PageSuccess 分页成功响应
func PageSuccess(c *gin.Context, data interface{}, pagination *Pagination) {
	c.JSON(http.StatusOK, Response{
		Code:       errors.CodeSuccess,
		Message:    "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应, 按错误码设置HTTP状态
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(httpStatus(appErr.Code), Response{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	// 未知错误一律按500处理, 不向外暴露内部细节
	c.JSON(http.StatusInternalServerError, Response{
		Code:    errors.CodeInternalError,
		Message: "内部服务器错误",
	})
}

// ErrorWithCode 自定义错误响应
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// ValidationError 参数校验错误响应, 携带字段级错误列表
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    errors.CodeBadRequest,
		Message: "请求参数错误",
		Detail:  FormatValidationError(err),
		Errors:  ExtractFieldErrors(err),
	})
}

// httpStatus 错误码到HTTP状态的映射
func httpStatus(code int) int {
	switch code {
	case errors.CodeBadRequest,
		errors.CodeUnauthorized,
		errors.CodeForbidden,
		errors.CodeNotFound,
		errors.CodeConflict:
		return code
	default:
		return http.StatusInternalServerError
	}
}
