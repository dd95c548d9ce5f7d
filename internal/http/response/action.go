package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ActionResult 表单动作响应：成功时携带 success 文案，失败时携带按字段分组的错误
type ActionResult struct {
	StatusCode int                 `json:"status_code"`
	Success    string              `json:"success,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Data       interface{}         `json:"data,omitempty"`
	RequestID  string              `json:"request_id,omitempty"`
}

// FormErrorKey 未关联具体字段的错误所归属的 key
const FormErrorKey = "_form"

// ActionSuccess 表单动作成功
func ActionSuccess(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, ActionResult{
		StatusCode: CodeOK,
		Success:    msg,
		Data:       data,
	})
}

// ActionErrors 表单动作失败，errors 按字段聚合
func ActionErrors(c *gin.Context, code int, errs map[string][]string) {
	c.JSON(http.StatusOK, ActionResult{
		StatusCode: code,
		Errors:     errs,
		RequestID:  requestIDOf(c),
	})
}

// ActionError 单条错误的便捷写法，field 为空时归入 _form
func ActionError(c *gin.Context, code int, field, msg string) {
	ActionFail(c, &AppError{Code: code, Field: field, Message: msg})
}

// ActionFail 以 AppError 输出表单动作错误
func ActionFail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		appErr = &AppError{Code: CodeInternal, Message: "internal error"}
	}
	ActionErrors(c, appErr.Code, map[string][]string{appErr.FormField(): {appErr.Message}})
}

func requestIDOf(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
