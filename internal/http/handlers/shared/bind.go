package shared

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// RegisterValidatorTagNames 让校验错误使用 json 字段名。
func RegisterValidatorTagNames() {
	registerTagNameOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// BindAction 绑定 JSON 请求体，失败时以表单动作结构返回字段错误。
func BindAction(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ActionErrors(c, response.CodeBadRequest, ValidationErrors(c, err))
		return false
	}
	return true
}

// ValidationErrors 将绑定错误转为按字段聚合的本地化文案。
func ValidationErrors(c *gin.Context, err error) map[string][]string {
	locale := i18n.ResolveLocale(c)
	result := make(map[string][]string)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result[response.FormErrorKey] = []string{i18n.T(locale, "error.bad_request")}
		return result
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		result[field] = append(result[field], validationMessage(locale, fe))
	}
	return result
}

func validationMessage(locale string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "email", "url":
		return i18n.T(locale, "validation."+fe.Tag())
	case "min", "max", "gt", "gte", "lte":
		return i18n.Sprintf(locale, "validation."+fe.Tag(), fe.Param())
	case "oneof":
		return i18n.Sprintf(locale, "validation.oneof", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return i18n.T(locale, "validation.invalid")
	}
}
