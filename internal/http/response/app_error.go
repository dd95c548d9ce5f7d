package response

// AppError 处理器层统一错误：业务码 + 本地化文案 + 可选表单字段
type AppError struct {
	Code    int
	Field   string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithField 关联到表单字段，表单动作响应按字段聚合
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// FormField 返回错误归属的表单 key，未关联字段时为 _form
func (e *AppError) FormField() string {
	if e == nil || e.Field == "" {
		return FormErrorKey
	}
	return e.Field
}
