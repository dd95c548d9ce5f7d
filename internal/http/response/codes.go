package response

// 业务状态码，写入 status_code 字段；HTTP 状态统一为 200
const (
	CodeOK = 0

	// 请求与权限
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404

	// 登录限流
	CodeTooManyRequests = 429

	CodeInternal = 500
)
