package shared

import (
	"strconv"
	"strings"

	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionContextKey 鉴权中间件写入会话的上下文 key
const SessionContextKey = "session"

// SetSession 写入会话。
func SetSession(c *gin.Context, session *service.Session) {
	c.Set(SessionContextKey, session)
	c.Set("user_id", session.UserID)
	c.Set("user_role", session.Role)
}

// SessionFrom 读取会话，未登录返回 nil。
func SessionFrom(c *gin.Context) *service.Session {
	value, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*service.Session)
	if !ok || session == nil {
		return nil
	}
	if session.RequestID == "" {
		if requestID, ok := c.Get("request_id"); ok {
			if id, ok := requestID.(string); ok {
				session.RequestID = id
			}
		}
	}
	return session
}

// ParseParamUint 解析路径参数中的正整数 ID，失败时直接写入错误响应。
func ParseParamUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseQueryUint 解析可选的查询参数，非法或缺省返回 0。
func ParseQueryUint(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
