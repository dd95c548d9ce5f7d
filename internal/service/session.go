package service

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
)

// Session 已认证的调用方身份，由鉴权中间件注入并显式传入每个写操作
type Session struct {
	UserID    uint
	Role      string
	RequestID string
}

// RequireRole 校验会话存在且角色在允许列表内
func RequireRole(session *Session, roles ...string) error {
	if session == nil || session.UserID == 0 {
		return ErrUnauthorized
	}
	role := strings.ToUpper(strings.TrimSpace(session.Role))
	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}
	return ErrUnauthorized
}

// RequireUser 校验会话存在（任意角色）
func RequireUser(session *Session) error {
	return RequireRole(session, constants.RoleAdmin, constants.RoleSeller, constants.RoleUser)
}
