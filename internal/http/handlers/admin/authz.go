package admin

import (
	"errors"
	"strings"

	"github.com/dujiao-next/market/internal/authz"
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/i18n"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest 角色策略调整请求，角色取自路径参数
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required,max=255"`
	Action string `json:"action" binding:"required,max=16"`
}

// ListRoles 获取 RBAC 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "error.unknown", err)
		return
	}
	response.Success(c, roles)
}

// GetRolePolicies 获取角色策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantRolePolicy 为买家或卖家角色追加路由授权
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	policy, err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action)
	if err != nil {
		respondRolePolicyError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("admin_authz_policy_granted",
		"operator_user_id", c.GetUint("user_id"),
		"role", policy.Subject,
		"object", policy.Object,
		"action", policy.Action,
	)
	handlershared.RespondActionSuccess(c, "authz.policy_granted", policy)
}

// RevokeRolePolicy 撤销买家或卖家角色的路由授权
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	policy, err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action)
	if err != nil {
		respondRolePolicyError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("admin_authz_policy_revoked",
		"operator_user_id", c.GetUint("user_id"),
		"role", policy.Subject,
		"object", policy.Object,
		"action", policy.Action,
	)
	handlershared.RespondActionSuccess(c, "authz.policy_revoked", policy)
}

func respondRolePolicyError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	switch {
	case errors.Is(err, authz.ErrRoleLocked):
		response.ActionError(c, response.CodeBadRequest, "role", i18n.T(locale, "error.role_locked"))
	case errors.Is(err, authz.ErrActionRequired):
		response.ActionError(c, response.CodeBadRequest, "action", i18n.T(locale, "validation.required"))
	case errors.Is(err, authz.ErrRoleNotAssignable), strings.TrimSpace(c.Param("role")) == "":
		response.ActionError(c, response.CodeBadRequest, "role", i18n.T(locale, "error.role_not_assignable"))
	default:
		handlershared.RequestLog(c).Errorw("admin_authz_policy_failed", "role", c.Param("role"), "error", err)
		response.ActionError(c, response.CodeInternal, "", i18n.T(locale, "error.unknown"))
	}
}
