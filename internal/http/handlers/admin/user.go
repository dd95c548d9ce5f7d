package admin

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/gin-gonic/gin"
)

// UserStatusRequest 用户状态请求
type UserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active disabled"`
}

// ListUsers 获取用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	users, total, err := h.AuthService.ListUsers(handlershared.SessionFrom(c), repository.UserListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     strings.TrimSpace(c.Query("keyword")),
		Role:        strings.ToUpper(strings.TrimSpace(c.Query("role"))),
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, users, page, pageSize, total)
}

// UpdateUserStatus 启用/禁用用户
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req UserStatusRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	if err := h.AuthService.UpdateUserStatus(handlershared.SessionFrom(c), id, req.Status); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "user.status_updated", nil)
}

// ListUserLoginLogs 获取登录审计
func (h *Handler) ListUserLoginLogs(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	logs, total, err := h.UserLoginLogService.ListForAdmin(handlershared.SessionFrom(c), repository.UserLoginLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      handlershared.ParseQueryUint(c, "user_id"),
		Email:       strings.TrimSpace(c.Query("email")),
		Status:      strings.TrimSpace(c.Query("status")),
		ClientIP:    strings.TrimSpace(c.Query("client_ip")),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, logs, page, pageSize, total)
}
