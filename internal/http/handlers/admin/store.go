package admin

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/gin-gonic/gin"
)

// StoreStatusRequest 店铺状态请求
type StoreStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active banned"`
}

// ListStores 获取店铺列表
func (h *Handler) ListStores(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	stores, total, err := h.StoreService.ListAdmin(handlershared.SessionFrom(c), repository.StoreListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   handlershared.ParseQueryUint(c, "user_id"),
		Status:   strings.TrimSpace(c.Query("status")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, stores, page, pageSize, total)
}

// UpdateStoreStatus 审核/封禁店铺
func (h *Handler) UpdateStoreStatus(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req StoreStatusRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	store, err := h.StoreService.SetStatus(handlershared.SessionFrom(c), id, req.Status)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "store.status_updated", store)
}
