package admin

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 获取平台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.ListAdmin(handlershared.SessionFrom(c), repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      handlershared.ParseQueryUint(c, "user_id"),
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}
