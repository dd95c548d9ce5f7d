package seller

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/gin-gonic/gin"
)

// StatusUpdateRequest 状态更新请求
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrderGroups 获取店铺订单分组
func (h *Handler) ListOrderGroups(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	groups, total, err := h.OrderService.ListStoreGroups(session, storeID, strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, groups, handlershared.BuildPagination(page, pageSize, total))
}

// UpdateOrderGroupStatus 更新店铺订单分组状态
func (h *Handler) UpdateOrderGroupStatus(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	groupID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req StatusUpdateRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	group, err := h.OrderStatusService.UpdateOrderGroupStatus(session, storeID, groupID, req.Status)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "order_group.status_updated", group)
}

// UpdateOrderItemStatus 更新店铺订单项状态
func (h *Handler) UpdateOrderItemStatus(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req StatusUpdateRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	item, err := h.OrderStatusService.UpdateOrderItemStatus(session, storeID, itemID, req.Status)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "order_item.status_updated", item)
}

// ListStatusHistory 获取店铺状态变更记录
func (h *Handler) ListStatusHistory(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	axis := strings.TrimSpace(c.Query("axis"))
	if axis != "" && axis != constants.StatusAxisOrderGroup && axis != constants.StatusAxisOrderItem {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	records, total, err := h.OrderStatusService.ListHistory(session, repository.StatusHistoryFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Axis:     axis,
		TargetID: handlershared.ParseQueryUint(c, "target_id"),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, records, handlershared.BuildPagination(page, pageSize, total))
}
