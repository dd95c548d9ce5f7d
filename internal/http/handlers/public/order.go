package public

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/repository"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	CartID          uint   `json:"cart_id" binding:"required"`
	ShippingName    string `json:"shipping_name" binding:"required,max=100"`
	ShippingPhone   string `json:"shipping_phone" binding:"max=50"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=500"`
}

// PlaceOrder 由购物车创建订单
func (h *Handler) PlaceOrder(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	order, err := h.OrderService.PlaceOrder(session, service.PlaceOrderInput{
		CartID:          req.CartID,
		ShippingName:    req.ShippingName,
		ShippingPhone:   req.ShippingPhone,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "order.placed", order)
}

// ListOrders 获取我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.ListMine(session, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(session, orderID)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondData(c, order)
}

// GetOrderByOrderNo 按订单号获取订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByOrderNo(session, c.Param("order_no"))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondData(c, order)
}
