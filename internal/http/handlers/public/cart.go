package public

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// CartLineRequest 购物车行
type CartLineRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

// SaveCartRequest 保存购物车请求（整体覆盖）
type SaveCartRequest struct {
	Items []CartLineRequest `json:"items" binding:"dive"`
}

// ApplyCouponRequest 使用优惠券请求
type ApplyCouponRequest struct {
	Code   string `json:"code" binding:"required"`
	CartID uint   `json:"cart_id" binding:"required"`
}

// RemoveCouponRequest 移除优惠券请求
type RemoveCouponRequest struct {
	CartID uint `json:"cart_id" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(session)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondData(c, cart)
}

// SaveCart 保存购物车，商品变动会清除已使用的优惠券
func (h *Handler) SaveCart(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req SaveCartRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	lines := make([]service.CartLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.CartLineInput{VariantID: item.VariantID, Quantity: item.Quantity})
	}
	cart, err := h.CartService.Save(session, lines)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "cart.saved", cart)
}

// ApplyCoupon 对购物车使用优惠券
func (h *Handler) ApplyCoupon(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req ApplyCouponRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	result, err := h.CouponService.ApplyCoupon(session, req.Code, req.CartID)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "coupon.applied", result.Cart,
		result.StoreName, result.DiscountAmount.StringFixed(2))
}

// RemoveCoupon 移除购物车优惠券
func (h *Handler) RemoveCoupon(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req RemoveCouponRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	cart, err := h.CartService.RemoveCoupon(session, req.CartID)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "coupon.removed", cart)
}
