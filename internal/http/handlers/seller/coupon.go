package seller

import (
	"strings"
	"time"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest 优惠券创建/更新请求
type CouponRequest struct {
	Code      string    `json:"code" binding:"required,min=2,max=50"`
	Discount  int       `json:"discount" binding:"required,gte=1,lte=99"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (r CouponRequest) toServiceInput() service.CouponInput {
	return service.CouponInput{
		Code:      r.Code,
		Discount:  r.Discount,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// ListCoupons 获取店铺优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	coupons, total, err := h.CouponAdminService.List(session, storeID, strings.TrimSpace(c.Query("code")), page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, coupons, handlershared.BuildPagination(page, pageSize, total))
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	var req CouponRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	coupon, err := h.CouponAdminService.Create(session, storeID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "coupon.created", coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	couponID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req CouponRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	coupon, err := h.CouponAdminService.Update(session, storeID, couponID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "coupon.updated", coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	couponID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(session, storeID, couponID); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "coupon.deleted", nil)
}
