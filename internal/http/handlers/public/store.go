package public

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreApplyRequest 开店申请
type StoreApplyRequest struct {
	Name                         string       `json:"name" binding:"required,min=2,max=120"`
	URL                          string       `json:"url" binding:"max=120"`
	Description                  string       `json:"description"`
	Email                        string       `json:"email" binding:"omitempty,email"`
	Phone                        string       `json:"phone" binding:"max=50"`
	Logo                         string       `json:"logo"`
	Cover                        string       `json:"cover"`
	ShippingFeePerItem           models.Money `json:"shipping_fee_per_item"`
	ShippingFeeForAdditionalItem models.Money `json:"shipping_fee_for_additional_item"`
	ReturnPolicy                 string       `json:"return_policy"`
}

// ToServiceInput 转换为 service 层输入
func (r StoreApplyRequest) ToServiceInput() service.StoreInput {
	return service.StoreInput{
		Name:                         r.Name,
		URL:                          r.URL,
		Description:                  r.Description,
		Email:                        r.Email,
		Phone:                        r.Phone,
		Logo:                         r.Logo,
		Cover:                        r.Cover,
		ShippingFeePerItem:           r.ShippingFeePerItem,
		ShippingFeeForAdditionalItem: r.ShippingFeeForAdditionalItem,
		ReturnPolicy:                 r.ReturnPolicy,
	}
}

// ApplyStore 申请开店，申请人升级为卖家并获得新的登录令牌
func (h *Handler) ApplyStore(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req StoreApplyRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	store, user, err := h.StoreService.Apply(session, req.ToServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	token, expiresAt, err := h.AuthService.GenerateJWT(user)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "store.applied", gin.H{
		"store":      store,
		"token":      token,
		"expires_at": expiresAt,
	})
}
