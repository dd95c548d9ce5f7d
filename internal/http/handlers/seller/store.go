package seller

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreUpdateRequest 店铺资料更新
type StoreUpdateRequest struct {
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

// ListMyStores 获取我的店铺
func (h *Handler) ListMyStores(c *gin.Context) {
	session := handlershared.SessionFrom(c)
	stores, err := h.StoreService.ListMine(session)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, stores)
}

// UpdateStore 更新店铺资料
func (h *Handler) UpdateStore(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	var req StoreUpdateRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	store, err := h.StoreService.Update(session, storeID, service.StoreInput{
		Name:                         req.Name,
		URL:                          req.URL,
		Description:                  req.Description,
		Email:                        req.Email,
		Phone:                        req.Phone,
		Logo:                         req.Logo,
		Cover:                        req.Cover,
		ShippingFeePerItem:           req.ShippingFeePerItem,
		ShippingFeeForAdditionalItem: req.ShippingFeeForAdditionalItem,
		ReturnPolicy:                 req.ReturnPolicy,
	})
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "store.updated", store)
}
