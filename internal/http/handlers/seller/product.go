package seller

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// VariantRequest 规格请求
type VariantRequest struct {
	Name     string       `json:"name" binding:"required,max=120"`
	SKU      string       `json:"sku" binding:"required,max=64"`
	Price    models.Money `json:"price"`
	Stock    int          `json:"stock" binding:"gte=0"`
	Image    string       `json:"image"`
	IsActive *bool        `json:"is_active"`
}

func (r VariantRequest) toServiceInput() service.VariantInput {
	return service.VariantInput{
		Name:     r.Name,
		SKU:      r.SKU,
		Price:    r.Price.Decimal,
		Stock:    r.Stock,
		Image:    r.Image,
		IsActive: r.IsActive,
	}
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID    uint             `json:"category_id" binding:"required"`
	SubCategoryID uint             `json:"sub_category_id" binding:"required"`
	OfferTagID    *uint            `json:"offer_tag_id"`
	Name          string           `json:"name" binding:"required,max=200"`
	Slug          string           `json:"slug" binding:"max=200"`
	Brand         string           `json:"brand" binding:"max=120"`
	Description   string           `json:"description"`
	Images        []string         `json:"images"`
	IsActive      *bool            `json:"is_active"`
	Variants      []VariantRequest `json:"variants" binding:"dive"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	variants := make([]service.VariantInput, 0, len(r.Variants))
	for _, item := range r.Variants {
		variants = append(variants, item.toServiceInput())
	}
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		SubCategoryID: r.SubCategoryID,
		OfferTagID:    r.OfferTagID,
		Name:          r.Name,
		Slug:          r.Slug,
		Brand:         r.Brand,
		Description:   r.Description,
		Images:        r.Images,
		IsActive:      r.IsActive,
		Variants:      variants,
	}
}

// ListProducts 获取店铺商品
func (h *Handler) ListProducts(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	products, total, err := h.ProductService.ListStoreProducts(session, storeID, strings.TrimSpace(c.Query("search")), page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	var req ProductRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	product, err := h.ProductService.Create(session, storeID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "product.created", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	product, err := h.ProductService.Update(session, storeID, productID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "product.updated", product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(session, storeID, productID); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "product.deleted", nil)
}

// CreateVariant 新增规格
func (h *Handler) CreateVariant(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req VariantRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	variant, err := h.ProductService.CreateVariant(session, storeID, productID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "variant.created", variant)
}

// UpdateVariant 更新规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	variantID, ok := handlershared.ParseParamUint(c, "variant_id")
	if !ok {
		return
	}
	var req VariantRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	variant, err := h.ProductService.UpdateVariant(session, storeID, productID, variantID, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "variant.updated", variant)
}

// DeleteVariant 删除规格
func (h *Handler) DeleteVariant(c *gin.Context) {
	session, storeID, ok := sellerScope(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	variantID, ok := handlershared.ParseParamUint(c, "variant_id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteVariant(session, storeID, productID, variantID); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "variant.deleted", nil)
}
