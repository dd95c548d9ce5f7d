package public

import (
	"strings"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表（with_sub=1 时附带子分类）
func (h *Handler) GetCategories(c *gin.Context) {
	withSub := c.Query("with_sub") == "1" || strings.EqualFold(c.Query("with_sub"), "true")
	categories, err := h.CategoryService.List(withSub)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryBySlug 获取分类详情
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// GetSubCategories 获取子分类列表
func (h *Handler) GetSubCategories(c *gin.Context) {
	subCategories, err := h.SubCategoryService.List(handlershared.ParseQueryUint(c, "category_id"))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, subCategories)
}

// GetOfferTags 获取活动标签列表
func (h *Handler) GetOfferTags(c *gin.Context) {
	tags, err := h.OfferTagService.List()
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, tags)
}

// GetProducts 获取公开商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	products, total, err := h.ProductService.ListPublic(service.PublicProductQuery{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    handlershared.ParseQueryUint(c, "category_id"),
		SubCategoryID: handlershared.ParseQueryUint(c, "sub_category_id"),
		OfferTagID:    handlershared.ParseQueryUint(c, "offer_tag_id"),
		StoreID:       handlershared.ParseQueryUint(c, "store_id"),
		Search:        c.Query("search"),
		OrderBy:       c.Query("order_by"),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetProductBySlug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// GetStoreByURL 获取店铺主页信息
func (h *Handler) GetStoreByURL(c *gin.Context) {
	store, err := h.StoreService.GetByURL(c.Param("url"))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, store)
}
