package admin

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	URL       string `json:"url" binding:"max=120"`
	Image     string `json:"image"`
	Featured  bool   `json:"featured"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toServiceInput() service.CategoryInput {
	return service.CategoryInput{
		Name:      r.Name,
		URL:       r.URL,
		Image:     r.Image,
		Featured:  r.Featured,
		SortOrder: r.SortOrder,
	}
}

// SubCategoryRequest 子分类请求
type SubCategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=100"`
	URL        string `json:"url" binding:"max=120"`
	Image      string `json:"image"`
	Featured   bool   `json:"featured"`
}

func (r SubCategoryRequest) toServiceInput() service.SubCategoryInput {
	return service.SubCategoryInput{
		CategoryID: r.CategoryID,
		Name:       r.Name,
		URL:        r.URL,
		Image:      r.Image,
		Featured:   r.Featured,
	}
}

// OfferTagRequest 活动标签请求
type OfferTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	URL  string `json:"url" binding:"max=120"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	category, err := h.CategoryService.Create(handlershared.SessionFrom(c), req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "category.created", category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	category, err := h.CategoryService.Update(handlershared.SessionFrom(c), id, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "category.updated", category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(handlershared.SessionFrom(c), id); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "category.deleted", nil)
}

// CreateSubCategory 创建子分类
func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	subCategory, err := h.SubCategoryService.Create(handlershared.SessionFrom(c), req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "sub_category.created", subCategory)
}

// UpdateSubCategory 更新子分类
func (h *Handler) UpdateSubCategory(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req SubCategoryRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	subCategory, err := h.SubCategoryService.Update(handlershared.SessionFrom(c), id, req.toServiceInput())
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "sub_category.updated", subCategory)
}

// DeleteSubCategory 删除子分类
func (h *Handler) DeleteSubCategory(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.SubCategoryService.Delete(handlershared.SessionFrom(c), id); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "sub_category.deleted", nil)
}

// CreateOfferTag 创建活动标签
func (h *Handler) CreateOfferTag(c *gin.Context) {
	var req OfferTagRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	tag, err := h.OfferTagService.Create(handlershared.SessionFrom(c), service.OfferTagInput{Name: req.Name, URL: req.URL})
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "offer_tag.created", tag)
}

// UpdateOfferTag 更新活动标签
func (h *Handler) UpdateOfferTag(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	var req OfferTagRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	tag, err := h.OfferTagService.Update(handlershared.SessionFrom(c), id, service.OfferTagInput{Name: req.Name, URL: req.URL})
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "offer_tag.updated", tag)
}

// DeleteOfferTag 删除活动标签
func (h *Handler) DeleteOfferTag(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.OfferTagService.Delete(handlershared.SessionFrom(c), id); err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "offer_tag.deleted", nil)
}
