package repository

import (
	"errors"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// SubCategoryRepository 子分类数据访问接口
type SubCategoryRepository interface {
	List(categoryID uint) ([]models.SubCategory, error)
	GetByID(id uint) (*models.SubCategory, error)
	Create(subCategory *models.SubCategory) error
	Update(subCategory *models.SubCategory) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountProducts(subCategoryID uint) (int64, error)
}

// GormSubCategoryRepository GORM 实现
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建子分类仓库
func NewSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

// List 子分类列表，categoryID 为 0 时返回全部
func (r *GormSubCategoryRepository) List(categoryID uint) ([]models.SubCategory, error) {
	query := r.db.Model(&models.SubCategory{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	var subCategories []models.SubCategory
	if err := query.Order("id ASC").Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

// GetByID 根据 ID 获取子分类
func (r *GormSubCategoryRepository) GetByID(id uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := r.db.Preload("Category").First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

// Create 创建子分类
func (r *GormSubCategoryRepository) Create(subCategory *models.SubCategory) error {
	return r.db.Create(subCategory).Error
}

// Update 更新子分类
func (r *GormSubCategoryRepository) Update(subCategory *models.SubCategory) error {
	return r.db.Omit("Category").Save(subCategory).Error
}

// Delete 删除子分类
func (r *GormSubCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubCategory{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormSubCategoryRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.SubCategory{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计子分类下商品数量
func (r *GormSubCategoryRepository) CountProducts(subCategoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("sub_category_id = ?", subCategoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
