package repository

import (
	"errors"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// OfferTagRepository 促销标签数据访问接口
type OfferTagRepository interface {
	List() ([]models.OfferTag, error)
	GetByID(id uint) (*models.OfferTag, error)
	Create(tag *models.OfferTag) error
	Update(tag *models.OfferTag) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountProducts(tagID uint) (int64, error)
}

// GormOfferTagRepository GORM 实现
type GormOfferTagRepository struct {
	db *gorm.DB
}

// NewOfferTagRepository 创建促销标签仓库
func NewOfferTagRepository(db *gorm.DB) *GormOfferTagRepository {
	return &GormOfferTagRepository{db: db}
}

// List 标签列表
func (r *GormOfferTagRepository) List() ([]models.OfferTag, error) {
	var tags []models.OfferTag
	if err := r.db.Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID 根据 ID 获取标签
func (r *GormOfferTagRepository) GetByID(id uint) (*models.OfferTag, error) {
	var tag models.OfferTag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create 创建标签
func (r *GormOfferTagRepository) Create(tag *models.OfferTag) error {
	return r.db.Create(tag).Error
}

// Update 更新标签
func (r *GormOfferTagRepository) Update(tag *models.OfferTag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签
func (r *GormOfferTagRepository) Delete(id uint) error {
	return r.db.Delete(&models.OfferTag{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormOfferTagRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.OfferTag{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计使用该标签的商品数量
func (r *GormOfferTagRepository) CountProducts(tagID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("offer_tag_id = ?", tagID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
