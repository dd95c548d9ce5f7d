package repository

import (
	"errors"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// StoreRepository 店铺数据访问接口
type StoreRepository interface {
	GetByID(id uint) (*models.Store, error)
	GetByURL(url string) (*models.Store, error)
	ListByUserID(userID uint) ([]models.Store, error)
	List(filter StoreListFilter) ([]models.Store, int64, error)
	CountByName(name string, excludeID uint) (int64, error)
	CountByURL(url string, excludeID uint) (int64, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) StoreRepository
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStoreRepository) WithTx(tx *gorm.DB) StoreRepository {
	if tx == nil {
		return r
	}
	return &GormStoreRepository{db: tx}
}

// GetByID 根据 ID 获取店铺
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByURL 根据访问路径获取店铺
func (r *GormStoreRepository) GetByURL(url string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("url = ?", url).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// ListByUserID 获取用户名下的店铺
func (r *GormStoreRepository) ListByUserID(userID uint) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// List 店铺列表
func (r *GormStoreRepository) List(filter StoreListFilter) ([]models.Store, int64, error) {
	query := r.db.Model(&models.Store{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = applyKeywordFilter(query, r.db, filter.Keyword, "name", "url")

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var stores []models.Store
	if err := query.Order("id desc").Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// CountByName 统计同名店铺数量
func (r *GormStoreRepository) CountByName(name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Store{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByURL 统计同路径店铺数量
func (r *GormStoreRepository) CountByURL(url string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Store{}).Where("url = ?", url)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建店铺
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新店铺
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// UpdateStatus 更新店铺状态
func (r *GormStoreRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Store{}).Where("id = ?", id).Update("status", status).Error
}
