package repository

import (
	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// OrderStatusHistoryRepository 订单状态变更记录数据访问接口
type OrderStatusHistoryRepository interface {
	Create(history *models.OrderStatusHistory) error
	List(filter StatusHistoryFilter) ([]models.OrderStatusHistory, int64, error)
	WithTx(tx *gorm.DB) OrderStatusHistoryRepository
}

// GormOrderStatusHistoryRepository GORM 实现
type GormOrderStatusHistoryRepository struct {
	db *gorm.DB
}

// NewOrderStatusHistoryRepository 创建订单状态变更记录仓库
func NewOrderStatusHistoryRepository(db *gorm.DB) *GormOrderStatusHistoryRepository {
	return &GormOrderStatusHistoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderStatusHistoryRepository) WithTx(tx *gorm.DB) OrderStatusHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormOrderStatusHistoryRepository{db: tx}
}

// Create 写入变更记录
func (r *GormOrderStatusHistoryRepository) Create(history *models.OrderStatusHistory) error {
	return r.db.Create(history).Error
}

// List 查询变更记录
func (r *GormOrderStatusHistoryRepository) List(filter StatusHistoryFilter) ([]models.OrderStatusHistory, int64, error) {
	query := r.db.Model(&models.OrderStatusHistory{})
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Axis != "" {
		query = query.Where("axis = ?", filter.Axis)
	}
	if filter.TargetID > 0 {
		query = query.Where("target_id = ?", filter.TargetID)
	}

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var histories []models.OrderStatusHistory
	if err := query.Order("id desc").Find(&histories).Error; err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}
