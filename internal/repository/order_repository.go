package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	GetGroupByID(id uint) (*models.OrderGroup, error)
	ListGroupsByStore(filter OrderGroupListFilter) ([]models.OrderGroup, int64, error)
	GetItemByID(id uint) (*models.OrderItem, error)
	UpdateGroupStatus(id uint, status string) error
	UpdateItemStatus(id uint, status string) error
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withGroups(query *gorm.DB) *gorm.DB {
	return query.Preload("Groups", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Groups.Store").Preload("Groups.Coupon").Preload("Groups.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// Create 创建订单（连同店铺分组与订单项）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withGroups(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取用户订单
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withGroups(r.db).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNoAndUser 按订单号获取用户订单
func (r *GormOrderRepository) GetByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withGroups(r.db).Where("order_no = ? AND user_id = ?", orderNo, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser 用户订单列表
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	return r.listOrders(query, filter)
}

// ListAdmin 后台订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.listOrders(query, filter)
}

func (r *GormOrderRepository) listOrders(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if orderNo := strings.TrimSpace(filter.OrderNo); orderNo != "" {
		query = query.Where("order_no = ?", orderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := r.withGroups(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetGroupByID 根据 ID 获取订单分组（含订单项）
func (r *GormOrderRepository) GetGroupByID(id uint) (*models.OrderGroup, error) {
	var group models.OrderGroup
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// ListGroupsByStore 店铺订单分组列表
func (r *GormOrderRepository) ListGroupsByStore(filter OrderGroupListFilter) ([]models.OrderGroup, int64, error) {
	query := r.db.Model(&models.OrderGroup{}).Where("store_id = ?", filter.StoreID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var groups []models.OrderGroup
	if err := query.Preload("Order").Preload("Coupon").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("id desc").Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// GetItemByID 根据 ID 获取订单项
func (r *GormOrderRepository) GetItemByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateGroupStatus 更新订单分组状态
func (r *GormOrderRepository) UpdateGroupStatus(id uint, status string) error {
	return r.db.Model(&models.OrderGroup{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

// UpdateItemStatus 更新订单项状态
func (r *GormOrderRepository) UpdateItemStatus(id uint, status string) error {
	return r.db.Model(&models.OrderItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

// UpdateStatus 更新订单整体状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}
