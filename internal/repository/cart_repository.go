package repository

import (
	"errors"
	"time"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByID(id uint) (*models.Cart, error)
	GetByUserID(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	ReplaceItems(cartID uint, items []models.CartItem) error
	UpdateTotals(cart *models.Cart) error
	AttachCoupon(cartID, couponID uint, total models.Money) (int64, error)
	DetachCoupon(cartID uint, total models.Money) error
	ListByCouponID(couponID uint) ([]models.Cart, error)
	Delete(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) snapshotQuery() *gorm.DB {
	return r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Coupon.Store")
}

// GetByID 根据 ID 获取购物车快照（含购物车项与优惠券店铺）
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.snapshotQuery().First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserID 获取用户购物车快照
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.snapshotQuery().Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Omit("Coupon").Create(cart).Error
}

// ReplaceItems 整体替换购物车项
func (r *GormCartRepository) ReplaceItems(cartID uint, items []models.CartItem) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].CartID = cartID
	}
	return r.db.Create(&items).Error
}

// UpdateTotals 写入购物车金额与优惠券字段
func (r *GormCartRepository) UpdateTotals(cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"coupon_id":     cart.CouponID,
		"subtotal":      cart.Subtotal,
		"shipping_fees": cart.ShippingFees,
		"total":         cart.Total,
		"updated_at":    time.Now(),
	}).Error
}

// AttachCoupon 仅当购物车尚未应用优惠券时写入优惠券与新总额，返回影响行数
func (r *GormCartRepository) AttachCoupon(cartID, couponID uint, total models.Money) (int64, error) {
	result := r.db.Model(&models.Cart{}).
		Where("id = ? AND coupon_id IS NULL", cartID).
		Updates(map[string]interface{}{
			"coupon_id":  couponID,
			"total":      total,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DetachCoupon 移除购物车优惠券并恢复总额
func (r *GormCartRepository) DetachCoupon(cartID uint, total models.Money) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"coupon_id":  nil,
		"total":      total,
		"updated_at": time.Now(),
	}).Error
}

// ListByCouponID 获取使用指定优惠券的购物车（不含购物车项）
func (r *GormCartRepository) ListByCouponID(couponID uint) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.Where("coupon_id = ?", couponID).Order("id ASC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// Delete 删除购物车及其购物车项
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}
