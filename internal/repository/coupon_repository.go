package repository

import (
	"errors"
	"time"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	ListByCode(code string) ([]models.Coupon, error)
	GetByStoreAndCode(storeID uint, code string) (*models.Coupon, error)
	GetDeletedByStoreAndCode(storeID uint, code string) (*models.Coupon, error)
	Restore(coupon *models.Coupon) error
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	WithTx(tx *gorm.DB) CouponRepository
}

// GormCouponRepository GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓库
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCouponRepository) WithTx(tx *gorm.DB) CouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID 根据ID获取优惠券
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Preload("Store").First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// ListByCode 获取所有店铺中使用该优惠码的优惠券（按创建顺序）
func (r *GormCouponRepository) ListByCode(code string) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Preload("Store").Where("code = ?", code).Order("id asc").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetByStoreAndCode 根据店铺与优惠码获取优惠券
func (r *GormCouponRepository) GetByStoreAndCode(storeID uint, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("store_id = ? AND code = ?", storeID, code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetDeletedByStoreAndCode 获取已软删除的同码优惠券（唯一索引仍占用该优惠码）
func (r *GormCouponRepository) GetDeletedByStoreAndCode(storeID uint, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Unscoped().
		Where("store_id = ? AND code = ? AND deleted_at IS NOT NULL", storeID, code).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Restore 恢复已软删除的优惠券并写入新的折扣与有效期
func (r *GormCouponRepository) Restore(coupon *models.Coupon) error {
	if coupon == nil {
		return nil
	}
	return r.db.Unscoped().Model(&models.Coupon{}).Where("id = ?", coupon.ID).Updates(map[string]interface{}{
		"deleted_at": nil,
		"discount":   coupon.Discount,
		"start_date": coupon.StartDate,
		"end_date":   coupon.EndDate,
		"updated_at": time.Now(),
	}).Error
}

// Create 创建优惠券
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Omit("Store").Create(coupon).Error
}

// Update 更新优惠券
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Omit("Store").Save(coupon).Error
}

// Delete 删除优惠券
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}

// List 获取优惠券列表
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	query := r.db.Model(&models.Coupon{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	if err := query.Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}
