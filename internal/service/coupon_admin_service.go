package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"gorm.io/gorm"
)

// CouponAdminService 卖家优惠券管理服务
type CouponAdminService struct {
	couponRepo repository.CouponRepository
	storeRepo  repository.StoreRepository
	cartRepo   repository.CartRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(couponRepo repository.CouponRepository, storeRepo repository.StoreRepository, cartRepo repository.CartRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo, storeRepo: storeRepo, cartRepo: cartRepo}
}

// CouponInput 创建/更新优惠券输入
type CouponInput struct {
	Code      string
	Discount  int
	StartDate time.Time
	EndDate   time.Time
}

func (in CouponInput) normalized() (CouponInput, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if len([]rune(in.Code)) < constants.CouponCodeMinLen {
		return in, ErrCouponCodeInvalid
	}
	if in.Discount < constants.CouponDiscountMin || in.Discount > constants.CouponDiscountMax {
		return in, ErrCouponDiscountInvalid
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || !in.EndDate.After(in.StartDate) {
		return in, ErrCouponDateRangeInvalid
	}
	return in, nil
}

// List 查询店铺优惠券
func (s *CouponAdminService) List(session *Session, storeID uint, code string, page, pageSize int) ([]models.Coupon, int64, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, 0, err
	}
	return s.couponRepo.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Code:     strings.ToUpper(strings.TrimSpace(code)),
	})
}

// Create 创建优惠券
func (s *CouponAdminService) Create(session *Session, storeID uint, input CouponInput) (*models.Coupon, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, err
	}
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.GetByStoreAndCode(storeID, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeExists
	}

	coupon := &models.Coupon{
		StoreID:   storeID,
		Code:      input.Code,
		Discount:  input.Discount,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	// 已删除的同码优惠券仍占用唯一索引，直接恢复该记录
	deleted, err := s.couponRepo.GetDeletedByStoreAndCode(storeID, input.Code)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		coupon.ID = deleted.ID
		if err := s.couponRepo.Restore(coupon); err != nil {
			return nil, err
		}
		return s.couponRepo.GetByID(coupon.ID)
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponAdminService) Update(session *Session, storeID, couponID uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.ownedCoupon(session, storeID, couponID)
	if err != nil {
		return nil, err
	}
	input, err = input.normalized()
	if err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.GetByStoreAndCode(storeID, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != coupon.ID {
		return nil, ErrCouponCodeExists
	}
	if input.Code != coupon.Code {
		deleted, err := s.couponRepo.GetDeletedByStoreAndCode(storeID, input.Code)
		if err != nil {
			return nil, err
		}
		if deleted != nil {
			return nil, ErrCouponCodeExists
		}
	}

	coupon.Code = input.Code
	coupon.Discount = input.Discount
	coupon.StartDate = input.StartDate
	coupon.EndDate = input.EndDate
	coupon.Store = nil
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(session *Session, storeID, couponID uint) error {
	coupon, err := s.ownedCoupon(session, storeID, couponID)
	if err != nil {
		return err
	}
	var released []models.Cart
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		carts, err := cartRepo.ListByCouponID(coupon.ID)
		if err != nil {
			return err
		}
		// 使用中的购物车同时移除优惠并恢复原价
		for _, cart := range carts {
			total := models.NewMoneyFromDecimal(cart.Subtotal.Add(cart.ShippingFees.Decimal))
			if err := cartRepo.DetachCoupon(cart.ID, total); err != nil {
				return err
			}
		}
		released = carts
		return s.couponRepo.WithTx(tx).Delete(coupon.ID)
	})
	if err != nil {
		return err
	}
	for _, cart := range released {
		if err := cache.DelCartSnapshot(context.Background(), cart.UserID); err != nil {
			logger.Warnw("cart_snapshot_invalidate_failed", "user_id", cart.UserID, "error", err)
		}
	}
	logger.Infow("coupon_deleted",
		"coupon_id", coupon.ID,
		"store_id", storeID,
		"released_carts", len(released),
		"request_id", session.RequestID,
	)
	return nil
}

func (s *CouponAdminService) ownedCoupon(session *Session, storeID, couponID uint) (*models.Coupon, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, err
	}
	coupon, err := s.couponRepo.GetByID(couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil || coupon.StoreID != storeID {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}
