package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/metrics"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponService 优惠券应用服务
type CouponService struct {
	couponRepo repository.CouponRepository
	cartRepo   repository.CartRepository
	now        func() time.Time
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, cartRepo repository.CartRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		cartRepo:   cartRepo,
		now:        time.Now,
	}
}

// ApplyCouponResult 应用优惠券结果
type ApplyCouponResult struct {
	DiscountAmount models.Money `json:"discount_amount"`
	StoreName      string       `json:"store_name"`
	Cart           *models.Cart `json:"cart"`
}

// StoreDiscount 单店铺折扣计算结果
type StoreDiscount struct {
	SubTotal      decimal.Decimal
	ShippingTotal decimal.Decimal
	StoreTotal    decimal.Decimal
	Discounted    decimal.Decimal
	NewCartTotal  decimal.Decimal
}

// CalculateStoreDiscount 仅对优惠券所属店铺的购物车项计算折扣（运费同样参与折扣）
func CalculateStoreDiscount(cart *models.Cart, coupon *models.Coupon) (StoreDiscount, error) {
	result := StoreDiscount{
		SubTotal:      decimal.Zero,
		ShippingTotal: decimal.Zero,
	}
	if cart == nil || coupon == nil {
		return result, ErrNoEligibleItems
	}
	eligible := 0
	for _, item := range cart.Items {
		if item.StoreID != coupon.StoreID {
			continue
		}
		eligible++
		result.SubTotal = result.SubTotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		result.ShippingTotal = result.ShippingTotal.Add(item.ShippingFee.Decimal)
	}
	if eligible == 0 {
		return result, ErrNoEligibleItems
	}
	result.StoreTotal = result.SubTotal.Add(result.ShippingTotal)
	result.Discounted = result.StoreTotal.Mul(decimal.NewFromInt(int64(coupon.Discount))).
		Div(decimal.NewFromInt(100)).Round(2)
	result.NewCartTotal = cart.Total.Sub(result.Discounted).Round(2)
	return result, nil
}

// ApplyCoupon 为购物车应用优惠券
func (s *CouponService) ApplyCoupon(session *Session, code string, cartID uint) (*ApplyCouponResult, error) {
	result, err := s.applyCoupon(session, code, cartID)
	metrics.CouponApplied(couponResultLabel(err))
	if err != nil {
		if KindOf(err) == KindUnknown {
			logger.Errorw("coupon_apply_failed", "cart_id", cartID, "code", code, "error", err)
		}
		return nil, err
	}
	return result, nil
}

func (s *CouponService) applyCoupon(session *Session, code string, cartID uint) (*ApplyCouponResult, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if len([]rune(code)) < constants.CouponCodeMinLen {
		return nil, ErrCouponCodeInvalid
	}

	coupon, err := s.resolveCoupon(code, cartID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponInvalid
	}
	if !coupon.ActiveAt(s.now()) {
		return nil, ErrCouponExpired
	}

	var discount StoreDiscount
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetByID(cartID)
		if err != nil {
			return err
		}
		if cart == nil || cart.UserID != session.UserID {
			return ErrCartNotFound
		}
		if cart.CouponID != nil {
			return ErrCouponAlreadyApplied
		}
		discount, err = CalculateStoreDiscount(cart, coupon)
		if err != nil {
			return err
		}
		affected, err := cartRepo.AttachCoupon(cart.ID, coupon.ID, models.NewMoneyFromDecimal(discount.NewCartTotal))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCouponAlreadyApplied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := cache.DelCartSnapshot(context.Background(), session.UserID); err != nil {
		logger.Warnw("cart_snapshot_invalidate_failed", "user_id", session.UserID, "error", err)
	}

	storeName := ""
	if coupon.Store != nil {
		storeName = coupon.Store.Name
	}
	logger.Infow("coupon_applied",
		"cart_id", cart.ID,
		"coupon_id", coupon.ID,
		"store_id", coupon.StoreID,
		"discount_amount", discount.Discounted.StringFixed(2),
		"request_id", session.RequestID,
	)
	return &ApplyCouponResult{
		DiscountAmount: models.NewMoneyFromDecimal(discount.Discounted),
		StoreName:      storeName,
		Cart:           cart,
	}, nil
}

// resolveCoupon 多个店铺使用同一优惠码时，优先选择购物车中有商品的店铺，否则取最早创建的一张
func (s *CouponService) resolveCoupon(code string, cartID uint) (*models.Coupon, error) {
	coupons, err := s.couponRepo.ListByCode(code)
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, nil
	}
	if len(coupons) == 1 {
		return &coupons[0], nil
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		stores := make(map[uint]struct{}, len(cart.Items))
		for _, item := range cart.Items {
			stores[item.StoreID] = struct{}{}
		}
		for i := range coupons {
			if _, ok := stores[coupons[i].StoreID]; ok {
				return &coupons[i], nil
			}
		}
	}
	return &coupons[0], nil
}

func couponResultLabel(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, ErrCouponExpired):
		return "expired"
	case errors.Is(err, ErrCouponAlreadyApplied):
		return "already_applied"
	case errors.Is(err, ErrNoEligibleItems):
		return "no_eligible_items"
	case errors.Is(err, ErrCouponInvalid), errors.Is(err, ErrCouponCodeInvalid):
		return "invalid"
	default:
		return string(KindOf(err))
	}
}
