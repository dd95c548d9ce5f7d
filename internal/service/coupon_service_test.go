package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"gorm.io/gorm"
)

type couponFixture struct {
	db      *gorm.DB
	svc     *CouponService
	buyer   *models.User
	storeA  *models.Store
	storeB  *models.Store
	cart    *models.Cart
	couponA *models.Coupon
	couponB *models.Coupon
}

func newCouponFixture(t *testing.T) *couponFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	sellerA := createTestUser(t, db, "seller-a@example.com", constants.RoleSeller)
	sellerB := createTestUser(t, db, "seller-b@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	storeA := createTestStore(t, db, sellerA, "Store A", "0", "0")
	storeB := createTestStore(t, db, sellerB, "Store B", "0", "0")

	cart := createTestCart(t, db, buyer, []models.CartItem{
		{ProductID: 1, VariantID: 1, StoreID: storeA.ID, Name: "Shirt", Price: mustMoney(t, "10"), Quantity: 2, ShippingFee: mustMoney(t, "1"), TotalPrice: mustMoney(t, "21")},
	})

	now := time.Now()
	couponA := createTestCoupon(t, db, storeA, "SAVE10", 10, now.Add(-time.Hour), now.Add(time.Hour))
	couponB := createTestCoupon(t, db, storeB, "BONLY", 20, now.Add(-time.Hour), now.Add(time.Hour))

	svc := NewCouponService(repository.NewCouponRepository(db), repository.NewCartRepository(db))
	return &couponFixture{db: db, svc: svc, buyer: buyer, storeA: storeA, storeB: storeB, cart: cart, couponA: couponA, couponB: couponB}
}

func (f *couponFixture) reloadCart(t *testing.T) models.Cart {
	t.Helper()
	var cart models.Cart
	if err := f.db.First(&cart, f.cart.ID).Error; err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	return cart
}

func TestApplyCouponDiscountsStoreItemsIncludingShipping(t *testing.T) {
	f := newCouponFixture(t)

	result, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "save10", f.cart.ID)
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if result.DiscountAmount.String() != "2.10" {
		t.Fatalf("discount want 2.10 got %s", result.DiscountAmount.String())
	}
	if result.StoreName != "Store A" {
		t.Fatalf("store name want Store A got %s", result.StoreName)
	}
	if result.Cart == nil || result.Cart.Total.String() != "18.90" {
		t.Fatalf("cart total want 18.90 got %+v", result.Cart)
	}
	if result.Cart.Coupon == nil || result.Cart.Coupon.Store == nil || result.Cart.Coupon.Store.ID != f.storeA.ID {
		t.Fatalf("snapshot should carry coupon with store: %+v", result.Cart.Coupon)
	}
	if len(result.Cart.Items) != 1 {
		t.Fatalf("snapshot items want 1 got %d", len(result.Cart.Items))
	}

	stored := f.reloadCart(t)
	if stored.CouponID == nil || *stored.CouponID != f.couponA.ID {
		t.Fatalf("coupon id not persisted: %+v", stored.CouponID)
	}
}

func TestApplyCouponOnlyDiscountsMatchingStore(t *testing.T) {
	db := setupServiceTestDB(t)
	sellerA := createTestUser(t, db, "a@example.com", constants.RoleSeller)
	sellerB := createTestUser(t, db, "b@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	storeA := createTestStore(t, db, sellerA, "Alpha", "0", "0")
	storeB := createTestStore(t, db, sellerB, "Beta", "0", "0")
	cart := createTestCart(t, db, buyer, []models.CartItem{
		{ProductID: 1, VariantID: 1, StoreID: storeA.ID, Name: "A", Price: mustMoney(t, "50"), Quantity: 1, ShippingFee: mustMoney(t, "0"), TotalPrice: mustMoney(t, "50")},
		{ProductID: 2, VariantID: 2, StoreID: storeB.ID, Name: "B", Price: mustMoney(t, "30"), Quantity: 2, ShippingFee: mustMoney(t, "4"), TotalPrice: mustMoney(t, "64")},
	})
	now := time.Now()
	createTestCoupon(t, db, storeB, "BETA25", 25, now.Add(-time.Minute), now.Add(time.Minute))

	svc := NewCouponService(repository.NewCouponRepository(db), repository.NewCartRepository(db))
	result, err := svc.ApplyCoupon(sessionOf(buyer), "BETA25", cart.ID)
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	// (60 + 4) * 25% = 16
	if result.DiscountAmount.String() != "16.00" {
		t.Fatalf("discount want 16.00 got %s", result.DiscountAmount.String())
	}
	if result.Cart.Total.String() != "98.00" {
		t.Fatalf("total want 98.00 got %s", result.Cart.Total.String())
	}
}

func TestApplyCouponExpired(t *testing.T) {
	f := newCouponFixture(t)
	past := time.Now().Add(-48 * time.Hour)
	createTestCoupon(t, f.db, f.storeA, "OLD", 10, past, past.Add(time.Hour))

	_, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "OLD", f.cart.ID)
	if !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("want ErrCouponExpired got %v", err)
	}
	if KindOf(err) != KindBusinessRule {
		t.Fatalf("expired should be business rule, got %s", KindOf(err))
	}
	stored := f.reloadCart(t)
	if stored.CouponID != nil || stored.Total.String() != "21.00" {
		t.Fatalf("cart should be untouched: coupon=%v total=%s", stored.CouponID, stored.Total.String())
	}
}

func TestApplyCouponNotYetStarted(t *testing.T) {
	f := newCouponFixture(t)
	future := time.Now().Add(24 * time.Hour)
	createTestCoupon(t, f.db, f.storeA, "SOON", 10, future, future.Add(time.Hour))

	if _, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "SOON", f.cart.ID); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("want ErrCouponExpired got %v", err)
	}
}

func TestApplyCouponAlreadyAppliedKeepsTotal(t *testing.T) {
	f := newCouponFixture(t)
	if _, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "SAVE10", f.cart.ID); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	_, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "SAVE10", f.cart.ID)
	if !errors.Is(err, ErrCouponAlreadyApplied) {
		t.Fatalf("want ErrCouponAlreadyApplied got %v", err)
	}
	stored := f.reloadCart(t)
	if stored.Total.String() != "18.90" {
		t.Fatalf("total should stay 18.90 got %s", stored.Total.String())
	}
}

func TestApplyCouponNoEligibleItems(t *testing.T) {
	f := newCouponFixture(t)

	_, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "BONLY", f.cart.ID)
	if !errors.Is(err, ErrNoEligibleItems) {
		t.Fatalf("want ErrNoEligibleItems got %v", err)
	}
	stored := f.reloadCart(t)
	if stored.CouponID != nil || stored.Total.String() != "21.00" {
		t.Fatalf("cart should be untouched: coupon=%v total=%s", stored.CouponID, stored.Total.String())
	}
}

func TestApplyCouponPrefersStoreWithItemsInCart(t *testing.T) {
	f := newCouponFixture(t)
	now := time.Now()
	// Store B 先创建同码优惠券，id 更小
	createTestCoupon(t, f.db, f.storeB, "SHARED", 50, now.Add(-time.Hour), now.Add(time.Hour))
	sharedA := createTestCoupon(t, f.db, f.storeA, "SHARED", 10, now.Add(-time.Hour), now.Add(time.Hour))

	result, err := f.svc.ApplyCoupon(sessionOf(f.buyer), "shared", f.cart.ID)
	if err != nil {
		t.Fatalf("apply shared code failed: %v", err)
	}
	if result.StoreName != f.storeA.Name || result.DiscountAmount.String() != "2.10" {
		t.Fatalf("want Store A discount 2.10, got %s %s", result.StoreName, result.DiscountAmount.String())
	}
	stored := f.reloadCart(t)
	if stored.CouponID == nil || *stored.CouponID != sharedA.ID {
		t.Fatalf("cart should carry Store A coupon %d, got %v", sharedA.ID, stored.CouponID)
	}
}

func TestApplyCouponValidationAndLookupErrors(t *testing.T) {
	f := newCouponFixture(t)
	session := sessionOf(f.buyer)

	if _, err := f.svc.ApplyCoupon(session, "X", f.cart.ID); !errors.Is(err, ErrCouponCodeInvalid) {
		t.Fatalf("short code want ErrCouponCodeInvalid got %v", err)
	}
	if FieldOf(ErrCouponCodeInvalid) != "code" {
		t.Fatalf("short code error should belong to code field")
	}
	if _, err := f.svc.ApplyCoupon(session, "NOPE", f.cart.ID); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("unknown code want ErrCouponInvalid got %v", err)
	}
	if _, err := f.svc.ApplyCoupon(session, "SAVE10", f.cart.ID+100); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("missing cart want ErrCartNotFound got %v", err)
	}

	stranger := createTestUser(t, f.db, "stranger@example.com", constants.RoleUser)
	if _, err := f.svc.ApplyCoupon(sessionOf(stranger), "SAVE10", f.cart.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("foreign cart want ErrCartNotFound got %v", err)
	}
}

func TestApplyCouponRequiresSession(t *testing.T) {
	f := newCouponFixture(t)

	if _, err := f.svc.ApplyCoupon(nil, "SAVE10", f.cart.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized got %v", err)
	}
	if _, err := f.svc.ApplyCoupon(&Session{UserID: f.buyer.ID, Role: "GUEST"}, "SAVE10", f.cart.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown role want ErrUnauthorized got %v", err)
	}
	if stored := f.reloadCart(t); stored.CouponID != nil {
		t.Fatalf("unauthorized call must not mutate cart")
	}
}

func TestCalculateStoreDiscount(t *testing.T) {
	cart := &models.Cart{
		Total: mustMoney(t, "21"),
		Items: []models.CartItem{
			{StoreID: 1, Price: mustMoney(t, "10"), Quantity: 2, ShippingFee: mustMoney(t, "1")},
		},
	}
	result, err := CalculateStoreDiscount(cart, &models.Coupon{StoreID: 1, Discount: 10})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.StoreTotal.StringFixed(2) != "21.00" || result.Discounted.StringFixed(2) != "2.10" || result.NewCartTotal.StringFixed(2) != "18.90" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := CalculateStoreDiscount(cart, &models.Coupon{StoreID: 2, Discount: 10}); !errors.Is(err, ErrNoEligibleItems) {
		t.Fatalf("want ErrNoEligibleItems got %v", err)
	}
}
