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

func newTestCouponAdminService(db *gorm.DB) *CouponAdminService {
	return NewCouponAdminService(
		repository.NewCouponRepository(db),
		repository.NewStoreRepository(db),
		repository.NewCartRepository(db),
	)
}

func testCouponInput(code string, discount int) CouponInput {
	now := time.Now()
	return CouponInput{
		Code:      code,
		Discount:  discount,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}
}

func TestCouponDeleteReleasesAppliedCarts(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestTaxonomy(t, db)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	store := createTestStore(t, db, seller, "Alpha", "1", "0")
	shirt := createTestVariant(t, db, store, "shirt", "10", 5)

	admin := newTestCouponAdminService(db)
	coupon, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("alpha10", 10))
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	cart, err := newTestCartService(db).Save(sessionOf(buyer), []CartLineInput{{VariantID: shirt.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	couponSvc := NewCouponService(repository.NewCouponRepository(db), repository.NewCartRepository(db))
	applied, err := couponSvc.ApplyCoupon(sessionOf(buyer), "ALPHA10", cart.ID)
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if applied.Cart.Total.String() != "18.90" {
		t.Fatalf("discounted total want 18.90 got %s", applied.Cart.Total.String())
	}

	if err := admin.Delete(sessionOf(seller), store.ID, coupon.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}

	var stored models.Cart
	if err := db.First(&stored, cart.ID).Error; err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if stored.CouponID != nil {
		t.Fatalf("deleted coupon should be detached from cart, got %d", *stored.CouponID)
	}
	if stored.Total.String() != "21.00" {
		t.Fatalf("cart total should be restored to 21.00, got %s", stored.Total.String())
	}

	order, err := newTestOrderService(db).PlaceOrder(sessionOf(buyer), PlaceOrderInput{
		CartID:          cart.ID,
		ShippingName:    "Buyer",
		ShippingAddress: "1 Market St",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Total.String() != stored.Total.String() || !order.DiscountAmount.IsZero() {
		t.Fatalf("order should charge the cart total %s, got total=%s discount=%s",
			stored.Total.String(), order.Total.String(), order.DiscountAmount.String())
	}
}

func TestPlaceOrderRejectsCartWithMissingCoupon(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestTaxonomy(t, db)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	store := createTestStore(t, db, seller, "Alpha", "0", "0")
	shirt := createTestVariant(t, db, store, "shirt", "10", 5)
	now := time.Now()
	coupon := createTestCoupon(t, db, store, "GONE10", 10, now.Add(-time.Hour), now.Add(time.Hour))

	cart, err := newTestCartService(db).Save(sessionOf(buyer), []CartLineInput{{VariantID: shirt.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	if err := db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"coupon_id": coupon.ID,
		"total":     mustMoney(t, "9"),
	}).Error; err != nil {
		t.Fatalf("attach coupon failed: %v", err)
	}
	if err := db.Delete(&models.Coupon{}, coupon.ID).Error; err != nil {
		t.Fatalf("soft delete coupon failed: %v", err)
	}

	_, err = newTestOrderService(db).PlaceOrder(sessionOf(buyer), PlaceOrderInput{
		CartID:          cart.ID,
		ShippingName:    "Buyer",
		ShippingAddress: "1 Market St",
	})
	if !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("want ErrCouponInvalid got %v", err)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("no order should be created, got %d", orders)
	}
}

func TestCouponCreateReusesDeletedCode(t *testing.T) {
	db := setupServiceTestDB(t)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	store := createTestStore(t, db, seller, "Alpha", "0", "0")
	admin := newTestCouponAdminService(db)

	first, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("SAVE10", 10))
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("save10", 15)); !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("want ErrCouponCodeExists got %v", err)
	}
	if err := admin.Delete(sessionOf(seller), store.ID, first.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}

	again, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("SAVE10", 25))
	if err != nil {
		t.Fatalf("recreate deleted code failed: %v", err)
	}
	if again.Code != "SAVE10" || again.Discount != 25 {
		t.Fatalf("recreated coupon mismatch: %+v", again)
	}
	listed, total, err := admin.List(sessionOf(seller), store.ID, "", 1, 20)
	if err != nil || total != 1 || listed[0].Discount != 25 {
		t.Fatalf("want one active coupon with discount 25: total=%d err=%v", total, err)
	}
}

func TestCouponUpdateRejectsCodeOfDeletedCoupon(t *testing.T) {
	db := setupServiceTestDB(t)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	store := createTestStore(t, db, seller, "Alpha", "0", "0")
	admin := newTestCouponAdminService(db)

	old, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("OLD10", 10))
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	current, err := admin.Create(sessionOf(seller), store.ID, testCouponInput("NEW10", 10))
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if err := admin.Delete(sessionOf(seller), store.ID, old.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}

	_, err = admin.Update(sessionOf(seller), store.ID, current.ID, testCouponInput("OLD10", 10))
	if !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("want ErrCouponCodeExists got %v", err)
	}
	if KindOf(err) == KindUnknown {
		t.Fatalf("code conflict should not surface as unknown error")
	}
}

func TestCouponMutationsRejectForeignStore(t *testing.T) {
	db := setupServiceTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", constants.RoleSeller)
	other := createTestUser(t, db, "other@example.com", constants.RoleSeller)
	store := createTestStore(t, db, owner, "Alpha", "0", "0")
	admin := newTestCouponAdminService(db)

	coupon, err := admin.Create(sessionOf(owner), store.ID, testCouponInput("OWN10", 10))
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := admin.Create(sessionOf(other), store.ID, testCouponInput("HIJACK", 10)); !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("want ErrStoreNotOwned got %v", err)
	}
	if err := admin.Delete(sessionOf(other), store.ID, coupon.ID); !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("want ErrStoreNotOwned got %v", err)
	}
	var count int64
	db.Model(&models.Coupon{}).Count(&count)
	if count != 1 {
		t.Fatalf("coupon should survive foreign delete, count=%d", count)
	}
}
