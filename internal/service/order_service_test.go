package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"gorm.io/gorm"
)

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		&config.Config{Order: config.OrderConfig{NoPrefix: "TS"}},
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewStoreRepository(db),
		nil,
	)
}

func TestPlaceOrderSplitsGroupsAndAttributesCoupon(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestTaxonomy(t, db)
	sellerA := createTestUser(t, db, "a@example.com", constants.RoleSeller)
	sellerB := createTestUser(t, db, "b@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	storeA := createTestStore(t, db, sellerA, "Alpha", "1", "0")
	storeB := createTestStore(t, db, sellerB, "Beta", "0", "0")
	shirt := createTestVariant(t, db, storeA, "shirt", "10", 5)
	book := createTestVariant(t, db, storeB, "book", "15", 5)
	now := time.Now()
	createTestCoupon(t, db, storeA, "ALPHA10", 10, now.Add(-time.Hour), now.Add(time.Hour))

	cartSvc := newTestCartService(db)
	cart, err := cartSvc.Save(sessionOf(buyer), []CartLineInput{
		{VariantID: shirt.ID, Quantity: 2},
		{VariantID: book.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	couponSvc := NewCouponService(repository.NewCouponRepository(db), repository.NewCartRepository(db))
	applied, err := couponSvc.ApplyCoupon(sessionOf(buyer), "ALPHA10", cart.ID)
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if applied.DiscountAmount.String() != "2.10" {
		t.Fatalf("discount want 2.10 got %s", applied.DiscountAmount.String())
	}

	svc := newTestOrderService(db)
	order, err := svc.PlaceOrder(sessionOf(buyer), PlaceOrderInput{
		CartID:          cart.ID,
		ShippingName:    "Buyer",
		ShippingAddress: "1 Market St",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "TS") {
		t.Fatalf("order no should use configured prefix: %s", order.OrderNo)
	}
	if len(order.Groups) != 2 {
		t.Fatalf("want 2 groups got %d", len(order.Groups))
	}
	if order.Total.String() != applied.Cart.Total.String() {
		t.Fatalf("order total %s should equal discounted cart total %s", order.Total.String(), applied.Cart.Total.String())
	}
	if order.DiscountAmount.String() != "2.10" {
		t.Fatalf("order discount want 2.10 got %s", order.DiscountAmount.String())
	}
	for _, group := range order.Groups {
		switch group.StoreID {
		case storeA.ID:
			if group.CouponID == nil || group.DiscountAmount.String() != "2.10" || group.Total.String() != "18.90" {
				t.Fatalf("store A group mismatch: %+v", group)
			}
		case storeB.ID:
			if group.CouponID != nil || !group.DiscountAmount.IsZero() || group.Total.String() != "15.00" {
				t.Fatalf("store B group mismatch: %+v", group)
			}
		}
		if group.Status != constants.OrderStatusPending {
			t.Fatalf("group should start pending: %s", group.Status)
		}
		for _, item := range group.Items {
			if item.Status != constants.ProductStatusPending || item.StoreID != group.StoreID {
				t.Fatalf("item mismatch: %+v", item)
			}
		}
	}

	var stock models.ProductVariant
	db.First(&stock, shirt.ID)
	if stock.Stock != 3 {
		t.Fatalf("stock want 3 got %d", stock.Stock)
	}
	var carts int64
	db.Model(&models.Cart{}).Where("id = ?", cart.ID).Count(&carts)
	if carts != 0 {
		t.Fatalf("cart should be cleared after placing order")
	}

	listed, total, err := svc.ListStoreGroups(sessionOf(sellerB), storeB.ID, "", 1, 20)
	if err != nil || total != 1 || listed[0].Order == nil || listed[0].Order.ID != order.ID {
		t.Fatalf("seller B should see one group: total=%d err=%v", total, err)
	}
	if _, _, err := svc.ListStoreGroups(sessionOf(sellerA), storeB.ID, "", 1, 20); !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("want ErrStoreNotOwned got %v", err)
	}
}

func TestPlaceOrderRejectsEmptyOrForeignCart(t *testing.T) {
	db := setupServiceTestDB(t)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	other := createTestUser(t, db, "other@example.com", constants.RoleUser)
	cart := createTestCart(t, db, buyer, nil)
	svc := newTestOrderService(db)
	input := PlaceOrderInput{CartID: cart.ID, ShippingName: "B", ShippingAddress: "Somewhere"}

	if _, err := svc.PlaceOrder(sessionOf(buyer), input); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
	if _, err := svc.PlaceOrder(sessionOf(other), input); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}
	if _, err := svc.PlaceOrder(sessionOf(buyer), PlaceOrderInput{CartID: cart.ID}); !errors.Is(err, ErrShippingInfoRequired) {
		t.Fatalf("want ErrShippingInfoRequired got %v", err)
	}
}

func TestPlaceOrderRollsBackOnStockShortage(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestTaxonomy(t, db)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	buyer := createTestUser(t, db, "buyer@example.com", constants.RoleUser)
	store := createTestStore(t, db, seller, "Thin", "0", "0")
	variant := createTestVariant(t, db, store, "last", "5", 2)

	cart, err := newTestCartService(db).Save(sessionOf(buyer), []CartLineInput{{VariantID: variant.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	db.Model(&models.ProductVariant{}).Where("id = ?", variant.ID).Update("stock", 1)

	svc := newTestOrderService(db)
	if _, err := svc.PlaceOrder(sessionOf(buyer), PlaceOrderInput{CartID: cart.ID, ShippingName: "B", ShippingAddress: "X"}); !errors.Is(err, ErrVariantOutOfStock) {
		t.Fatalf("want ErrVariantOutOfStock got %v", err)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("no order should be persisted, got %d", orders)
	}
	var carts int64
	db.Model(&models.Cart{}).Where("id = ?", cart.ID).Count(&carts)
	if carts != 1 {
		t.Fatalf("cart should survive a failed checkout")
	}
}
