package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Coupon{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderGroup{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func money(v string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(v))
}

func TestCartAttachCouponOnlyOnce(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{UserID: 1, Subtotal: money("10"), Total: money("10")}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	affected, err := repo.AttachCoupon(cart.ID, 7, money("9"))
	if err != nil {
		t.Fatalf("attach coupon failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first attach affected want 1 got %d", affected)
	}

	affected, err = repo.AttachCoupon(cart.ID, 8, money("5"))
	if err != nil {
		t.Fatalf("second attach failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second attach affected want 0 got %d", affected)
	}

	reloaded, err := repo.GetByID(cart.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if reloaded.CouponID == nil || *reloaded.CouponID != 7 {
		t.Fatalf("coupon id want 7 got %v", reloaded.CouponID)
	}
	if reloaded.Total.String() != "9.00" {
		t.Fatalf("total want 9.00 got %s", reloaded.Total.String())
	}

	if err := repo.DetachCoupon(cart.ID, money("10")); err != nil {
		t.Fatalf("detach coupon failed: %v", err)
	}
	reloaded, _ = repo.GetByID(cart.ID)
	if reloaded.CouponID != nil || reloaded.Total.String() != "10.00" {
		t.Fatalf("detach should clear coupon and restore total, got %v %s", reloaded.CouponID, reloaded.Total.String())
	}
}

func TestCartReplaceItemsKeepsInsertionOrder(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	cart := &models.Cart{UserID: 2}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	items := []models.CartItem{
		{ProductID: 1, VariantID: 1, StoreID: 1, Name: "first", Price: money("1"), Quantity: 1},
		{ProductID: 2, VariantID: 2, StoreID: 2, Name: "second", Price: money("2"), Quantity: 1},
	}
	if err := repo.ReplaceItems(cart.ID, items); err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	if err := repo.ReplaceItems(cart.ID, items[1:]); err != nil {
		t.Fatalf("replace items again failed: %v", err)
	}
	reloaded, err := repo.GetByUserID(2)
	if err != nil || reloaded == nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Name != "second" {
		t.Fatalf("unexpected items after replace: %+v", reloaded.Items)
	}
}

func TestProductDecrementStockRejectsOversell(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := &models.Product{
		StoreID:       1,
		CategoryID:    1,
		SubCategoryID: 1,
		Name:          "Tee",
		Slug:          "tee",
		IsActive:      true,
		Variants: []models.ProductVariant{
			{Name: "M", SKU: "TEE-M", Price: money("12.5"), Stock: 3, IsActive: true},
		},
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variantID := product.Variants[0].ID

	affected, err := repo.DecrementStock(variantID, 2)
	if err != nil || affected != 1 {
		t.Fatalf("decrement want affected=1 got %d err=%v", affected, err)
	}
	affected, err = repo.DecrementStock(variantID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell should not update, affected=%d", affected)
	}
	variant, err := repo.GetVariant(variantID)
	if err != nil || variant == nil {
		t.Fatalf("get variant failed: %v", err)
	}
	if variant.Stock != 1 {
		t.Fatalf("stock want 1 got %d", variant.Stock)
	}
}

func TestProductListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	stores := []models.Store{
		{UserID: 1, Name: "Shop A", URL: "shop-a", Status: constants.StoreStatusActive},
		{UserID: 2, Name: "Shop B", URL: "shop-b", Status: constants.StoreStatusPending},
	}
	if err := db.Create(&stores).Error; err != nil {
		t.Fatalf("create stores failed: %v", err)
	}
	tag := uint(5)
	fixtures := []models.Product{
		{StoreID: 1, CategoryID: 1, SubCategoryID: 10, Name: "Red Shirt", Slug: "red-shirt", IsActive: true},
		{StoreID: 1, CategoryID: 2, SubCategoryID: 20, Name: "Blue Jeans", Slug: "blue-jeans", IsActive: true, OfferTagID: &tag},
		{StoreID: 2, CategoryID: 1, SubCategoryID: 10, Name: "Green Shirt", Slug: "green-shirt", IsActive: false},
	}
	for i := range fixtures {
		if err := repo.Create(&fixtures[i]); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	if err := db.Model(&models.Product{}).Where("slug = ?", "green-shirt").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{Search: "shirt", OnlyActive: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Slug != "red-shirt" {
		t.Fatalf("search filter mismatch: total=%d products=%+v", total, products)
	}

	// 店铺未激活时商品不对外展示
	if err := db.Model(&models.Store{}).Where("id = ?", stores[0].ID).Update("status", constants.StoreStatusBanned).Error; err != nil {
		t.Fatalf("ban store failed: %v", err)
	}
	_, total, err = repo.List(ProductListFilter{OnlyActive: true})
	if err != nil || total != 0 {
		t.Fatalf("banned store products want 0 got %d err=%v", total, err)
	}

	_, total, err = repo.List(ProductListFilter{OfferTagID: tag})
	if err != nil || total != 1 {
		t.Fatalf("offer tag filter want 1 got %d err=%v", total, err)
	}

	_, total, err = repo.List(ProductListFilter{CategoryID: 1})
	if err != nil || total != 2 {
		t.Fatalf("category filter want 2 got %d err=%v", total, err)
	}
}

func TestOrderCreateNestedGroupsAndStatusUpdates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := &models.Order{
		OrderNo:       "MK-TEST-1",
		UserID:        3,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPending,
		Groups: []models.OrderGroup{
			{
				StoreID: 1,
				Status:  constants.OrderStatusPending,
				Items: []models.OrderItem{
					{StoreID: 1, ProductID: 1, VariantID: 1, Name: "A", Quantity: 1, Status: constants.ProductStatusPending},
				},
			},
			{
				StoreID: 2,
				Status:  constants.OrderStatusPending,
				Items: []models.OrderItem{
					{StoreID: 2, ProductID: 2, VariantID: 2, Name: "B", Quantity: 2, Status: constants.ProductStatusPending},
				},
			},
		},
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	loaded, err := repo.GetByIDAndUser(order.ID, 3)
	if err != nil || loaded == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if len(loaded.Groups) != 2 || len(loaded.Groups[1].Items) != 1 {
		t.Fatalf("unexpected nested groups: %+v", loaded.Groups)
	}

	groupID := loaded.Groups[0].ID
	if err := repo.UpdateGroupStatus(groupID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("update group status failed: %v", err)
	}
	itemID := loaded.Groups[1].Items[0].ID
	if err := repo.UpdateItemStatus(itemID, constants.ProductStatusBackordered); err != nil {
		t.Fatalf("update item status failed: %v", err)
	}

	group, _ := repo.GetGroupByID(groupID)
	if group == nil || group.Status != constants.OrderStatusShipped {
		t.Fatalf("group status not persisted: %+v", group)
	}
	item, _ := repo.GetItemByID(itemID)
	if item == nil || item.Status != constants.ProductStatusBackordered {
		t.Fatalf("item status not persisted: %+v", item)
	}

	groups, total, err := repo.ListGroupsByStore(OrderGroupListFilter{StoreID: 2})
	if err != nil || total != 1 || len(groups) != 1 || groups[0].Order == nil {
		t.Fatalf("store group list mismatch: total=%d err=%v", total, err)
	}

	if other, _ := repo.GetByIDAndUser(order.ID, 99); other != nil {
		t.Fatalf("order must not be visible to another user")
	}
}
