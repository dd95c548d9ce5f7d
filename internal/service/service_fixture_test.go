package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func mustMoney(t *testing.T, v string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", v, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         email,
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestStore(t *testing.T, db *gorm.DB, owner *models.User, name, perItem, additional string) *models.Store {
	t.Helper()
	store := &models.Store{
		UserID:                       owner.ID,
		Name:                         name,
		URL:                          normalizeSlug(name),
		Status:                       constants.StoreStatusActive,
		ShippingFeePerItem:           mustMoney(t, perItem),
		ShippingFeeForAdditionalItem: mustMoney(t, additional),
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return store
}

func createTestTaxonomy(t *testing.T, db *gorm.DB) (*models.Category, *models.SubCategory) {
	t.Helper()
	category := &models.Category{Name: "Fashion", Slug: "fashion"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	sub := &models.SubCategory{CategoryID: category.ID, Name: "Shirts", Slug: "shirts"}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("create sub category failed: %v", err)
	}
	return category, sub
}

func createTestVariant(t *testing.T, db *gorm.DB, store *models.Store, slug, price string, stock int) *models.ProductVariant {
	t.Helper()
	var category models.Category
	if err := db.Where("slug = ?", "fashion").First(&category).Error; err != nil {
		t.Fatalf("load category failed: %v", err)
	}
	var sub models.SubCategory
	if err := db.Where("slug = ?", "shirts").First(&sub).Error; err != nil {
		t.Fatalf("load sub category failed: %v", err)
	}
	product := &models.Product{
		StoreID:       store.ID,
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Name:          slug,
		Slug:          slug,
		IsActive:      true,
		Variants: []models.ProductVariant{
			{Name: "Default", SKU: strings.ToUpper(slug), Price: mustMoney(t, price), Stock: stock, IsActive: true},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product.Variants[0]
}

func createTestCoupon(t *testing.T, db *gorm.DB, store *models.Store, code string, discount int, start, end time.Time) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{StoreID: store.ID, Code: code, Discount: discount, StartDate: start, EndDate: end}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

// createTestCart 直接写入购物车快照，总额为各项小计与运费之和
func createTestCart(t *testing.T, db *gorm.DB, owner *models.User, items []models.CartItem) *models.Cart {
	t.Helper()
	subtotal, shipping := sumCartItems(items)
	cart := &models.Cart{
		UserID:       owner.ID,
		Subtotal:     models.NewMoneyFromDecimal(subtotal),
		ShippingFees: models.NewMoneyFromDecimal(shipping),
		Total:        models.NewMoneyFromDecimal(subtotal.Add(shipping)),
		Items:        items,
	}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	return cart
}

func sessionOf(user *models.User) *Session {
	return &Session{UserID: user.ID, Role: user.Role}
}
