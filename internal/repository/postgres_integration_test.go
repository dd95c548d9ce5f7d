//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/dujiao-next/market/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.CartItem{},
		&models.Cart{},
		&models.Coupon{},
		&models.ProductVariant{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Coupon{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	product := &models.Product{
		StoreID:       1,
		CategoryID:    1,
		SubCategoryID: 1,
		Name:          "Rocket Booster",
		Slug:          "pg-rocket-booster",
		Brand:         "Acme",
		IsActive:      true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "rocket"})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresCartAttachCouponCompareAndSwap(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewCartRepository(db)
	cart := &models.Cart{UserID: 1, Subtotal: money("20"), Total: money("20")}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	first, err := repo.AttachCoupon(cart.ID, 1, money("18"))
	if err != nil || first != 1 {
		t.Fatalf("first attach want 1 got %d err=%v", first, err)
	}
	second, err := repo.AttachCoupon(cart.ID, 2, money("10"))
	if err != nil || second != 0 {
		t.Fatalf("second attach want 0 got %d err=%v", second, err)
	}
}
