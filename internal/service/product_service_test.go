package service

import (
	"errors"
	"testing"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewStoreRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
		repository.NewOfferTagRepository(db),
	)
}

func TestProductCreateWithVariantsInOwnedStore(t *testing.T) {
	db := setupServiceTestDB(t)
	category, sub := createTestTaxonomy(t, db)
	owner := createTestUser(t, db, "owner@example.com", constants.RoleSeller)
	store := createTestStore(t, db, owner, "Threads", "0", "0")
	svc := newTestProductService(db)
	inactive := false

	product, err := svc.Create(sessionOf(owner), store.ID, ProductInput{
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Name:          "Linen Shirt",
		IsActive:      &inactive,
		Variants: []VariantInput{
			{Name: "S", SKU: "ls-s", Price: decimal.RequireFromString("19.9"), Stock: 3},
			{Name: "M", SKU: "ls-m", Price: decimal.RequireFromString("19.9"), Stock: 4},
		},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Slug != "linen-shirt" || len(product.Variants) != 2 || product.Variants[0].SKU != "LS-S" {
		t.Fatalf("unexpected product: %+v", product)
	}
	var stored models.Product
	db.First(&stored, product.ID)
	if stored.IsActive {
		t.Fatalf("product should be stored inactive")
	}

	if _, err := svc.CreateVariant(sessionOf(owner), store.ID, product.ID, VariantInput{Name: "dup", SKU: "LS-M", Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrVariantSKUExists) {
		t.Fatalf("want ErrVariantSKUExists got %v", err)
	}
	if _, err := svc.CreateVariant(sessionOf(owner), store.ID, product.ID, VariantInput{Name: "free", SKU: "LS-F", Price: decimal.Zero}); !errors.Is(err, ErrPriceInvalid) {
		t.Fatalf("want ErrPriceInvalid got %v", err)
	}
}

func TestProductMutationsRejectForeignStore(t *testing.T) {
	db := setupServiceTestDB(t)
	category, sub := createTestTaxonomy(t, db)
	owner := createTestUser(t, db, "owner@example.com", constants.RoleSeller)
	other := createTestUser(t, db, "other@example.com", constants.RoleSeller)
	store := createTestStore(t, db, owner, "Mine", "0", "0")
	variant := createTestVariant(t, db, store, "mine-item", "3", 1)
	svc := newTestProductService(db)

	input := ProductInput{CategoryID: category.ID, SubCategoryID: sub.ID, Name: "Stolen"}
	if _, err := svc.Create(sessionOf(other), store.ID, input); !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("want ErrStoreNotOwned got %v", err)
	}
	if err := svc.Delete(sessionOf(other), store.ID, variant.ProductID); !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("want ErrStoreNotOwned got %v", err)
	}
	if _, err := svc.Create(&Session{UserID: owner.ID, Role: constants.RoleUser}, store.ID, input); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized got %v", err)
	}
	if _, err := svc.Create(sessionOf(owner), store.ID, ProductInput{CategoryID: category.ID, SubCategoryID: sub.ID + 50, Name: "x"}); !errors.Is(err, ErrSubCategoryNotFound) {
		t.Fatalf("want ErrSubCategoryNotFound got %v", err)
	}
}

func TestProductPublicListing(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestTaxonomy(t, db)
	owner := createTestUser(t, db, "owner@example.com", constants.RoleSeller)
	store := createTestStore(t, db, owner, "Public", "0", "0")
	createTestVariant(t, db, store, "visible-lamp", "12", 2)
	svc := newTestProductService(db)

	products, total, err := svc.ListPublic(PublicProductQuery{Search: "lamp", Page: 1, PageSize: 10})
	if err != nil || total != 1 || len(products[0].Variants) != 1 {
		t.Fatalf("public list mismatch: total=%d err=%v", total, err)
	}
	product, err := svc.GetPublicBySlug("visible-lamp")
	if err != nil || product.Store == nil || product.Store.ID != store.ID {
		t.Fatalf("public get mismatch: %+v err=%v", product, err)
	}
	if _, err := svc.GetPublicBySlug("missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}
