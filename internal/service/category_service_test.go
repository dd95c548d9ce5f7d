package service

import (
	"errors"
	"testing"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"
)

func TestCategoryMutationsRequireAdmin(t *testing.T) {
	db := setupServiceTestDB(t)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	if _, err := svc.Create(sessionOf(seller), CategoryInput{Name: "Books"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized got %v", err)
	}
	if _, err := svc.Create(nil, CategoryInput{Name: "Books"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized got %v", err)
	}
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Fatalf("unauthorized create must not persist, got %d", count)
	}
}

func TestCategoryCreateUpdateDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", constants.RoleAdmin)
	session := sessionOf(admin)
	categories := NewCategoryService(repository.NewCategoryRepository(db))
	subCategories := NewSubCategoryService(repository.NewSubCategoryRepository(db), repository.NewCategoryRepository(db))

	books, err := categories.Create(session, CategoryInput{Name: "Books & Media"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if books.Slug != "books-media" {
		t.Fatalf("slug want books-media got %s", books.Slug)
	}
	if _, err := categories.Create(session, CategoryInput{Name: "Other", URL: "books-media"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists got %v", err)
	}

	novels, err := subCategories.Create(session, SubCategoryInput{CategoryID: books.ID, Name: "Novels"})
	if err != nil {
		t.Fatalf("create sub category failed: %v", err)
	}
	if err := categories.Delete(session, books.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("want ErrCategoryInUse got %v", err)
	}
	if err := subCategories.Delete(session, novels.ID); err != nil {
		t.Fatalf("delete sub category failed: %v", err)
	}

	updated, err := categories.Update(session, books.ID, CategoryInput{Name: "Books", Featured: true})
	if err != nil || updated.Slug != "books" || !updated.Featured {
		t.Fatalf("update category mismatch: %+v err=%v", updated, err)
	}
	if err := categories.Delete(session, books.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if _, err := categories.GetBySlug("books"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound got %v", err)
	}
}

func TestOfferTagDeleteBlockedWhileInUse(t *testing.T) {
	db := setupServiceTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", constants.RoleAdmin)
	seller := createTestUser(t, db, "seller@example.com", constants.RoleSeller)
	createTestTaxonomy(t, db)
	store := createTestStore(t, db, seller, "Tagged", "0", "0")
	svc := NewOfferTagService(repository.NewOfferTagRepository(db))

	tag, err := svc.Create(sessionOf(admin), OfferTagInput{Name: "Flash Sale"})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	variant := createTestVariant(t, db, store, "tagged", "5", 1)
	if err := db.Model(&models.Product{}).Where("id = ?", variant.ProductID).Update("offer_tag_id", tag.ID).Error; err != nil {
		t.Fatalf("tag product failed: %v", err)
	}

	if err := svc.Delete(sessionOf(admin), tag.ID); !errors.Is(err, ErrOfferTagInUse) {
		t.Fatalf("want ErrOfferTagInUse got %v", err)
	}
	if err := svc.Delete(sessionOf(seller), tag.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized got %v", err)
	}
}

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"  Summer Sale ": "summer-sale",
		"A--B__C":        "a-bc",
		"Ünïcode 2024":   "ncode-2024",
		"":               "",
	}
	for input, want := range cases {
		if got := normalizeSlug(input); got != want {
			t.Fatalf("normalizeSlug(%q) want %q got %q", input, want, got)
		}
	}
}
