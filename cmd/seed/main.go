package main

import (
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "Seller@123456"

type seedVariant struct {
	Name  string
	SKU   string
	Price string
	Stock int
}

type seedProduct struct {
	Name        string
	Slug        string
	Brand       string
	Category    string
	SubCategory string
	OfferTag    string
	Description string
	Variants    []seedVariant
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.IsDebug()); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to init admin: %v", err)
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		seller, err := seedSeller(tx, "seller@example.com", "Demo Seller")
		if err != nil {
			return err
		}
		store, err := seedStore(tx, seller.ID)
		if err != nil {
			return err
		}
		categoryIDs, subCategoryIDs, err := seedTaxonomy(tx)
		if err != nil {
			return err
		}
		tagIDs, err := seedOfferTags(tx, []string{"new-arrival", "best-seller"})
		if err != nil {
			return err
		}
		if err := seedProducts(tx, store.ID, categoryIDs, subCategoryIDs, tagIDs); err != nil {
			return err
		}
		return seedCoupon(tx, store.ID, "WELCOME10", 10)
	})
	if err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	stdLog.Printf("Seed completed, seller login: seller@example.com / %s", seedPassword)
}

func seedSeller(tx *gorm.DB, email, name string) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         constants.RoleSeller,
		Status:       constants.UserStatusActive,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Infow("seed_user_created", "email", email, "role", user.Role)
	return &user, nil
}

func seedStore(tx *gorm.DB, userID uint) (*models.Store, error) {
	store := models.Store{
		UserID:                       userID,
		Name:                         "Demo Store",
		URL:                          "demo-store",
		Description:                  "Sample store created by seed",
		Email:                        "seller@example.com",
		Status:                       constants.StoreStatusActive,
		ShippingFeePerItem:           money("5.00"),
		ShippingFeeForAdditionalItem: money("1.50"),
		ReturnPolicy:                 "7 天无理由退货",
	}
	if err := tx.Where(models.Store{URL: store.URL}).FirstOrCreate(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func seedTaxonomy(tx *gorm.DB) (map[string]uint, map[string]uint, error) {
	tree := []struct {
		Name string
		Slug string
		Subs [][2]string
	}{
		{Name: "电子产品", Slug: "electronics", Subs: [][2]string{{"手机", "phones"}, {"耳机", "headphones"}}},
		{Name: "生活用品", Slug: "lifestyle", Subs: [][2]string{{"厨房", "kitchen"}}},
	}
	categoryIDs := make(map[string]uint)
	subCategoryIDs := make(map[string]uint)
	for i, node := range tree {
		category := models.Category{Name: node.Name, Slug: node.Slug, Featured: i == 0, SortOrder: len(tree) - i}
		if err := tx.Where(models.Category{Slug: node.Slug}).FirstOrCreate(&category).Error; err != nil {
			return nil, nil, err
		}
		categoryIDs[node.Slug] = category.ID
		for _, sub := range node.Subs {
			subCategory := models.SubCategory{CategoryID: category.ID, Name: sub[0], Slug: sub[1]}
			if err := tx.Where(models.SubCategory{Slug: sub[1]}).FirstOrCreate(&subCategory).Error; err != nil {
				return nil, nil, err
			}
			subCategoryIDs[sub[1]] = subCategory.ID
		}
	}
	return categoryIDs, subCategoryIDs, nil
}

func seedOfferTags(tx *gorm.DB, slugs []string) (map[string]uint, error) {
	ids := make(map[string]uint, len(slugs))
	for _, slug := range slugs {
		tag := models.OfferTag{Name: strings.ReplaceAll(slug, "-", " "), Slug: slug}
		if err := tx.Where(models.OfferTag{Slug: slug}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		ids[slug] = tag.ID
	}
	return ids, nil
}

func seedProducts(tx *gorm.DB, storeID uint, categoryIDs, subCategoryIDs, tagIDs map[string]uint) error {
	products := []seedProduct{
		{
			Name:        "Demo Phone",
			Slug:        "demo-phone",
			Brand:       "Acme",
			Category:    "electronics",
			SubCategory: "phones",
			OfferTag:    "new-arrival",
			Description: "6.1 英寸屏幕，双卡双待",
			Variants: []seedVariant{
				{Name: "128GB", SKU: "PHONE-128", Price: "2999.00", Stock: 50},
				{Name: "256GB", SKU: "PHONE-256", Price: "3499.00", Stock: 20},
			},
		},
		{
			Name:        "Wireless Earbuds",
			Slug:        "wireless-earbuds",
			Brand:       "Acme",
			Category:    "electronics",
			SubCategory: "headphones",
			OfferTag:    "best-seller",
			Variants: []seedVariant{
				{Name: "Black", SKU: "EARBUDS-BLK", Price: "199.00", Stock: 100},
				{Name: "White", SKU: "EARBUDS-WHT", Price: "199.00", Stock: 80},
			},
		},
		{
			Name:        "Chef Knife",
			Slug:        "chef-knife",
			Category:    "lifestyle",
			SubCategory: "kitchen",
			Variants: []seedVariant{
				{Name: "20cm", SKU: "KNIFE-20", Price: "89.90", Stock: 30},
			},
		},
	}

	for _, item := range products {
		var existing models.Product
		err := tx.Where("slug = ?", item.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		product := models.Product{
			StoreID:       storeID,
			CategoryID:    categoryIDs[item.Category],
			SubCategoryID: subCategoryIDs[item.SubCategory],
			Name:          item.Name,
			Slug:          item.Slug,
			Brand:         item.Brand,
			Description:   item.Description,
			Images:        models.StringArray{},
			IsActive:      true,
		}
		if tagID, ok := tagIDs[item.OfferTag]; ok {
			product.OfferTagID = &tagID
		}
		for _, v := range item.Variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				Name:     v.Name,
				SKU:      v.SKU,
				Price:    money(v.Price),
				Stock:    v.Stock,
				IsActive: true,
			})
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		logger.Infow("seed_product_created", "slug", product.Slug, "variants", len(product.Variants))
	}
	return nil
}

func seedCoupon(tx *gorm.DB, storeID uint, code string, discount int) error {
	now := time.Now()
	coupon := models.Coupon{
		StoreID:   storeID,
		Code:      code,
		Discount:  discount,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 3, 0),
	}
	return tx.Where(models.Coupon{StoreID: storeID, Code: code}).FirstOrCreate(&coupon).Error
}

func money(raw string) models.Money {
	m, err := models.ParseMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}
