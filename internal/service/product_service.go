package service

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo            repository.ProductRepository
	storeRepo       repository.StoreRepository
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	offerTagRepo    repository.OfferTagRepository
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	offerTagRepo repository.OfferTagRepository,
) *ProductService {
	return &ProductService{
		repo:            repo,
		storeRepo:       storeRepo,
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		offerTagRepo:    offerTagRepo,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID    uint
	SubCategoryID uint
	OfferTagID    *uint
	Name          string
	Slug          string
	Brand         string
	Description   string
	Images        []string
	IsActive      *bool
	Variants      []VariantInput
}

// VariantInput 规格输入
type VariantInput struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Stock    int
	Image    string
	IsActive *bool
}

// PublicProductQuery 公开商品查询条件
type PublicProductQuery struct {
	Page          int
	PageSize      int
	CategoryID    uint
	SubCategoryID uint
	OfferTagID    uint
	StoreID       uint
	Search        string
	OrderBy       string
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(query PublicProductQuery) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:          query.Page,
		PageSize:      query.PageSize,
		StoreID:       query.StoreID,
		CategoryID:    query.CategoryID,
		SubCategoryID: query.SubCategoryID,
		OfferTagID:    query.OfferTagID,
		Search:        strings.TrimSpace(query.Search),
		OnlyActive:    true,
		WithVariants:  true,
		OrderBy:       query.OrderBy,
	})
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Store == nil || product.Store.Status != constants.StoreStatusActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListStoreProducts 卖家查询店铺商品
func (s *ProductService) ListStoreProducts(session *Session, storeID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		StoreID:      storeID,
		Search:       strings.TrimSpace(search),
		WithVariants: true,
	})
}

// Create 卖家在自有店铺创建商品（可同时创建规格）
func (s *ProductService) Create(session *Session, storeID uint, input ProductInput) (*models.Product, error) {
	store, err := requireOwnedStore(s.storeRepo, session, storeID)
	if err != nil {
		return nil, err
	}
	input, err = s.prepareProduct(input, 0)
	if err != nil {
		return nil, err
	}

	variants := make([]models.ProductVariant, 0, len(input.Variants))
	seenSKU := make(map[string]struct{}, len(input.Variants))
	for _, item := range input.Variants {
		variant, err := buildVariant(item)
		if err != nil {
			return nil, err
		}
		if _, ok := seenSKU[variant.SKU]; ok {
			return nil, ErrVariantSKUExists
		}
		seenSKU[variant.SKU] = struct{}{}
		variants = append(variants, variant)
	}

	product := &models.Product{
		StoreID:       store.ID,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		OfferTagID:    input.OfferTagID,
		Name:          input.Name,
		Slug:          input.Slug,
		Brand:         input.Brand,
		Description:   input.Description,
		Images:        models.StringArray(input.Images),
		IsActive:      true,
		Variants:      variants,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(product); err != nil {
			return err
		}
		// gorm 对带默认值的零值字段不会写入，需要显式更新
		if input.IsActive != nil && !*input.IsActive {
			product.IsActive = false
			return repo.Update(product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update 卖家更新商品基础信息
func (s *ProductService) Update(session *Session, storeID, productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(session, storeID, productID)
	if err != nil {
		return nil, err
	}
	input, err = s.prepareProduct(input, product.ID)
	if err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.SubCategoryID = input.SubCategoryID
	product.OfferTagID = input.OfferTagID
	product.Name = input.Name
	product.Slug = input.Slug
	product.Brand = input.Brand
	product.Description = input.Description
	product.Images = models.StringArray(input.Images)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.OfferTag = nil
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 卖家删除商品
func (s *ProductService) Delete(session *Session, storeID, productID uint) error {
	product, err := s.ownedProduct(session, storeID, productID)
	if err != nil {
		return err
	}
	return s.repo.Delete(product.ID)
}

// CreateVariant 为商品新增规格
func (s *ProductService) CreateVariant(session *Session, storeID, productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.ownedProduct(session, storeID, productID)
	if err != nil {
		return nil, err
	}
	variant, err := buildVariant(input)
	if err != nil {
		return nil, err
	}
	for _, existing := range product.Variants {
		if existing.SKU == variant.SKU {
			return nil, ErrVariantSKUExists
		}
	}
	variant.ProductID = product.ID
	if err := s.repo.CreateVariant(&variant); err != nil {
		return nil, err
	}
	if input.IsActive != nil && !*input.IsActive {
		variant.IsActive = false
		if err := s.repo.UpdateVariant(&variant); err != nil {
			return nil, err
		}
	}
	return &variant, nil
}

// UpdateVariant 更新规格
func (s *ProductService) UpdateVariant(session *Session, storeID, productID, variantID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.ownedProduct(session, storeID, productID)
	if err != nil {
		return nil, err
	}
	next, err := buildVariant(input)
	if err != nil {
		return nil, err
	}
	var target *models.ProductVariant
	for i := range product.Variants {
		existing := &product.Variants[i]
		if existing.ID == variantID {
			target = existing
			continue
		}
		if existing.SKU == next.SKU {
			return nil, ErrVariantSKUExists
		}
	}
	if target == nil {
		return nil, ErrVariantNotFound
	}

	target.Name = next.Name
	target.SKU = next.SKU
	target.Price = next.Price
	target.Stock = next.Stock
	target.Image = next.Image
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	if err := s.repo.UpdateVariant(target); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteVariant 删除规格
func (s *ProductService) DeleteVariant(session *Session, storeID, productID, variantID uint) error {
	product, err := s.ownedProduct(session, storeID, productID)
	if err != nil {
		return err
	}
	for _, existing := range product.Variants {
		if existing.ID == variantID {
			return s.repo.DeleteVariant(variantID)
		}
	}
	return ErrVariantNotFound
}

func (s *ProductService) ownedProduct(session *Session, storeID, productID uint) (*models.Product, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != storeID {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) prepareProduct(input ProductInput, excludeID uint) (ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Brand = strings.TrimSpace(input.Brand)
	input.Slug = normalizeSlug(input.Slug)
	if input.Slug == "" {
		input.Slug = normalizeSlug(input.Name)
	}
	if input.Name == "" || input.Slug == "" {
		return input, ErrInvalidInput
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return input, err
	}
	if category == nil {
		return input, ErrCategoryNotFound
	}
	subCategory, err := s.subCategoryRepo.GetByID(input.SubCategoryID)
	if err != nil {
		return input, err
	}
	if subCategory == nil || subCategory.CategoryID != category.ID {
		return input, ErrSubCategoryNotFound
	}
	if input.OfferTagID != nil {
		if *input.OfferTagID == 0 {
			input.OfferTagID = nil
		} else {
			tag, err := s.offerTagRepo.GetByID(*input.OfferTagID)
			if err != nil {
				return input, err
			}
			if tag == nil {
				return input, ErrOfferTagNotFound
			}
		}
	}

	count, err := s.repo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return input, err
	}
	if count > 0 {
		return input, ErrProductSlugExists
	}
	return input, nil
}

func buildVariant(input VariantInput) (models.ProductVariant, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if name == "" || sku == "" {
		return models.ProductVariant{}, ErrInvalidInput
	}
	price := models.NewMoneyFromDecimal(input.Price)
	if !price.IsPositive() {
		return models.ProductVariant{}, ErrPriceInvalid
	}
	if input.Stock < 0 {
		return models.ProductVariant{}, ErrInvalidQuantity
	}
	return models.ProductVariant{
		Name:     name,
		SKU:      sku,
		Price:    price,
		Stock:    input.Stock,
		Image:    strings.TrimSpace(input.Image),
		IsActive: true,
	}, nil
}
