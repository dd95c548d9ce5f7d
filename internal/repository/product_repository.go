package repository

import (
	"errors"
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	GetVariant(id uint) (*models.ProductVariant, error)
	ListVariantsByIDs(ids []uint) ([]models.ProductVariant, error)
	CreateVariant(variant *models.ProductVariant) error
	UpdateVariant(variant *models.ProductVariant) error
	DeleteVariant(id uint) error
	DecrementStock(variantID uint, quantity int) (int64, error)
	IncrementSales(productID uint, quantity int) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true).
			Where("store_id IN (?)", r.db.Model(&models.Store{}).Select("id").Where("status = ?", constants.StoreStatusActive))
	}
	if filter.WithVariants {
		query = query.Preload("Store").Preload("Variants", func(db *gorm.DB) *gorm.DB {
			if filter.OnlyActive {
				db = db.Where("is_active = ?", true)
			}
			return db.Order("id ASC")
		})
	}
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubCategoryID > 0 {
		query = query.Where("sub_category_id = ?", filter.SubCategoryID)
	}
	if filter.OfferTagID > 0 {
		query = query.Where("offer_tag_id = ?", filter.OfferTagID)
	}
	query = applyKeywordFilter(query, r.db, filter.Search, "name", "brand", "slug")

	query, total, err := pageQuery(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	if err := query.Order(productOrderClause(filter.OrderBy)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productOrderClause(orderBy string) string {
	switch strings.ToLower(strings.TrimSpace(orderBy)) {
	case "sales":
		return "sales DESC, id DESC"
	case "oldest":
		return "created_at ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Store").Preload("Category").Preload("SubCategory").Preload("OfferTag").
		Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true).Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("id ASC")
		})
	} else {
		query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品（连同规格）
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品基础信息
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Variants", "Store", "Category", "SubCategory", "OfferTag").Save(product).Error
}

// Delete 删除商品及其规格
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetVariant 根据 ID 获取规格（含商品）
func (r *GormProductRepository) GetVariant(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.Preload("Product").First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListVariantsByIDs 批量获取规格（含商品与店铺）
func (r *GormProductRepository) ListVariantsByIDs(ids []uint) ([]models.ProductVariant, error) {
	if len(ids) == 0 {
		return []models.ProductVariant{}, nil
	}
	var variants []models.ProductVariant
	if err := r.db.Preload("Product.Store").Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateVariant 创建规格
func (r *GormProductRepository) CreateVariant(variant *models.ProductVariant) error {
	return r.db.Omit("Product").Create(variant).Error
}

// UpdateVariant 更新规格
func (r *GormProductRepository) UpdateVariant(variant *models.ProductVariant) error {
	return r.db.Omit("Product").Save(variant).Error
}

// DeleteVariant 删除规格
func (r *GormProductRepository) DeleteVariant(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// DecrementStock 扣减规格库存，库存不足时影响行数为 0
func (r *GormProductRepository) DecrementStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementSales 累加商品销量
func (r *GormProductRepository) IncrementSales(productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("sales", gorm.Expr("sales + ?", quantity)).Error
}
