package service

import (
	"context"
	"time"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	cfg         *config.Config
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cfg *config.Config, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cfg: cfg, cartRepo: cartRepo, productRepo: productRepo}
}

// CartLineInput 购物车项输入
type CartLineInput struct {
	VariantID uint
	Quantity  int
}

// Get 获取当前用户购物车（不存在时创建空购物车）
func (s *CartService) Get(session *Session) (*models.Cart, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	ctx := context.Background()
	if cached, hit, err := cache.GetCartSnapshot(ctx, session.UserID); err == nil && hit && cached != nil {
		return cached, nil
	}

	cart, err := s.cartRepo.GetByUserID(session.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: session.UserID, Items: []models.CartItem{}}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}
	s.storeSnapshot(ctx, cart)
	return cart, nil
}

// Save 整体保存购物车项并重算金额，已应用的优惠券会被移除
func (s *CartService) Save(session *Session, lines []CartLineInput) (*models.Cart, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	items, err := s.buildItems(lines)
	if err != nil {
		return nil, err
	}
	subtotal, shipping := sumCartItems(items)

	var cartID uint
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetByUserID(session.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &models.Cart{UserID: session.UserID}
			if err := cartRepo.Create(cart); err != nil {
				return err
			}
		}
		cartID = cart.ID
		if err := cartRepo.ReplaceItems(cart.ID, items); err != nil {
			return err
		}
		cart.CouponID = nil
		cart.Subtotal = models.NewMoneyFromDecimal(subtotal)
		cart.ShippingFees = models.NewMoneyFromDecimal(shipping)
		cart.Total = models.NewMoneyFromDecimal(subtotal.Add(shipping))
		return cartRepo.UpdateTotals(cart)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(cartID, session.UserID)
}

// RemoveCoupon 移除购物车优惠券并恢复原总额
func (s *CartService) RemoveCoupon(session *Session, cartID uint) (*models.Cart, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.UserID != session.UserID {
		return nil, ErrCartNotFound
	}
	if cart.CouponID == nil {
		return cart, nil
	}
	total := models.NewMoneyFromDecimal(cart.Subtotal.Add(cart.ShippingFees.Decimal))
	if err := s.cartRepo.DetachCoupon(cart.ID, total); err != nil {
		return nil, err
	}
	return s.reload(cart.ID, session.UserID)
}

func (s *CartService) reload(cartID, userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	ctx := context.Background()
	if err := cache.DelCartSnapshot(ctx, userID); err != nil {
		logger.Warnw("cart_snapshot_invalidate_failed", "user_id", userID, "error", err)
	}
	s.storeSnapshot(ctx, cart)
	return cart, nil
}

func (s *CartService) storeSnapshot(ctx context.Context, cart *models.Cart) {
	ttl := time.Duration(constants.DefaultCartSnapshotTTLMs) * time.Millisecond
	if s.cfg != nil && s.cfg.Order.CartCacheTTLSeconds > 0 {
		ttl = time.Duration(s.cfg.Order.CartCacheTTLSeconds) * time.Second
	}
	if err := cache.SetCartSnapshot(ctx, cart, ttl); err != nil {
		logger.Warnw("cart_snapshot_store_failed", "user_id", cart.UserID, "error", err)
	}
}

// buildItems 根据规格生成购物车项，同一规格合并数量并保留首次出现的顺序
func (s *CartService) buildItems(lines []CartLineInput) ([]models.CartItem, error) {
	quantities := make(map[uint]int, len(lines))
	order := make([]uint, 0, len(lines))
	for _, line := range lines {
		if line.VariantID == 0 || line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, ok := quantities[line.VariantID]; !ok {
			order = append(order, line.VariantID)
		}
		quantities[line.VariantID] += line.Quantity
	}

	variants, err := s.productRepo.ListVariantsByIDs(order)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.ProductVariant, len(variants))
	for _, variant := range variants {
		byID[variant.ID] = variant
	}

	items := make([]models.CartItem, 0, len(order))
	for _, variantID := range order {
		variant, ok := byID[variantID]
		if !ok || !variant.IsActive || variant.Product == nil || !variant.Product.IsActive {
			return nil, ErrVariantNotFound
		}
		store := variant.Product.Store
		if store == nil || store.Status != constants.StoreStatusActive {
			return nil, ErrStoreInactive
		}
		quantity := quantities[variantID]
		if variant.Stock < quantity {
			return nil, ErrVariantOutOfStock
		}

		shippingFee := lineShippingFee(store, quantity)
		lineTotal := variant.Price.Mul(decimal.NewFromInt(int64(quantity))).Add(shippingFee)
		image := variant.Image
		if image == "" && len(variant.Product.Images) > 0 {
			image = variant.Product.Images[0]
		}
		items = append(items, models.CartItem{
			ProductID:   variant.ProductID,
			VariantID:   variant.ID,
			StoreID:     store.ID,
			Name:        variant.Product.Name + " - " + variant.Name,
			SKU:         variant.SKU,
			Image:       image,
			Price:       variant.Price,
			Quantity:    quantity,
			ShippingFee: models.NewMoneyFromDecimal(shippingFee),
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}
	return items, nil
}

// lineShippingFee 首件运费 + 续件运费 * (数量 - 1)
func lineShippingFee(store *models.Store, quantity int) decimal.Decimal {
	if store == nil || quantity <= 0 {
		return decimal.Zero
	}
	fee := store.ShippingFeePerItem.Decimal
	if quantity > 1 {
		fee = fee.Add(store.ShippingFeeForAdditionalItem.Mul(decimal.NewFromInt(int64(quantity - 1))))
	}
	return fee.Round(2)
}

// sumCartItems 汇总购物车商品小计与运费
func sumCartItems(items []models.CartItem) (decimal.Decimal, decimal.Decimal) {
	subtotal := decimal.Zero
	shipping := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		shipping = shipping.Add(item.ShippingFee.Decimal)
	}
	return subtotal.Round(2), shipping.Round(2)
}
