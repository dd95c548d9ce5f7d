package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/metrics"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/queue"
	"github.com/dujiao-next/market/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	queueClient *queue.Client
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		queueClient: queueClient,
		now:         time.Now,
	}
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	CartID          uint
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
}

// PlaceOrder 将购物车转换为订单：每个店铺一个分组，优惠金额计入优惠券所属店铺分组
func (s *OrderService) PlaceOrder(session *Session, input PlaceOrderInput) (*models.Order, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	input.ShippingName = strings.TrimSpace(input.ShippingName)
	input.ShippingPhone = strings.TrimSpace(input.ShippingPhone)
	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	if input.ShippingName == "" || input.ShippingAddress == "" {
		return nil, ErrShippingInfoRequired
	}

	now := s.now()
	order := &models.Order{
		OrderNo:         s.generateOrderNo(now),
		UserID:          session.UserID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		ShippingName:    input.ShippingName,
		ShippingPhone:   input.ShippingPhone,
		ShippingAddress: input.ShippingAddress,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByID(input.CartID)
		if err != nil {
			return err
		}
		if cart == nil || cart.UserID != session.UserID {
			return ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		var couponDiscount StoreDiscount
		if cart.CouponID != nil && cart.Coupon == nil {
			return ErrCouponInvalid
		}
		if cart.CouponID != nil {
			if !cart.Coupon.ActiveAt(now) {
				return ErrCouponExpired
			}
			couponDiscount, err = CalculateStoreDiscount(cart, cart.Coupon)
			if err != nil {
				return err
			}
		}

		order.Groups = buildOrderGroups(cart, couponDiscount.Discounted)
		subtotal, shipping, discount := decimal.Zero, decimal.Zero, decimal.Zero
		for _, group := range order.Groups {
			subtotal = subtotal.Add(group.Subtotal.Decimal)
			shipping = shipping.Add(group.ShippingFees.Decimal)
			discount = discount.Add(group.DiscountAmount.Decimal)
		}
		order.Subtotal = models.NewMoneyFromDecimal(subtotal)
		order.ShippingFees = models.NewMoneyFromDecimal(shipping)
		order.DiscountAmount = models.NewMoneyFromDecimal(discount)
		order.Total = models.NewMoneyFromDecimal(subtotal.Add(shipping).Sub(discount))

		for _, item := range cart.Items {
			affected, err := productRepo.DecrementStock(item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrVariantOutOfStock
			}
			if err := productRepo.IncrementSales(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return cartRepo.Delete(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderPlaced()
	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", session.UserID,
		"groups", len(order.Groups),
		"request_id", session.RequestID,
	)
	s.notifyOrderPlaced(order, input.CartID)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

func (s *OrderService) notifyOrderPlaced(order *models.Order, cartID uint) {
	payload := queue.OrderPlacedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		CartID:  cartID,
		OrderNo: order.OrderNo,
	}
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderPlaced(payload)
		if err == nil {
			return
		}
		logger.Errorw("order_enqueue_placed_failed", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
	}
	if err := cache.DelCartSnapshot(context.Background(), order.UserID); err != nil {
		logger.Warnw("cart_snapshot_invalidate_failed", "user_id", order.UserID, "error", err)
	}
}

// buildOrderGroups 按店铺首次出现顺序拆分订单分组
func buildOrderGroups(cart *models.Cart, discounted decimal.Decimal) []models.OrderGroup {
	groups := make([]models.OrderGroup, 0)
	index := make(map[uint]int)
	for _, item := range cart.Items {
		idx, ok := index[item.StoreID]
		if !ok {
			groups = append(groups, models.OrderGroup{
				StoreID: item.StoreID,
				Status:  constants.OrderStatusPending,
			})
			idx = len(groups) - 1
			index[item.StoreID] = idx
		}
		groups[idx].Items = append(groups[idx].Items, models.OrderItem{
			StoreID:     item.StoreID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Name:        item.Name,
			SKU:         item.SKU,
			Image:       item.Image,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ShippingFee: item.ShippingFee,
			TotalPrice:  item.TotalPrice,
			Status:      constants.ProductStatusPending,
		})
	}

	for i := range groups {
		subtotal, shipping := decimal.Zero, decimal.Zero
		for _, item := range groups[i].Items {
			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			shipping = shipping.Add(item.ShippingFee.Decimal)
		}
		discount := decimal.Zero
		if cart.Coupon != nil && cart.Coupon.StoreID == groups[i].StoreID {
			discount = discounted
			couponID := cart.Coupon.ID
			groups[i].CouponID = &couponID
		}
		groups[i].Subtotal = models.NewMoneyFromDecimal(subtotal)
		groups[i].ShippingFees = models.NewMoneyFromDecimal(shipping)
		groups[i].DiscountAmount = models.NewMoneyFromDecimal(discount)
		groups[i].Total = models.NewMoneyFromDecimal(subtotal.Add(shipping).Sub(discount))
	}
	return groups
}

func (s *OrderService) generateOrderNo(now time.Time) string {
	prefix := constants.OrderNoPrefix
	if s.cfg != nil && strings.TrimSpace(s.cfg.Order.NoPrefix) != "" {
		prefix = strings.TrimSpace(s.cfg.Order.NoPrefix)
	}
	randPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s%s%s", prefix, now.Format("20060102150405"), randPart)
}

// ListMine 当前用户订单列表
func (s *OrderService) ListMine(session *Session, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if err := RequireUser(session); err != nil {
		return nil, 0, err
	}
	filter.UserID = session.UserID
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.orderRepo.ListByUser(filter)
}

// Get 获取当前用户订单详情
func (s *OrderService) Get(session *Session, orderID uint) (*models.Order, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, session.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo 按订单号获取当前用户订单
func (s *OrderService) GetByOrderNo(session *Session, orderNo string) (*models.Order, error) {
	if err := RequireUser(session); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), session.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListStoreGroups 卖家查询店铺订单分组
func (s *OrderService) ListStoreGroups(session *Session, storeID uint, status string, page, pageSize int) ([]models.OrderGroup, int64, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, 0, err
	}
	return s.orderRepo.ListGroupsByStore(repository.OrderGroupListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Status:   strings.ToLower(strings.TrimSpace(status)),
	})
}

// ListAdmin 管理员查询订单
func (s *OrderService) ListAdmin(session *Session, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.orderRepo.ListAdmin(filter)
}
