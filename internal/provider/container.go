package provider

import (
	"github.com/dujiao-next/market/internal/authz"
	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/queue"
	"github.com/dujiao-next/market/internal/repository"
	"github.com/dujiao-next/market/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo               repository.UserRepository
	UserLoginLogRepo       repository.UserLoginLogRepository
	StoreRepo              repository.StoreRepository
	CategoryRepo           repository.CategoryRepository
	SubCategoryRepo        repository.SubCategoryRepository
	OfferTagRepo           repository.OfferTagRepository
	ProductRepo            repository.ProductRepository
	CouponRepo             repository.CouponRepository
	CartRepo               repository.CartRepository
	OrderRepo              repository.OrderRepository
	OrderStatusHistoryRepo repository.OrderStatusHistoryRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserLoginLogService *service.UserLoginLogService
	StoreService        *service.StoreService
	CategoryService     *service.CategoryService
	SubCategoryService  *service.SubCategoryService
	OfferTagService     *service.OfferTagService
	ProductService      *service.ProductService
	CouponAdminService  *service.CouponAdminService
	CouponService       *service.CouponService
	CartService         *service.CartService
	OrderService        *service.OrderService
	OrderStatusService  *service.OrderStatusService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SubCategoryRepo = repository.NewSubCategoryRepository(db)
	c.OfferTagRepo = repository.NewOfferTagRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderStatusHistoryRepo = repository.NewOrderStatusHistoryRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.StoreService = service.NewStoreService(c.StoreRepo, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.SubCategoryService = service.NewSubCategoryService(c.SubCategoryRepo, c.CategoryRepo)
	c.OfferTagService = service.NewOfferTagService(c.OfferTagRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.StoreRepo, c.CategoryRepo, c.SubCategoryRepo, c.OfferTagRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.StoreRepo, c.CartRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CartRepo)
	c.CartService = service.NewCartService(c.Config, c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.CartRepo, c.ProductRepo, c.StoreRepo, c.QueueClient)
	c.OrderStatusService = service.NewOrderStatusService(c.OrderRepo, c.StoreRepo, c.OrderStatusHistoryRepo, c.QueueClient)
}

// Close 释放队列客户端与缓存连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			firstErr = err
		}
	}
	if err := cache.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
