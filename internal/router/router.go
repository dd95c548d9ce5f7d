package router

import (
	"sort"
	"strings"

	"github.com/dujiao-next/market/internal/authz"
	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/config"
	adminhandlers "github.com/dujiao-next/market/internal/http/handlers/admin"
	publichandlers "github.com/dujiao-next/market/internal/http/handlers/public"
	sellerhandlers "github.com/dujiao-next/market/internal/http/handlers/seller"
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/metrics"
	"github.com/dujiao-next/market/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	handlershared.RegisterValidatorTagNames()
	r := gin.New()

	// 初始化 Handler（前台 / 卖家 / 平台）
	publicHandler := publichandlers.New(c)
	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        cache.BuildKey("rate", "login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
		OnLimited: func(ctx *gin.Context) {
			publicHandler.RecordRateLimitedLogin(ctx, readJSONField(ctx, "email"))
		},
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		// 公开目录
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:slug", publicHandler.GetCategoryBySlug)
		apiV1.GET("/sub-categories", publicHandler.GetSubCategories)
		apiV1.GET("/offer-tags", publicHandler.GetOfferTags)
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProductBySlug)
		apiV1.GET("/stores/:url", publicHandler.GetStoreByURL)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByLoginEmail), publicHandler.UserLogin)
		}

		// 登录后接口，角色权限由 casbin 判定
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), RoleRBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", publicHandler.GetCurrentUser)
			authorized.GET("/me/login-logs", publicHandler.GetMyLoginLogs)

			authorized.GET("/cart", publicHandler.GetCart)
			authorized.PUT("/cart", publicHandler.SaveCart)
			authorized.POST("/cart/coupon", publicHandler.ApplyCoupon)
			authorized.DELETE("/cart/coupon", publicHandler.RemoveCoupon)

			authorized.POST("/orders", publicHandler.PlaceOrder)
			authorized.GET("/orders", publicHandler.ListOrders)
			authorized.GET("/orders/:id", publicHandler.GetOrder)
			authorized.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)

			authorized.POST("/stores/apply", publicHandler.ApplyStore)

			// 卖家后台
			seller := authorized.Group("/seller")
			{
				seller.GET("/stores", sellerHandler.ListMyStores)
				seller.PUT("/stores/:store_id", sellerHandler.UpdateStore)

				seller.GET("/stores/:store_id/coupons", sellerHandler.ListCoupons)
				seller.POST("/stores/:store_id/coupons", sellerHandler.CreateCoupon)
				seller.PUT("/stores/:store_id/coupons/:id", sellerHandler.UpdateCoupon)
				seller.DELETE("/stores/:store_id/coupons/:id", sellerHandler.DeleteCoupon)

				seller.GET("/stores/:store_id/products", sellerHandler.ListProducts)
				seller.POST("/stores/:store_id/products", sellerHandler.CreateProduct)
				seller.PUT("/stores/:store_id/products/:id", sellerHandler.UpdateProduct)
				seller.DELETE("/stores/:store_id/products/:id", sellerHandler.DeleteProduct)
				seller.POST("/stores/:store_id/products/:id/variants", sellerHandler.CreateVariant)
				seller.PUT("/stores/:store_id/products/:id/variants/:variant_id", sellerHandler.UpdateVariant)
				seller.DELETE("/stores/:store_id/products/:id/variants/:variant_id", sellerHandler.DeleteVariant)

				seller.GET("/stores/:store_id/order-groups", sellerHandler.ListOrderGroups)
				seller.PATCH("/stores/:store_id/order-groups/:id/status", sellerHandler.UpdateOrderGroupStatus)
				seller.PATCH("/stores/:store_id/order-items/:id/status", sellerHandler.UpdateOrderItemStatus)
				seller.GET("/stores/:store_id/status-history", sellerHandler.ListStatusHistory)
			}

			// 平台管理
			admin := authorized.Group("/admin")
			{
				admin.POST("/categories", adminHandler.CreateCategory)
				admin.PUT("/categories/:id", adminHandler.UpdateCategory)
				admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
				admin.POST("/sub-categories", adminHandler.CreateSubCategory)
				admin.PUT("/sub-categories/:id", adminHandler.UpdateSubCategory)
				admin.DELETE("/sub-categories/:id", adminHandler.DeleteSubCategory)
				admin.POST("/offer-tags", adminHandler.CreateOfferTag)
				admin.PUT("/offer-tags/:id", adminHandler.UpdateOfferTag)
				admin.DELETE("/offer-tags/:id", adminHandler.DeleteOfferTag)

				admin.GET("/stores", adminHandler.ListStores)
				admin.PATCH("/stores/:id/status", adminHandler.UpdateStoreStatus)

				admin.GET("/users", adminHandler.ListUsers)
				admin.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)
				admin.GET("/user-login-logs", adminHandler.ListUserLoginLogs)

				admin.GET("/orders", adminHandler.ListOrders)

				admin.GET("/authz/roles", adminHandler.ListRoles)
				admin.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				admin.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				admin.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildPermissionCatalog(r))
				})
			}
		}
	}

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(metrics.Handler()))
	}

	// 健康检查
	health := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.GET("/healthz", health)

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog 汇总所有需要登录的路由，供后台核对角色策略
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isProtectedRoute(method, item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func isProtectedRoute(method, path string) bool {
	if !strings.HasPrefix(path, apiPrefix+"/") {
		return false
	}
	rest := strings.TrimPrefix(path, apiPrefix)
	for _, prefix := range []string{"/me", "/cart", "/orders", "/seller/", "/admin/"} {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return method == "POST" && rest == "/stores/apply"
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	switch segments[0] {
	case "admin":
		return "admin." + segments[1]
	case "seller":
		// /seller/stores/:store_id/<module>
		if len(segments) >= 4 {
			return "seller." + segments[3]
		}
		return "seller." + segments[1]
	}
	return segments[0]
}
