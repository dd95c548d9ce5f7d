package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	StoreID       uint
	CategoryID    uint
	SubCategoryID uint
	OfferTagID    uint
	Search        string
	OnlyActive    bool
	WithVariants  bool
	OrderBy       string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderGroupListFilter 查询店铺订单分组的过滤条件
type OrderGroupListFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	Status   string
}

// StoreListFilter 查询店铺列表的过滤条件
type StoreListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Keyword  string
}

// CouponListFilter 优惠券列表筛选
type CouponListFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	Code     string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StatusHistoryFilter 查询订单状态变更记录的过滤条件
type StatusHistoryFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	Axis     string
	TargetID uint
}

// UserLoginLogListFilter 登录审计查询条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
