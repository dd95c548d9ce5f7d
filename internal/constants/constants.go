package constants

// 用户角色常量
const (
	RoleAdmin  = "ADMIN"
	RoleSeller = "SELLER"
	RoleUser   = "USER"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 店铺状态常量
const (
	StoreStatusPending = "pending"
	StoreStatusActive  = "active"
	StoreStatusBanned  = "banned"
)

// 订单分组（店铺维度）状态常量
const (
	OrderStatusPending          = "pending"
	OrderStatusConfirmed        = "confirmed"
	OrderStatusProcessing       = "processing"
	OrderStatusShipped          = "shipped"
	OrderStatusOutForDelivery   = "out_for_delivery"
	OrderStatusDelivered        = "delivered"
	OrderStatusCancelled        = "cancelled"
	OrderStatusFailed           = "failed"
	OrderStatusRefunded         = "refunded"
	OrderStatusReturned         = "returned"
	OrderStatusPartiallyShipped = "partially_shipped"
	OrderStatusOnHold           = "on_hold"
)

// 订单项（商品维度）状态常量
const (
	ProductStatusPending           = "pending"
	ProductStatusProcessing        = "processing"
	ProductStatusReadyForShipment  = "ready_for_shipment"
	ProductStatusShipped           = "shipped"
	ProductStatusDelivered         = "delivered"
	ProductStatusCanceled          = "canceled"
	ProductStatusReturned          = "returned"
	ProductStatusRefunded          = "refunded"
	ProductStatusFailedDelivery    = "failed_delivery"
	ProductStatusOnHold            = "on_hold"
	ProductStatusBackordered       = "backordered"
	ProductStatusPartiallyShipped  = "partially_shipped"
	ProductStatusExchangeRequested = "exchange_requested"
	ProductStatusAwaitingPickup    = "awaiting_pickup"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 状态变更维度
const (
	StatusAxisOrderGroup = "order_group"
	StatusAxisOrderItem  = "order_item"
)

// 优惠券折扣范围（百分比）
const (
	CouponDiscountMin = 1
	CouponDiscountMax = 99
	CouponCodeMinLen  = 2
)

// 异步任务常量
const (
	QueueDefault             = "default"
	TaskOrderStatusChanged   = "order:status_changed"
	TaskOrderPlaced          = "order:placed"
	OrderNoPrefix            = "MK"
	DefaultCartSnapshotTTLMs = 5 * 60 * 1000
)

// 登录审计常量
const (
	LoginLogStatusSuccess          = "success"
	LoginLogStatusFailed           = "failed"
	LoginLogFailReasonInvalidInput = "invalid_input"
	LoginLogFailReasonBadPassword  = "invalid_credentials"
	LoginLogFailReasonDisabled     = "user_disabled"
	LoginLogFailReasonRateLimited  = "rate_limited"
	LoginLogFailReasonInternal     = "internal_error"
)
