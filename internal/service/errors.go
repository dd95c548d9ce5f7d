package service

import "errors"

// ErrorKind 业务错误分类
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindBusinessRule ErrorKind = "business_rule"
	KindUnauthorized ErrorKind = "unauthorized"
	KindUnknown      ErrorKind = "unknown"
)

// DomainError 带分类与表单字段的业务错误
type DomainError struct {
	Kind  ErrorKind
	Field string
	msg   string
}

func (e *DomainError) Error() string {
	return e.msg
}

func newError(kind ErrorKind, field, msg string) *DomainError {
	return &DomainError{Kind: kind, Field: field, msg: msg}
}

// KindOf 返回错误分类，非业务错误归为 unknown
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, ErrWeakPassword) {
		return KindValidation
	}
	return KindUnknown
}

// FieldOf 返回错误关联的表单字段
func FieldOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Field
	}
	if errors.Is(err, ErrWeakPassword) {
		return "password"
	}
	return ""
}

// 通用错误
var (
	ErrUnauthorized = newError(KindUnauthorized, "", "unauthorized")
	ErrNotFound     = newError(KindNotFound, "", "not found")
	ErrInvalidInput = newError(KindValidation, "", "invalid input")
)

// 认证相关
var (
	ErrInvalidEmail       = newError(KindValidation, "email", "invalid email")
	ErrEmailExists        = newError(KindBusinessRule, "email", "email already exists")
	ErrInvalidCredentials = newError(KindUnauthorized, "password", "invalid credentials")
	ErrUserDisabled       = newError(KindUnauthorized, "", "user disabled")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidToken       = newError(KindUnauthorized, "", "invalid token")
	ErrTooManyRequests    = newError(KindBusinessRule, "", "too many requests")
)

// 分类 / 子分类 / 标签
var (
	ErrCategoryNotFound    = newError(KindNotFound, "category_id", "category not found")
	ErrSubCategoryNotFound = newError(KindNotFound, "sub_category_id", "sub category not found")
	ErrOfferTagNotFound    = newError(KindNotFound, "offer_tag_id", "offer tag not found")
	ErrSlugExists          = newError(KindBusinessRule, "url", "slug already exists")
	ErrCategoryInUse       = newError(KindBusinessRule, "", "category in use")
	ErrSubCategoryInUse    = newError(KindBusinessRule, "", "sub category in use")
	ErrOfferTagInUse       = newError(KindBusinessRule, "", "offer tag in use")
)

// 店铺相关
var (
	ErrStoreNotFound   = newError(KindNotFound, "store_id", "store not found")
	ErrStoreNotOwned   = newError(KindUnauthorized, "", "store not owned by current user")
	ErrStoreInactive   = newError(KindBusinessRule, "", "store is not active")
	ErrStoreNameExists = newError(KindBusinessRule, "name", "store name already exists")
	ErrStoreURLExists  = newError(KindBusinessRule, "url", "store url already exists")
	ErrStoreStatusBad  = newError(KindValidation, "status", "invalid store status")
)

// 商品相关
var (
	ErrProductNotFound   = newError(KindNotFound, "product_id", "product not found")
	ErrProductSlugExists = newError(KindBusinessRule, "slug", "product slug already exists")
	ErrVariantNotFound   = newError(KindNotFound, "variant_id", "variant not found")
	ErrVariantOutOfStock = newError(KindBusinessRule, "quantity", "variant out of stock")
	ErrVariantSKUExists  = newError(KindBusinessRule, "sku", "variant sku already exists")
	ErrPriceInvalid      = newError(KindValidation, "price", "invalid price")
)

// 优惠券相关
var (
	ErrCouponCodeInvalid      = newError(KindValidation, "code", "coupon code must be at least 2 characters")
	ErrCouponInvalid          = newError(KindNotFound, "code", "invalid coupon")
	ErrCouponExpired          = newError(KindBusinessRule, "code", "coupon expired")
	ErrCouponAlreadyApplied   = newError(KindBusinessRule, "code", "coupon already applied")
	ErrNoEligibleItems        = newError(KindBusinessRule, "code", "no eligible items")
	ErrCouponNotFound         = newError(KindNotFound, "", "coupon not found")
	ErrCouponCodeExists       = newError(KindBusinessRule, "code", "coupon code already exists")
	ErrCouponDiscountInvalid  = newError(KindValidation, "discount", "coupon discount out of range")
	ErrCouponDateRangeInvalid = newError(KindValidation, "end_date", "coupon end date must be after start date")
)

// 购物车相关
var (
	ErrCartNotFound    = newError(KindNotFound, "cart_id", "cart not found")
	ErrCartEmpty       = newError(KindBusinessRule, "", "cart is empty")
	ErrInvalidQuantity = newError(KindValidation, "quantity", "invalid quantity")
)

// 订单相关
var (
	ErrOrderNotFound        = newError(KindNotFound, "", "order not found")
	ErrOrderGroupNotFound   = newError(KindNotFound, "group_id", "order group not found")
	ErrOrderItemNotFound    = newError(KindNotFound, "item_id", "order item not found")
	ErrOrderStatusInvalid   = newError(KindValidation, "status", "invalid order status")
	ErrProductStatusInvalid = newError(KindValidation, "status", "invalid product status")
	ErrShippingInfoRequired = newError(KindValidation, "shipping_address", "shipping info required")
)
