package shared

import (
	"errors"

	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/i18n"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Fail(c, appErr)
}

// mappedHandlerError 定义业务错误到国际化文案的映射关系。
type mappedHandlerError struct {
	target error
	key    string
}

var serviceErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, key: "error.unauthorized"},
	{target: service.ErrNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, key: "error.invalid_input"},
	{target: service.ErrInvalidEmail, key: "error.email_invalid"},
	{target: service.ErrEmailExists, key: "error.email_exists"},
	{target: service.ErrInvalidCredentials, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, key: "error.user_disabled"},
	{target: service.ErrWeakPassword, key: "error.weak_password"},
	{target: service.ErrInvalidToken, key: "error.token_invalid"},
	{target: service.ErrTooManyRequests, key: "error.too_many_requests"},
	{target: service.ErrCategoryNotFound, key: "error.category_not_found"},
	{target: service.ErrSubCategoryNotFound, key: "error.sub_category_not_found"},
	{target: service.ErrOfferTagNotFound, key: "error.offer_tag_not_found"},
	{target: service.ErrSlugExists, key: "error.slug_exists"},
	{target: service.ErrCategoryInUse, key: "error.category_in_use"},
	{target: service.ErrSubCategoryInUse, key: "error.sub_category_in_use"},
	{target: service.ErrOfferTagInUse, key: "error.offer_tag_in_use"},
	{target: service.ErrStoreNotFound, key: "error.store_not_found"},
	{target: service.ErrStoreNotOwned, key: "error.store_not_owned"},
	{target: service.ErrStoreInactive, key: "error.store_inactive"},
	{target: service.ErrStoreNameExists, key: "error.store_name_exists"},
	{target: service.ErrStoreURLExists, key: "error.store_url_exists"},
	{target: service.ErrStoreStatusBad, key: "error.store_status_invalid"},
	{target: service.ErrProductNotFound, key: "error.product_not_found"},
	{target: service.ErrProductSlugExists, key: "error.product_slug_exists"},
	{target: service.ErrVariantNotFound, key: "error.variant_not_found"},
	{target: service.ErrVariantOutOfStock, key: "error.variant_out_of_stock"},
	{target: service.ErrVariantSKUExists, key: "error.variant_sku_exists"},
	{target: service.ErrPriceInvalid, key: "error.price_invalid"},
	{target: service.ErrCouponCodeInvalid, key: "error.coupon_code_invalid"},
	{target: service.ErrCouponInvalid, key: "error.coupon_invalid"},
	{target: service.ErrCouponExpired, key: "error.coupon_expired"},
	{target: service.ErrCouponAlreadyApplied, key: "error.coupon_already_applied"},
	{target: service.ErrNoEligibleItems, key: "error.coupon_no_eligible_items"},
	{target: service.ErrCouponNotFound, key: "error.coupon_not_found"},
	{target: service.ErrCouponCodeExists, key: "error.coupon_code_exists"},
	{target: service.ErrCouponDiscountInvalid, key: "error.coupon_discount_invalid"},
	{target: service.ErrCouponDateRangeInvalid, key: "error.coupon_date_range_invalid"},
	{target: service.ErrCartNotFound, key: "error.cart_not_found"},
	{target: service.ErrCartEmpty, key: "error.cart_empty"},
	{target: service.ErrInvalidQuantity, key: "error.quantity_invalid"},
	{target: service.ErrOrderNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderGroupNotFound, key: "error.order_group_not_found"},
	{target: service.ErrOrderItemNotFound, key: "error.order_item_not_found"},
	{target: service.ErrOrderStatusInvalid, key: "error.order_status_invalid"},
	{target: service.ErrProductStatusInvalid, key: "error.product_status_invalid"},
	{target: service.ErrShippingInfoRequired, key: "error.shipping_info_required"},
}

type localizedError interface {
	Key() string
	Args() []interface{}
}

// ResolvedError 业务错误解析后的响应要素
type ResolvedError struct {
	Code    int
	Field   string
	Message string
	Known   bool
}

// ResolveServiceError 将业务错误解析为状态码、字段与本地化文案
func ResolveServiceError(c *gin.Context, err error) ResolvedError {
	locale := i18n.ResolveLocale(c)
	kind := service.KindOf(err)
	resolved := ResolvedError{
		Code:  codeForKind(kind),
		Field: service.FieldOf(err),
	}
	if errors.Is(err, service.ErrTooManyRequests) {
		resolved.Code = response.CodeTooManyRequests
	}

	var localized localizedError
	if errors.As(err, &localized) {
		resolved.Message = i18n.Sprintf(locale, localized.Key(), localized.Args()...)
		resolved.Known = true
		return resolved
	}
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			resolved.Message = i18n.T(locale, rule.key)
			resolved.Known = true
			return resolved
		}
	}
	resolved.Code = response.CodeInternal
	resolved.Field = ""
	resolved.Message = i18n.T(locale, "error.unknown")
	return resolved
}

func codeForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindBusinessRule:
		return response.CodeBadRequest
	case service.KindNotFound:
		return response.CodeNotFound
	case service.KindUnauthorized:
		return response.CodeUnauthorized
	default:
		return response.CodeInternal
	}
}

// RespondServiceError 以统一响应结构返回业务错误，未知错误记录日志。
func RespondServiceError(c *gin.Context, err error) {
	resolved := ResolveServiceError(c, err)
	if !resolved.Known {
		RequestLog(c).Errorw("handler_unknown_error", "error", err)
	}
	response.Fail(c, response.WrapError(resolved.Code, resolved.Message, err))
}

// RespondActionError 以表单动作结构返回业务错误：{errors: {field: [msg]}}。
func RespondActionError(c *gin.Context, err error) {
	resolved := ResolveServiceError(c, err)
	if !resolved.Known {
		RequestLog(c).Errorw("action_unknown_error", "error", err)
	}
	response.ActionFail(c, response.WrapError(resolved.Code, resolved.Message, err).WithField(resolved.Field))
}

// RespondActionSuccess 返回表单动作成功文案。
func RespondActionSuccess(c *gin.Context, key string, data interface{}, args ...interface{}) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	if len(args) > 0 {
		msg = i18n.Sprintf(locale, key, args...)
	}
	response.ActionSuccess(c, msg, data)
}
