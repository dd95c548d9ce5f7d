package i18n

var messagesEN = map[string]string{
	"common.success":               "Success",
	"error.bad_request":            "Bad request",
	"error.unknown":                "Something went wrong, please try again later",
	"error.internal":               "Internal server error",
	"error.not_found":              "Not found",
	"error.invalid_input":          "Invalid input",
	"error.id_invalid":             "Invalid id",
	"error.forbidden":              "Forbidden",
	"error.unauthorized":           "Unauthorized, please sign in",
	"error.too_many_requests":      "Too many requests, please try again later",
	"error.jwt_secret_missing":     "JWT secret is not configured",
	"error.auth_header_missing":    "Authorization header is missing",
	"error.auth_header_invalid":    "Authorization header is malformed",
	"error.token_invalid":          "Invalid token",
	"error.token_revoked":          "Token has been revoked, please sign in again",
	"error.user_id_invalid":        "Invalid user id",
	"error.user_id_type_invalid":   "Invalid user id type",
	"error.rate_limited":           "Too many requests, retry in %d seconds",
	"error.login_too_many":         "Too many login attempts, retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiter is unavailable",
	"error.session_invalid":        "Invalid session",
	"error.role_not_assignable":    "Only buyer and seller roles can be changed",
	"error.role_locked":            "Admin role policies cannot be changed",

	"error.email_invalid":            "Invalid email address",
	"error.email_exists":             "Email is already registered",
	"error.invalid_credentials":      "Invalid email or password",
	"error.user_disabled":            "Account is disabled",
	"error.user_status_invalid":      "Invalid user status",
	"error.weak_password":            "Password is too weak",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a number",
	"error.password_require_special": "Password must contain a special character",
	"error.password_max_length":      "Password must be at most %d bytes",
	"error.password_contains_email":  "Password must not contain your email name",

	"error.category_not_found":     "Category not found",
	"error.sub_category_not_found": "Sub category not found",
	"error.offer_tag_not_found":    "Offer tag not found",
	"error.slug_exists":            "Url already exists",
	"error.category_in_use":        "Category still has sub categories or products",
	"error.sub_category_in_use":    "Sub category still has products",
	"error.offer_tag_in_use":       "Offer tag is still used by products",

	"error.store_not_found":      "Store not found",
	"error.store_not_owned":      "You do not own this store",
	"error.store_inactive":       "Store is not active",
	"error.store_name_exists":    "Store name already exists",
	"error.store_url_exists":     "Store url already exists",
	"error.store_status_invalid": "Invalid store status",

	"error.product_not_found":    "Product not found",
	"error.product_slug_exists":  "Product slug already exists",
	"error.variant_not_found":    "Variant not found",
	"error.variant_out_of_stock": "Not enough stock",
	"error.variant_sku_exists":   "SKU already exists",
	"error.price_invalid":        "Price must be greater than 0",

	"error.coupon_code_invalid":       "Coupon code must be at least 2 characters",
	"error.coupon_invalid":            "Invalid coupon",
	"error.coupon_expired":            "Coupon is expired or not yet active",
	"error.coupon_already_applied":    "A coupon is already applied to this cart",
	"error.coupon_no_eligible_items":  "No items in your cart belong to this store",
	"error.coupon_not_found":          "Coupon not found",
	"error.coupon_code_exists":        "Coupon code already exists",
	"error.coupon_discount_invalid":   "Discount must be between 1 and 99",
	"error.coupon_date_range_invalid": "End date must be after start date",

	"error.cart_not_found":   "Cart not found",
	"error.cart_empty":       "Cart is empty",
	"error.quantity_invalid": "Invalid quantity",

	"error.order_not_found":          "Order not found",
	"error.order_group_not_found":    "Order group not found",
	"error.order_item_not_found":     "Order item not found",
	"error.order_status_invalid":     "Invalid order status",
	"error.product_status_invalid":   "Invalid product status",
	"error.shipping_info_required":   "Shipping name and address are required",
	"error.order_fetch_failed":       "Failed to load orders",
	"error.login_log_fetch_failed":   "Failed to load login logs",
	"error.status_history_not_found": "Status history not found",

	"validation.required": "This field is required",
	"validation.email":    "Invalid email address",
	"validation.min":      "Must be at least %s",
	"validation.max":      "Must be at most %s",
	"validation.gt":       "Must be greater than %s",
	"validation.gte":      "Must be greater than or equal to %s",
	"validation.lte":      "Must be less than or equal to %s",
	"validation.oneof":    "Must be one of: %s",
	"validation.url":      "Invalid url",
	"validation.invalid":  "Invalid value",

	"auth.registered":            "Registered successfully",
	"auth.logged_in":             "Signed in successfully",
	"coupon.applied":             "Coupon applied: %[2]s off from %[1]s",
	"coupon.removed":             "Coupon removed",
	"coupon.created":             "Coupon created",
	"coupon.updated":             "Coupon updated",
	"coupon.deleted":             "Coupon deleted",
	"cart.saved":                 "Cart saved",
	"order.placed":               "Order placed",
	"order_group.status_updated": "Order status updated",
	"order_item.status_updated":  "Item status updated",
	"store.applied":              "Store application submitted for review",
	"store.updated":              "Store updated",
	"store.status_updated":       "Store status updated",
	"category.created":           "Category created",
	"category.updated":           "Category updated",
	"category.deleted":           "Category deleted",
	"sub_category.created":       "Sub category created",
	"sub_category.updated":       "Sub category updated",
	"sub_category.deleted":       "Sub category deleted",
	"offer_tag.created":          "Offer tag created",
	"offer_tag.updated":          "Offer tag updated",
	"offer_tag.deleted":          "Offer tag deleted",
	"product.created":            "Product created",
	"product.updated":            "Product updated",
	"product.deleted":            "Product deleted",
	"variant.created":            "Variant created",
	"variant.updated":            "Variant updated",
	"variant.deleted":            "Variant deleted",
	"user.status_updated":        "User status updated",
	"authz.policy_granted":       "Policy granted",
	"authz.policy_revoked":       "Policy revoked",
}
