package i18n

var messagesZH = map[string]string{
	// 通用
	"common.success":               "操作成功",
	"error.bad_request":            "请求参数错误",
	"error.unknown":                "发生未知错误，请稍后重试",
	"error.internal":               "服务器内部错误",
	"error.not_found":              "资源不存在",
	"error.invalid_input":          "输入内容无效",
	"error.id_invalid":             "ID 无效",
	"error.forbidden":              "无权访问",
	"error.unauthorized":           "未授权，请先登录",
	"error.too_many_requests":      "请求过于频繁，请稍后再试",
	"error.jwt_secret_missing":     "JWT 密钥未配置",
	"error.auth_header_missing":    "缺少 Authorization 请求头",
	"error.auth_header_invalid":    "Authorization 格式错误",
	"error.token_invalid":          "登录凭证无效",
	"error.token_revoked":          "登录凭证已失效，请重新登录",
	"error.user_id_invalid":        "用户 ID 无效",
	"error.user_id_type_invalid":   "用户 ID 类型错误",
	"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
	"error.login_too_many":         "登录尝试次数过多，请 %d 秒后重试",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.session_invalid":        "会话无效",
	"error.role_not_assignable":    "仅可调整买家与卖家角色",
	"error.role_locked":            "管理员角色策略不可修改",

	// 认证
	"error.email_invalid":            "邮箱格式不正确",
	"error.email_exists":             "邮箱已被注册",
	"error.invalid_credentials":      "邮箱或密码错误",
	"error.user_disabled":            "账号已被禁用",
	"error.user_status_invalid":      "用户状态无效",
	"error.weak_password":            "密码强度不足",
	"error.password_min_length":      "密码长度至少为 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",
	"error.password_max_length":      "密码长度不能超过 %d 字节",
	"error.password_contains_email":  "密码不能包含邮箱前缀",

	// 分类
	"error.category_not_found":     "分类不存在",
	"error.sub_category_not_found": "子分类不存在",
	"error.offer_tag_not_found":    "活动标签不存在",
	"error.slug_exists":            "链接标识已存在",
	"error.category_in_use":        "分类下仍有子分类或商品，无法删除",
	"error.sub_category_in_use":    "子分类下仍有商品，无法删除",
	"error.offer_tag_in_use":       "活动标签仍被商品使用，无法删除",

	// 店铺
	"error.store_not_found":      "店铺不存在",
	"error.store_not_owned":      "无权操作该店铺",
	"error.store_inactive":       "店铺未营业",
	"error.store_name_exists":    "店铺名称已存在",
	"error.store_url_exists":     "店铺链接已存在",
	"error.store_status_invalid": "店铺状态无效",

	// 商品
	"error.product_not_found":    "商品不存在",
	"error.product_slug_exists":  "商品链接标识已存在",
	"error.variant_not_found":    "商品规格不存在",
	"error.variant_out_of_stock": "商品库存不足",
	"error.variant_sku_exists":   "SKU 已存在",
	"error.price_invalid":        "价格必须大于 0",

	// 优惠券
	"error.coupon_code_invalid":       "优惠码至少需要 2 个字符",
	"error.coupon_invalid":            "优惠码无效",
	"error.coupon_expired":            "优惠券已过期或尚未生效",
	"error.coupon_already_applied":    "购物车已使用优惠券",
	"error.coupon_no_eligible_items":  "购物车中没有该店铺的商品",
	"error.coupon_not_found":          "优惠券不存在",
	"error.coupon_code_exists":        "优惠码已存在",
	"error.coupon_discount_invalid":   "折扣需在 1 到 99 之间",
	"error.coupon_date_range_invalid": "结束时间必须晚于开始时间",

	// 购物车
	"error.cart_not_found":   "购物车不存在",
	"error.cart_empty":       "购物车为空",
	"error.quantity_invalid": "数量无效",

	// 订单
	"error.order_not_found":          "订单不存在",
	"error.order_group_not_found":    "订单分组不存在",
	"error.order_item_not_found":     "订单项不存在",
	"error.order_status_invalid":     "订单状态无效",
	"error.product_status_invalid":   "商品状态无效",
	"error.shipping_info_required":   "请填写收货人与收货地址",
	"error.order_fetch_failed":       "获取订单失败",
	"error.login_log_fetch_failed":   "获取登录日志失败",
	"error.status_history_not_found": "状态记录不存在",

	// 表单校验
	"validation.required": "此项为必填项",
	"validation.email":    "邮箱格式不正确",
	"validation.min":      "长度或数值不能小于 %s",
	"validation.max":      "长度或数值不能大于 %s",
	"validation.gt":       "数值必须大于 %s",
	"validation.gte":      "数值不能小于 %s",
	"validation.lte":      "数值不能大于 %s",
	"validation.oneof":    "取值必须是以下之一：%s",
	"validation.url":      "链接格式不正确",
	"validation.invalid":  "输入内容无效",

	// 成功提示
	"auth.registered":            "注册成功",
	"auth.logged_in":             "登录成功",
	"coupon.applied":             "优惠券已使用，%s 店铺优惠 %s",
	"coupon.removed":             "优惠券已移除",
	"coupon.created":             "优惠券已创建",
	"coupon.updated":             "优惠券已更新",
	"coupon.deleted":             "优惠券已删除",
	"cart.saved":                 "购物车已保存",
	"order.placed":               "下单成功",
	"order_group.status_updated": "订单状态已更新",
	"order_item.status_updated":  "商品状态已更新",
	"store.applied":              "开店申请已提交，等待审核",
	"store.updated":              "店铺信息已更新",
	"store.status_updated":       "店铺状态已更新",
	"category.created":           "分类已创建",
	"category.updated":           "分类已更新",
	"category.deleted":           "分类已删除",
	"sub_category.created":       "子分类已创建",
	"sub_category.updated":       "子分类已更新",
	"sub_category.deleted":       "子分类已删除",
	"offer_tag.created":          "活动标签已创建",
	"offer_tag.updated":          "活动标签已更新",
	"offer_tag.deleted":          "活动标签已删除",
	"product.created":            "商品已创建",
	"product.updated":            "商品已更新",
	"product.deleted":            "商品已删除",
	"variant.created":            "规格已创建",
	"variant.updated":            "规格已更新",
	"variant.deleted":            "规格已删除",
	"user.status_updated":        "用户状态已更新",
	"authz.policy_granted":       "权限已授予",
	"authz.policy_revoked":       "权限已撤销",
}
