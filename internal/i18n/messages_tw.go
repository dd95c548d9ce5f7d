package i18n

// 繁体目录只覆盖常用提示，其余回退到简体
var messagesTW = map[string]string{
	"common.success":                 "操作成功",
	"error.bad_request":              "請求參數錯誤",
	"error.unknown":                  "發生未知錯誤，請稍後重試",
	"error.unauthorized":             "未授權，請先登入",
	"error.forbidden":                "無權存取",
	"error.token_invalid":            "登入憑證無效",
	"error.token_revoked":            "登入憑證已失效，請重新登入",
	"error.too_many_requests":        "請求過於頻繁，請稍後再試",
	"error.invalid_credentials":      "信箱或密碼錯誤",
	"error.coupon_invalid":           "優惠碼無效",
	"error.coupon_expired":           "優惠券已過期或尚未生效",
	"error.coupon_already_applied":   "購物車已使用優惠券",
	"error.coupon_no_eligible_items": "購物車中沒有該店鋪的商品",
	"error.cart_not_found":           "購物車不存在",
	"error.store_not_owned":          "無權操作該店鋪",
	"validation.required":            "此欄位為必填",
	"coupon.applied":                 "優惠券已套用，%s 店鋪優惠 %s",
	"order.placed":                   "下單成功",
}
