package models

import "time"

// Cart 购物车（每个用户一个）
type Cart struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                       // 主键
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`                        // 用户ID
	CouponID     *uint     `gorm:"index" json:"coupon_id,omitempty"`                           // 已应用的优惠券ID（至多一张）
	Subtotal     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`      // 商品小计
	ShippingFees Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fees"` // 运费合计
	Total        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`         // 应付总额
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                 // 更新时间

	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`              // 购物车项（按加入顺序）
	Coupon *Coupon    `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 已应用优惠券
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
