package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderGroup 订单店铺分组（一个订单每个店铺一组）
type OrderGroup struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	StoreID        uint           `gorm:"index;not null" json:"store_id"`                               // 店铺ID
	Status         string         `gorm:"index;not null" json:"status"`                                 // 分组状态（OrderStatus）
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                             // 优惠券ID
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	ShippingFees   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fees"`   // 运费合计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	Total          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`           // 分组总额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Order  *Order      `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Store  *Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Coupon *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderGroupID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (OrderGroup) TableName() string {
	return "order_groups"
}
