package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	PaymentStatus   string         `gorm:"index;not null;default:'pending'" json:"payment_status"`       // 支付状态
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	ShippingFees    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fees"`   // 运费合计
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	Total           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`           // 实付金额
	ShippingName    string         `gorm:"type:varchar(100)" json:"shipping_name"`                       // 收件人
	ShippingPhone   string         `gorm:"type:varchar(50)" json:"shipping_phone"`                       // 收件电话
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`                            // 收件地址
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Groups []OrderGroup `gorm:"foreignKey:OrderID" json:"groups,omitempty"` // 店铺分组
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
