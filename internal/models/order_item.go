package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderGroupID uint           `gorm:"index;not null" json:"order_group_id"`                      // 订单分组ID
	StoreID      uint           `gorm:"index;not null" json:"store_id"`                            // 店铺ID
	ProductID    uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	VariantID    uint           `gorm:"index;not null" json:"variant_id"`                          // 规格ID
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`                    // 商品名称快照
	SKU          string         `gorm:"column:sku;type:varchar(64)" json:"sku"`                    // SKU 快照
	Image        string         `gorm:"type:varchar(500)" json:"image"`                            // 图片快照
	Price        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 单价
	Quantity     int            `gorm:"not null" json:"quantity"`                                  // 数量
	ShippingFee  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"` // 运费
	TotalPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 小计（含运费）
	Status       string         `gorm:"index;not null" json:"status"`                              // 商品状态（ProductStatus）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
