package models

import "time"

// OrderStatusHistory 订单状态变更记录
type OrderStatusHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`                          // 主键
	Axis       string    `gorm:"type:varchar(20);index;not null" json:"axis"`   // 维度（order_group/order_item）
	TargetID   uint      `gorm:"index;not null" json:"target_id"`               // 分组或订单项ID
	StoreID    uint      `gorm:"index;not null" json:"store_id"`                // 店铺ID
	FromStatus string    `gorm:"type:varchar(40)" json:"from_status"`           // 变更前状态
	ToStatus   string    `gorm:"type:varchar(40);not null" json:"to_status"`    // 变更后状态
	OperatorID uint      `gorm:"index;not null" json:"operator_id"`             // 操作人用户ID
	RequestID  string    `gorm:"type:varchar(64);default:''" json:"request_id"` // 请求ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
