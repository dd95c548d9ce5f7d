package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 店铺优惠券（百分比折扣）
type Coupon struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                    // 主键
	StoreID   uint           `gorm:"not null;index;uniqueIndex:idx_coupon_store_code" json:"store_id"`        // 店铺ID
	Code      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_coupon_store_code" json:"code"` // 优惠码（店铺内唯一）
	Discount  int            `gorm:"not null" json:"discount"`                                                // 折扣百分比（1-99）
	StartDate time.Time      `gorm:"index;not null" json:"start_date"`                                        // 生效时间
	EndDate   time.Time      `gorm:"index;not null" json:"end_date"`                                          // 失效时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                          // 软删除时间

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"` // 所属店铺
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// ActiveAt 判断优惠券在指定时间是否处于有效期（闭区间）
func (c Coupon) ActiveAt(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}
