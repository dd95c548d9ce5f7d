package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 店铺表
type Store struct {
	ID                           uint           `gorm:"primarykey" json:"id"`                                                          // 主键
	UserID                       uint           `gorm:"index;not null" json:"user_id"`                                                 // 店主用户ID
	Name                         string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`                            // 店铺名称
	URL                          string         `gorm:"column:url;type:varchar(120);uniqueIndex;not null" json:"url"`                  // 店铺访问路径
	Description                  string         `gorm:"type:text" json:"description"`                                                  // 描述
	Email                        string         `gorm:"type:varchar(255)" json:"email"`                                                // 联系邮箱
	Phone                        string         `gorm:"type:varchar(50)" json:"phone"`                                                 // 联系电话
	Logo                         string         `gorm:"type:varchar(500)" json:"logo"`                                                 // Logo
	Cover                        string         `gorm:"type:varchar(500)" json:"cover"`                                                // 封面图
	Status                       string         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`               // 状态（pending/active/banned）
	ShippingFeePerItem           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee_per_item"`            // 首件运费
	ShippingFeeForAdditionalItem Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee_for_additional_item"` // 续件运费
	ReturnPolicy                 string         `gorm:"type:text" json:"return_policy"`                                                // 退货政策
	CreatedAt                    time.Time      `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt                    time.Time      `json:"updated_at"`                                                                    // 更新时间
	DeletedAt                    gorm.DeletedAt `gorm:"index" json:"-"`                                                                // 软删除时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 店主
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
