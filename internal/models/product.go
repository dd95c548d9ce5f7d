package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	StoreID       uint           `gorm:"index;not null" json:"store_id"`                     // 店铺ID
	CategoryID    uint           `gorm:"index;not null" json:"category_id"`                  // 分类ID
	SubCategoryID uint           `gorm:"index;not null" json:"sub_category_id"`              // 子分类ID
	OfferTagID    *uint          `gorm:"index" json:"offer_tag_id,omitempty"`                // 促销标签ID
	Name          string         `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Slug          string         `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"` // 唯一标识
	Brand         string         `gorm:"type:varchar(100)" json:"brand"`                     // 品牌
	Description   string         `gorm:"type:text" json:"description"`                       // 描述
	Images        StringArray    `gorm:"type:json" json:"images"`                            // 图片数组
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                // 是否上架
	Sales         int            `gorm:"not null;default:0" json:"sales"`                    // 销量
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	// 关联
	Store       *Store           `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Category    *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategory *SubCategory     `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	OfferTag    *OfferTag        `gorm:"foreignKey:OfferTagID" json:"offer_tag,omitempty"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
