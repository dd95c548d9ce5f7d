package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                              // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`            // 名称
	Slug      string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"url"` // 唯一标识（访问路径）
	Image     string         `gorm:"type:varchar(500)" json:"image"`                    // 分类图
	Featured  bool           `gorm:"not null;default:false;index" json:"featured"`      // 是否推荐
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                 // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// SubCategory 子分类表
type SubCategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`                              // 主键
	CategoryID uint           `gorm:"index;not null" json:"category_id"`                 // 所属分类ID
	Name       string         `gorm:"type:varchar(100);not null" json:"name"`            // 名称
	Slug       string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"url"` // 唯一标识
	Image      string         `gorm:"type:varchar(500)" json:"image"`                    // 图片
	Featured   bool           `gorm:"not null;default:false;index" json:"featured"`      // 是否推荐
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (SubCategory) TableName() string {
	return "sub_categories"
}

// OfferTag 促销标签表
type OfferTag struct {
	ID        uint           `gorm:"primarykey" json:"id"`                              // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`            // 名称
	Slug      string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"url"` // 唯一标识
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (OfferTag) TableName() string {
	return "offer_tags"
}
