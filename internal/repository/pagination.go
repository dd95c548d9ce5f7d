package repository

import "gorm.io/gorm"

// maxPageSize 列表接口单页上限
const maxPageSize = 100

// pageQuery 统计总数后追加分页条件。
func pageQuery(query *gorm.DB, page, pageSize int) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return applyPagination(query, page, pageSize), total, nil
}

// applyPagination 应用分页参数，非法页码按第一页处理，页大小超出上限时截断。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
