package service

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"
)

// SubCategoryService 子分类业务服务
type SubCategoryService struct {
	repo         repository.SubCategoryRepository
	categoryRepo repository.CategoryRepository
}

// NewSubCategoryService 创建子分类服务
func NewSubCategoryService(repo repository.SubCategoryRepository, categoryRepo repository.CategoryRepository) *SubCategoryService {
	return &SubCategoryService{repo: repo, categoryRepo: categoryRepo}
}

// SubCategoryInput 创建/更新子分类输入
type SubCategoryInput struct {
	CategoryID uint
	Name       string
	URL        string
	Image      string
	Featured   bool
}

// List 获取子分类列表
func (s *SubCategoryService) List(categoryID uint) ([]models.SubCategory, error) {
	return s.repo.List(categoryID)
}

func (s *SubCategoryService) prepare(input SubCategoryInput, excludeID uint) (SubCategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.URL = normalizeSlug(input.URL)
	if input.URL == "" {
		input.URL = normalizeSlug(input.Name)
	}
	if input.Name == "" || input.URL == "" || input.CategoryID == 0 {
		return input, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return input, err
	}
	if category == nil {
		return input, ErrCategoryNotFound
	}
	count, err := s.repo.CountBySlug(input.URL, excludeID)
	if err != nil {
		return input, err
	}
	if count > 0 {
		return input, ErrSlugExists
	}
	return input, nil
}

// Create 创建子分类
func (s *SubCategoryService) Create(session *Session, input SubCategoryInput) (*models.SubCategory, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	input, err := s.prepare(input, 0)
	if err != nil {
		return nil, err
	}
	subCategory := models.SubCategory{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Slug:       input.URL,
		Image:      input.Image,
		Featured:   input.Featured,
	}
	if err := s.repo.Create(&subCategory); err != nil {
		return nil, err
	}
	return &subCategory, nil
}

// Update 更新子分类
func (s *SubCategoryService) Update(session *Session, id uint, input SubCategoryInput) (*models.SubCategory, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	subCategory, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrSubCategoryNotFound
	}
	input, err = s.prepare(input, id)
	if err != nil {
		return nil, err
	}
	subCategory.CategoryID = input.CategoryID
	subCategory.Name = input.Name
	subCategory.Slug = input.URL
	subCategory.Image = input.Image
	subCategory.Featured = input.Featured
	subCategory.Category = nil
	if err := s.repo.Update(subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

// Delete 删除子分类（存在商品时拒绝）
func (s *SubCategoryService) Delete(session *Session, id uint) error {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return err
	}
	subCategory, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if subCategory == nil {
		return ErrSubCategoryNotFound
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSubCategoryInUse
	}
	return s.repo.Delete(id)
}
