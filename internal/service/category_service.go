package service

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name      string
	URL       string
	Image     string
	Featured  bool
	SortOrder int
}

func (in CategoryInput) normalized() (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = normalizeSlug(in.URL)
	if in.URL == "" {
		in.URL = normalizeSlug(in.Name)
	}
	if in.Name == "" || in.URL == "" {
		return in, ErrInvalidInput
	}
	return in, nil
}

// List 获取分类列表
func (s *CategoryService) List(withSubCategories bool) ([]models.Category, error) {
	return s.repo.List(withSubCategories)
}

// GetBySlug 根据访问路径获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(session *Session, input CategoryInput) (*models.Category, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.URL, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Name:      input.Name,
		Slug:      input.URL,
		Image:     input.Image,
		Featured:  input.Featured,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(session *Session, id uint, input CategoryInput) (*models.Category, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	count, err := s.repo.CountBySlug(input.URL, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Name = input.Name
	category.Slug = input.URL
	category.Image = input.Image
	category.Featured = input.Featured
	category.SortOrder = input.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（存在子分类或商品时拒绝）
func (s *CategoryService) Delete(session *Session, id uint) error {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return err
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	products, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	subCategories, err := s.repo.CountSubCategories(id)
	if err != nil {
		return err
	}
	if products > 0 || subCategories > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}
