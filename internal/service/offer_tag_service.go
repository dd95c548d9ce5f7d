package service

import (
	"strings"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"
)

// OfferTagService 促销标签服务
type OfferTagService struct {
	repo repository.OfferTagRepository
}

// NewOfferTagService 创建促销标签服务
func NewOfferTagService(repo repository.OfferTagRepository) *OfferTagService {
	return &OfferTagService{repo: repo}
}

// OfferTagInput 创建/更新标签输入
type OfferTagInput struct {
	Name string
	URL  string
}

// List 获取标签列表
func (s *OfferTagService) List() ([]models.OfferTag, error) {
	return s.repo.List()
}

// Create 创建标签
func (s *OfferTagService) Create(session *Session, input OfferTagInput) (*models.OfferTag, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	name, slug, err := s.prepare(input, 0)
	if err != nil {
		return nil, err
	}
	tag := models.OfferTag{Name: name, Slug: slug}
	if err := s.repo.Create(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update 更新标签
func (s *OfferTagService) Update(session *Session, id uint, input OfferTagInput) (*models.OfferTag, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrOfferTagNotFound
	}
	name, slug, err := s.prepare(input, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	tag.Slug = slug
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签（仍有商品使用时拒绝）
func (s *OfferTagService) Delete(session *Session, id uint) error {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return err
	}
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrOfferTagNotFound
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOfferTagInUse
	}
	return s.repo.Delete(id)
}

func (s *OfferTagService) prepare(input OfferTagInput, excludeID uint) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	slug := normalizeSlug(input.URL)
	if slug == "" {
		slug = normalizeSlug(name)
	}
	if name == "" || slug == "" {
		return "", "", ErrInvalidInput
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return "", "", err
	}
	if count > 0 {
		return "", "", ErrSlugExists
	}
	return name, slug, nil
}
