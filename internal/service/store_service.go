package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"

	"gorm.io/gorm"
)

// StoreService 店铺服务
type StoreService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, userRepo: userRepo}
}

// StoreInput 店铺资料输入
type StoreInput struct {
	Name                         string
	URL                          string
	Description                  string
	Email                        string
	Phone                        string
	Logo                         string
	Cover                        string
	ShippingFeePerItem           models.Money
	ShippingFeeForAdditionalItem models.Money
	ReturnPolicy                 string
}

func (in StoreInput) normalized() (StoreInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = normalizeSlug(in.URL)
	if in.URL == "" {
		in.URL = normalizeSlug(in.Name)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.URL == "" {
		return in, ErrInvalidInput
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return in, ErrInvalidEmail
		}
	}
	if in.ShippingFeePerItem.IsNegative() || in.ShippingFeeForAdditionalItem.IsNegative() {
		return in, ErrPriceInvalid
	}
	return in, nil
}

func (s *StoreService) checkUnique(input StoreInput, excludeID uint) error {
	count, err := s.storeRepo.CountByName(input.Name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrStoreNameExists
	}
	count, err = s.storeRepo.CountByURL(input.URL, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrStoreURLExists
	}
	return nil
}

// Apply 申请开店：店铺初始为 pending，申请人提升为 SELLER
// 返回的用户为角色变更后的最新记录，调用方需为其重新签发 token
func (s *StoreService) Apply(session *Session, input StoreInput) (*models.Store, *models.User, error) {
	if err := RequireRole(session, constants.RoleUser, constants.RoleSeller); err != nil {
		return nil, nil, err
	}
	input, err := input.normalized()
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkUnique(input, 0); err != nil {
		return nil, nil, err
	}

	store := &models.Store{
		UserID:                       session.UserID,
		Name:                         input.Name,
		URL:                          input.URL,
		Description:                  input.Description,
		Email:                        input.Email,
		Phone:                        input.Phone,
		Logo:                         input.Logo,
		Cover:                        input.Cover,
		Status:                       constants.StoreStatusPending,
		ShippingFeePerItem:           models.NewMoneyFromDecimal(input.ShippingFeePerItem.Decimal),
		ShippingFeeForAdditionalItem: models.NewMoneyFromDecimal(input.ShippingFeeForAdditionalItem.Decimal),
		ReturnPolicy:                 input.ReturnPolicy,
	}

	var user *models.User
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		storeRepo := s.storeRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)
		if err := storeRepo.Create(store); err != nil {
			return err
		}
		if strings.ToUpper(session.Role) != constants.RoleSeller {
			if err := userRepo.UpdateRole(session.UserID, constants.RoleSeller); err != nil {
				return err
			}
		}
		current, err := userRepo.GetByID(session.UserID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrUnauthorized
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if err := cache.DelUserAuthState(context.Background(), session.UserID); err != nil {
		logger.Warnw("store_apply_invalidate_auth_state_failed", "user_id", session.UserID, "error", err)
	}
	logger.Infow("store_applied", "store_id", store.ID, "user_id", session.UserID, "request_id", session.RequestID)
	return store, user, nil
}

// Update 店主更新店铺资料
func (s *StoreService) Update(session *Session, storeID uint, input StoreInput) (*models.Store, error) {
	store, err := requireOwnedStore(s.storeRepo, session, storeID)
	if err != nil {
		return nil, err
	}
	input, err = input.normalized()
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(input, store.ID); err != nil {
		return nil, err
	}

	store.Name = input.Name
	store.URL = input.URL
	store.Description = input.Description
	store.Email = input.Email
	store.Phone = input.Phone
	store.Logo = input.Logo
	store.Cover = input.Cover
	store.ShippingFeePerItem = models.NewMoneyFromDecimal(input.ShippingFeePerItem.Decimal)
	store.ShippingFeeForAdditionalItem = models.NewMoneyFromDecimal(input.ShippingFeeForAdditionalItem.Decimal)
	store.ReturnPolicy = input.ReturnPolicy
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// SetStatus 管理员审核 / 封禁店铺
func (s *StoreService) SetStatus(session *Session, storeID uint, status string) (*models.Store, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.StoreStatusPending, constants.StoreStatusActive, constants.StoreStatusBanned:
	default:
		return nil, ErrStoreStatusBad
	}
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	if err := s.storeRepo.UpdateStatus(store.ID, status); err != nil {
		return nil, err
	}
	store.Status = status
	logger.Infow("store_status_updated", "store_id", store.ID, "status", status, "operator_id", session.UserID)
	return store, nil
}

// GetByURL 公开查询店铺（仅 active）
func (s *StoreService) GetByURL(url string) (*models.Store, error) {
	store, err := s.storeRepo.GetByURL(normalizeSlug(url))
	if err != nil {
		return nil, err
	}
	if store == nil || store.Status != constants.StoreStatusActive {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// ListMine 当前卖家的店铺列表
func (s *StoreService) ListMine(session *Session) ([]models.Store, error) {
	if err := RequireRole(session, constants.RoleSeller); err != nil {
		return nil, err
	}
	return s.storeRepo.ListByUserID(session.UserID)
}

// ListAdmin 管理员查询店铺
func (s *StoreService) ListAdmin(session *Session, filter repository.StoreListFilter) ([]models.Store, int64, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.storeRepo.List(filter)
}

// requireOwnedStore 校验会话为 SELLER 且店铺归属当前用户
func requireOwnedStore(repo repository.StoreRepository, session *Session, storeID uint) (*models.Store, error) {
	if err := RequireRole(session, constants.RoleSeller); err != nil {
		return nil, err
	}
	if storeID == 0 {
		return nil, ErrStoreNotFound
	}
	store, err := repo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	if store.UserID != session.UserID {
		return nil, ErrStoreNotOwned
	}
	return store, nil
}
