package service

import (
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/repository"
)

// UserLoginLogService 登录审计服务
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewUserLoginLogService 创建登录审计服务
func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// LoginAttempt 一次登录尝试
type LoginAttempt struct {
	User      *models.User
	Email     string
	Err       error
	ClientIP  string
	UserAgent string
	RequestID string
}

// Record 记录登录尝试
func (s *UserLoginLogService) Record(attempt LoginAttempt) error {
	if s == nil || s.repo == nil {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(attempt.Email))
	entry := &models.UserLoginLog{
		Email:     email,
		Status:    constants.LoginLogStatusSuccess,
		ClientIP:  strings.TrimSpace(attempt.ClientIP),
		UserAgent: strings.TrimSpace(attempt.UserAgent),
		RequestID: strings.TrimSpace(attempt.RequestID),
		CreatedAt: time.Now(),
	}
	if attempt.User != nil {
		entry.UserID = attempt.User.ID
		entry.Role = attempt.User.Role
	}
	if attempt.Err != nil {
		entry.Status = constants.LoginLogStatusFailed
		entry.FailReason = loginFailReason(attempt.Err)
	}
	return s.repo.Create(entry)
}

// ListForAdmin 管理员查询登录审计
func (s *UserLoginLogService) ListForAdmin(session *Session, filter repository.UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	if err := RequireRole(session, constants.RoleAdmin); err != nil {
		return nil, 0, err
	}
	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.List(filter)
}

// ListMine 当前用户查询自己的登录记录
func (s *UserLoginLogService) ListMine(session *Session, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	if err := RequireUser(session); err != nil {
		return nil, 0, err
	}
	return s.repo.List(repository.UserLoginLogListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   session.UserID,
	})
}

func loginFailReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return constants.LoginLogFailReasonBadPassword
	case errors.Is(err, ErrUserDisabled):
		return constants.LoginLogFailReasonDisabled
	case errors.Is(err, ErrInvalidEmail):
		return constants.LoginLogFailReasonInvalidInput
	case errors.Is(err, ErrTooManyRequests):
		return constants.LoginLogFailReasonRateLimited
	default:
		return constants.LoginLogFailReasonInternal
	}
}
