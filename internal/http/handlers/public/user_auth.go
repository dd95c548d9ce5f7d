package public

import (
	"time"

	"github.com/dujiao-next/market/internal/constants"
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=100"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthTokenResponse 登录/注册成功后返回的令牌
type AuthTokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if !handlershared.BindAction(c, &req) {
		return
	}
	user, token, expiresAt, err := h.AuthService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "auth.registered", AuthTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// UserLogin 用户登录，成功与失败都会写入登录审计
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordLogin(c, nil, req.Email, service.ErrInvalidInput)
		respondActionErrors(c, handlershared.ValidationErrors(c, err))
		return
	}
	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	h.recordLogin(c, user, req.Email, err)
	if err != nil {
		handlershared.RespondActionError(c, err)
		return
	}
	handlershared.RespondActionSuccess(c, "auth.logged_in", AuthTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// RecordRateLimitedLogin 登录被限流时写入审计
func (h *Handler) RecordRateLimitedLogin(c *gin.Context, email string) {
	h.recordLogin(c, nil, email, service.ErrTooManyRequests)
}

func (h *Handler) recordLogin(c *gin.Context, user *models.User, email string, loginErr error) {
	if h.UserLoginLogService == nil {
		return
	}
	requestID := ""
	if value, ok := c.Get("request_id"); ok {
		requestID, _ = value.(string)
	}
	err := h.UserLoginLogService.Record(service.LoginAttempt{
		User:      user,
		Email:     email,
		Err:       loginErr,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: requestID,
	})
	if err != nil {
		handlershared.RequestLog(c).Warnw("user_login_log_record_failed", "email", email, "error", err)
	}
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUser(session)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	stores := []models.Store{}
	if user.Role == constants.RoleSeller {
		stores, err = h.StoreService.ListMine(session)
		if err != nil {
			handlershared.RespondServiceError(c, err)
			return
		}
	}
	respondData(c, gin.H{"user": user, "stores": stores})
}

// GetMyLoginLogs 获取当前用户登录日志
func (h *Handler) GetMyLoginLogs(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	logs, total, err := h.UserLoginLogService.ListMine(session, page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	respondPage(c, logs, page, pageSize, total)
}
