package models

import "time"

// UserLoginLog 登录审计记录（成功与失败均记录）
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	UserID     uint      `gorm:"index" json:"user_id"`                    // 用户ID（失败时可为0）
	Email      string    `gorm:"index;not null" json:"email"`             // 登录邮箱
	Role       string    `gorm:"type:varchar(20)" json:"role"`            // 登录时角色
	Status     string    `gorm:"index;not null" json:"status"`            // success/failed
	FailReason string    `gorm:"index" json:"fail_reason"`                // 失败原因
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"` // 客户端IP
	UserAgent  string    `gorm:"type:text" json:"user_agent"`             // 客户端UA
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`      // 请求ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                 // 记录时间
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
