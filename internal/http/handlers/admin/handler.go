package admin

import (
	"strings"
	"time"

	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 平台管理后台接口处理器
type Handler struct {
	*provider.Container
}

// New 创建管理后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondPage(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	handlershared.RespondPage(c, data, page, pageSize, total)
}

// parseTimeQuery 解析 RFC3339 或 yyyy-mm-dd 格式的时间参数
func parseTimeQuery(c *gin.Context, name string) *time.Time {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return &t
	}
	return nil
}
