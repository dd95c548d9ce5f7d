package seller

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/provider"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 卖家后台接口处理器，所有写操作都限定在当前卖家拥有的店铺内
type Handler struct {
	*provider.Container
}

// New 创建卖家处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// sellerScope 读取会话与路径中的店铺 ID
func sellerScope(c *gin.Context) (*service.Session, uint, bool) {
	session := handlershared.SessionFrom(c)
	if session == nil {
		handlershared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, 0, false
	}
	storeID, ok := handlershared.ParseParamUint(c, "store_id")
	if !ok {
		return nil, 0, false
	}
	return session, storeID, true
}
