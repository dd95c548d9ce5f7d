package public

import (
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// requireSession 读取会话，缺失时直接返回 401
func requireSession(c *gin.Context) (*service.Session, bool) {
	session := handlershared.SessionFrom(c)
	if session == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, false
	}
	return session, true
}

func respondData(c *gin.Context, data interface{}) {
	response.Success(c, data)
}

func respondPage(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	response.SuccessWithPage(c, data, handlershared.BuildPagination(page, pageSize, total))
}

func respondActionErrors(c *gin.Context, errs map[string][]string) {
	response.ActionErrors(c, response.CodeBadRequest, errs)
}
