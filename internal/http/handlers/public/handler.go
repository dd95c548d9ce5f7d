package public

import "github.com/dujiao-next/market/internal/provider"

// Handler 买家侧接口：目录浏览、注册登录、购物车、下单与开店申请
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
