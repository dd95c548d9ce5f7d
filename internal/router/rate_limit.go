package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流主体
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则，BlockSeconds > 0 时超限后整段封禁
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
	// OnLimited 命中限流时回调
	OnLimited func(c *gin.Context)
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// KEYS[1] 计数 key；ARGV[1] 窗口秒数，ARGV[2] 上限，ARGV[3] 封禁秒数
var rateWindowScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
elseif hits == tonumber(ARGV[2]) + 1 and tonumber(ARGV[3]) > 0 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {hits, redis.call("TTL", KEYS[1])}
`)

var errRateWindowReply = errors.New("unexpected rate window reply")

// rateWindow 一次计数后的窗口状态
type rateWindow struct {
	Hits       int64
	TTLSeconds int64
}

func hitRateWindow(ctx context.Context, client *redis.Client, key string, rule RateLimitRule) (rateWindow, error) {
	reply, err := rateWindowScript.Run(ctx, client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
	if err != nil {
		return rateWindow{}, err
	}
	values, ok := reply.([]interface{})
	if !ok || len(values) < 2 {
		return rateWindow{}, errRateWindowReply
	}
	hits, ok := toInt64(values[0])
	if !ok {
		return rateWindow{}, errRateWindowReply
	}
	ttl, _ := toInt64(values[1])
	return rateWindow{Hits: hits, TTLSeconds: ttl}, nil
}

// retryAfter 返回提示给客户端的等待秒数
func (w rateWindow) retryAfter(rule RateLimitRule) int {
	switch {
	case w.TTLSeconds > 0:
		return int(w.TTLSeconds)
	case rule.BlockSeconds > 0:
		return rule.BlockSeconds
	case rule.WindowSeconds > 0:
		return rule.WindowSeconds
	}
	return 1
}

func rateLimitKey(c *gin.Context, rule RateLimitRule, keyFunc RateLimitKeyFunc) string {
	subject := ""
	if keyFunc != nil {
		subject = strings.TrimSpace(keyFunc(c))
	}
	if subject == "" {
		subject = c.ClientIP()
	}
	if rule.Prefix == "" {
		return subject
	}
	return rule.Prefix + ":" + subject
}

// RateLimitMiddleware Redis 频率限制中间件，未配置 Redis 或规则时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		locale := i18n.ResolveLocale(c)
		window, err := hitRateWindow(c.Request.Context(), client, rateLimitKey(c, rule, keyFunc), rule)
		if err != nil {
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if window.Hits <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		if rule.OnLimited != nil {
			rule.OnLimited(c)
		}
		response.TooManyRequests(c, i18n.Sprintf(locale, rule.messageKey(), window.retryAfter(rule)))
		c.Abort()
	}
}

// KeyByLoginEmail 登录限流 key：小写邮箱 + IP，邮箱缺失时只按 IP
func KeyByLoginEmail(c *gin.Context) string {
	email := strings.ToLower(readJSONField(c, "email"))
	if email == "" {
		return c.ClientIP()
	}
	return fmt.Sprintf("%s|%s", email, c.ClientIP())
}

// readJSONField 读取 JSON body 中的字符串字段，并把 body 还原给后续 handler
func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	var text string
	if raw, ok := payload[field]; !ok || json.Unmarshal(raw, &text) != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// toInt64 Lua 整数经 go-redis 返回为 int64，其余类型兼容不同驱动
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}
