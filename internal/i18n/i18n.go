package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"

	DefaultLocale = LocaleZH
	localeHeader  = "X-Locale"
)

var supportedLocales = []string{LocaleZH, LocaleEN, LocaleTW}

var matcher = language.NewMatcher([]language.Tag{
	language.MustParse(LocaleZH),
	language.MustParse(LocaleEN),
	language.MustParse(LocaleTW),
})

var catalogs = map[string]map[string]string{
	LocaleZH: messagesZH,
	LocaleEN: messagesEN,
	LocaleTW: messagesTW,
}

// T 返回指定语言的文案，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if msg, ok := catalogs[NormalizeLocale(locale)][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回格式化后的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 将任意语言标签归一到支持的语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	for _, locale := range supportedLocales {
		if strings.EqualFold(raw, locale) {
			return locale
		}
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// ResolveLocale 从请求头解析语言：X-Locale 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if value := strings.TrimSpace(c.GetHeader(localeHeader)); value != "" {
		return NormalizeLocale(value)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}
