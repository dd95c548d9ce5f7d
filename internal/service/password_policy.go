package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dujiao-next/market/internal/config"
)

// bcrypt 只处理前 72 字节
const passwordMaxBytes = 72

// 邮箱前缀不少于该长度时才检查密码是否包含它
const passwordEmailMinLocal = 3

// passwordRuleError 未通过的密码规则，按 i18n key 输出到 password 字段
type passwordRuleError struct {
	key  string
	args []interface{}
}

func (e passwordRuleError) Error() string {
	return e.key
}

func (e passwordRuleError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordRuleError) Key() string {
	return e.key
}

func (e passwordRuleError) Args() []interface{} {
	return e.args
}

// passwordPolicy 买家注册与卖家开店共用的账号密码规则
type passwordPolicy struct {
	config.PasswordPolicyConfig
}

type passwordClasses struct {
	upper, lower, number, special bool
}

func classifyPassword(password string) passwordClasses {
	var classes passwordClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.number = true
		default:
			classes.special = true
		}
	}
	return classes
}

// check 依次校验长度、邮箱前缀与字符类别，返回第一条未通过的规则
func (p passwordPolicy) check(password, email string) error {
	if len(password) > passwordMaxBytes {
		return passwordRuleError{key: "error.password_max_length", args: []interface{}{passwordMaxBytes}}
	}
	if p.MinLength > 0 && utf8.RuneCountInString(password) < p.MinLength {
		return passwordRuleError{key: "error.password_min_length", args: []interface{}{p.MinLength}}
	}
	if local, _, ok := strings.Cut(strings.ToLower(email), "@"); ok && len(local) >= passwordEmailMinLocal {
		if strings.Contains(strings.ToLower(password), local) {
			return passwordRuleError{key: "error.password_contains_email"}
		}
	}

	classes := classifyPassword(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{p.RequireUpper, classes.upper, "error.password_require_upper"},
		{p.RequireLower, classes.lower, "error.password_require_lower"},
		{p.RequireNumber, classes.number, "error.password_require_number"},
		{p.RequireSpecial, classes.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return passwordRuleError{key: rule.key}
		}
	}
	return nil
}
