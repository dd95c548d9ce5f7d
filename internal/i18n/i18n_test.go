package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                        LocaleZH,
		"en-US":                   LocaleEN,
		"EN-us":                   LocaleEN,
		"en":                      LocaleEN,
		"en-GB,en;q=0.8":          LocaleEN,
		"zh-TW":                   LocaleTW,
		"zh-Hant":                 LocaleTW,
		"zh":                      LocaleZH,
		"fr-FR,en-US;q=0.5":       LocaleEN,
		"not a locale at all ;;;": LocaleZH,
	}
	for input, want := range cases {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleEN, "error.coupon_invalid"); got != "Invalid coupon" {
		t.Fatalf("unexpected en message: %s", got)
	}
	// 繁体缺失的 key 回退到简体
	if got := T(LocaleTW, "error.cart_empty"); got != messagesZH["error.cart_empty"] {
		t.Fatalf("expected zh fallback, got %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key itself, got %s", got)
	}
}

func TestSprintfCouponApplied(t *testing.T) {
	got := Sprintf(LocaleEN, "coupon.applied", "Acme", "2.10")
	if got != "Coupon applied: 2.10 off from Acme" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestCatalogsShareKeys(t *testing.T) {
	for key := range messagesZH {
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("en catalog missing key %s", key)
		}
	}
	for key := range messagesTW {
		if _, ok := messagesZH[key]; !ok {
			t.Fatalf("zh catalog missing key %s", key)
		}
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("expected en-US, got %s", got)
	}
	c.Request.Header.Set("X-Locale", "zh-TW")
	if got := ResolveLocale(c); got != LocaleTW {
		t.Fatalf("expected X-Locale to win, got %s", got)
	}
	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("expected default for nil context, got %s", got)
	}
}
