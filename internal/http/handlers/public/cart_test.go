package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"
	handlershared "github.com/dujiao-next/market/internal/http/handlers/shared"
	"github.com/dujiao-next/market/internal/http/response"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/provider"
	"github.com/dujiao-next/market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type cartFixture struct {
	handler *Handler
	buyer   *models.User
	cart    *models.Cart
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.ParseMoney(raw)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", raw, err)
	}
	return m
}

func setupCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:public_%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := provider.NewContainer(&config.Config{JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1}})

	seller := &models.User{Email: "seller@shop.io", PasswordHash: "x", Role: constants.RoleSeller, Status: constants.UserStatusActive}
	buyer := &models.User{Email: "buyer@shop.io", PasswordHash: "x", Role: constants.RoleUser, Status: constants.UserStatusActive}
	mustCreate(t, db, seller)
	mustCreate(t, db, buyer)
	store := &models.Store{UserID: seller.ID, Name: "Acme", URL: "acme", Status: constants.StoreStatusActive}
	mustCreate(t, db, store)
	product := &models.Product{StoreID: store.ID, CategoryID: 1, SubCategoryID: 1, Name: "Lamp", Slug: "lamp", IsActive: true}
	mustCreate(t, db, product)
	variant := &models.ProductVariant{ProductID: product.ID, Name: "Red", SKU: "LAMP-R", Price: mustMoney(t, "21.00"), Stock: 5, IsActive: true}
	mustCreate(t, db, variant)
	now := time.Now()
	mustCreate(t, db, &models.Coupon{StoreID: store.ID, Code: "SAVE10", Discount: 10, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)})

	session := &service.Session{UserID: buyer.ID, Role: constants.RoleUser}
	cart, err := container.CartService.Save(session, []service.CartLineInput{{VariantID: variant.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	return &cartFixture{handler: New(container), buyer: buyer, cart: cart}
}

func (f *cartFixture) engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlershared.RegisterValidatorTagNames()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		handlershared.SetSession(c, &service.Session{UserID: f.buyer.ID, Role: constants.RoleUser})
	})
	r.POST("/cart/coupon", f.handler.ApplyCoupon)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) response.ActionResult {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Locale", "en-US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var result response.ActionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal action result failed: %v body=%s", err, w.Body.String())
	}
	return result
}

func TestApplyCouponActionSuccess(t *testing.T) {
	f := setupCartFixture(t)
	result := postJSON(t, f.engine(), "/cart/coupon", gin.H{"code": " save10 ", "cart_id": f.cart.ID})

	if result.StatusCode != response.CodeOK || len(result.Errors) != 0 {
		t.Fatalf("unexpected action result: %+v", result)
	}
	if result.Success != "Coupon applied: 2.10 off from Acme" {
		t.Fatalf("unexpected success message: %q", result.Success)
	}
}

func TestApplyCouponActionFieldErrors(t *testing.T) {
	f := setupCartFixture(t)
	r := f.engine()

	result := postJSON(t, r, "/cart/coupon", gin.H{})
	if result.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", result.StatusCode)
	}
	for _, field := range []string{"code", "cart_id"} {
		if len(result.Errors[field]) == 0 {
			t.Fatalf("expected errors for %s, got %+v", field, result.Errors)
		}
	}

	result = postJSON(t, r, "/cart/coupon", gin.H{"code": "NOPE", "cart_id": f.cart.ID})
	if result.StatusCode != response.CodeNotFound {
		t.Fatalf("status_code want 404 got %d", result.StatusCode)
	}
	if msgs := result.Errors["code"]; len(msgs) != 1 || msgs[0] != "Invalid coupon" {
		t.Fatalf("unexpected code errors: %+v", result.Errors)
	}
}

func TestApplyCouponTwiceIsRejected(t *testing.T) {
	f := setupCartFixture(t)
	r := f.engine()

	if result := postJSON(t, r, "/cart/coupon", gin.H{"code": "SAVE10", "cart_id": f.cart.ID}); result.StatusCode != response.CodeOK {
		t.Fatalf("first apply should succeed: %+v", result)
	}
	result := postJSON(t, r, "/cart/coupon", gin.H{"code": "SAVE10", "cart_id": f.cart.ID})
	if result.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", result.StatusCode)
	}
	if msgs := result.Errors["code"]; len(msgs) != 1 || msgs[0] != "A coupon is already applied to this cart" {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
}
