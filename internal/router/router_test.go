package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noop := func(c *gin.Context) {}
	r.GET("/api/v1/products", noop)
	r.POST("/api/v1/auth/login", noop)
	r.GET("/api/v1/stores/:url", noop)
	r.POST("/api/v1/stores/apply", noop)
	r.GET("/api/v1/cart", noop)
	r.PATCH("/api/v1/seller/stores/:store_id/order-groups/:id/status", noop)
	r.GET("/api/v1/admin/stores", noop)
	r.Handle(http.MethodOptions, "/api/v1/cart", noop)

	items := buildPermissionCatalog(r)
	got := make(map[string]string, len(items))
	for _, item := range items {
		got[item.Permission] = item.Module
	}
	want := []struct {
		permission string
		module     string
	}{
		{permission: "POST:/stores/apply", module: "stores"},
		{permission: "GET:/cart", module: "cart"},
		{permission: "PATCH:/seller/stores/:store_id/order-groups/:id/status", module: "seller.order-groups"},
		{permission: "GET:/admin/stores", module: "admin.stores"},
	}
	if len(got) != len(want) {
		t.Fatalf("catalog want %d items got %d: %+v", len(want), len(got), items)
	}
	for _, w := range want {
		if got[w.permission] != w.module {
			t.Fatalf("permission %s module want %s got %s", w.permission, w.module, got[w.permission])
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Module > items[i].Module {
			t.Fatalf("catalog should be sorted by module: %+v", items)
		}
	}
}

func TestBuildPermissionCatalogNilEngine(t *testing.T) {
	if items := buildPermissionCatalog(nil); len(items) != 0 {
		t.Fatalf("nil engine should return empty catalog")
	}
}
