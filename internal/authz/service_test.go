package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestGrantAndRevokeSellerPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	allow, err := svc.EnforceRole("SELLER", "/api/v1/admin/orders", "GET")
	if err != nil || allow {
		t.Fatalf("seller should not read admin orders before grant: allow=%v err=%v", allow, err)
	}

	policy, err := svc.GrantRolePolicy("seller", "/api/v1/admin/orders", "get")
	if err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if policy.Subject != "role:seller" || policy.Object != "/admin/orders" || policy.Action != "GET" {
		t.Fatalf("unexpected normalized policy: %+v", policy)
	}
	allow, err = svc.EnforceRole("SELLER", "/api/v1/admin/orders", "GET")
	if err != nil || !allow {
		t.Fatalf("expected granted policy to allow: allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceRole("SELLER", "/api/v1/admin/orders", "POST")
	if err != nil || allow {
		t.Fatalf("grant should be limited to GET: allow=%v err=%v", allow, err)
	}
	// 买家角色不继承卖家策略
	allow, err = svc.EnforceRole("USER", "/api/v1/admin/orders", "GET")
	if err != nil || allow {
		t.Fatalf("user should not inherit seller grant: allow=%v err=%v", allow, err)
	}

	if _, err := svc.RevokeRolePolicy("role:seller", "/admin/orders", "GET"); err != nil {
		t.Fatalf("revoke role policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("SELLER", "/admin/orders", "GET")
	if err != nil || allow {
		t.Fatalf("expected revoked policy to deny: allow=%v err=%v", allow, err)
	}
}

func TestRolePolicyChangesRejectLockedOrUnknownRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if _, err := svc.GrantRolePolicy("auditor", "/admin/orders", "GET"); !errors.Is(err, ErrRoleNotAssignable) {
		t.Fatalf("want ErrRoleNotAssignable got %v", err)
	}
	if _, err := svc.RevokeRolePolicy("ADMIN", "/admin/*", "*"); !errors.Is(err, ErrRoleLocked) {
		t.Fatalf("want ErrRoleLocked got %v", err)
	}
	if _, err := svc.GrantRolePolicy("user", "/seller/*", " "); !errors.Is(err, ErrActionRequired) {
		t.Fatalf("want ErrActionRequired got %v", err)
	}
	allow, err := svc.EnforceRole("ADMIN", "/admin/stores", "GET")
	if err != nil || !allow {
		t.Fatalf("admin policies must stay intact: allow=%v err=%v", allow, err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/seller/stores/:store_id/coupons", want: "/seller/stores/:store_id/coupons"},
		{in: "/admin/categories/:id", want: "/admin/categories/:id"},
		{in: "admin/categories", want: "/admin/categories"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("SELLER")
	if err != nil || got != "role:seller" {
		t.Fatalf("normalize role want role:seller, got=%q err=%v", got, err)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("expected empty role rejected")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行保持幂等
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles twice failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:admin":  true,
		"role:seller": true,
		"role:user":   true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	cases := []struct {
		role   string
		obj    string
		act    string
		expect bool
	}{
		{role: "USER", obj: "/api/v1/cart", act: "PUT", expect: true},
		{role: "USER", obj: "/api/v1/cart/coupon", act: "POST", expect: true},
		{role: "USER", obj: "/api/v1/me", act: "GET", expect: true},
		{role: "USER", obj: "/api/v1/stores/apply", act: "POST", expect: true},
		{role: "USER", obj: "/api/v1/seller/stores/1/orders", act: "GET", expect: false},
		{role: "USER", obj: "/api/v1/admin/categories", act: "POST", expect: false},
		{role: "SELLER", obj: "/api/v1/seller/stores/1/order-groups/9/status", act: "PATCH", expect: true},
		{role: "SELLER", obj: "/api/v1/cart", act: "GET", expect: true},
		{role: "SELLER", obj: "/api/v1/admin/categories", act: "POST", expect: false},
		{role: "ADMIN", obj: "/api/v1/admin/categories", act: "POST", expect: true},
		{role: "ADMIN", obj: "/api/v1/orders", act: "GET", expect: true},
		{role: "ADMIN", obj: "/api/v1/seller/stores/1/coupons", act: "POST", expect: false},
	}
	for _, item := range cases {
		allow, err := svc.EnforceRole(item.role, item.obj, item.act)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", item.role, item.act, item.obj, err)
		}
		if allow != item.expect {
			t.Fatalf("enforce %s %s %s want=%v got=%v", item.role, item.act, item.obj, item.expect, allow)
		}
	}

	policies, err := svc.GetRolePolicies("seller")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/seller/*" || policies[0].Action != "*" {
		t.Fatalf("unexpected seller policies: %+v", policies)
	}
}
