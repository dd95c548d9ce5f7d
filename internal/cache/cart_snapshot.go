package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dujiao-next/market/internal/models"
)

const defaultCartSnapshotTTL = 5 * time.Minute

func cartSnapshotKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// GetCartSnapshot 获取用户购物车快照
func GetCartSnapshot(ctx context.Context, userID uint) (*models.Cart, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var cart models.Cart
	hit, err := GetJSON(ctx, cartSnapshotKey(userID), &cart)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &cart, true, nil
}

// SetCartSnapshot 写入用户购物车快照
func SetCartSnapshot(ctx context.Context, cart *models.Cart, ttl time.Duration) error {
	if cart == nil || cart.UserID == 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultCartSnapshotTTL
	}
	return SetJSON(ctx, cartSnapshotKey(cart.UserID), cart, ttl)
}

// DelCartSnapshot 失效用户购物车快照
func DelCartSnapshot(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, cartSnapshotKey(userID))
}
