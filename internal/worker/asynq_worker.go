package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dujiao-next/market/internal/cache"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/metrics"
	"github.com/dujiao-next/market/internal/provider"
	"github.com/dujiao-next/market/internal/queue"
	"github.com/dujiao-next/market/internal/service"

	"github.com/hibiken/asynq"
)

const (
	taskResultOK      = "ok"
	taskResultSkipped = "skipped"
	taskResultFailed  = "failed"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
}

func (c *Consumer) handleOrderStatusChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_changed_unmarshal_failed", "error", err)
		metrics.TaskProcessed(task.Type(), taskResultFailed)
		// 载荷无法解析时重试没有意义
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.TargetID == 0 || payload.ToStatus == "" {
		logger.Debugw("worker_order_status_changed_skip_invalid_payload",
			"axis", payload.Axis,
			"target_id", payload.TargetID,
		)
		metrics.TaskProcessed(task.Type(), taskResultSkipped)
		return nil
	}
	if c.OrderStatusService == nil {
		logger.Warnw("worker_order_status_changed_skip_service_nil", "target_id", payload.TargetID)
		metrics.TaskProcessed(task.Type(), taskResultSkipped)
		return nil
	}
	if err := c.OrderStatusService.RecordStatusChange(payload); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			metrics.TaskProcessed(task.Type(), taskResultSkipped)
			return nil
		}
		logger.Warnw("worker_order_status_changed_record_failed",
			"axis", payload.Axis,
			"target_id", payload.TargetID,
			"store_id", payload.StoreID,
			"to_status", payload.ToStatus,
			"request_id", payload.RequestID,
			"error", err,
		)
		metrics.TaskProcessed(task.Type(), taskResultFailed)
		return err
	}
	metrics.TaskProcessed(task.Type(), taskResultOK)
	return nil
}

func (c *Consumer) handleOrderPlaced(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		metrics.TaskProcessed(task.Type(), taskResultFailed)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 || payload.UserID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID, "user_id", payload.UserID)
		metrics.TaskProcessed(task.Type(), taskResultSkipped)
		return nil
	}
	if err := cache.DelCartSnapshot(ctx, payload.UserID); err != nil {
		logger.Warnw("worker_order_placed_cart_snapshot_invalidate_failed",
			"order_id", payload.OrderID,
			"user_id", payload.UserID,
			"error", err,
		)
		metrics.TaskProcessed(task.Type(), taskResultFailed)
		return err
	}
	logger.Infow("worker_order_placed_processed",
		"order_id", payload.OrderID,
		"order_no", payload.OrderNo,
		"user_id", payload.UserID,
		"cart_id", payload.CartID,
	)
	metrics.TaskProcessed(task.Type(), taskResultOK)
	return nil
}
