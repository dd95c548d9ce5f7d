package queue

import (
	"encoding/json"

	"github.com/dujiao-next/market/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusChanged 订单状态变更任务
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
	// TaskOrderPlaced 下单完成任务
	TaskOrderPlaced = constants.TaskOrderPlaced
)

// OrderStatusChangedPayload 订单状态变更任务载荷
type OrderStatusChangedPayload struct {
	Axis       string `json:"axis"`
	TargetID   uint   `json:"target_id"`
	StoreID    uint   `json:"store_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	OperatorID uint   `json:"operator_id"`
	RequestID  string `json:"request_id,omitempty"`
}

// OrderPlacedPayload 下单完成任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	CartID  uint   `json:"cart_id"`
	OrderNo string `json:"order_no"`
}

// NewOrderStatusChangedTask 创建订单状态变更任务
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}

// NewOrderPlacedTask 创建下单完成任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}
