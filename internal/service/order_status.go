package service

import (
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/constants"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/metrics"
	"github.com/dujiao-next/market/internal/models"
	"github.com/dujiao-next/market/internal/queue"
	"github.com/dujiao-next/market/internal/repository"

	"gorm.io/gorm"
)

var orderStatuses = map[string]struct{}{
	constants.OrderStatusPending:          {},
	constants.OrderStatusConfirmed:        {},
	constants.OrderStatusProcessing:       {},
	constants.OrderStatusShipped:          {},
	constants.OrderStatusOutForDelivery:   {},
	constants.OrderStatusDelivered:        {},
	constants.OrderStatusCancelled:        {},
	constants.OrderStatusFailed:           {},
	constants.OrderStatusRefunded:         {},
	constants.OrderStatusReturned:         {},
	constants.OrderStatusPartiallyShipped: {},
	constants.OrderStatusOnHold:           {},
}

var productStatuses = map[string]struct{}{
	constants.ProductStatusPending:           {},
	constants.ProductStatusProcessing:        {},
	constants.ProductStatusReadyForShipment:  {},
	constants.ProductStatusShipped:           {},
	constants.ProductStatusDelivered:         {},
	constants.ProductStatusCanceled:          {},
	constants.ProductStatusReturned:          {},
	constants.ProductStatusRefunded:          {},
	constants.ProductStatusFailedDelivery:    {},
	constants.ProductStatusOnHold:            {},
	constants.ProductStatusBackordered:       {},
	constants.ProductStatusPartiallyShipped:  {},
	constants.ProductStatusExchangeRequested: {},
	constants.ProductStatusAwaitingPickup:    {},
}

// IsValidOrderStatus 判断是否为合法的分组状态
func IsValidOrderStatus(status string) bool {
	_, ok := orderStatuses[status]
	return ok
}

// IsValidProductStatus 判断是否为合法的订单项状态
func IsValidProductStatus(status string) bool {
	_, ok := productStatuses[status]
	return ok
}

// CanTransitionOrderStatus 分组状态允许任意成员之间流转
func CanTransitionOrderStatus(from, to string) bool {
	return IsValidOrderStatus(to) && (from == "" || IsValidOrderStatus(from))
}

// CanTransitionProductStatus 订单项状态允许任意成员之间流转
func CanTransitionProductStatus(from, to string) bool {
	return IsValidProductStatus(to) && (from == "" || IsValidProductStatus(from))
}

// OrderStatusService 订单状态工作流
type OrderStatusService struct {
	orderRepo   repository.OrderRepository
	storeRepo   repository.StoreRepository
	historyRepo repository.OrderStatusHistoryRepository
	queueClient *queue.Client
}

// NewOrderStatusService 创建订单状态服务
func NewOrderStatusService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	historyRepo repository.OrderStatusHistoryRepository,
	queueClient *queue.Client,
) *OrderStatusService {
	return &OrderStatusService{
		orderRepo:   orderRepo,
		storeRepo:   storeRepo,
		historyRepo: historyRepo,
		queueClient: queueClient,
	}
}

// UpdateOrderGroupStatus 卖家更新店铺订单分组状态
func (s *OrderStatusService) UpdateOrderGroupStatus(session *Session, storeID, groupID uint, status string) (*models.OrderGroup, error) {
	group, err := s.updateGroup(session, storeID, groupID, status)
	metrics.StatusUpdated(constants.StatusAxisOrderGroup, statusResultLabel(err))
	return group, err
}

func (s *OrderStatusService) updateGroup(session *Session, storeID, groupID uint, status string) (*models.OrderGroup, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, err
	}
	group, err := s.orderRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil || group.StoreID != storeID {
		return nil, ErrOrderGroupNotFound
	}
	target := normalizeStatus(status)
	if !CanTransitionOrderStatus(group.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	from := group.Status
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateGroupStatus(group.ID, target); err != nil {
			return err
		}
		return syncOrderStatus(orderRepo, group.OrderID)
	})
	if err != nil {
		return nil, err
	}
	group.Status = target
	s.recordAsync(queue.OrderStatusChangedPayload{
		Axis:       constants.StatusAxisOrderGroup,
		TargetID:   group.ID,
		StoreID:    storeID,
		FromStatus: from,
		ToStatus:   target,
		OperatorID: session.UserID,
		RequestID:  session.RequestID,
	})
	return group, nil
}

// UpdateOrderItemStatus 卖家更新店铺订单项状态
func (s *OrderStatusService) UpdateOrderItemStatus(session *Session, storeID, itemID uint, status string) (*models.OrderItem, error) {
	item, err := s.updateItem(session, storeID, itemID, status)
	metrics.StatusUpdated(constants.StatusAxisOrderItem, statusResultLabel(err))
	return item, err
}

func (s *OrderStatusService) updateItem(session *Session, storeID, itemID uint, status string) (*models.OrderItem, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, storeID); err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.StoreID != storeID {
		return nil, ErrOrderItemNotFound
	}
	target := normalizeStatus(status)
	if !CanTransitionProductStatus(item.Status, target) {
		return nil, ErrProductStatusInvalid
	}

	from := item.Status
	if err := s.orderRepo.UpdateItemStatus(item.ID, target); err != nil {
		return nil, err
	}
	item.Status = target
	s.recordAsync(queue.OrderStatusChangedPayload{
		Axis:       constants.StatusAxisOrderItem,
		TargetID:   item.ID,
		StoreID:    storeID,
		FromStatus: from,
		ToStatus:   target,
		OperatorID: session.UserID,
		RequestID:  session.RequestID,
	})
	return item, nil
}

// ListHistory 卖家查询店铺状态变更记录
func (s *OrderStatusService) ListHistory(session *Session, filter repository.StatusHistoryFilter) ([]models.OrderStatusHistory, int64, error) {
	if _, err := requireOwnedStore(s.storeRepo, session, filter.StoreID); err != nil {
		return nil, 0, err
	}
	filter.Axis = strings.ToLower(strings.TrimSpace(filter.Axis))
	return s.historyRepo.List(filter)
}

// RecordStatusChange 写入状态变更记录（由队列消费者或同步兜底调用）
func (s *OrderStatusService) RecordStatusChange(payload queue.OrderStatusChangedPayload) error {
	if payload.TargetID == 0 || payload.ToStatus == "" {
		return ErrInvalidInput
	}
	return s.historyRepo.Create(&models.OrderStatusHistory{
		Axis:       payload.Axis,
		TargetID:   payload.TargetID,
		StoreID:    payload.StoreID,
		FromStatus: payload.FromStatus,
		ToStatus:   payload.ToStatus,
		OperatorID: payload.OperatorID,
		RequestID:  payload.RequestID,
		CreatedAt:  time.Now(),
	})
}

func (s *OrderStatusService) recordAsync(payload queue.OrderStatusChangedPayload) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderStatusChanged(payload)
		if err == nil {
			return
		}
		logger.Errorw("order_enqueue_status_changed_failed",
			"axis", payload.Axis,
			"target_id", payload.TargetID,
			"error", err,
		)
	}
	if err := s.RecordStatusChange(payload); err != nil {
		logger.Errorw("order_status_history_write_failed",
			"axis", payload.Axis,
			"target_id", payload.TargetID,
			"error", err,
		)
	}
}

// syncOrderStatus 所有分组状态一致时同步到主订单
func syncOrderStatus(orderRepo repository.OrderRepository, orderID uint) error {
	order, err := orderRepo.GetByID(orderID)
	if err != nil || order == nil || len(order.Groups) == 0 {
		return err
	}
	status := order.Groups[0].Status
	for _, group := range order.Groups[1:] {
		if group.Status != status {
			return nil
		}
	}
	if status == order.Status {
		return nil
	}
	return orderRepo.UpdateStatus(order.ID, status)
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func statusResultLabel(err error) string {
	if err == nil {
		return "updated"
	}
	return string(KindOf(err))
}
