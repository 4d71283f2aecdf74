package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/events"
	"github.com/nikhil8824/ration-shop/internal/pagination"
	"github.com/nikhil8824/ration-shop/internal/pricing"
)

// OrderService 下单工作流与订单生命周期管理
type OrderService struct {
	db          *gorm.DB
	productRepo product.Repository
	orderRepo   order.Repository
	policy      pricing.Policy
	etaDays     int
	publisher   *events.Publisher
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	productRepo product.Repository,
	orderRepo order.Repository,
	pricingCfg *config.PricingConfig,
	publisher *events.Publisher,
) *OrderService {
	return &OrderService{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		policy:      pricing.NewPolicy(pricingCfg),
		etaDays:     pricingCfg.EstimatedDeliveryDays,
		publisher:   publisher,
	}
}

// ItemInput 下单行输入
type ItemInput struct {
	ProductID int64
	Quantity  int64
}

// OrderInput 下单输入，字段级校验在 HTTP 边界完成
type OrderInput struct {
	Items           []ItemInput
	DeliveryAddress order.Address
	PaymentMethod   string
	Notes           string
}

// CreateOrder 创建订单：校验每行商品、快照折后价、算总额、扣库存、落库。
// 整个流程在一个事务里，任意一行失败则整单回滚，不会留下部分扣减。
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, in *OrderInput) (*order.Order, error) {
	GetMonitor().RecordOrderRequest()

	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = order.PaymentCashOnDelivery
	}

	o, err := s.createOnce(ctx, userID, in, paymentMethod)
	if err != nil && isTransient(err) {
		// 瞬时存储冲突只重试一次；库存不足等领域错误不重试
		zap.L().Warn("order creation hit transient conflict, retrying once", zap.Error(err))
		o, err = s.createOnce(ctx, userID, in, paymentMethod)
	}
	if err != nil {
		var is *InsufficientStockError
		if errors.As(err, &is) {
			GetMonitor().RecordStockConflict()
		}
		if !IsDomainError(err) {
			GetMonitor().RecordDBError()
		}
		GetMonitor().RecordOrderFailed()
		return nil, err
	}

	GetMonitor().RecordOrderSuccess()

	// 事件发布尽力而为，失败不影响已落库的订单
	if err := s.publisher.Publish(ctx, &events.OrderEvent{
		Type:    events.TypeOrderCreated,
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
		Total:   o.TotalAmount,
		At:      time.Now(),
	}); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("publish order.created failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
	return o, nil
}

func (s *OrderService) createOnce(ctx context.Context, userID int64, in *OrderInput, paymentMethod string) (*order.Order, error) {
	var created *order.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := make([]order.Item, 0, len(in.Items))
		var subtotal float64

		for _, line := range in.Items {
			// 1. 逐行校验商品
			var p product.Product
			if err := tx.First(&p, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}
			if !p.IsAvailable {
				return &ProductUnavailableError{Name: p.Name}
			}
			if p.Stock < line.Quantity {
				return &InsufficientStockError{Name: p.Name, Available: p.Stock}
			}

			// 2. 条件扣减库存，写入时再查一次谓词，输给并发订单则整单失败
			ok, err := s.productRepo.DecrementStock(tx, p.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				var cur product.Product
				if err := tx.First(&cur, p.ID).Error; err == nil {
					p.Stock = cur.Stock
				}
				return &InsufficientStockError{Name: p.Name, Available: p.Stock}
			}

			// 3. 折后价快照
			unit := p.DiscountedPrice()
			lineTotal := pricing.LineTotal(unit, line.Quantity)
			subtotal += lineTotal
			items = append(items, order.Item{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     unit,
				Total:     lineTotal,
			})
		}

		// 4. 按策略算总额并落库
		t := s.policy.OrderTotals(subtotal)
		o := &order.Order{
			UserID:            userID,
			Items:             items,
			Subtotal:          t.Subtotal,
			Tax:               t.Tax,
			DeliveryFee:       t.DeliveryFee,
			TotalAmount:       t.Total,
			Status:            order.StatusPending,
			PaymentMethod:     paymentMethod,
			DeliveryAddress:   in.DeliveryAddress,
			Notes:             in.Notes,
			EstimatedDelivery: time.Now().AddDate(0, 0, s.etaDays),
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// isTransient 识别可重试的存储冲突（死锁、锁等待超时）
func isTransient(err error) bool {
	if err == nil || IsDomainError(err) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// GetOrder 查询单个订单
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListOrders 分页查询订单，limit 限制在 1-50
func (s *OrderService) ListOrders(ctx context.Context, f order.Filter) ([]*order.Order, pagination.Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit = pagination.ClampLimit(f.Limit, 10, 50)

	list, total, err := s.orderRepo.List(ctx, f)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return list, pagination.New(f.Page, f.Limit, total), nil
}

// UpdateStatus 更新订单状态。六个状态间不做状态机限制（与移动端约定一致），
// 置为 delivered 时写入送达时间；取消订单不回补库存。
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*order.Order, error) {
	if !order.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var deliveredAt *time.Time
	if status == order.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	o, err := s.orderRepo.UpdateStatus(ctx, id, status, deliveredAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.publisher.Publish(ctx, &events.OrderEvent{
		Type:    events.TypeOrderStatusChanged,
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
		Total:   o.TotalAmount,
		At:      time.Now(),
	}); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("publish order.status_changed failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
	return o, nil
}

// Stats 后台订单统计
func (s *OrderService) Stats(ctx context.Context) (*order.Stats, error) {
	return s.orderRepo.Stats(ctx)
}
