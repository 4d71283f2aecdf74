package order

import (
	"context"
	"time"
)

// 订单状态。delivered 和 cancelled 为终态。
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPacked    = "packed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses 全部合法状态
var Statuses = []string{
	StatusPending, StatusConfirmed, StatusPacked,
	StatusShipped, StatusDelivered, StatusCancelled,
}

// ValidStatus 校验状态取值
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// 支付方式
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentOnline         = "online"
	PaymentCard           = "card"
)

// PaymentMethods 全部合法支付方式
var PaymentMethods = []string{PaymentCashOnDelivery, PaymentOnline, PaymentCard}

// ValidPaymentMethod 校验支付方式取值
func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Address 收货地址（内嵌到订单）
type Address struct {
	Street  string `gorm:"size:255;not null" json:"street"`
	City    string `gorm:"size:64;not null" json:"city"`
	State   string `gorm:"size:64;not null" json:"state"`
	Pincode string `gorm:"size:6;not null" json:"pincode"`
}

// Item 订单行，价格为下单时刻的折后价快照，之后商品改价不影响历史订单
type Item struct {
	ID        int64   `gorm:"primaryKey" json:"-"`
	OrderID   int64   `gorm:"index;not null" json:"-"`
	ProductID int64   `gorm:"index;not null" json:"product"`
	Quantity  int64   `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // 单价快照
	Total     float64 `gorm:"not null" json:"total"` // Price * Quantity
}

// Order 订单模型。创建后行项目与金额不可变，
// 只有状态（及送达时间）允许由生命周期管理更新。
type Order struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	UserID            int64      `gorm:"index;not null" json:"user"`
	Items             []Item     `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal          float64    `gorm:"not null" json:"subtotal"`
	Tax               float64    `gorm:"not null" json:"tax"`
	DeliveryFee       float64    `gorm:"not null" json:"deliveryFee"`
	TotalAmount       float64    `gorm:"not null" json:"totalAmount"`
	Status            string     `gorm:"size:16;index;not null;default:pending" json:"status"`
	PaymentMethod     string     `gorm:"size:32;not null" json:"paymentMethod"`
	DeliveryAddress   Address    `gorm:"embedded;embeddedPrefix:addr_" json:"deliveryAddress"`
	Notes             string     `gorm:"size:200" json:"notes,omitempty"`
	EstimatedDelivery time.Time  `json:"estimatedDelivery"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Filter 订单列表查询条件。UserID 为 0 表示不限用户（后台用）。
type Filter struct {
	UserID int64
	Status string
	Page   int
	Limit  int
}

// StatusStat 按状态聚合的订单数与金额
type StatusStat struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// Stats 后台统计
type Stats struct {
	StatusStats  []StatusStat `json:"statusStats"`
	TotalOrders  int64        `json:"totalOrders"`
	TotalRevenue float64      `json:"totalRevenue"` // 已送达订单的总金额
	RecentOrders []*Order     `json:"recentOrders"`
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, int64, error)
	// UpdateStatus 只更新状态（status == delivered 时同时写 delivered_at）
	UpdateStatus(ctx context.Context, id int64, status string, deliveredAt *time.Time) (*Order, error)
	Stats(ctx context.Context) (*Stats, error)
}
