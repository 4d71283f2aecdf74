package pricing

import (
	"math"

	"github.com/nikhil8824/ration-shop/internal/config"
)

// Policy 计价策略，唯一来源是配置，调用点不允许再写死常量
type Policy struct {
	TaxRate               float64
	FreeDeliveryThreshold float64
	DeliveryFee           float64
}

// NewPolicy 从配置构建计价策略
func NewPolicy(cfg *config.PricingConfig) Policy {
	return Policy{
		TaxRate:               cfg.TaxRate,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		DeliveryFee:           cfg.DeliveryFee,
	}
}

// Totals 订单金额汇总
type Totals struct {
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Total       float64
}

// LineTotal 行金额。unitPrice 需已经是折后价，quantity 由调用方保证 >= 1。
func LineTotal(unitPrice float64, quantity int64) float64 {
	return unitPrice * float64(quantity)
}

// OrderTotals 按策略从小计算出税费、运费与总额。
// 中间不做舍入，金额只在展示边界用 Round2 归到两位小数。
func (p Policy) OrderTotals(subtotal float64) Totals {
	tax := subtotal * p.TaxRate
	fee := p.DeliveryFee
	if subtotal >= p.FreeDeliveryThreshold {
		fee = 0
	}
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal + tax + fee,
	}
}

// Round2 展示用的两位小数舍入
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
