package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil8824/ration-shop/internal/config"
)

func testPolicy() Policy {
	return NewPolicy(&config.PricingConfig{
		TaxRate:               0.05,
		FreeDeliveryThreshold: 500,
		DeliveryFee:           50,
	})
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 180.0, LineTotal(90, 2), 1e-9)
	assert.InDelta(t, 90.0, LineTotal(90, 1), 1e-9)
	assert.InDelta(t, 0.0, LineTotal(0, 5), 1e-9)
}

func TestOrderTotalsTaxIsFivePercent(t *testing.T) {
	p := testPolicy()

	got := p.OrderTotals(200)
	assert.InDelta(t, 10.0, got.Tax, 1e-9)

	got = p.OrderTotals(0)
	assert.InDelta(t, 0.0, got.Tax, 1e-9)
}

func TestOrderTotalsDeliveryFeeBoundary(t *testing.T) {
	p := testPolicy()

	// 499.99 还差一分钱，照常收运费
	got := p.OrderTotals(499.99)
	assert.InDelta(t, 50.0, got.DeliveryFee, 1e-9)

	// 恰好到达门槛即免运费
	got = p.OrderTotals(500.00)
	assert.InDelta(t, 0.0, got.DeliveryFee, 1e-9)

	got = p.OrderTotals(500.01)
	assert.InDelta(t, 0.0, got.DeliveryFee, 1e-9)
}

func TestOrderTotalsSum(t *testing.T) {
	p := testPolicy()

	got := p.OrderTotals(180)
	require.InDelta(t, 180.0, got.Subtotal, 1e-9)
	require.InDelta(t, 9.0, got.Tax, 1e-9)
	require.InDelta(t, 50.0, got.DeliveryFee, 1e-9)
	require.InDelta(t, 239.0, got.Total, 1e-9)

	// total 恒等于 subtotal + tax + deliveryFee
	for _, subtotal := range []float64{0, 1, 99.5, 499.99, 500, 1234.56} {
		tt := p.OrderTotals(subtotal)
		assert.InDelta(t, tt.Subtotal+tt.Tax+tt.DeliveryFee, tt.Total, 1e-9)
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 9.0, Round2(8.999999999), 1e-9)
	assert.InDelta(t, 2.34, Round2(2.341), 1e-9)
	assert.InDelta(t, 2.35, Round2(2.349), 1e-9)
	assert.InDelta(t, 0.0, Round2(0), 1e-9)
}
