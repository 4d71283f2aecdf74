package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/repository/mysql"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// sqlite 单写者，串行化连接避免测试里出现 busy 错误
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		mysql.NewProductRepository(db),
		mysql.NewOrderRepository(db),
		&config.PricingConfig{
			TaxRate:               0.05,
			FreeDeliveryThreshold: 500,
			DeliveryFee:           50,
			EstimatedDeliveryDays: 2,
		},
		nil,
	)
}

func seedProduct(t *testing.T, db *gorm.DB, p product.Product) *product.Product {
	t.Helper()
	if p.Unit == "" {
		p.Unit = "kg"
	}
	if p.Category == "" {
		p.Category = product.CategoryGrains
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func testAddress() order.Address {
	return order.Address{Street: "12 MG Road", City: "Pune", State: "Maharashtra", Pincode: "411001"}
}

func stockOf(t *testing.T, db *gorm.DB, id int64) int64 {
	t.Helper()
	var p product.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&order.Order{}).Count(&n).Error)
	return n
}

func TestCreateOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Basmati Rice", Price: 100, Discount: 10, Stock: 5, IsAvailable: true})

	o, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 2}},
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)

	// 折后价 90，2 件小计 180，税 9，未达免运费门槛收 50，总额 239
	assert.InDelta(t, 90.0, o.Items[0].Price, 1e-9)
	assert.InDelta(t, 180.0, o.Items[0].Total, 1e-9)
	assert.InDelta(t, 180.0, o.Subtotal, 1e-9)
	assert.InDelta(t, 9.0, o.Tax, 1e-9)
	assert.InDelta(t, 50.0, o.DeliveryFee, 1e-9)
	assert.InDelta(t, 239.0, o.TotalAmount, 1e-9)

	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentCashOnDelivery, o.PaymentMethod)
	assert.Nil(t, o.DeliveredAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 2), o.EstimatedDelivery, 5*time.Second)

	assert.Equal(t, int64(3), stockOf(t, db, p.ID))
}

func TestCreateOrderTotalIsSumOfParts(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	a := seedProduct(t, db, product.Product{Name: "Toor Dal", Price: 150, Discount: 5, Stock: 10, IsAvailable: true})
	b := seedProduct(t, db, product.Product{Name: "Sunflower Oil", Price: 160, Stock: 10, IsAvailable: true, Unit: "l", Category: product.CategoryOils})

	o, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items: []ItemInput{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: b.ID, Quantity: 2},
		},
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)

	var lineSum float64
	for _, it := range o.Items {
		assert.InDelta(t, it.Price*float64(it.Quantity), it.Total, 1e-9)
		lineSum += it.Total
	}
	assert.InDelta(t, lineSum, o.Subtotal, 1e-9)
	assert.InDelta(t, o.Subtotal+o.Tax+o.DeliveryFee, o.TotalAmount, 1e-9)
}

func TestCreateOrderFreeDeliveryAboveThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Tea Powder", Price: 250, Stock: 10, IsAvailable: true})

	o, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 2}},
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)
	assert.InDelta(t, 500.0, o.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, o.DeliveryFee, 1e-9)
}

func TestCreateOrderProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	_, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: 404, Quantity: 1}},
		DeliveryAddress: testAddress(),
	})
	var nf *ProductNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(404), nf.ProductID)
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateOrderProductUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Rock Salt", Price: 38, Stock: 10, IsAvailable: false})

	_, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
		DeliveryAddress: testAddress(),
	})
	var ua *ProductUnavailableError
	require.ErrorAs(t, err, &ua)
	assert.Equal(t, "Rock Salt", ua.Name)
	assert.Equal(t, int64(10), stockOf(t, db, p.ID))
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateOrderInsufficientStockRollsBackWholeOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	a := seedProduct(t, db, product.Product{Name: "Wheat Flour", Price: 55, Stock: 10, IsAvailable: true})
	b := seedProduct(t, db, product.Product{Name: "Bath Soap", Price: 35, Stock: 2, IsAvailable: true, Unit: "piece"})

	// 第一行可以满足，第二行超出库存，整单必须失败且第一行的扣减要回滚
	_, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items: []ItemInput{
			{ProductID: a.ID, Quantity: 5},
			{ProductID: b.ID, Quantity: 3},
		},
		DeliveryAddress: testAddress(),
	})
	var is *InsufficientStockError
	require.ErrorAs(t, err, &is)
	assert.Equal(t, "Bath Soap", is.Name)
	assert.Equal(t, int64(2), is.Available)

	assert.Equal(t, int64(10), stockOf(t, db, a.ID))
	assert.Equal(t, int64(2), stockOf(t, db, b.ID))
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateOrderRejectsEmptyAndInvalidQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Salted Peanuts", Price: 60, Stock: 10, IsAvailable: true})

	_, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		DeliveryAddress: testAddress(),
	})
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 0}},
		DeliveryAddress: testAddress(),
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Equal(t, int64(10), stockOf(t, db, p.ID))
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateOrderSnapshotsPriceAgainstLaterChanges(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Instant Noodles", Price: 84, Stock: 10, IsAvailable: true})

	o, err := svc.CreateOrder(context.Background(), 1, &OrderInput{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)

	// 之后涨价不影响已生成订单里的快照价
	require.NoError(t, db.Model(&product.Product{}).Where("id = ?", p.ID).Update("price", 999).Error)

	got, err := svc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.InDelta(t, 84.0, got.Items[0].Price, 1e-9)
	assert.InDelta(t, 84.0, got.Subtotal, 1e-9)
}

func TestCreateOrderConcurrentSingleUnitStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	p := seedProduct(t, db, product.Product{Name: "Last Pack", Price: 100, Stock: 1, IsAvailable: true})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(context.Background(), int64(i+1), &OrderInput{
				Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
				DeliveryAddress: testAddress(),
			})
		}(i)
	}
	wg.Wait()

	// 恰好一个成功、一个库存不足，库存归零且不为负
	var okCount, stockFail int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var is *InsufficientStockError
		if errors.As(err, &is) {
			stockFail++
		}
	}
	assert.Equal(t, 1, okCount, "exactly one order should win the race")
	assert.Equal(t, 1, stockFail, "the loser must fail with insufficient stock")
	assert.Equal(t, int64(0), stockOf(t, db, p.ID))
	assert.Equal(t, int64(1), orderCount(t, db))
}
