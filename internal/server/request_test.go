package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Items: []orderItemRequest{{Product: 1, Quantity: 2}},
		DeliveryAddress: order.Address{
			Street: "12 MG Road", City: "Pune", State: "Maharashtra", Pincode: "411001",
		},
	}
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestCreateOrderRequestValid(t *testing.T) {
	req := validOrderRequest()
	assert.Empty(t, req.validate())

	req.PaymentMethod = order.PaymentCard
	assert.Empty(t, req.validate())
}

func TestCreateOrderRequestFieldErrors(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil
	assert.Contains(t, fields(req.validate()), "items")

	req = validOrderRequest()
	req.Items[0].Quantity = 0
	assert.Contains(t, fields(req.validate()), "items[0].quantity")

	req = validOrderRequest()
	req.DeliveryAddress.Street = "  "
	assert.Contains(t, fields(req.validate()), "deliveryAddress.street")

	req = validOrderRequest()
	req.PaymentMethod = "upi"
	assert.Contains(t, fields(req.validate()), "paymentMethod")

	req = validOrderRequest()
	req.Notes = strings.Repeat("x", 201)
	assert.Contains(t, fields(req.validate()), "notes")
}

func TestCreateOrderRequestPincode(t *testing.T) {
	for _, bad := range []string{"", "12345", "1234567", "41100a", "41 001"} {
		req := validOrderRequest()
		req.DeliveryAddress.Pincode = bad
		assert.Contains(t, fields(req.validate()), "deliveryAddress.pincode", "pincode %q", bad)
	}

	req := validOrderRequest()
	req.DeliveryAddress.Pincode = "560001"
	assert.Empty(t, req.validate())
}

func TestCreateOrderRequestCollectsAllErrors(t *testing.T) {
	req := createOrderRequest{}
	errs := req.validate()
	// 一次性返回全部字段错误，而不是碰到第一个就停
	got := fields(errs)
	require.Contains(t, got, "items")
	require.Contains(t, got, "deliveryAddress.street")
	require.Contains(t, got, "deliveryAddress.city")
	require.Contains(t, got, "deliveryAddress.state")
	require.Contains(t, got, "deliveryAddress.pincode")
}

func TestProductRequestValidate(t *testing.T) {
	name := "Basmati Rice"
	price := 120.0
	stock := int64(10)
	unit := "kg"
	category := "grains"

	full := productRequest{Name: &name, Price: &price, Stock: &stock, Unit: &unit, Category: &category}
	assert.Empty(t, full.validate(false))

	// 创建时必填字段缺失
	empty := productRequest{}
	got := fields(empty.validate(false))
	require.Contains(t, got, "name")
	require.Contains(t, got, "price")
	require.Contains(t, got, "stock")
	require.Contains(t, got, "unit")
	require.Contains(t, got, "category")

	// 更新时允许缺省
	assert.Empty(t, empty.validate(true))

	bad := -1.0
	partial := productRequest{Price: &bad}
	assert.Contains(t, fields(partial.validate(true)), "price")

	badUnit := "dozen"
	partial = productRequest{Unit: &badUnit}
	assert.Contains(t, fields(partial.validate(true)), "unit")
}

func TestRegisterRequestValidate(t *testing.T) {
	ok := registerRequest{Name: "N", Email: "n@example.com", Password: "secret1"}
	assert.Empty(t, ok.validate())

	bad := registerRequest{Name: "", Email: "not-an-email", Password: "123"}
	got := fields(bad.validate())
	require.Contains(t, got, "name")
	require.Contains(t, got, "email")
	require.Contains(t, got, "password")
}
