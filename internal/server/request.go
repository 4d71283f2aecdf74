package server

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/service"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// orderItemRequest 下单行
type orderItemRequest struct {
	Product  int64 `json:"product"`
	Quantity int64 `json:"quantity"`
}

// createOrderRequest 下单请求体，进入服务层前校验一次，
// 返回字段错误列表而不是逐个抛错
type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress order.Address      `json:"deliveryAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

func (r *createOrderRequest) validate() []FieldError {
	var errs []FieldError
	if len(r.Items) == 0 {
		errs = append(errs, FieldError{"items", "Order must contain at least one item"})
	}
	for i, it := range r.Items {
		if it.Product <= 0 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].product", i), "Invalid product ID"})
		}
		if it.Quantity < 1 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1"})
		}
	}
	if strings.TrimSpace(r.DeliveryAddress.Street) == "" {
		errs = append(errs, FieldError{"deliveryAddress.street", "Street address is required"})
	}
	if strings.TrimSpace(r.DeliveryAddress.City) == "" {
		errs = append(errs, FieldError{"deliveryAddress.city", "City is required"})
	}
	if strings.TrimSpace(r.DeliveryAddress.State) == "" {
		errs = append(errs, FieldError{"deliveryAddress.state", "State is required"})
	}
	if !pincodeRe.MatchString(r.DeliveryAddress.Pincode) {
		errs = append(errs, FieldError{"deliveryAddress.pincode", "Please provide a valid 6-digit pincode"})
	}
	if r.PaymentMethod != "" && !order.ValidPaymentMethod(r.PaymentMethod) {
		errs = append(errs, FieldError{"paymentMethod", "Invalid payment method"})
	}
	if len(r.Notes) > 200 {
		errs = append(errs, FieldError{"notes", "Notes cannot exceed 200 characters"})
	}
	return errs
}

func (r *createOrderRequest) toInput() *service.OrderInput {
	items := make([]service.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.ItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}
	return &service.OrderInput{
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		PaymentMethod:   r.PaymentMethod,
		Notes:           strings.TrimSpace(r.Notes),
	}
}

// productRequest 商品创建/更新请求体。指针字段区分"未提供"和零值，
// 更新时只覆盖提供了的字段。
type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Stock       *int64   `json:"stock"`
	IsAvailable *bool    `json:"isAvailable"`
	Unit        *string  `json:"unit"`
	Category    *string  `json:"category"`
	Tags        *string  `json:"tags"`
}

// validate partial 为 true 时（更新）允许字段缺省
func (r *productRequest) validate(partial bool) []FieldError {
	var errs []FieldError
	if r.Name == nil && !partial {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" || len(n) > 100 {
			errs = append(errs, FieldError{"name", "Name is required and must be 1-100 characters"})
		}
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, FieldError{"description", "Description cannot exceed 500 characters"})
	}
	if r.Price == nil && !partial {
		errs = append(errs, FieldError{"price", "Price is required"})
	} else if r.Price != nil && *r.Price < 0 {
		errs = append(errs, FieldError{"price", "Price must be a non-negative number"})
	}
	if r.Discount != nil && (*r.Discount < 0 || *r.Discount > 100) {
		errs = append(errs, FieldError{"discount", "Discount must be between 0 and 100"})
	}
	if r.Stock == nil && !partial {
		errs = append(errs, FieldError{"stock", "Stock is required"})
	} else if r.Stock != nil && *r.Stock < 0 {
		errs = append(errs, FieldError{"stock", "Stock must be a non-negative integer"})
	}
	if r.Unit == nil && !partial {
		errs = append(errs, FieldError{"unit", "Unit is required"})
	} else if r.Unit != nil && !product.ValidUnit(*r.Unit) {
		errs = append(errs, FieldError{"unit", "Invalid unit"})
	}
	if r.Category == nil && !partial {
		errs = append(errs, FieldError{"category", "Category is required"})
	} else if r.Category != nil && !product.ValidCategory(*r.Category) {
		errs = append(errs, FieldError{"category", "Invalid category"})
	}
	return errs
}

// applyTo 把提供了的字段写入商品
func (r *productRequest) applyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Discount != nil {
		p.Discount = *r.Discount
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Tags != nil {
		p.Tags = *r.Tags
	}
}

// registerRequest 注册请求体
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (r *registerRequest) validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if !emailRe.MatchString(r.Email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}
	return errs
}

// loginRequest 登录请求体
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
