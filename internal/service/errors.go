package service

import (
	"errors"
	"fmt"
)

// 领域错误，handler 层据此翻译为 4xx 响应
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// ProductNotFoundError 商品不存在
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// ProductUnavailableError 商品已下架
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is not available", e.Name)
}

// InsufficientStockError 库存不足，带当前可用数量方便提示用户
type InsufficientStockError struct {
	Name      string
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s, available: %d", e.Name, e.Available)
}

// IsDomainError 判断是否为领域错误（而非基础设施故障）
func IsDomainError(err error) bool {
	var nf *ProductNotFoundError
	var ua *ProductUnavailableError
	var is *InsufficientStockError
	return errors.As(err, &nf) || errors.As(err, &ua) || errors.As(err, &is) ||
		errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrInvalidStatus)
}
