package server

import (
	"errors"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/nikhil8824/ration-shop/internal/service"
)

// ok 200 响应
func ok(ctx iris.Context, message string, data iris.Map) {
	ctx.JSON(iris.Map{"success": true, "message": message, "data": data})
}

// created 201 响应
func created(ctx iris.Context, message string, data iris.Map) {
	ctx.StatusCode(201)
	ctx.JSON(iris.Map{"success": true, "message": message, "data": data})
}

// fail 错误响应
func fail(ctx iris.Context, code int, message string) {
	ctx.StopWithJSON(code, iris.Map{"success": false, "message": message})
}

// failValidation 字段级校验错误列表
func failValidation(ctx iris.Context, errs []FieldError) {
	ctx.StopWithJSON(400, iris.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// failWith 把领域错误翻译为 4xx；基础设施错误记日志并返回兜底 500，
// 不向客户端暴露内部细节。
func failWith(ctx iris.Context, err error, fallback string) {
	var nf *service.ProductNotFoundError
	var ua *service.ProductUnavailableError
	var is *service.InsufficientStockError
	switch {
	case errors.As(err, &nf), errors.As(err, &ua), errors.As(err, &is):
		fail(ctx, 400, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		fail(ctx, 404, "Order not found")
	case errors.Is(err, service.ErrUserNotFound):
		fail(ctx, 404, "User not found")
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStatus):
		fail(ctx, 400, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		fail(ctx, 400, "User with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(ctx, 401, "Invalid email or password")
	case errors.Is(err, service.ErrUserDisabled):
		fail(ctx, 401, "Account is deactivated")
	default:
		zap.L().Error(fallback, zap.Error(err), zap.String("path", ctx.Path()))
		fail(ctx, 500, fallback)
	}
}
