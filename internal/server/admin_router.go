package server

import (
	"github.com/kataras/iris/v12"

	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/middleware"
	"github.com/nikhil8824/ration-shop/internal/service"
)

// registerAdminRoutes 注册后台管理路由，全部要求 admin 角色
func registerAdminRoutes(
	api iris.Party,
	productSvc *service.ProductService,
	orderSvc *service.OrderService,
	userSvc *service.UserService,
	authed iris.Handler,
) {
	admin := []iris.Handler{authed, middleware.RequireAdmin}

	// ---------- 商品管理 ----------

	// 创建商品
	api.Post("/products", append(admin, func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		if errs := req.validate(false); len(errs) > 0 {
			failValidation(ctx, errs)
			return
		}
		p := &product.Product{IsAvailable: true}
		req.applyTo(p)
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			failWith(ctx, err, "Failed to create product")
			return
		}
		created(ctx, "Product created successfully", iris.Map{"product": p})
	})...)

	// 更新商品
	api.Put("/products/{id:int64}", append(admin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			fail(ctx, 404, "Product not found")
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		if errs := req.validate(true); len(errs) > 0 {
			failValidation(ctx, errs)
			return
		}
		req.applyTo(p)
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			failWith(ctx, err, "Failed to update product")
			return
		}
		ok(ctx, "Product updated successfully", iris.Map{"product": p})
	})...)

	// 删除商品
	api.Delete("/products/{id:int64}", append(admin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := productSvc.Delete(ctx.Request().Context(), id); err != nil {
			fail(ctx, 404, "Product not found")
			return
		}
		ok(ctx, "Product deleted successfully", nil)
	})...)

	// 全量商品列表（含下架商品）
	api.Get("/products/admin/all", append(admin, func(ctx iris.Context) {
		f, errs := productFilterFromQuery(ctx, false)
		if len(errs) > 0 {
			failValidation(ctx, errs)
			return
		}
		list, page, err := productSvc.List(ctx.Request().Context(), f)
		if err != nil {
			failWith(ctx, err, "Failed to fetch products")
			return
		}
		ok(ctx, "", iris.Map{"products": list, "pagination": page})
	})...)

	// ---------- 订单管理 ----------

	// 更新订单状态
	api.Put("/orders/{id:int64}/status", append(admin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		if !order.ValidStatus(req.Status) {
			failValidation(ctx, []FieldError{{"status", "Invalid status"}})
			return
		}
		o, err := orderSvc.UpdateStatus(ctx.Request().Context(), id, req.Status)
		if err != nil {
			failWith(ctx, err, "Failed to update order status")
			return
		}
		ok(ctx, "Order status updated successfully", iris.Map{"order": o})
	})...)

	// 全量订单列表
	api.Get("/orders/admin/all", append(admin, func(ctx iris.Context) {
		status := ctx.URLParam("status")
		if status != "" && !order.ValidStatus(status) {
			failValidation(ctx, []FieldError{{"status", "Invalid status"}})
			return
		}
		list, page, err := orderSvc.ListOrders(ctx.Request().Context(), order.Filter{
			UserID: int64(ctx.URLParamIntDefault("user", 0)),
			Status: status,
			Page:   ctx.URLParamIntDefault("page", 1),
			Limit:  ctx.URLParamIntDefault("limit", 20),
		})
		if err != nil {
			failWith(ctx, err, "Failed to fetch orders")
			return
		}
		ok(ctx, "", iris.Map{"orders": list, "pagination": page})
	})...)

	// 订单统计
	api.Get("/orders/admin/stats", append(admin, func(ctx iris.Context) {
		stats, err := orderSvc.Stats(ctx.Request().Context())
		if err != nil {
			failWith(ctx, err, "Failed to fetch order statistics")
			return
		}
		ok(ctx, "", iris.Map{
			"statusStats":  stats.StatusStats,
			"totalOrders":  stats.TotalOrders,
			"totalRevenue": stats.TotalRevenue,
			"recentOrders": stats.RecentOrders,
		})
	})...)

	// 运行指标
	api.Get("/orders/admin/metrics", append(admin, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true, "data": service.GetMonitor().GetStats()})
	})...)

	// ---------- 用户管理 ----------

	// 用户列表
	api.Get("/users", append(admin, func(ctx iris.Context) {
		list, page, err := userSvc.List(ctx.Request().Context(),
			ctx.URLParamIntDefault("page", 1),
			ctx.URLParamIntDefault("limit", 20))
		if err != nil {
			failWith(ctx, err, "Failed to fetch users")
			return
		}
		ok(ctx, "", iris.Map{"users": list, "pagination": page})
	})...)

	// 启用/停用用户
	api.Put("/users/{id:int64}/status", append(admin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			IsActive *bool `json:"isActive"`
		}
		if err := ctx.ReadJSON(&req); err != nil || req.IsActive == nil {
			failValidation(ctx, []FieldError{{"isActive", "isActive must be a boolean"}})
			return
		}
		u, err := userSvc.SetActive(ctx.Request().Context(), id, *req.IsActive)
		if err != nil {
			failWith(ctx, err, "Failed to update user status")
			return
		}
		ok(ctx, "User status updated successfully", iris.Map{"user": u})
	})...)

	// 用户统计
	api.Get("/users/stats/overview", append(admin, func(ctx iris.Context) {
		stats, err := userSvc.Stats(ctx.Request().Context())
		if err != nil {
			failWith(ctx, err, "Failed to fetch user statistics")
			return
		}
		ok(ctx, "", iris.Map{"stats": stats})
	})...)
}
