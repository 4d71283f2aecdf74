package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/nikhil8824/ration-shop/internal/auth"
	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
	"github.com/nikhil8824/ration-shop/internal/events"
	"github.com/nikhil8824/ration-shop/internal/infra/mq"
	"github.com/nikhil8824/ration-shop/internal/infra/redis"
	"github.com/nikhil8824/ration-shop/internal/middleware"
	"github.com/nikhil8824/ration-shop/internal/repository/mysql"
	"github.com/nikhil8824/ration-shop/internal/service"
)

// RegisterRoutes 注册所有 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	userRepo := mysql.NewUserRepository(db)

	publisher := events.NewPublisher(mqConn)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(db, productRepo, orderRepo, &cfg.Pricing, publisher)
	userSvc := service.NewUserService(userRepo, &cfg.JWT)

	ring := auth.NewHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)
	authed := middleware.Authenticate(&cfg.JWT, tokenCache)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ok(ctx, "ok", nil)
	})

	registerAuthRoutes(api, userSvc, authed)
	registerProductRoutes(api, productSvc, authed)
	registerOrderRoutes(api, orderSvc, authed)
	registerAdminRoutes(api, productSvc, orderSvc, userSvc, authed)
}

// ---------- 认证 ----------

func registerAuthRoutes(api iris.Party, userSvc *service.UserService, authed iris.Handler) {
	authAPI := api.Party("/auth")

	authAPI.Post("/register", func(ctx iris.Context) {
		var req registerRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		if errs := req.validate(); len(errs) > 0 {
			failValidation(ctx, errs)
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), &service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
		if err != nil {
			failWith(ctx, err, "Failed to register user")
			return
		}
		token, _, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			failWith(ctx, err, "Failed to register user")
			return
		}
		created(ctx, "User registered successfully", iris.Map{"user": u, "token": token})
	})

	authAPI.Post("/login", func(ctx iris.Context) {
		var req loginRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		token, u, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			failWith(ctx, err, "Failed to login")
			return
		}
		ok(ctx, "Login successful", iris.Map{"user": u, "token": token})
	})

	authAPI.Get("/me", authed, func(ctx iris.Context) {
		claims := middleware.ClaimsFrom(ctx)
		u, err := userSvc.GetByID(ctx.Request().Context(), claims.UserID)
		if err != nil {
			failWith(ctx, err, "Failed to fetch profile")
			return
		}
		ok(ctx, "", iris.Map{"user": u})
	})
}

// ---------- 商品 ----------

func registerProductRoutes(api iris.Party, productSvc *service.ProductService, authed iris.Handler) {
	// 商品分类（固定集合，带展示名）
	api.Get("/products/categories", func(ctx iris.Context) {
		labels := map[string]string{
			product.CategoryGrains:       "Grains",
			product.CategoryPulses:       "Pulses",
			product.CategoryFlour:        "Flour",
			product.CategoryOils:         "Oils",
			product.CategorySpices:       "Spices",
			product.CategoryPackagedFood: "Packaged Food",
			product.CategoryCleaning:     "Cleaning Items",
			product.CategoryPersonalCare: "Personal Care",
			product.CategoryBeverages:    "Beverages",
			product.CategorySnacks:       "Snacks",
			product.CategoryOthers:       "Others",
		}
		categories := make([]iris.Map, 0, len(product.Categories))
		for _, c := range product.Categories {
			categories = append(categories, iris.Map{"value": c, "label": labels[c]})
		}
		ok(ctx, "", iris.Map{"categories": categories})
	})

	// 商品列表：搜索/筛选/分页，只返回上架商品
	api.Get("/products", func(ctx iris.Context) {
		f, errs := productFilterFromQuery(ctx, true)
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
	})

	// 商品详情
	api.Get("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			var nf *service.ProductNotFoundError
			if errors.As(err, &nf) {
				fail(ctx, 404, "Product not found")
				return
			}
			failWith(ctx, err, "Failed to fetch product")
			return
		}
		ok(ctx, "", iris.Map{"product": p, "discountedPrice": p.DiscountedPrice()})
	})
}

// productFilterFromQuery 从查询参数构建商品过滤条件
func productFilterFromQuery(ctx iris.Context, onlyAvailable bool) (product.Filter, []FieldError) {
	var errs []FieldError
	f := product.Filter{
		Page:          ctx.URLParamIntDefault("page", 1),
		Limit:         ctx.URLParamIntDefault("limit", 20),
		Search:        ctx.URLParam("search"),
		SortBy:        ctx.URLParamDefault("sortBy", "created_at"),
		SortOrder:     ctx.URLParamDefault("sortOrder", "desc"),
		OnlyAvailable: onlyAvailable,
	}
	if c := ctx.URLParam("category"); c != "" {
		if !product.ValidCategory(c) {
			errs = append(errs, FieldError{"category", "Invalid category"})
		}
		f.Category = c
	}
	if v := ctx.URLParam("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			errs = append(errs, FieldError{"minPrice", "Min price must be non-negative"})
		} else {
			f.MinPrice = &p
		}
	}
	if v := ctx.URLParam("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			errs = append(errs, FieldError{"maxPrice", "Max price must be non-negative"})
		} else {
			f.MaxPrice = &p
		}
	}
	return f, errs
}

// ---------- 订单 ----------

func registerOrderRoutes(api iris.Party, orderSvc *service.OrderService, authed iris.Handler) {
	orders := api.Party("/orders", authed)

	// 下单
	orders.Post("/", middleware.OrderRateLimit(), func(ctx iris.Context) {
		claims := middleware.ClaimsFrom(ctx)
		var req createOrderRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, 400, "Invalid request body")
			return
		}
		if errs := req.validate(); len(errs) > 0 {
			failValidation(ctx, errs)
			return
		}
		o, err := orderSvc.CreateOrder(ctx.Request().Context(), claims.UserID, req.toInput())
		if err != nil {
			failWith(ctx, err, "Failed to create order")
			return
		}
		created(ctx, "Order created successfully", iris.Map{"order": o})
	})

	// 当前用户的订单列表
	orders.Get("/", func(ctx iris.Context) {
		claims := middleware.ClaimsFrom(ctx)
		status := ctx.URLParam("status")
		if status != "" && !order.ValidStatus(status) {
			failValidation(ctx, []FieldError{{"status", "Invalid status"}})
			return
		}
		list, page, err := orderSvc.ListOrders(ctx.Request().Context(), order.Filter{
			UserID: claims.UserID,
			Status: status,
			Page:   ctx.URLParamIntDefault("page", 1),
			Limit:  ctx.URLParamIntDefault("limit", 10),
		})
		if err != nil {
			failWith(ctx, err, "Failed to fetch orders")
			return
		}
		ok(ctx, "", iris.Map{"orders": list, "pagination": page})
	})

	// 订单详情：普通用户只能看自己的订单
	orders.Get("/{id:int64}", func(ctx iris.Context) {
		claims := middleware.ClaimsFrom(ctx)
		id, _ := ctx.Params().GetInt64("id")
		o, err := orderSvc.GetOrder(ctx.Request().Context(), id)
		if err != nil {
			failWith(ctx, err, "Failed to fetch order")
			return
		}
		if claims.Role != user.RoleAdmin && o.UserID != claims.UserID {
			fail(ctx, 403, "Access denied")
			return
		}
		ok(ctx, "", iris.Map{"order": o})
	})
}
