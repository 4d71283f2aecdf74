package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
	"github.com/nikhil8824/ration-shop/internal/repository/mysql"
)

// 初始化数据：管理员账号 + 基础商品目录，方便本地快速跑起来
func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := mysql.Init(&cfg.MySQL)
	ctx := context.Background()

	seedAdmin(ctx, db)
	seedProducts(ctx, db)

	fmt.Println("seed done")
}

func seedAdmin(ctx context.Context, db *gorm.DB) {
	var existing user.User
	err := db.WithContext(ctx).Where("email = ?", "admin@rationshop.in").First(&existing).Error
	if err == nil {
		fmt.Println("admin user already exists, skipping")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("query admin user: %v", err)
	}

	salt := "rationshop-admin"
	h := sha256.Sum256([]byte("admin123" + salt))
	admin := &user.User{
		Name:     "Admin",
		Email:    "admin@rationshop.in",
		Password: hex.EncodeToString(h[:]),
		Salt:     salt,
		Role:     user.RoleAdmin,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		log.Fatalf("create admin user: %v", err)
	}
	fmt.Println("created admin user admin@rationshop.in / admin123")
}

func seedProducts(ctx context.Context, db *gorm.DB) {
	var count int64
	if err := db.WithContext(ctx).Model(&product.Product{}).Count(&count).Error; err != nil {
		log.Fatalf("count products: %v", err)
	}
	if count > 0 {
		fmt.Printf("%d products already present, skipping\n", count)
		return
	}

	products := []product.Product{
		{Name: "Basmati Rice", Description: "Premium long grain basmati rice", Price: 120, Discount: 10, Stock: 100, IsAvailable: true, Unit: "kg", Category: product.CategoryGrains},
		{Name: "Toor Dal", Description: "Unpolished toor dal", Price: 150, Discount: 5, Stock: 80, IsAvailable: true, Unit: "kg", Category: product.CategoryPulses},
		{Name: "Wheat Flour", Description: "Chakki fresh atta", Price: 55, Stock: 120, IsAvailable: true, Unit: "kg", Category: product.CategoryFlour},
		{Name: "Sunflower Oil", Description: "Refined sunflower oil", Price: 160, Discount: 8, Stock: 60, IsAvailable: true, Unit: "l", Category: product.CategoryOils},
		{Name: "Turmeric Powder", Description: "Pure haldi powder", Price: 40, Stock: 90, IsAvailable: true, Unit: "packet", Category: product.CategorySpices},
		{Name: "Red Chilli Powder", Description: "Hot and pungent", Price: 48, Stock: 85, IsAvailable: true, Unit: "packet", Category: product.CategorySpices},
		{Name: "Instant Noodles", Description: "Pack of 6", Price: 84, Discount: 15, Stock: 200, IsAvailable: true, Unit: "packet", Category: product.CategoryPackagedFood},
		{Name: "Dish Wash Bar", Description: "Lemon fresh", Price: 25, Stock: 150, IsAvailable: true, Unit: "piece", Category: product.CategoryCleaning},
		{Name: "Bath Soap", Description: "Sandal fragrance", Price: 35, Discount: 10, Stock: 140, IsAvailable: true, Unit: "piece", Category: product.CategoryPersonalCare},
		{Name: "Tea Powder", Description: "Strong assam blend", Price: 240, Discount: 12, Stock: 70, IsAvailable: true, Unit: "packet", Category: product.CategoryBeverages},
		{Name: "Salted Peanuts", Description: "Roasted and salted", Price: 60, Stock: 110, IsAvailable: true, Unit: "packet", Category: product.CategorySnacks},
		{Name: "Rock Salt", Description: "Himalayan pink salt", Price: 38, Stock: 95, IsAvailable: true, Unit: "kg", Category: product.CategoryOthers},
	}
	for i := range products {
		if err := db.WithContext(ctx).Create(&products[i]).Error; err != nil {
			log.Fatalf("create product %q: %v", products[i].Name, err)
		}
	}
	fmt.Printf("created %d products\n", len(products))
}
