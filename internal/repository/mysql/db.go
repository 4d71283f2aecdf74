package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = AutoMigrate(db); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// AutoMigrate 迁移所有业务表，测试里也用它初始化 sqlite 库
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &product.Product{}, &order.Order{}, &order.Item{})
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
