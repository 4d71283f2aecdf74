package main

import (
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/logger"
	"github.com/nikhil8824/ration-shop/internal/server"
)

func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init()
	zap.L().Info("log init success")

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("api server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zap.L().Fatal("failed to run api server", zap.Error(err))
	}
}
