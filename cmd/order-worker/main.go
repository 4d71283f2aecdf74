package main

import (
	"encoding/json"
	"log"

	"go.uber.org/zap"

	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/events"
	"github.com/nikhil8824/ration-shop/internal/infra/mq"
	"github.com/nikhil8824/ration-shop/internal/logger"
	"github.com/nikhil8824/ration-shop/internal/service"
)

// 订单事件消费者：消费 order_events 队列，打点并输出结构化日志，
// 供后台看板与问题排查使用。
func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init()

	mqConn := mq.Init(&cfg.RabbitMQ)
	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("failed to open channel", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(events.OrderQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("failed to declare queue", zap.Error(err))
	}

	// 手动确认模式（auto-ack=false）
	msgs, err := ch.Consume(events.OrderQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("failed to consume", zap.Error(err))
	}

	zap.L().Info("order worker started, waiting for events")

	for d := range msgs {
		var ev events.OrderEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			zap.L().Warn("invalid event payload", zap.Error(err))
			service.GetMonitor().RecordWorkerFailed()
			// 消息格式错误，拒绝并丢弃
			_ = d.Nack(false, false)
			continue
		}

		zap.L().Info("order event",
			zap.String("type", ev.Type),
			zap.Int64("order_id", ev.OrderID),
			zap.Int64("user_id", ev.UserID),
			zap.String("status", ev.Status),
			zap.Float64("total", ev.Total),
			zap.Time("at", ev.At),
		)
		service.GetMonitor().RecordWorkerProcessed()
		_ = d.Ack(false)
	}
}
