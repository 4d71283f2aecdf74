package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderQueue 订单事件队列名
const OrderQueue = "order_events"

// 事件类型
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent 订单事件，worker 消费后做日志与统计
type OrderEvent struct {
	Type    string    `json:"type"`
	OrderID int64     `json:"order_id"`
	UserID  int64     `json:"user_id"`
	Status  string    `json:"status"`
	Total   float64   `json:"total"`
	At      time.Time `json:"at"`
}

// Publisher 订单事件发布器。conn 为 nil 时所有发布都是空操作，
// 下单主流程不依赖 MQ 可用。
type Publisher struct {
	conn *amqp.Connection
}

// NewPublisher 创建发布器
func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Publish 发布单条订单事件
func (p *Publisher) Publish(ctx context.Context, ev *OrderEvent) error {
	if p == nil || p.conn == nil {
		return nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(OrderQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		OrderQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
