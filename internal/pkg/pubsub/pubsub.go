package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelPurchaseEvents = "purchase_events"
)

// PurchaseMessage 购买事件消息
type PurchaseMessage struct {
	Type           string `json:"type"`
	UserID         int64  `json:"user_id"`
	SubscriptionID int64  `json:"subscription_id"`
	PlanID         int64  `json:"plan_id"`
	PlanName       string `json:"plan_name"`
	Amount         string `json:"amount"`
	Free           bool   `json:"free"`
	EndDate        string `json:"end_date,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishPurchase 发布购买事件
func (p *Publisher) PublishPurchase(ctx context.Context, msg *PurchaseMessage) error {
	msg.Type = "purchase_completed"

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal purchase message: %w", err)
	}

	return p.client.Publish(ctx, ChannelPurchaseEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅购买事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*PurchaseMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelPurchaseEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var purchaseMsg PurchaseMessage
			if err := json.Unmarshal([]byte(msg.Payload), &purchaseMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&purchaseMsg)
		}
	}
}
