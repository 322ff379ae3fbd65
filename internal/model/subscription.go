package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionStatusPendingPayment = "pending_payment"
	SubscriptionStatusActive         = "active"
	SubscriptionStatusExpired        = "expired"
	SubscriptionStatusCancelled      = "cancelled"
)

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodCard  = "card"
	PaymentMethodPayme = "payme"
	PaymentMethodClick = "click"
)

type UserSubscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	PlanID    int64      `gorm:"not null;index" json:"plan_id"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `gorm:"index" json:"end_date,omitempty"` // nil = 永不过期
	Status    string     `gorm:"size:20;default:active;index" json:"status"` // pending_payment, active, expired, cancelled
	AutoRenew bool       `gorm:"default:false" json:"auto_renew"`
	CreatedAt time.Time  `json:"created_at"`

	Plan *SubscriptionPlan `json:"plan,omitempty"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type Payment struct {
	ID                    int64           `gorm:"primaryKey" json:"id"`
	UserSubscriptionID    int64           `gorm:"not null;index" json:"user_subscription_id"`
	Amount                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod         string          `gorm:"size:20;not null" json:"payment_method"` // card, payme, click
	PaymentDetails        string          `gorm:"type:text" json:"-"`                     // JSON，脱敏后的支付信息
	Status                string          `gorm:"size:20;not null" json:"status"`
	ExternalTransactionID string          `gorm:"size:100" json:"external_transaction_id"`
	CreatedAt             time.Time       `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
