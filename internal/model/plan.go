package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPlan struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int             `gorm:"not null" json:"duration_days"` // 0 = 永不过期
	Features     string          `gorm:"type:text" json:"-"`            // JSON 数组
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// IsFree 价格为零的套餐不需要支付
func (p *SubscriptionPlan) IsFree() bool {
	return p.Price.IsZero()
}

// FeatureList 解析功能列表
func (p *SubscriptionPlan) FeatureList() []string {
	if p.Features == "" {
		return []string{}
	}
	var features []string
	if err := json.Unmarshal([]byte(p.Features), &features); err != nil {
		return []string{}
	}
	return features
}

// SetFeatureList 序列化功能列表
func (p *SubscriptionPlan) SetFeatureList(features []string) error {
	data, err := json.Marshal(features)
	if err != nil {
		return err
	}
	p.Features = string(data)
	return nil
}
