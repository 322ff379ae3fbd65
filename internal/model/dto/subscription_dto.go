package dto

// PaymentDetails 支付信息（模拟支付，不会发送到真实网关）
type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CardHolder string `json:"card_holder"`
}

// PurchaseRequest 购买套餐请求
type PurchaseRequest struct {
	PlanID         int64          `json:"plan_id" binding:"required"`
	PaymentMethod  string         `json:"payment_method" binding:"required,oneof=card payme click"`
	AutoRenew      bool           `json:"auto_renew"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}

// PlanRef 套餐引用
type PlanRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubscriptionInfo 订阅信息
type SubscriptionInfo struct {
	ID        int64   `json:"id"`
	Plan      PlanRef `json:"plan"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"` // null = 永不过期
	Status    string  `json:"status"`
	AutoRenew bool    `json:"auto_renew"`
}

// PaymentInfo 支付记录信息
type PaymentInfo struct {
	ID                    int64  `json:"id"`
	Amount                string `json:"amount"`
	Status                string `json:"status"`
	ExternalTransactionID string `json:"external_transaction_id"`
	PaymentMethod         string `json:"payment_method"`
}

// PurchaseResponse 购买响应，免费套餐 payment 为 null
type PurchaseResponse struct {
	Subscription *SubscriptionInfo `json:"subscription"`
	Payment      *PaymentInfo      `json:"payment"`
}
