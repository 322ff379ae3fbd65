package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/pkg/pubsub"
	"github.com/qs3c/kino_go_server/internal/pkg/queue"
	"github.com/qs3c/kino_go_server/internal/repository"
)

var (
	ErrPlanUnavailable      = errors.New("套餐不存在或已下架")
	ErrSubscriptionNotFound = errors.New("订阅不存在")
)

type SubscriptionService struct {
	subRepo   *repository.SubscriptionRepository
	publisher *pubsub.Publisher
	receiptQ  *queue.Queue
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	publisher *pubsub.Publisher,
	receiptQ *queue.Queue,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:   subRepo,
		publisher: publisher,
		receiptQ:  receiptQ,
	}
}

// enrollment 购买分类结果：免费套餐没有支付环节，payment 为 nil
type enrollment struct {
	subscription *model.UserSubscription
	plan         *model.SubscriptionPlan
	payment      *model.Payment
}

// Purchase 购买套餐。套餐查询、订阅创建与支付记录在同一事务中完成，
// 任何一步失败整体回滚。
func (s *SubscriptionService) Purchase(ctx context.Context, userID int64, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	var result enrollment

	err := s.subRepo.WithTransaction(func(tx *repository.SubscriptionTx) error {
		plan, err := tx.GetActivePlan(req.PlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanUnavailable
			}
			return err
		}

		startDate := time.Now()
		var endDate *time.Time
		if plan.DurationDays > 0 {
			d := startDate.AddDate(0, 0, plan.DurationDays)
			endDate = &d
		}

		sub := &model.UserSubscription{
			UserID:    userID,
			PlanID:    plan.ID,
			StartDate: startDate,
			EndDate:   endDate,
			Status:    model.SubscriptionStatusActive,
			AutoRenew: req.AutoRenew,
		}
		if err := tx.CreateSubscription(sub); err != nil {
			return err
		}

		result = enrollment{subscription: sub, plan: plan}

		if plan.IsFree() {
			return nil
		}

		txnID, err := newTransactionID()
		if err != nil {
			return err
		}

		payment := &model.Payment{
			UserSubscriptionID:    sub.ID,
			Amount:                plan.Price,
			PaymentMethod:         req.PaymentMethod,
			PaymentDetails:        maskPaymentDetails(&req.PaymentDetails),
			Status:                model.PaymentStatusCompleted,
			ExternalTransactionID: txnID,
		}
		if err := tx.CreatePayment(payment); err != nil {
			return err
		}

		result.payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyPurchase(ctx, userID, &result)

	return buildPurchaseResponse(&result), nil
}

// GetCurrent 获取用户当前有效订阅
func (s *SubscriptionService) GetCurrent(userID int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.subRepo.GetCurrentByUserID(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return buildSubscriptionInfo(sub), nil
}

// List 用户全部订阅记录
func (s *SubscriptionService) List(userID int64) ([]*dto.SubscriptionInfo, error) {
	subs, err := s.subRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubscriptionInfo, len(subs))
	for i, sub := range subs {
		items[i] = buildSubscriptionInfo(sub)
	}
	return items, nil
}

// Cancel 取消订阅（仅本人的 active 订阅）
func (s *SubscriptionService) Cancel(userID, subID int64) error {
	sub, err := s.subRepo.GetByID(subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if sub.UserID != userID || sub.Status != model.SubscriptionStatusActive {
		return ErrSubscriptionNotFound
	}
	return s.subRepo.UpdateStatus(subID, model.SubscriptionStatusCancelled)
}

// ExpireDueSubscriptions 将所有已到期的订阅标记为过期，返回处理条数
func (s *SubscriptionService) ExpireDueSubscriptions() (int64, error) {
	return s.subRepo.ExpireDue(time.Now())
}

// ListDueSubscriptions 查询待过期订阅，不修改状态
func (s *SubscriptionService) ListDueSubscriptions() ([]*model.UserSubscription, error) {
	return s.subRepo.ListDue(time.Now())
}

// notifyPurchase 事务提交后的通知：发布事件并投递回执任务，失败只记日志
func (s *SubscriptionService) notifyPurchase(ctx context.Context, userID int64, e *enrollment) {
	amount := e.plan.Price.StringFixed(2)

	if s.publisher != nil {
		msg := &pubsub.PurchaseMessage{
			UserID:         userID,
			SubscriptionID: e.subscription.ID,
			PlanID:         e.plan.ID,
			PlanName:       e.plan.Name,
			Amount:         amount,
			Free:           e.payment == nil,
		}
		if e.subscription.EndDate != nil {
			msg.EndDate = e.subscription.EndDate.Format(time.RFC3339)
		}
		if err := s.publisher.PublishPurchase(ctx, msg); err != nil {
			log.Printf("Failed to publish purchase event for subscription %d: %v", e.subscription.ID, err)
		}
	}

	// 免费套餐没有支付，不发送回执邮件
	if s.receiptQ != nil && e.payment != nil {
		job := &queue.ReceiptMessage{
			UserID:         userID,
			SubscriptionID: e.subscription.ID,
			PlanName:       e.plan.Name,
			Amount:         amount,
			PurchasedAt:    e.subscription.StartDate.Format(time.RFC3339),
			PaymentID:      e.payment.ID,
			TransactionID:  e.payment.ExternalTransactionID,
		}
		if err := s.receiptQ.Push(ctx, job); err != nil {
			log.Printf("Failed to enqueue receipt for subscription %d: %v", e.subscription.ID, err)
		}
	}
}

func buildPurchaseResponse(e *enrollment) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		Subscription: buildSubscriptionInfoWithPlan(e.subscription, e.plan),
	}
	if e.payment != nil {
		resp.Payment = &dto.PaymentInfo{
			ID:                    e.payment.ID,
			Amount:                e.payment.Amount.StringFixed(2),
			Status:                e.payment.Status,
			ExternalTransactionID: e.payment.ExternalTransactionID,
			PaymentMethod:         e.payment.PaymentMethod,
		}
	}
	return resp
}

func buildSubscriptionInfo(sub *model.UserSubscription) *dto.SubscriptionInfo {
	return buildSubscriptionInfoWithPlan(sub, sub.Plan)
}

func buildSubscriptionInfoWithPlan(sub *model.UserSubscription, plan *model.SubscriptionPlan) *dto.SubscriptionInfo {
	info := &dto.SubscriptionInfo{
		ID:        sub.ID,
		StartDate: sub.StartDate.Format(time.RFC3339),
		Status:    sub.Status,
		AutoRenew: sub.AutoRenew,
	}
	if plan != nil {
		info.Plan = dto.PlanRef{ID: plan.ID, Name: plan.Name}
	}
	if sub.EndDate != nil {
		endDate := sub.EndDate.Format(time.RFC3339)
		info.EndDate = &endDate
	}
	return info
}

// newTransactionID 生成模拟支付网关的交易号
func newTransactionID() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("txn_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(bytes)), nil
}

// maskPaymentDetails 卡号脱敏后序列化存储，只保留末四位
func maskPaymentDetails(details *dto.PaymentDetails) string {
	masked := map[string]string{
		"card_number": maskCardNumber(details.CardNumber),
		"expiry":      details.Expiry,
		"card_holder": details.CardHolder,
	}
	data, err := json.Marshal(masked)
	if err != nil {
		return ""
	}
	return string(data)
}

func maskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}
