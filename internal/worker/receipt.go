package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/kino_go_server/internal/pkg/email"
	"github.com/qs3c/kino_go_server/internal/pkg/queue"
	"github.com/qs3c/kino_go_server/internal/repository"
)

// ReceiptProcessor 购买回执处理器
type ReceiptProcessor struct {
	userRepo     *repository.UserRepository
	emailService *email.Service
}

// NewReceiptProcessor 创建回执处理器
func NewReceiptProcessor(userRepo *repository.UserRepository, emailService *email.Service) *ReceiptProcessor {
	return &ReceiptProcessor{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Process 处理单条回执任务：查找用户邮箱并发送购买回执
func (p *ReceiptProcessor) Process(ctx context.Context, msg *queue.ReceiptMessage) error {
	user, err := p.userRepo.GetByID(msg.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user %d: %w", msg.UserID, err)
	}

	if user.Email == nil || *user.Email == "" {
		// OAuth 用户可能没有邮箱，任务视为完成
		log.Printf("Receipt for subscription %d skipped: user %d has no email", msg.SubscriptionID, msg.UserID)
		return nil
	}

	if err := p.emailService.SendPurchaseReceipt(
		*user.Email,
		msg.PlanName,
		msg.Amount,
		msg.TransactionID,
		msg.PurchasedAt,
	); err != nil {
		return fmt.Errorf("failed to send receipt to %s: %w", *user.Email, err)
	}

	log.Printf("Receipt sent: subscription %d, user %d", msg.SubscriptionID, msg.UserID)
	return nil
}
