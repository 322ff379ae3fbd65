package cron

import (
	"log"
	"time"

	"github.com/qs3c/kino_go_server/internal/service"
)

type Service struct {
	subscriptionService *service.SubscriptionService
	stopChan            chan struct{}
}

func NewService(subscriptionService *service.SubscriptionService) *Service {
	return &Service{
		subscriptionService: subscriptionService,
		stopChan:            make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyExpirySweep()
	log.Println("Cron service started (subscription expiry sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyExpirySweep 每日订阅过期清扫任务
func (s *Service) runDailyExpirySweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.expireDue()
			timer.Reset(24 * time.Hour)
		}
	}
}

// expireDue 将所有已到期的订阅标记为过期
func (s *Service) expireDue() {
	log.Println("Starting subscription expiry sweep...")
	count, err := s.subscriptionService.ExpireDueSubscriptions()
	if err != nil {
		log.Printf("Failed to expire subscriptions: %v", err)
		return
	}
	log.Printf("Subscription expiry sweep completed, expired=%d", count)
}

// RunNow 立即执行过期清扫（用于测试或手动触发）
func (s *Service) RunNow() (int64, error) {
	log.Println("Manual expiry sweep triggered...")
	return s.subscriptionService.ExpireDueSubscriptions()
}
