package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
)

var (
	ErrPlanNotFound       = errors.New("套餐不存在")
	ErrPlanHasSubscribers = errors.New("套餐仍有进行中的订阅，无法删除")
	ErrInvalidPlanPrice   = errors.New("套餐价格无效")
)

const planCacheKey = "plans:active"

type PlanService struct {
	planRepo *repository.PlanRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewPlanService(planRepo *repository.PlanRepository, rdb *redis.Client, cfg *config.Config) *PlanService {
	ttl := time.Duration(cfg.Plan.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PlanService{
		planRepo: planRepo,
		rdb:      rdb,
		cacheTTL: ttl,
	}
}

// ListActive 在售套餐列表，带 Redis 缓存
func (s *PlanService) ListActive(ctx context.Context) ([]*dto.PlanInfo, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, planCacheKey).Result(); err == nil {
			var items []*dto.PlanInfo
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	plans, err := s.planRepo.ListActive()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PlanInfo, len(plans))
	for i, p := range plans {
		items[i] = buildPlanInfo(p)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			s.rdb.Set(ctx, planCacheKey, data, s.cacheTTL)
		}
	}

	return items, nil
}

// Create 创建套餐
func (s *PlanService) Create(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanInfo, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, ErrInvalidPlanPrice
	}

	plan := &model.SubscriptionPlan{
		Name:         req.Name,
		Price:        price,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plan.SetFeatureList(req.Features); err != nil {
		return nil, err
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return buildPlanInfo(plan), nil
}

// Delete 删除套餐；存在 active 或 pending_payment 订阅时拒绝
func (s *PlanService) Delete(ctx context.Context, id int64) (*dto.DeletePlanResponse, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	count, err := s.planRepo.CountSubscriptionsByStatus(id, []string{
		model.SubscriptionStatusActive,
		model.SubscriptionStatusPendingPayment,
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w（%d 个）", ErrPlanHasSubscribers, count)
	}

	if err := s.planRepo.Delete(id); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return &dto.DeletePlanResponse{ID: plan.ID, Name: plan.Name}, nil
}

func (s *PlanService) invalidateCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, planCacheKey)
	}
}

func buildPlanInfo(p *model.SubscriptionPlan) *dto.PlanInfo {
	return &dto.PlanInfo{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price.StringFixed(2),
		DurationDays: p.DurationDays,
		Features:     p.FeatureList(),
		IsActive:     p.IsActive,
	}
}
