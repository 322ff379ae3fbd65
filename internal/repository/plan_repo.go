package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.SubscriptionPlan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive 在售套餐列表，按价格升序
func (r *PlanRepository) ListActive() ([]*model.SubscriptionPlan, error) {
	var plans []*model.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Delete(id int64) error {
	return r.db.Delete(&model.SubscriptionPlan{}, id).Error
}

// CountSubscriptionsByStatus 统计套餐下处于给定状态的订阅数量
func (r *PlanRepository) CountSubscriptionsByStatus(planID int64, statuses []string) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserSubscription{}).
		Where("plan_id = ? AND status IN ?", planID, statuses).
		Count(&count).Error
	return count, err
}
