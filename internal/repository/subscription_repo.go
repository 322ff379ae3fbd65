package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// SubscriptionTx 购买事务内的写操作集合
type SubscriptionTx struct {
	tx *gorm.DB
}

// WithTransaction 在单个数据库事务中执行 fn，fn 返回错误则整体回滚
func (r *SubscriptionRepository) WithTransaction(fn func(tx *SubscriptionTx) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&SubscriptionTx{tx: tx})
	})
}

// GetActivePlan 事务内锁定查询在售套餐
func (t *SubscriptionTx) GetActivePlan(planID int64) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := t.tx.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (t *SubscriptionTx) CreateSubscription(sub *model.UserSubscription) error {
	return t.tx.Create(sub).Error
}

func (t *SubscriptionTx) CreatePayment(payment *model.Payment) error {
	return t.tx.Create(payment).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	err := r.db.Preload("Plan").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetCurrentByUserID 获取用户当前有效订阅（未过期的 active 订阅，取最新）
func (r *SubscriptionRepository) GetCurrentByUserID(userID int64, now time.Time) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, model.SubscriptionStatusActive).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUserID 用户全部订阅记录，按创建时间倒序
func (r *SubscriptionRepository) ListByUserID(userID int64) ([]*model.UserSubscription, error) {
	var subs []*model.UserSubscription
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.UserSubscription{}).Where("id = ?", id).Update("status", status).Error
}

// ExpireDue 将所有已到期的 active 订阅标记为 expired，返回影响行数
func (r *SubscriptionRepository) ExpireDue(now time.Time) (int64, error) {
	result := r.db.Model(&model.UserSubscription{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date <= ?", model.SubscriptionStatusActive, now).
		Update("status", model.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

// ListDue 查询已到期但仍为 active 的订阅（用于过期清扫的 dry-run）
func (r *SubscriptionRepository) ListDue(now time.Time) ([]*model.UserSubscription, error) {
	var subs []*model.UserSubscription
	err := r.db.Preload("Plan").
		Where("status = ? AND end_date IS NOT NULL AND end_date <= ?", model.SubscriptionStatusActive, now).
		Find(&subs).Error
	return subs, err
}

// GetPaymentBySubscriptionID 获取订阅关联的支付记录
func (r *SubscriptionRepository) GetPaymentBySubscriptionID(subID int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("user_subscription_id = ?", subID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
