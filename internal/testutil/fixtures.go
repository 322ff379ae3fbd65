package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", time.Now().UnixNano()%1000000),
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         model.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestCategory 创建测试分类
func TestCategory(t *testing.T, db *gorm.DB, opts ...func(*model.Category)) *model.Category {
	t.Helper()

	n := time.Now().UnixNano() % 1000000
	category := &model.Category{
		Name: fmt.Sprintf("Category %d", n),
		Slug: fmt.Sprintf("category-%d", n),
	}

	for _, opt := range opts {
		opt(category)
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// WithCategorySlug 设置分类 slug
func WithCategorySlug(name, slug string) func(*model.Category) {
	return func(c *model.Category) {
		c.Name = name
		c.Slug = slug
	}
}

// TestMovie 创建测试影片
func TestMovie(t *testing.T, db *gorm.DB, opts ...func(*model.Movie)) *model.Movie {
	t.Helper()

	n := time.Now().UnixNano() % 1000000
	movie := &model.Movie{
		Title:            fmt.Sprintf("Test Movie %d", n),
		Slug:             fmt.Sprintf("test-movie-%d", n),
		SubscriptionType: model.SubscriptionTypeFree,
	}

	for _, opt := range opts {
		opt(movie)
	}

	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("Failed to create test movie: %v", err)
	}

	return movie
}

// WithMovieSlug 设置影片标题与 slug
func WithMovieSlug(title, slug string) func(*model.Movie) {
	return func(m *model.Movie) {
		m.Title = title
		m.Slug = slug
	}
}

// WithMovieCategories 关联分类
func WithMovieCategories(categories ...*model.Category) func(*model.Movie) {
	return func(m *model.Movie) {
		m.Categories = categories
	}
}

// WithSubscriptionType 设置订阅级别
func WithSubscriptionType(subType string) func(*model.Movie) {
	return func(m *model.Movie) {
		m.SubscriptionType = subType
	}
}

// TestPlan 创建测试套餐
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.SubscriptionPlan)) *model.SubscriptionPlan {
	t.Helper()

	plan := &model.SubscriptionPlan{
		Name:         fmt.Sprintf("Test Plan %d", time.Now().UnixNano()%1000000),
		Price:        decimal.NewFromFloat(49.99),
		DurationDays: 30,
		IsActive:     true,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithPrice 设置套餐价格
func WithPrice(price string) func(*model.SubscriptionPlan) {
	return func(p *model.SubscriptionPlan) {
		p.Price = decimal.RequireFromString(price)
	}
}

// WithDuration 设置套餐时长（0 = 永不过期）
func WithDuration(days int) func(*model.SubscriptionPlan) {
	return func(p *model.SubscriptionPlan) {
		p.DurationDays = days
	}
}

// WithInactive 下架套餐
func WithInactive() func(*model.SubscriptionPlan) {
	return func(p *model.SubscriptionPlan) {
		p.IsActive = false
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.UserSubscription)) *model.UserSubscription {
	t.Helper()

	endDate := time.Now().AddDate(0, 0, 30)
	sub := &model.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: time.Now(),
		EndDate:   &endDate,
		Status:    model.SubscriptionStatusActive,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithStatus 设置订阅状态
func WithStatus(status string) func(*model.UserSubscription) {
	return func(s *model.UserSubscription) {
		s.Status = status
	}
}

// WithEndDate 设置到期时间（nil = 永不过期）
func WithEndDate(endDate *time.Time) func(*model.UserSubscription) {
	return func(s *model.UserSubscription) {
		s.EndDate = endDate
	}
}
