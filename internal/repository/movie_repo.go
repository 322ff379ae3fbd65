package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 在事务中创建影片及其关联（分类、文件）
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

func (r *MovieRepository) GetByID(id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Categories").Preload("Files").Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) GetBySlug(slug string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Categories").Preload("Files").Where("slug = ?", slug).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MovieRepository) Delete(id int64) error {
	return r.db.Delete(&model.Movie{}, id).Error
}

// ExistsBySlug 检查 slug 是否已被占用
func (r *MovieRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// List 分页查询影片列表，支持分类、订阅级别过滤和标题模糊搜索
func (r *MovieRepository) List(page, pageSize int, categorySlug, search, subscriptionType string) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64

	query := r.db.Model(&model.Movie{}).Preload("Categories")

	if categorySlug != "" {
		query = query.
			Joins("JOIN movie_categories ON movie_categories.movie_id = movies.id").
			Joins("JOIN categories ON categories.id = movie_categories.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if search != "" {
		query = query.Where("movies.title LIKE ? OR movies.description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if subscriptionType != "" {
		query = query.Where("movies.subscription_type = ?", subscriptionType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("movies.created_at DESC").Offset(offset).Limit(pageSize).Find(&movies).Error; err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// ListByIDs 按 ID 批量查询，保留传入顺序由调用方处理
func (r *MovieRepository) ListByIDs(ids []int64) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Categories").Where("id IN ?", ids).Find(&movies).Error
	return movies, err
}

// IncrementViewCount 增加观看次数
func (r *MovieRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// CountCategories 统计给定 ID 中实际存在的分类数量
func (r *MovieRepository) CountCategories(ids []int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// ReviewSummary 影片评价的平均分与条数
func (r *MovieRepository) ReviewSummary(movieID int64) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("movie_id = ?", movieID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
