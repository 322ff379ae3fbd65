package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 创建收藏记录，违反唯一索引时返回 gorm.ErrDuplicatedKey
func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *FavoriteRepository) Delete(userID, movieID int64) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&model.Favorite{}).Error
}

// Exists 检查收藏是否存在
func (r *FavoriteRepository) Exists(userID, movieID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

// ListMovieIDs 用户收藏的影片 ID 列表，按收藏时间倒序
func (r *FavoriteRepository) ListMovieIDs(userID int64, page, pageSize int) ([]int64, int64, error) {
	var total int64
	var ids []int64

	query := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Pluck("movie_id", &ids).Error
	return ids, total, err
}
