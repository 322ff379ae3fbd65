package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/kino_go_server/internal/model"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Upsert 同一用户对同一影片只保留一条记录，重复观看更新进度
func (r *WatchHistoryRepository) Upsert(history *model.WatchHistory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position_seconds", "completed", "watched_at"}),
	}).Create(history).Error
}

func (r *WatchHistoryRepository) GetByUserAndMovie(userID, movieID int64) (*model.WatchHistory, error) {
	var history model.WatchHistory
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// ListByUserID 用户观看记录，按观看时间倒序
func (r *WatchHistoryRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.WatchHistory, int64, error) {
	var histories []*model.WatchHistory
	var total int64

	query := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("watched_at DESC").Offset(offset).Limit(pageSize).Find(&histories).Error; err != nil {
		return nil, 0, err
	}

	return histories, total, nil
}

func (r *WatchHistoryRepository) Delete(userID, movieID int64) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&model.WatchHistory{}).Error
}
