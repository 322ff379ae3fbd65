package model

import (
	"time"
)

type WatchHistory struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;uniqueIndex:idx_watch_history_user_movie" json:"user_id"`
	MovieID         int64     `gorm:"not null;uniqueIndex:idx_watch_history_user_movie" json:"movie_id"`
	PositionSeconds int       `gorm:"default:0" json:"position_seconds"`
	Completed       bool      `gorm:"default:false" json:"completed"`
	WatchedAt       time.Time `json:"watched_at"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
