package model

import (
	"time"
)

type Favorite struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_favorites_user_movie" json:"user_id"`
	MovieID   int64     `gorm:"not null;uniqueIndex:idx_favorites_user_movie" json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
