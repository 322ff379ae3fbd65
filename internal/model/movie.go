package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionTypeFree    = "free"
	SubscriptionTypeBasic   = "basic"
	SubscriptionTypePremium = "premium"
)

type Movie struct {
	ID               int64            `gorm:"primaryKey" json:"id"`
	Title            string           `gorm:"size:200;not null" json:"title"`
	Slug             string           `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description      string           `gorm:"type:text" json:"description"`
	ReleaseYear      *int             `json:"release_year,omitempty"`
	DurationMinutes  *int             `json:"duration_minutes,omitempty"`
	PosterURL        string           `gorm:"size:500" json:"poster_url"`
	Rating           *decimal.Decimal `gorm:"type:decimal(3,1)" json:"rating,omitempty"`
	SubscriptionType string           `gorm:"size:20;default:free;index" json:"subscription_type"` // free, basic, premium
	ViewCount        int64            `gorm:"default:0" json:"view_count"`
	CreatedBy        int64            `gorm:"index" json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Categories []*Category  `gorm:"many2many:movie_categories" json:"categories,omitempty"`
	Files      []*MovieFile `json:"files,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

type MovieFile struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	MovieID  int64  `gorm:"not null;index" json:"movie_id"`
	FileURL  string `gorm:"size:500;not null" json:"file_url"`
	Quality  string `gorm:"size:10;not null" json:"quality"` // p360, p480, p720, p1080
	Language string `gorm:"size:10;default:uz" json:"language"`
}

func (MovieFile) TableName() string {
	return "movie_files"
}

type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MovieID   int64     `gorm:"not null;index" json:"movie_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-10
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
