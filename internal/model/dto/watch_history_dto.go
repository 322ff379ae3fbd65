package dto

// RecordWatchRequest 记录观看进度请求
type RecordWatchRequest struct {
	MovieID         int64 `json:"movie_id" binding:"required"`
	PositionSeconds int   `json:"position_seconds" binding:"min=0"`
	Completed       bool  `json:"completed"`
}

// WatchHistoryItem 观看记录项
type WatchHistoryItem struct {
	MovieID         int64  `json:"movie_id"`
	MovieTitle      string `json:"movie_title"`
	MovieSlug       string `json:"movie_slug"`
	PosterURL       string `json:"poster_url,omitempty"`
	PositionSeconds int    `json:"position_seconds"`
	Completed       bool   `json:"completed"`
	WatchedAt       string `json:"watched_at"`
}
