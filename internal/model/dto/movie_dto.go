package dto

// MovieListRequest 影片列表请求参数
type MovieListRequest struct {
	Page             int    `form:"page,default=1"`
	PageSize         int    `form:"page_size,default=20"`
	Category         string `form:"category"`          // 分类 slug
	Search           string `form:"search"`            // 标题/简介模糊搜索
	SubscriptionType string `form:"subscription_type"` // free, basic, premium
}

// MovieFileRequest 影片文件
type MovieFileRequest struct {
	FileURL  string `json:"file_url" binding:"required"`
	Quality  string `json:"quality" binding:"required,oneof=p360 p480 p720 p1080"`
	Language string `json:"language"`
}

// CreateMovieRequest 创建影片请求
type CreateMovieRequest struct {
	Title            string             `json:"title" binding:"required,max=200"`
	Description      string             `json:"description"`
	ReleaseYear      *int               `json:"release_year"`
	DurationMinutes  *int               `json:"duration_minutes"`
	PosterURL        string             `json:"poster_url"`
	Rating           *float64           `json:"rating" binding:"omitempty,min=0,max=10"`
	SubscriptionType string             `json:"subscription_type" binding:"omitempty,oneof=free basic premium"`
	CategoryIDs      []int64            `json:"category_ids" binding:"required,min=1"`
	Files            []MovieFileRequest `json:"files" binding:"required,min=1,dive"`
}

// MovieListItem 列表项
type MovieListItem struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	PosterURL        string   `json:"poster_url,omitempty"`
	ReleaseYear      *int     `json:"release_year,omitempty"`
	Rating           *string  `json:"rating,omitempty"`
	SubscriptionType string   `json:"subscription_type"`
	Categories       []string `json:"categories"`
}

// MovieFileInfo 影片文件信息
type MovieFileInfo struct {
	Quality  string `json:"quality"`
	Language string `json:"language"`
}

// ReviewSummary 评价汇总
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// MovieDetail 影片详情
type MovieDetail struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description,omitempty"`
	ReleaseYear      *int            `json:"release_year,omitempty"`
	DurationMinutes  *int            `json:"duration_minutes,omitempty"`
	PosterURL        string          `json:"poster_url,omitempty"`
	Rating           *string         `json:"rating,omitempty"`
	SubscriptionType string          `json:"subscription_type"`
	ViewCount        int64           `json:"view_count"`
	IsFavorite       bool            `json:"is_favorite"`
	Categories       []string        `json:"categories"`
	Files            []MovieFileInfo `json:"files"`
	Reviews          ReviewSummary   `json:"reviews"`
}
