package dto

// AddFavoriteRequest 添加收藏请求
type AddFavoriteRequest struct {
	MovieID int64 `json:"movie_id" binding:"required"`
}

// FavoriteInfo 收藏信息
type FavoriteInfo struct {
	ID         int64  `json:"id"`
	MovieID    int64  `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	CreatedAt  string `json:"created_at"`
}

// FavoriteListResponse 收藏列表响应
type FavoriteListResponse struct {
	Movies []MovieListItem `json:"movies"`
	Total  int             `json:"total"`
}
