package dto

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug"` // 可选，不传则由 name 生成
	Description string `json:"description"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"` // 仅显式传入时重新生成
	Description *string `json:"description,omitempty"`
}

// CategoryInfo 分类信息。MovieCount 仅详情接口返回
type CategoryInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	MovieCount  *int64 `json:"movie_count,omitempty"`
}
