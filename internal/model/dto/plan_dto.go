package dto

// CreatePlanRequest 创建套餐请求
type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Price        string   `json:"price" binding:"required"`        // 十进制字符串，如 "49.99"
	DurationDays int      `json:"duration_days" binding:"min=0"`   // 0 = 永不过期
	Features     []string `json:"features" binding:"required"`
	IsActive     *bool    `json:"is_active"`
}

// PlanInfo 套餐信息
type PlanInfo struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
	IsActive     bool     `json:"is_active"`
}

// DeletePlanResponse 删除套餐响应
type DeletePlanResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
