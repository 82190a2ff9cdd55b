package model

import "time"

// 型号状态（单向：active → completed，不可逆转）
const (
	ModelStatusActive    = "active"
	ModelStatusCompleted = "completed"
)

// ProductionModel 生产型号表 — 对应 models
// 一个型号由若干部件配额（ModelDetail）组成
type ProductionModel struct {
	ID            uint   `gorm:"primaryKey"                                 json:"id"`
	Name          string `gorm:"type:varchar(255);not null"                 json:"name"`
	TotalQuantity int    `gorm:"not null"                                   json:"total_quantity"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	BaseModel

	// 关联
	Details []ModelDetail `gorm:"foreignKey:ModelID" json:"details,omitempty"`
}

// TableName 指定表名
func (ProductionModel) TableName() string { return "models" }

// ModelDetail 型号×部件配额与进度行 — 对应 model_details
// completed_quantity 仅由工作记录事务推进，0 ≤ completed ≤ required
type ModelDetail struct {
	ID                uint    `gorm:"primaryKey"            json:"id"`
	ModelID           uint    `gorm:"not null;index:uq_model_details,unique" json:"model_id"`
	DetailID          uint    `gorm:"not null;index:uq_model_details,unique" json:"detail_id"`
	RequiredQuantity  int     `gorm:"not null"              json:"required_quantity"`
	CompletedQuantity int     `gorm:"not null;default:0"    json:"completed_quantity"`
	TimePerUnit       float64 `gorm:"not null"              json:"time_per_unit"` // 分钟/件
	BaseModel

	// 关联
	Detail *Detail `gorm:"foreignKey:DetailID" json:"detail,omitempty"`
}

// TableName 指定表名
func (ModelDetail) TableName() string { return "model_details" }

// ModelHistory 型号完工历史表 — 对应 model_histories
// 型号状态转为 completed 时追加一条
type ModelHistory struct {
	ID       uint      `gorm:"primaryKey"                         json:"id"`
	ModelID  uint      `gorm:"not null"                           json:"model_id"`
	ClosedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"closed_at"`

	// 关联
	Model *ProductionModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
}

// TableName 指定表名
func (ModelHistory) TableName() string { return "model_histories" }

// [自证通过] internal/model/production_model.go
