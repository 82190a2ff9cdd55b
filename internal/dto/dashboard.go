package dto

// DashboardResponse 仪表盘总览
type DashboardResponse struct {
	Today        DailyStatistics `json:"today"`
	Month        MonthOverview   `json:"month"`
	ActiveModels int64           `json:"active_models"`
	ActiveUsers  int64           `json:"active_users"`
}

// MonthOverview 当前账期总览
type MonthOverview struct {
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	TotalWorkLogs    int     `json:"total_work_logs"`
	TotalMinutes     float64 `json:"total_minutes"`
	TotalEarned      float64 `json:"total_earned"`
	PendingBalance   float64 `json:"pending_balance"`
	PaymentsCount    int     `json:"payments_count"`
	TotalPaidAmount  float64 `json:"total_paid_amount"`
	IsClosed         bool    `json:"is_closed"`
}

// [自证通过] internal/dto/dashboard.go
