// file: internals/features/payroll/worklogs/repository/worklog_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "educenter_backend/internals/features/payroll/worklogs/model"
)

type GormWorkLogStore struct {
	db *gorm.DB
}

func NewGormWorkLogStore(db *gorm.DB) *GormWorkLogStore {
	return &GormWorkLogStore{db: db}
}

func (r *GormWorkLogStore) Append(ctx context.Context, row *model.WorkLogModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormWorkLogStore) List(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]model.WorkLogModel, error) {
	var rows []model.WorkLogModel
	err := r.db.WithContext(ctx).
		Where("work_log_school_id = ? AND work_log_payee_id = ? AND work_log_month = ? AND work_log_year = ?",
			schoolID, payeeID, month, year).
		Order("work_log_work_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormWorkLogStore) SumHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.WorkLogModel{}).
		Select("COALESCE(SUM(work_log_hours), 0)").
		Where("work_log_school_id = ? AND work_log_payee_id = ? AND work_log_month = ? AND work_log_year = ?",
			schoolID, payeeID, month, year).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
