// file: internals/features/finance/debts/repository/debt_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chargeModel "educenter_backend/internals/features/finance/charges/model"
	service "educenter_backend/internals/features/finance/debts/service"
)

type GormDebtStore struct {
	db *gorm.DB
}

func NewGormDebtStore(db *gorm.DB) *GormDebtStore {
	return &GormDebtStore{db: db}
}

func (r *GormDebtStore) ListUnpaidObligations(ctx context.Context, schoolID uuid.UUID, filter service.DebtFilter) ([]chargeModel.MonthlyObligationModel, error) {
	q := r.db.WithContext(ctx).
		Model(&chargeModel.MonthlyObligationModel{}).
		Where("monthly_obligation_school_id = ? AND monthly_obligation_status = ?",
			schoolID, chargeModel.MonthlyObligationStatusUnpaid)

	if filter.StudentID != nil {
		q = q.Where("monthly_obligation_student_id = ?", *filter.StudentID)
	}
	if filter.GroupID != nil {
		q = q.Where("monthly_obligation_group_id = ?", *filter.GroupID)
	}
	if filter.Month != nil {
		q = q.Where("monthly_obligation_month = ?", *filter.Month)
	}
	if filter.Year != nil {
		q = q.Where("monthly_obligation_year = ?", *filter.Year)
	}

	var rows []chargeModel.MonthlyObligationModel
	err := q.
		Order("monthly_obligation_year ASC, monthly_obligation_month ASC, monthly_obligation_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
