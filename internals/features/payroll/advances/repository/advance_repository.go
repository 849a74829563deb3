// file: internals/features/payroll/advances/repository/advance_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "educenter_backend/internals/features/payroll/advances/model"
)

type GormAdvanceStore struct {
	db *gorm.DB
}

func NewGormAdvanceStore(db *gorm.DB) *GormAdvanceStore {
	return &GormAdvanceStore{db: db}
}

func (r *GormAdvanceStore) Create(ctx context.Context, row *model.AdvanceModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormAdvanceStore) GetByID(ctx context.Context, schoolID, advanceID uuid.UUID) (*model.AdvanceModel, error) {
	var row model.AdvanceModel
	err := r.db.WithContext(ctx).
		Where("advance_school_id = ? AND advance_id = ?", schoolID, advanceID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormAdvanceStore) Save(ctx context.Context, row *model.AdvanceModel) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *GormAdvanceStore) ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.AdvanceModel, error) {
	var rows []model.AdvanceModel
	err := r.db.WithContext(ctx).
		Where("advance_school_id = ? AND advance_payee_id = ?", schoolID, payeeID).
		Order("advance_given_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
