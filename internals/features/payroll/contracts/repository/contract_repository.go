// file: internals/features/payroll/contracts/repository/contract_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "educenter_backend/internals/features/payroll/contracts/model"
)

type GormContractStore struct {
	db *gorm.DB
}

func NewGormContractStore(db *gorm.DB) *GormContractStore {
	return &GormContractStore{db: db}
}

// ListEffectiveContracts: aktif + jendela berlaku overlap dengan periode.
// Payee bisa tercatat sebagai mentor ataupun karyawan.
func (r *GormContractStore) ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]model.PayrollContractModel, error) {
	var rows []model.PayrollContractModel
	err := r.db.WithContext(ctx).
		Where("payroll_contract_school_id = ?", schoolID).
		Where("payroll_contract_mentor_id = ? OR payroll_contract_employee_user_id = ?", payeeID, payeeID).
		Where("payroll_contract_is_active = TRUE").
		Where("payroll_contract_effective_from <= ?", periodEnd).
		Where("payroll_contract_effective_to IS NULL OR payroll_contract_effective_to >= ?", periodStart).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormContractStore) ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.PayrollContractModel, error) {
	var rows []model.PayrollContractModel
	err := r.db.WithContext(ctx).
		Where("payroll_contract_school_id = ?", schoolID).
		Where("payroll_contract_mentor_id = ? OR payroll_contract_employee_user_id = ?", payeeID, payeeID).
		Order("payroll_contract_effective_from DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormContractStore) GetByID(ctx context.Context, schoolID, contractID uuid.UUID) (*model.PayrollContractModel, error) {
	var row model.PayrollContractModel
	err := r.db.WithContext(ctx).
		Where("payroll_contract_school_id = ? AND payroll_contract_id = ?", schoolID, contractID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormContractStore) Create(ctx context.Context, row *model.PayrollContractModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormContractStore) Save(ctx context.Context, row *model.PayrollContractModel) error {
	return r.db.WithContext(ctx).Save(row).Error
}
