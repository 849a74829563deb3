// file: internals/features/payroll/records/repository/payroll_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chargeModel "educenter_backend/internals/features/finance/charges/model"
	advanceModel "educenter_backend/internals/features/payroll/advances/model"
	contractModel "educenter_backend/internals/features/payroll/contracts/model"
	model "educenter_backend/internals/features/payroll/records/model"
	service "educenter_backend/internals/features/payroll/records/service"
	worklogModel "educenter_backend/internals/features/payroll/worklogs/model"
)

// GormPayrollStore menyatukan record + kontrak + jam kerja + pembayaran
// siswa + kasbon supaya satu kalkulasi jalan di transaksi yang sama.
type GormPayrollStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormPayrollStore(db *gorm.DB) *GormPayrollStore {
	return &GormPayrollStore{db: db}
}

func (r *GormPayrollStore) Tx(ctx context.Context, fn func(service.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormPayrollStore{db: tx, inTx: true})
	})
}

/* =============== kontrak =============== */

func (r *GormPayrollStore) ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]contractModel.PayrollContractModel, error) {
	var rows []contractModel.PayrollContractModel
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

/* =============== jam kerja =============== */

func (r *GormPayrollStore) SumWorkHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&worklogModel.WorkLogModel{}).
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

/* =============== pembayaran siswa =============== */

// SumStudentPayments: total SPP lunas dari grup-grup yang mentornya payee,
// untuk satu periode. Dipakai kontrak tipe percentage.
func (r *GormPayrollStore) SumStudentPayments(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&chargeModel.MonthlyObligationModel{}).
		Select("COALESCE(SUM(monthly_obligation_paid_amount), 0)").
		Joins("JOIN groups ON groups.group_id = monthly_obligations.monthly_obligation_group_id").
		Where("monthly_obligation_school_id = ?", schoolID).
		Where("groups.group_mentor_id = ?", payeeID).
		Where("monthly_obligation_month = ? AND monthly_obligation_year = ?", month, year).
		Where("monthly_obligation_status = ?", chargeModel.MonthlyObligationStatusPaid).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

/* =============== kasbon =============== */

func (r *GormPayrollStore) ListPendingAdvances(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]advanceModel.AdvanceModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []advanceModel.AdvanceModel
	err := q.
		Where("advance_school_id = ? AND advance_payee_id = ? AND advance_target_month = ? AND advance_target_year = ?",
			schoolID, payeeID, month, year).
		Where("advance_status = ?", advanceModel.AdvanceStatusPending).
		Order("advance_given_date ASC, advance_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormPayrollStore) ListDeductedAdvancesByRecord(ctx context.Context, schoolID, recordID uuid.UUID) ([]advanceModel.AdvanceModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []advanceModel.AdvanceModel
	err := q.
		Where("advance_school_id = ? AND advance_payroll_record_id = ?", schoolID, recordID).
		Where("advance_status = ?", advanceModel.AdvanceStatusDeducted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormPayrollStore) SaveAdvance(ctx context.Context, row *advanceModel.AdvanceModel) error {
	return r.db.WithContext(ctx).Save(row).Error
}

/* =============== record =============== */

// Di dalam transaksi, row record ikut dikunci supaya dua kalkulasi konkuren
// untuk periode yang sama terserialisasi.
func (r *GormPayrollStore) GetRecord(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row model.PayrollRecordModel
	err := q.
		Where("payroll_record_school_id = ? AND payroll_record_payee_id = ? AND payroll_record_month = ? AND payroll_record_year = ?",
			schoolID, payeeID, month, year).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormPayrollStore) GetRecordByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row model.PayrollRecordModel
	err := q.
		Where("payroll_record_school_id = ? AND payroll_record_id = ?", schoolID, recordID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormPayrollStore) CreateRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormPayrollStore) SaveRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *GormPayrollStore) ListRecords(ctx context.Context, schoolID uuid.UUID, month, year int16) ([]model.PayrollRecordModel, error) {
	var rows []model.PayrollRecordModel
	err := r.db.WithContext(ctx).
		Where("payroll_record_school_id = ? AND payroll_record_month = ? AND payroll_record_year = ?",
			schoolID, month, year).
		Order("payroll_record_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
