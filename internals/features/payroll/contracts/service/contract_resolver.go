// file: internals/features/payroll/contracts/service/contract_resolver.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "educenter_backend/internals/features/payroll/contracts/model"
	helper "educenter_backend/internals/helpers"
)

// Store menyembunyikan tabel payroll_contracts di balik interface tipis.
type Store interface {
	ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]model.PayrollContractModel, error)
	ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.PayrollContractModel, error)
	GetByID(ctx context.Context, schoolID, contractID uuid.UUID) (*model.PayrollContractModel, error)
	Create(ctx context.Context, row *model.PayrollContractModel) error
	Save(ctx context.Context, row *model.PayrollContractModel) error
}

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

/* =============== PERIODE =============== */

// PeriodBounds mengembalikan hari pertama dan terakhir bulan payroll.
func PeriodBounds(month, year int16) (time.Time, time.Time) {
	start := time.Date(int(year), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

/* =============== RESOLVE =============== */

// PickActive memilih kontrak yang berlaku dari kandidat yang jendelanya
// overlap dengan periode. Lebih dari satu kandidat berarti data ganda;
// effective_from terbaru yang menang.
func PickActive(candidates []model.PayrollContractModel) *model.PayrollContractModel {
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PayrollContractEffectiveFrom.After(candidates[j].PayrollContractEffectiveFrom)
	})
	winner := candidates[0]
	return &winner
}

// ResolveActive mencari kontrak aktif untuk (payee, bulan, tahun).
// Tanpa kontrak payroll tidak bisa dihitung → NotFound adalah error keras.
func (r *Resolver) ResolveActive(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollContractModel, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}
	periodStart, periodEnd := PeriodBounds(month, year)
	candidates, err := r.store.ListEffectiveContracts(ctx, schoolID, payeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	winner := PickActive(candidates)
	if winner == nil {
		return nil, fmt.Errorf("%w: tidak ada kontrak aktif untuk payee %s periode %d/%d",
			helper.ErrNotFound, payeeID, month, year)
	}
	return winner, nil
}

/* =============== CREATE / CLOSE =============== */

type CreateContractInput struct {
	MentorID          *uuid.UUID
	EmployeeUserID    *uuid.UUID
	SalaryType        model.PayrollSalaryType
	FixedAmount       decimal.Decimal
	HourlyRate        decimal.Decimal
	StudentPercentage decimal.Decimal
	EffectiveFrom     time.Time
}

// Create memvalidasi payee (persis satu) dan parameter tipe gaji.
func (r *Resolver) Create(ctx context.Context, schoolID uuid.UUID, in CreateContractInput) (*model.PayrollContractModel, error) {
	if (in.MentorID == nil) == (in.EmployeeUserID == nil) {
		return nil, fmt.Errorf("%w: isi persis satu dari mentor_id / employee_user_id", helper.ErrValidation)
	}
	switch in.SalaryType {
	case model.PayrollSalaryTypeFixed:
		if in.FixedAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: fixed_amount harus > 0", helper.ErrValidation)
		}
	case model.PayrollSalaryTypeHourly:
		if in.HourlyRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: hourly_rate harus > 0", helper.ErrValidation)
		}
	case model.PayrollSalaryTypePercentage:
		if in.StudentPercentage.LessThanOrEqual(decimal.Zero) || in.StudentPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: student_percentage harus 0..100", helper.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: salary_type tidak dikenal", helper.ErrValidation)
	}
	if in.EffectiveFrom.IsZero() {
		return nil, fmt.Errorf("%w: effective_from wajib diisi", helper.ErrValidation)
	}

	row := &model.PayrollContractModel{
		PayrollContractSchoolID:          schoolID,
		PayrollContractMentorID:          in.MentorID,
		PayrollContractEmployeeUserID:    in.EmployeeUserID,
		PayrollContractSalaryType:        in.SalaryType,
		PayrollContractFixedAmount:       in.FixedAmount,
		PayrollContractHourlyRate:        in.HourlyRate,
		PayrollContractStudentPercentage: in.StudentPercentage,
		PayrollContractEffectiveFrom:     in.EffectiveFrom,
		PayrollContractIsActive:          true,
	}
	if err := r.store.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Close menutup kontrak per tanggal tertentu; kontrak tetap tersimpan
// sebagai history.
func (r *Resolver) Close(ctx context.Context, schoolID, contractID uuid.UUID, effectiveTo time.Time) (*model.PayrollContractModel, error) {
	row, err := r.store.GetByID(ctx, schoolID, contractID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: kontrak tidak ditemukan", helper.ErrNotFound)
	}
	if !row.PayrollContractIsActive {
		return nil, fmt.Errorf("%w: kontrak sudah ditutup", helper.ErrInvalidState)
	}
	if effectiveTo.Before(row.PayrollContractEffectiveFrom) {
		return nil, fmt.Errorf("%w: effective_to sebelum effective_from", helper.ErrValidation)
	}

	row.PayrollContractEffectiveTo = &effectiveTo
	row.PayrollContractIsActive = false
	if err := r.store.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Resolver) ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.PayrollContractModel, error) {
	return r.store.ListByPayee(ctx, schoolID, payeeID)
}
