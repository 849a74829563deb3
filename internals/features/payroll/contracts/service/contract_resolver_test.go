package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "educenter_backend/internals/features/payroll/contracts/model"
	helper "educenter_backend/internals/helpers"
)

type fakeContractStore struct {
	rows []model.PayrollContractModel
}

func (f *fakeContractStore) ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]model.PayrollContractModel, error) {
	var out []model.PayrollContractModel
	for _, r := range f.rows {
		if r.PayeeID() != payeeID || !r.PayrollContractIsActive {
			continue
		}
		if r.PayrollContractEffectiveFrom.After(periodEnd) {
			continue
		}
		if r.PayrollContractEffectiveTo != nil && r.PayrollContractEffectiveTo.Before(periodStart) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeContractStore) ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.PayrollContractModel, error) {
	return f.rows, nil
}

func (f *fakeContractStore) GetByID(ctx context.Context, schoolID, contractID uuid.UUID) (*model.PayrollContractModel, error) {
	for i := range f.rows {
		if f.rows[i].PayrollContractID == contractID {
			cp := f.rows[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContractStore) Create(ctx context.Context, row *model.PayrollContractModel) error {
	row.PayrollContractID = uuid.New()
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeContractStore) Save(ctx context.Context, row *model.PayrollContractModel) error {
	for i := range f.rows {
		if f.rows[i].PayrollContractID == row.PayrollContractID {
			f.rows[i] = *row
			return nil
		}
	}
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hourlyContract(payeeID uuid.UUID, from time.Time, to *time.Time) model.PayrollContractModel {
	return model.PayrollContractModel{
		PayrollContractID:            uuid.New(),
		PayrollContractMentorID:      &payeeID,
		PayrollContractSalaryType:    model.PayrollSalaryTypeHourly,
		PayrollContractHourlyRate:    decimal.NewFromInt(50),
		PayrollContractEffectiveFrom: from,
		PayrollContractEffectiveTo:   to,
		PayrollContractIsActive:      true,
	}
}

func TestResolveActive_WindowOverlap(t *testing.T) {
	payeeID := uuid.New()
	oldTo := date(2025, time.December, 31)
	st := &fakeContractStore{rows: []model.PayrollContractModel{
		hourlyContract(payeeID, date(2025, time.January, 1), &oldTo), // berakhir sebelum periode
		hourlyContract(payeeID, date(2026, time.January, 1), nil),
	}}
	r := NewResolver(st)

	got, err := r.ResolveActive(context.Background(), uuid.New(), payeeID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 1), got.PayrollContractEffectiveFrom)
}

// Lebih dari satu kontrak overlap adalah data ganda; effective_from terbaru menang.
func TestResolveActive_TieBreakNewestEffectiveFrom(t *testing.T) {
	payeeID := uuid.New()
	st := &fakeContractStore{rows: []model.PayrollContractModel{
		hourlyContract(payeeID, date(2025, time.June, 1), nil),
		hourlyContract(payeeID, date(2026, time.February, 1), nil),
		hourlyContract(payeeID, date(2025, time.November, 1), nil),
	}}
	r := NewResolver(st)

	got, err := r.ResolveActive(context.Background(), uuid.New(), payeeID, 2, 2026)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 1), got.PayrollContractEffectiveFrom)
}

func TestResolveActive_NotFoundIsHardError(t *testing.T) {
	r := NewResolver(&fakeContractStore{})

	_, err := r.ResolveActive(context.Background(), uuid.New(), uuid.New(), 1, 2026)
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrNotFound))
}

func TestCreate_RequiresExactlyOnePayee(t *testing.T) {
	r := NewResolver(&fakeContractStore{})
	mentorID := uuid.New()
	employeeID := uuid.New()

	_, err := r.Create(context.Background(), uuid.New(), CreateContractInput{
		SalaryType:    model.PayrollSalaryTypeFixed,
		FixedAmount:   decimal.NewFromInt(1000),
		EffectiveFrom: date(2026, time.January, 1),
	})
	assert.True(t, errors.Is(err, helper.ErrValidation), "tanpa payee harus ditolak")

	_, err = r.Create(context.Background(), uuid.New(), CreateContractInput{
		MentorID:       &mentorID,
		EmployeeUserID: &employeeID,
		SalaryType:     model.PayrollSalaryTypeFixed,
		FixedAmount:    decimal.NewFromInt(1000),
		EffectiveFrom:  date(2026, time.January, 1),
	})
	assert.True(t, errors.Is(err, helper.ErrValidation), "dua payee sekaligus harus ditolak")
}

func TestClose_SetsWindowEndAndDeactivates(t *testing.T) {
	payeeID := uuid.New()
	row := hourlyContract(payeeID, date(2026, time.January, 1), nil)
	st := &fakeContractStore{rows: []model.PayrollContractModel{row}}
	r := NewResolver(st)

	closed, err := r.Close(context.Background(), uuid.New(), row.PayrollContractID, date(2026, time.June, 30))
	require.NoError(t, err)
	assert.False(t, closed.PayrollContractIsActive)
	require.NotNil(t, closed.PayrollContractEffectiveTo)
	assert.Equal(t, date(2026, time.June, 30), *closed.PayrollContractEffectiveTo)

	// tutup dua kali → invalid state
	_, err = r.Close(context.Background(), uuid.New(), row.PayrollContractID, date(2026, time.July, 31))
	assert.True(t, errors.Is(err, helper.ErrInvalidState))
}
