package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargeModel "educenter_backend/internals/features/finance/charges/model"
)

type fakeDebtStore struct {
	rows []chargeModel.MonthlyObligationModel
}

func (f *fakeDebtStore) ListUnpaidObligations(ctx context.Context, schoolID uuid.UUID, filter DebtFilter) ([]chargeModel.MonthlyObligationModel, error) {
	var out []chargeModel.MonthlyObligationModel
	for _, r := range f.rows {
		if filter.StudentID != nil && r.MonthlyObligationStudentID != *filter.StudentID {
			continue
		}
		if filter.GroupID != nil && r.MonthlyObligationGroupID != *filter.GroupID {
			continue
		}
		if filter.Month != nil && r.MonthlyObligationMonth != *filter.Month {
			continue
		}
		if filter.Year != nil && r.MonthlyObligationYear != *filter.Year {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func unpaid(studentID, groupID uuid.UUID, month, year int16, original, discount, paid string) chargeModel.MonthlyObligationModel {
	return chargeModel.MonthlyObligationModel{
		MonthlyObligationID:             uuid.New(),
		MonthlyObligationStudentID:      studentID,
		MonthlyObligationGroupID:        groupID,
		MonthlyObligationMonth:          month,
		MonthlyObligationYear:           year,
		MonthlyObligationOriginalAmount: dec(original),
		MonthlyObligationDiscountAmount: dec(discount),
		MonthlyObligationPaidAmount:     dec(paid),
		MonthlyObligationStatus:         chargeModel.MonthlyObligationStatusUnpaid,
	}
}

func TestGetDebts_BalanceIsOriginalMinusDiscountMinusPaid(t *testing.T) {
	studentA := uuid.New()
	studentB := uuid.New()
	groupX := uuid.New()
	groupY := uuid.New()

	agg := NewAggregator(&fakeDebtStore{rows: []chargeModel.MonthlyObligationModel{
		unpaid(studentA, groupX, 1, 2026, "500", "150", "0"),   // sisa 350
		unpaid(studentA, groupY, 1, 2026, "300", "0", "100"),   // sisa 200
		unpaid(studentB, groupX, 2, 2026, "500", "0", "0"),     // sisa 500
		unpaid(studentB, groupY, 2, 2026, "400", "100", "300"), // sisa 0 → disaring
	}})

	debts, totals, err := agg.GetDebts(context.Background(), uuid.New(), DebtFilter{})
	require.NoError(t, err)

	require.Len(t, debts, 3, "tunggakan bersisa nol tidak ikut")
	assert.Equal(t, 3, totals.Count)
	assert.True(t, totals.TotalBalance.Equal(dec("1050")))

	assert.True(t, debts[0].Balance.Equal(dec("350")))
	assert.True(t, debts[1].Balance.Equal(dec("200")))
	assert.True(t, debts[2].Balance.Equal(dec("500")))
	for _, d := range debts {
		assert.True(t, d.Balance.GreaterThan(decimal.Zero), "balance tidak boleh negatif/nol")
	}
}

func TestGetDebts_FilterByStudentAndPeriod(t *testing.T) {
	studentA := uuid.New()
	studentB := uuid.New()
	groupX := uuid.New()

	agg := NewAggregator(&fakeDebtStore{rows: []chargeModel.MonthlyObligationModel{
		unpaid(studentA, groupX, 1, 2026, "500", "0", "0"),
		unpaid(studentA, groupX, 2, 2026, "500", "0", "0"),
		unpaid(studentB, groupX, 1, 2026, "500", "0", "0"),
	}})

	month := int16(1)
	year := int16(2026)
	debts, totals, err := agg.GetDebts(context.Background(), uuid.New(), DebtFilter{
		StudentID: &studentA,
		Month:     &month,
		Year:      &year,
	})
	require.NoError(t, err)

	require.Len(t, debts, 1)
	assert.Equal(t, studentA, debts[0].StudentID)
	assert.Equal(t, int16(1), debts[0].Month)
	assert.True(t, totals.TotalBalance.Equal(dec("500")))
}

func TestSummaries_RollupPerStudentAndGroup(t *testing.T) {
	studentA := uuid.New()
	studentB := uuid.New()
	groupX := uuid.New()
	groupY := uuid.New()

	agg := NewAggregator(&fakeDebtStore{rows: []chargeModel.MonthlyObligationModel{
		unpaid(studentA, groupX, 1, 2026, "350", "0", "0"),
		unpaid(studentA, groupY, 2, 2026, "200", "0", "0"),
		unpaid(studentB, groupX, 1, 2026, "500", "0", "0"),
	}})

	byStudent, err := agg.SummarizeByStudent(context.Background(), uuid.New(), DebtFilter{})
	require.NoError(t, err)
	require.Len(t, byStudent, 2)
	assert.Equal(t, studentA, byStudent[0].StudentID)
	assert.Equal(t, 2, byStudent[0].Count)
	assert.True(t, byStudent[0].TotalBalance.Equal(dec("550")))
	assert.Equal(t, studentB, byStudent[1].StudentID)
	assert.True(t, byStudent[1].TotalBalance.Equal(dec("500")))

	byGroup, err := agg.SummarizeByGroup(context.Background(), uuid.New(), DebtFilter{})
	require.NoError(t, err)
	require.Len(t, byGroup, 2)
	assert.Equal(t, groupX, byGroup[0].GroupID)
	assert.Equal(t, 2, byGroup[0].Count)
	assert.True(t, byGroup[0].TotalBalance.Equal(dec("850")))
	assert.Equal(t, groupY, byGroup[1].GroupID)
	assert.True(t, byGroup[1].TotalBalance.Equal(dec("200")))
}
