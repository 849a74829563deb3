package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advanceModel "educenter_backend/internals/features/payroll/advances/model"
	contractModel "educenter_backend/internals/features/payroll/contracts/model"
	model "educenter_backend/internals/features/payroll/records/model"
	helper "educenter_backend/internals/helpers"
)

/* =============== fake store =============== */

type fakePayrollStore struct {
	mu              sync.Mutex
	contracts       []contractModel.PayrollContractModel
	workHours       map[uuid.UUID]decimal.Decimal // payeeID → jam periode
	studentPayments map[uuid.UUID]decimal.Decimal // payeeID → total SPP periode
	advances        map[uuid.UUID]*advanceModel.AdvanceModel
	records         map[uuid.UUID]*model.PayrollRecordModel
}

func newFakePayrollStore() *fakePayrollStore {
	return &fakePayrollStore{
		workHours:       map[uuid.UUID]decimal.Decimal{},
		studentPayments: map[uuid.UUID]decimal.Decimal{},
		advances:        map[uuid.UUID]*advanceModel.AdvanceModel{},
		records:         map[uuid.UUID]*model.PayrollRecordModel{},
	}
}

func (f *fakePayrollStore) Tx(ctx context.Context, fn func(Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn((*fakePayrollStoreTx)(f))
}

type fakePayrollStoreTx fakePayrollStore

func (f *fakePayrollStoreTx) Tx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakePayrollStoreTx) ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]contractModel.PayrollContractModel, error) {
	var out []contractModel.PayrollContractModel
	for _, c := range f.contracts {
		if c.PayeeID() != payeeID || !c.PayrollContractIsActive {
			continue
		}
		if c.PayrollContractEffectiveFrom.After(periodEnd) {
			continue
		}
		if c.PayrollContractEffectiveTo != nil && c.PayrollContractEffectiveTo.Before(periodStart) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakePayrollStoreTx) SumWorkHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	if h, ok := f.workHours[payeeID]; ok {
		return h, nil
	}
	return decimal.Zero, nil
}

func (f *fakePayrollStoreTx) SumStudentPayments(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	if p, ok := f.studentPayments[payeeID]; ok {
		return p, nil
	}
	return decimal.Zero, nil
}

func (f *fakePayrollStoreTx) ListPendingAdvances(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]advanceModel.AdvanceModel, error) {
	var out []advanceModel.AdvanceModel
	for _, a := range f.advances {
		if a.AdvancePayeeID == payeeID && a.AdvanceStatus == advanceModel.AdvanceStatusPending &&
			a.AdvanceTargetMonth == month && a.AdvanceTargetYear == year {
			out = append(out, *a)
		}
	}
	// urut given_date tertua dulu
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].AdvanceGivenDate.Before(out[i].AdvanceGivenDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakePayrollStoreTx) ListDeductedAdvancesByRecord(ctx context.Context, schoolID, recordID uuid.UUID) ([]advanceModel.AdvanceModel, error) {
	var out []advanceModel.AdvanceModel
	for _, a := range f.advances {
		if a.AdvancePayrollRecordID != nil && *a.AdvancePayrollRecordID == recordID &&
			a.AdvanceStatus == advanceModel.AdvanceStatusDeducted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakePayrollStoreTx) SaveAdvance(ctx context.Context, row *advanceModel.AdvanceModel) error {
	cp := *row
	f.advances[cp.AdvanceID] = &cp
	return nil
}

func (f *fakePayrollStoreTx) GetRecord(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error) {
	for _, r := range f.records {
		if r.PayrollRecordPayeeID == payeeID && r.PayrollRecordMonth == month && r.PayrollRecordYear == year {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollStoreTx) GetRecordByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error) {
	if r, ok := f.records[recordID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePayrollStoreTx) CreateRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	row.PayrollRecordID = uuid.New()
	cp := *row
	f.records[cp.PayrollRecordID] = &cp
	return nil
}

func (f *fakePayrollStoreTx) SaveRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	cp := *row
	f.records[cp.PayrollRecordID] = &cp
	return nil
}

func (f *fakePayrollStoreTx) ListRecords(ctx context.Context, schoolID uuid.UUID, month, year int16) ([]model.PayrollRecordModel, error) {
	var out []model.PayrollRecordModel
	for _, r := range f.records {
		if r.PayrollRecordMonth == month && r.PayrollRecordYear == year {
			out = append(out, *r)
		}
	}
	return out, nil
}

// delegasi non-transaksi
func (f *fakePayrollStore) ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]contractModel.PayrollContractModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).ListEffectiveContracts(ctx, schoolID, payeeID, periodStart, periodEnd)
}

func (f *fakePayrollStore) SumWorkHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).SumWorkHours(ctx, schoolID, payeeID, month, year)
}

func (f *fakePayrollStore) SumStudentPayments(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).SumStudentPayments(ctx, schoolID, payeeID, month, year)
}

func (f *fakePayrollStore) ListPendingAdvances(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]advanceModel.AdvanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).ListPendingAdvances(ctx, schoolID, payeeID, month, year)
}

func (f *fakePayrollStore) ListDeductedAdvancesByRecord(ctx context.Context, schoolID, recordID uuid.UUID) ([]advanceModel.AdvanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).ListDeductedAdvancesByRecord(ctx, schoolID, recordID)
}

func (f *fakePayrollStore) SaveAdvance(ctx context.Context, row *advanceModel.AdvanceModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).SaveAdvance(ctx, row)
}

func (f *fakePayrollStore) GetRecord(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).GetRecord(ctx, schoolID, payeeID, month, year)
}

func (f *fakePayrollStore) GetRecordByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).GetRecordByID(ctx, schoolID, recordID)
}

func (f *fakePayrollStore) CreateRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).CreateRecord(ctx, row)
}

func (f *fakePayrollStore) SaveRecord(ctx context.Context, row *model.PayrollRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).SaveRecord(ctx, row)
}

func (f *fakePayrollStore) ListRecords(ctx context.Context, schoolID uuid.UUID, month, year int16) ([]model.PayrollRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakePayrollStoreTx)(f).ListRecords(ctx, schoolID, month, year)
}

/* =============== helpers =============== */

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func hourlyContract(payeeID uuid.UUID, rate string) contractModel.PayrollContractModel {
	return contractModel.PayrollContractModel{
		PayrollContractID:            uuid.New(),
		PayrollContractMentorID:      &payeeID,
		PayrollContractSalaryType:    contractModel.PayrollSalaryTypeHourly,
		PayrollContractHourlyRate:    dec(rate),
		PayrollContractEffectiveFrom: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PayrollContractIsActive:      true,
	}
}

func pendingAdvance(payeeID uuid.UUID, amount string, given time.Time, month, year int16) *advanceModel.AdvanceModel {
	return &advanceModel.AdvanceModel{
		AdvanceID:          uuid.New(),
		AdvancePayeeID:     payeeID,
		AdvanceAmount:      dec(amount),
		AdvanceGivenDate:   given,
		AdvanceTargetMonth: month,
		AdvanceTargetYear:  year,
		AdvanceStatus:      advanceModel.AdvanceStatusPending,
	}
}

/* =============== tests =============== */

// Skenario: kontrak hourly rate 50, 40 jam, bonus 100, denda 20, kasbon
// pending 200 → gross 2080, deduction 200, net 1880, kasbon jadi deducted.
func TestCalculate_HourlyWithBonusFineAndAdvance(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("40")
	adv := pendingAdvance(payeeID, "200", time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), 3, 2026)
	st.advances[adv.AdvanceID] = adv

	calc := NewCalculator(st)

	rec, err := calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, model.PayrollStatusCalculated, rec.PayrollRecordStatus)
	assert.True(t, rec.PayrollRecordGrossAmount.Equal(dec("2000")))

	rec, err = calc.AddBonusFine(ctx, schoolID, rec.PayrollRecordID, dec("100"), "pengganti transport", dec("20"), "terlambat")
	require.NoError(t, err)

	assert.True(t, rec.PayrollRecordHourlyAmount.Equal(dec("2000")))
	assert.True(t, rec.PayrollRecordTotalHours.Equal(dec("40")))
	assert.True(t, rec.PayrollRecordGrossAmount.Equal(dec("2080")), "gross = 50*40 + 100 - 20")
	assert.True(t, rec.PayrollRecordAdvanceDeduction.Equal(dec("200")))
	assert.True(t, rec.PayrollRecordNetAmount.Equal(dec("1880")))
	assert.Equal(t, advanceModel.AdvanceStatusDeducted, st.advances[adv.AdvanceID].AdvanceStatus)
}

// Recompute idempoten: hasil sama, kasbon tidak terpotong dobel.
func TestCalculate_RecomputeIsDeterministic(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("40")
	adv := pendingAdvance(payeeID, "200", time.Now(), 3, 2026)
	st.advances[adv.AdvanceID] = adv

	calc := NewCalculator(st)

	first, err := calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)
	second, err := calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)

	assert.True(t, first.PayrollRecordNetAmount.Equal(second.PayrollRecordNetAmount))
	assert.True(t, second.PayrollRecordAdvanceDeduction.Equal(dec("200")), "kasbon satu kali, bukan dua")
	assert.Equal(t, first.PayrollRecordID, second.PayrollRecordID, "satu record per periode")
	assert.Equal(t, advanceModel.AdvanceStatusDeducted, st.advances[adv.AdvanceID].AdvanceStatus)
}

func TestCalculate_PercentageContract(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, contractModel.PayrollContractModel{
		PayrollContractID:                uuid.New(),
		PayrollContractMentorID:          &payeeID,
		PayrollContractSalaryType:        contractModel.PayrollSalaryTypePercentage,
		PayrollContractStudentPercentage: dec("10"),
		PayrollContractEffectiveFrom:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PayrollContractIsActive:          true,
	})
	st.studentPayments[payeeID] = dec("3500")

	rec, err := NewCalculator(st).Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)
	assert.True(t, rec.PayrollRecordTotalStudentPayments.Equal(dec("3500")))
	assert.True(t, rec.PayrollRecordPercentageAmount.Equal(dec("350")), "10 persen dari 3500")
	assert.True(t, rec.PayrollRecordNetAmount.Equal(dec("350")))
}

// Kasbon melebihi gross tidak dipotong; deduction <= gross selalu.
func TestCalculate_AdvanceNeverExceedsGross(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("10") // gross 500
	big := pendingAdvance(payeeID, "5000", time.Now(), 3, 2026)
	st.advances[big.AdvanceID] = big

	rec, err := NewCalculator(st).Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)

	assert.True(t, rec.PayrollRecordAdvanceDeduction.IsZero())
	assert.True(t, rec.PayrollRecordNetAmount.Equal(dec("500")))
	assert.Equal(t, advanceModel.AdvanceStatusPending, st.advances[big.AdvanceID].AdvanceStatus,
		"kasbon yang tidak muat tetap pending untuk periode berikutnya")
}

// Beberapa kasbon: tertua dulu, yang tidak muat lagi dibiarkan pending.
func TestCalculate_AdvancesOldestFirst(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("40") // gross 2000
	older := pendingAdvance(payeeID, "1500", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 3, 2026)
	newer := pendingAdvance(payeeID, "800", time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC), 3, 2026)
	st.advances[older.AdvanceID] = older
	st.advances[newer.AdvanceID] = newer

	rec, err := NewCalculator(st).Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)

	assert.True(t, rec.PayrollRecordAdvanceDeduction.Equal(dec("1500")))
	assert.True(t, rec.PayrollRecordNetAmount.Equal(dec("500")))
	assert.Equal(t, advanceModel.AdvanceStatusDeducted, st.advances[older.AdvanceID].AdvanceStatus)
	assert.Equal(t, advanceModel.AdvanceStatusPending, st.advances[newer.AdvanceID].AdvanceStatus)
}

func TestCalculate_NoContractIsHardError(t *testing.T) {
	st := newFakePayrollStore()
	_, err := NewCalculator(st).Calculate(context.Background(), uuid.New(), uuid.New(), 3, 2026)
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrNotFound))
}

func TestStateMachine_Guards(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("40")
	calc := NewCalculator(st)

	rec, err := calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)

	// mark paid sebelum approve → invalid state
	_, err = calc.MarkPaid(ctx, schoolID, rec.PayrollRecordID, "transfer", "")
	assert.True(t, errors.Is(err, helper.ErrInvalidState))

	rec, err = calc.Approve(ctx, schoolID, rec.PayrollRecordID)
	require.NoError(t, err)
	assert.Equal(t, model.PayrollStatusApproved, rec.PayrollRecordStatus)
	assert.NotNil(t, rec.PayrollRecordApprovedAt)

	// approve dua kali → invalid state
	_, err = calc.Approve(ctx, schoolID, rec.PayrollRecordID)
	assert.True(t, errors.Is(err, helper.ErrInvalidState))

	// record approved beku: recompute & bonus/denda ditolak
	_, err = calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	assert.True(t, errors.Is(err, helper.ErrInvalidState))
	_, err = calc.AddBonusFine(ctx, schoolID, rec.PayrollRecordID, dec("100"), "", decimal.Zero, "")
	assert.True(t, errors.Is(err, helper.ErrInvalidState))
	_, err = calc.Cancel(ctx, schoolID, rec.PayrollRecordID)
	assert.True(t, errors.Is(err, helper.ErrInvalidState))

	rec, err = calc.MarkPaid(ctx, schoolID, rec.PayrollRecordID, "transfer", "gaji Maret")
	require.NoError(t, err)
	assert.Equal(t, model.PayrollStatusPaid, rec.PayrollRecordStatus)
	assert.NotNil(t, rec.PayrollRecordPaidAt)
	assert.Equal(t, "transfer", rec.PayrollRecordPaymentMethod)

	// sudah paid → semua transisi lain ditolak
	_, err = calc.MarkPaid(ctx, schoolID, rec.PayrollRecordID, "transfer", "")
	assert.True(t, errors.Is(err, helper.ErrInvalidState))
}

// Cancel melepas kasbon deducted kembali ke pending.
func TestCancel_ReleasesDeductedAdvances(t *testing.T) {
	ctx := context.Background()
	payeeID := uuid.New()
	schoolID := uuid.New()

	st := newFakePayrollStore()
	st.contracts = append(st.contracts, hourlyContract(payeeID, "50"))
	st.workHours[payeeID] = dec("40")
	adv := pendingAdvance(payeeID, "200", time.Now(), 3, 2026)
	st.advances[adv.AdvanceID] = adv
	calc := NewCalculator(st)

	rec, err := calc.Calculate(ctx, schoolID, payeeID, 3, 2026)
	require.NoError(t, err)
	require.Equal(t, advanceModel.AdvanceStatusDeducted, st.advances[adv.AdvanceID].AdvanceStatus)

	rec, err = calc.Cancel(ctx, schoolID, rec.PayrollRecordID)
	require.NoError(t, err)
	assert.Equal(t, model.PayrollStatusCancelled, rec.PayrollRecordStatus)
	assert.True(t, rec.PayrollRecordAdvanceDeduction.IsZero())

	got := st.advances[adv.AdvanceID]
	assert.Equal(t, advanceModel.AdvanceStatusPending, got.AdvanceStatus)
	assert.Nil(t, got.AdvancePayrollRecordID)
}
