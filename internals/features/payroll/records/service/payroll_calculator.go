// file: internals/features/payroll/records/service/payroll_calculator.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	advanceModel "educenter_backend/internals/features/payroll/advances/model"
	contractModel "educenter_backend/internals/features/payroll/contracts/model"
	contractsvc "educenter_backend/internals/features/payroll/contracts/service"
	model "educenter_backend/internals/features/payroll/records/model"
	helper "educenter_backend/internals/helpers"
)

/* =============== STORE =============== */

// Store menggabungkan semua tabel yang disentuh satu kalkulasi payroll:
// record + kontrak + jam kerja + pembayaran siswa + kasbon. Implementasi
// gorm mengunci row record (FOR UPDATE) selama Tx sehingga dua Calculate
// konkuren untuk periode yang sama terserialisasi.
type Store interface {
	Tx(ctx context.Context, fn func(Store) error) error

	ListEffectiveContracts(ctx context.Context, schoolID, payeeID uuid.UUID, periodStart, periodEnd time.Time) ([]contractModel.PayrollContractModel, error)
	SumWorkHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error)
	SumStudentPayments(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error)

	// Kasbon: pending untuk periode target (urut given_date tertua dulu)
	// dan yang sudah dipotong oleh satu record tertentu.
	ListPendingAdvances(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]advanceModel.AdvanceModel, error)
	ListDeductedAdvancesByRecord(ctx context.Context, schoolID, recordID uuid.UUID) ([]advanceModel.AdvanceModel, error)
	SaveAdvance(ctx context.Context, row *advanceModel.AdvanceModel) error

	GetRecord(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error)
	GetRecordByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error)
	CreateRecord(ctx context.Context, row *model.PayrollRecordModel) error
	SaveRecord(ctx context.Context, row *model.PayrollRecordModel) error
	ListRecords(ctx context.Context, schoolID uuid.UUID, month, year int16) ([]model.PayrollRecordModel, error)
}

type Calculator struct {
	store Store
}

func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store}
}

/* =============== CALCULATE =============== */

// Calculate menghitung (atau menghitung ulang) payroll satu payee untuk
// satu periode. Hanya boleh dari draft/calculated; recompute idempoten —
// field hasil hitung ditulis ulang, kasbon yang sebelumnya dipotong record
// ini dilepas dulu supaya tidak terpotong dobel.
func (c *Calculator) Calculate(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}

	var out *model.PayrollRecordModel
	err := c.store.Tx(ctx, func(st Store) error {
		rec, err := st.GetRecord(ctx, schoolID, payeeID, month, year)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &model.PayrollRecordModel{
				PayrollRecordSchoolID: schoolID,
				PayrollRecordPayeeID:  payeeID,
				PayrollRecordMonth:    month,
				PayrollRecordYear:     year,
				PayrollRecordStatus:   model.PayrollStatusDraft,
			}
			if err := st.CreateRecord(ctx, rec); err != nil {
				return err
			}
		}
		if rec.PayrollRecordStatus != model.PayrollStatusDraft &&
			rec.PayrollRecordStatus != model.PayrollStatusCalculated {
			return fmt.Errorf("%w: record berstatus %s, kalkulasi hanya dari draft/calculated",
				helper.ErrInvalidState, rec.PayrollRecordStatus)
		}

		if err := c.recalculate(ctx, st, rec); err != nil {
			return err
		}
		if err := st.SaveRecord(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// recalculate menulis ulang seluruh field hasil hitung. Dipanggil dari
// dalam transaksi; rec sudah terkunci.
func (c *Calculator) recalculate(ctx context.Context, st Store, rec *model.PayrollRecordModel) error {
	schoolID := rec.PayrollRecordSchoolID
	payeeID := rec.PayrollRecordPayeeID
	month := rec.PayrollRecordMonth
	year := rec.PayrollRecordYear

	periodStart, periodEnd := contractsvc.PeriodBounds(month, year)
	candidates, err := st.ListEffectiveContracts(ctx, schoolID, payeeID, periodStart, periodEnd)
	if err != nil {
		return err
	}
	contract := contractsvc.PickActive(candidates)
	if contract == nil {
		return fmt.Errorf("%w: tidak ada kontrak aktif untuk payee %s periode %d/%d",
			helper.ErrNotFound, payeeID, month, year)
	}

	// Lepas kasbon yang sebelumnya dipotong record ini; recompute akan
	// memotong ulang dari daftar pending yang segar.
	released, err := st.ListDeductedAdvancesByRecord(ctx, schoolID, rec.PayrollRecordID)
	if err != nil {
		return err
	}
	for i := range released {
		released[i].AdvanceStatus = advanceModel.AdvanceStatusPending
		released[i].AdvancePayrollRecordID = nil
		if err := st.SaveAdvance(ctx, &released[i]); err != nil {
			return err
		}
	}

	// Komponen per tipe gaji
	fixed := decimal.Zero
	hourly := decimal.Zero
	totalHours := decimal.Zero
	percentage := decimal.Zero
	totalStudentPayments := decimal.Zero

	switch contract.PayrollContractSalaryType {
	case contractModel.PayrollSalaryTypeFixed:
		fixed = contract.PayrollContractFixedAmount
	case contractModel.PayrollSalaryTypeHourly:
		totalHours, err = st.SumWorkHours(ctx, schoolID, payeeID, month, year)
		if err != nil {
			return err
		}
		hourly = totalHours.Mul(contract.PayrollContractHourlyRate)
	case contractModel.PayrollSalaryTypePercentage:
		totalStudentPayments, err = st.SumStudentPayments(ctx, schoolID, payeeID, month, year)
		if err != nil {
			return err
		}
		percentage = totalStudentPayments.
			Mul(contract.PayrollContractStudentPercentage).
			Div(decimal.NewFromInt(100))
	default:
		return fmt.Errorf("%w: salary_type kontrak tidak dikenal: %s",
			helper.ErrValidation, contract.PayrollContractSalaryType)
	}

	gross := fixed.Add(hourly).Add(percentage).
		Add(rec.PayrollRecordBonusAmount).
		Sub(rec.PayrollRecordFineAmount)

	// Potong kasbon pending periode ini, tertua dulu. Kasbon hanya dipotong
	// utuh; yang tidak muat dibiarkan pending untuk periode berikutnya
	// (deduction tidak pernah melebihi gross).
	pending, err := st.ListPendingAdvances(ctx, schoolID, payeeID, month, year)
	if err != nil {
		return err
	}
	deduction := decimal.Zero
	for i := range pending {
		next := deduction.Add(pending[i].AdvanceAmount)
		if next.GreaterThan(gross) {
			break
		}
		deduction = next
		pending[i].AdvanceStatus = advanceModel.AdvanceStatusDeducted
		recordID := rec.PayrollRecordID
		pending[i].AdvancePayrollRecordID = &recordID
		if err := st.SaveAdvance(ctx, &pending[i]); err != nil {
			return err
		}
	}

	rec.PayrollRecordFixedAmount = fixed
	rec.PayrollRecordHourlyAmount = hourly
	rec.PayrollRecordTotalHours = totalHours
	rec.PayrollRecordPercentageAmount = percentage
	rec.PayrollRecordTotalStudentPayments = totalStudentPayments
	rec.PayrollRecordPercentageRate = contract.PayrollContractStudentPercentage
	rec.PayrollRecordAdvanceDeduction = deduction
	rec.PayrollRecordGrossAmount = gross
	rec.PayrollRecordNetAmount = gross.Sub(deduction)
	rec.PayrollRecordStatus = model.PayrollStatusCalculated
	rec.PayrollRecordSnapshot = datatypes.JSONMap{
		"contract_id":   contract.PayrollContractID.String(),
		"salary_type":   string(contract.PayrollContractSalaryType),
		"calculated_at": time.Now().Format(time.RFC3339),
	}
	return nil
}

/* =============== BONUS / DENDA =============== */

// AddBonusFine mencatat bonus dan/atau denda lalu menghitung ulang.
// Hanya boleh sebelum approval.
func (c *Calculator) AddBonusFine(ctx context.Context, schoolID, recordID uuid.UUID, bonus decimal.Decimal, bonusReason string, fine decimal.Decimal, fineReason string) (*model.PayrollRecordModel, error) {
	if bonus.IsNegative() || fine.IsNegative() {
		return nil, fmt.Errorf("%w: bonus dan denda tidak boleh negatif", helper.ErrValidation)
	}

	var out *model.PayrollRecordModel
	err := c.store.Tx(ctx, func(st Store) error {
		rec, err := st.GetRecordByID(ctx, schoolID, recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: record payroll tidak ditemukan", helper.ErrNotFound)
		}
		if rec.PayrollRecordStatus != model.PayrollStatusDraft &&
			rec.PayrollRecordStatus != model.PayrollStatusCalculated {
			return fmt.Errorf("%w: bonus/denda hanya bisa sebelum approval (status %s)",
				helper.ErrInvalidState, rec.PayrollRecordStatus)
		}

		rec.PayrollRecordBonusAmount = bonus
		rec.PayrollRecordBonusReason = bonusReason
		rec.PayrollRecordFineAmount = fine
		rec.PayrollRecordFineReason = fineReason

		if err := c.recalculate(ctx, st, rec); err != nil {
			return err
		}
		if err := st.SaveRecord(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =============== TRANSISI STATUS =============== */

// Approve membekukan hasil hitung: calculated → approved.
func (c *Calculator) Approve(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error) {
	return c.transition(ctx, schoolID, recordID, func(rec *model.PayrollRecordModel) error {
		if rec.PayrollRecordStatus != model.PayrollStatusCalculated {
			return fmt.Errorf("%w: approve hanya dari calculated (status %s)",
				helper.ErrInvalidState, rec.PayrollRecordStatus)
		}
		now := time.Now()
		rec.PayrollRecordStatus = model.PayrollStatusApproved
		rec.PayrollRecordApprovedAt = &now
		return nil
	})
}

// MarkPaid menandai pembayaran: approved → paid.
func (c *Calculator) MarkPaid(ctx context.Context, schoolID, recordID uuid.UUID, paymentMethod, note string) (*model.PayrollRecordModel, error) {
	if paymentMethod == "" {
		return nil, fmt.Errorf("%w: payment_method wajib diisi", helper.ErrValidation)
	}
	return c.transition(ctx, schoolID, recordID, func(rec *model.PayrollRecordModel) error {
		if rec.PayrollRecordStatus != model.PayrollStatusApproved {
			return fmt.Errorf("%w: mark paid hanya dari approved (status %s)",
				helper.ErrInvalidState, rec.PayrollRecordStatus)
		}
		now := time.Now()
		rec.PayrollRecordStatus = model.PayrollStatusPaid
		rec.PayrollRecordPaidAt = &now
		rec.PayrollRecordPaymentMethod = paymentMethod
		rec.PayrollRecordPaymentNote = note
		return nil
	})
}

// Cancel membatalkan record (draft/calculated saja) dan melepas kasbon
// yang sudah dipotong kembali ke pending.
func (c *Calculator) Cancel(ctx context.Context, schoolID, recordID uuid.UUID) (*model.PayrollRecordModel, error) {
	var out *model.PayrollRecordModel
	err := c.store.Tx(ctx, func(st Store) error {
		rec, err := st.GetRecordByID(ctx, schoolID, recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: record payroll tidak ditemukan", helper.ErrNotFound)
		}
		if rec.PayrollRecordStatus != model.PayrollStatusDraft &&
			rec.PayrollRecordStatus != model.PayrollStatusCalculated {
			return fmt.Errorf("%w: cancel hanya dari draft/calculated (status %s)",
				helper.ErrInvalidState, rec.PayrollRecordStatus)
		}

		deducted, err := st.ListDeductedAdvancesByRecord(ctx, schoolID, rec.PayrollRecordID)
		if err != nil {
			return err
		}
		for i := range deducted {
			deducted[i].AdvanceStatus = advanceModel.AdvanceStatusPending
			deducted[i].AdvancePayrollRecordID = nil
			if err := st.SaveAdvance(ctx, &deducted[i]); err != nil {
				return err
			}
		}

		rec.PayrollRecordStatus = model.PayrollStatusCancelled
		rec.PayrollRecordAdvanceDeduction = decimal.Zero
		if err := st.SaveRecord(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Calculator) transition(ctx context.Context, schoolID, recordID uuid.UUID, fn func(*model.PayrollRecordModel) error) (*model.PayrollRecordModel, error) {
	var out *model.PayrollRecordModel
	err := c.store.Tx(ctx, func(st Store) error {
		rec, err := st.GetRecordByID(ctx, schoolID, recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: record payroll tidak ditemukan", helper.ErrNotFound)
		}
		if err := fn(rec); err != nil {
			return err
		}
		if err := st.SaveRecord(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =============== READ =============== */

func (c *Calculator) Get(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (*model.PayrollRecordModel, error) {
	rec, err := c.store.GetRecord(ctx, schoolID, payeeID, month, year)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: record payroll tidak ditemukan", helper.ErrNotFound)
	}
	return rec, nil
}

func (c *Calculator) ListPeriod(ctx context.Context, schoolID uuid.UUID, month, year int16) ([]model.PayrollRecordModel, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}
	return c.store.ListRecords(ctx, schoolID, month, year)
}
