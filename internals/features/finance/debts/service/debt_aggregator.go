// file: internals/features/finance/debts/service/debt_aggregator.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	chargeModel "educenter_backend/internals/features/finance/charges/model"
)

/* =============== FILTER & VIEW =============== */

type DebtFilter struct {
	StudentID *uuid.UUID
	GroupID   *uuid.UUID
	Month     *int16
	Year      *int16
}

// Debt adalah satu obligation yang belum lunas, dilihat dari sisi tunggakan.
// Balance = original - discount - paid; tidak pernah negatif karena payable
// sudah di-cap dan paid tidak pernah melebihi payable.
type Debt struct {
	StudentID      uuid.UUID       `json:"student_id"`
	GroupID        uuid.UUID       `json:"group_id"`
	Month          int16           `json:"month"`
	Year           int16           `json:"year"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Balance        decimal.Decimal `json:"balance"`
}

type DebtTotals struct {
	Count        int             `json:"count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// StudentDebtSummary / GroupDebtSummary: rollup per pemilik tunggakan.
type StudentDebtSummary struct {
	StudentID    uuid.UUID       `json:"student_id"`
	Count        int             `json:"count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type GroupDebtSummary struct {
	GroupID      uuid.UUID       `json:"group_id"`
	Count        int             `json:"count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

/* =============== STORE =============== */

// Store hanya perlu baca obligation unpaid; aggregator murni read-only.
type Store interface {
	ListUnpaidObligations(ctx context.Context, schoolID uuid.UUID, filter DebtFilter) ([]chargeModel.MonthlyObligationModel, error)
}

type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

/* =============== ROLLUP =============== */

// GetDebts mengembalikan daftar tunggakan + total. Baris dengan sisa nol
// (mis. unpaid yang ternyata sudah tertutup penuh) disaring.
func (a *Aggregator) GetDebts(ctx context.Context, schoolID uuid.UUID, filter DebtFilter) ([]Debt, DebtTotals, error) {
	rows, err := a.store.ListUnpaidObligations(ctx, schoolID, filter)
	if err != nil {
		return nil, DebtTotals{}, err
	}

	debts := make([]Debt, 0, len(rows))
	totals := DebtTotals{TotalBalance: decimal.Zero}
	for _, row := range rows {
		balance := row.MonthlyObligationOriginalAmount.
			Sub(row.MonthlyObligationDiscountAmount).
			Sub(row.MonthlyObligationPaidAmount)
		if balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		debts = append(debts, Debt{
			StudentID:      row.MonthlyObligationStudentID,
			GroupID:        row.MonthlyObligationGroupID,
			Month:          row.MonthlyObligationMonth,
			Year:           row.MonthlyObligationYear,
			OriginalAmount: row.MonthlyObligationOriginalAmount,
			DiscountAmount: row.MonthlyObligationDiscountAmount,
			PaidAmount:     row.MonthlyObligationPaidAmount,
			Balance:        balance,
		})
		totals.Count++
		totals.TotalBalance = totals.TotalBalance.Add(balance)
	}
	return debts, totals, nil
}

// SummarizeByStudent mengelompokkan tunggakan per siswa (urut sesuai
// kemunculan pertama di daftar).
func (a *Aggregator) SummarizeByStudent(ctx context.Context, schoolID uuid.UUID, filter DebtFilter) ([]StudentDebtSummary, error) {
	debts, _, err := a.GetDebts(ctx, schoolID, filter)
	if err != nil {
		return nil, err
	}

	index := map[uuid.UUID]int{}
	var out []StudentDebtSummary
	for _, d := range debts {
		i, ok := index[d.StudentID]
		if !ok {
			i = len(out)
			index[d.StudentID] = i
			out = append(out, StudentDebtSummary{StudentID: d.StudentID, TotalBalance: decimal.Zero})
		}
		out[i].Count++
		out[i].TotalBalance = out[i].TotalBalance.Add(d.Balance)
	}
	return out, nil
}

// SummarizeByGroup mengelompokkan tunggakan per grup.
func (a *Aggregator) SummarizeByGroup(ctx context.Context, schoolID uuid.UUID, filter DebtFilter) ([]GroupDebtSummary, error) {
	debts, _, err := a.GetDebts(ctx, schoolID, filter)
	if err != nil {
		return nil, err
	}

	index := map[uuid.UUID]int{}
	var out []GroupDebtSummary
	for _, d := range debts {
		i, ok := index[d.GroupID]
		if !ok {
			i = len(out)
			index[d.GroupID] = i
			out = append(out, GroupDebtSummary{GroupID: d.GroupID, TotalBalance: decimal.Zero})
		}
		out[i].Count++
		out[i].TotalBalance = out[i].TotalBalance.Add(d.Balance)
	}
	return out, nil
}
