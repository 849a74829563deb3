// file: internals/features/payroll/advances/service/advance_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "educenter_backend/internals/features/payroll/advances/model"
	helper "educenter_backend/internals/helpers"
)

type Store interface {
	Create(ctx context.Context, row *model.AdvanceModel) error
	GetByID(ctx context.Context, schoolID, advanceID uuid.UUID) (*model.AdvanceModel, error)
	Save(ctx context.Context, row *model.AdvanceModel) error
	ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.AdvanceModel, error)
}

// AdvanceService hanya mengelola give/cancel. Transisi ke deducted
// adalah milik kalkulator payroll, bukan service ini.
type AdvanceService struct {
	store Store
}

func NewAdvanceService(store Store) *AdvanceService {
	return &AdvanceService{store: store}
}

// Give mencatat kasbon baru dengan status pending.
func (s *AdvanceService) Give(ctx context.Context, schoolID, payeeID uuid.UUID, amount decimal.Decimal, reason string, targetMonth, targetYear int16) (*model.AdvanceModel, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: jumlah kasbon harus > 0", helper.ErrValidation)
	}
	if targetMonth < 1 || targetMonth > 12 {
		return nil, fmt.Errorf("%w: target_month harus 1..12", helper.ErrValidation)
	}

	row := &model.AdvanceModel{
		AdvanceSchoolID:    schoolID,
		AdvancePayeeID:     payeeID,
		AdvanceAmount:      amount,
		AdvanceReason:      reason,
		AdvanceGivenDate:   time.Now(),
		AdvanceTargetMonth: targetMonth,
		AdvanceTargetYear:  targetYear,
		AdvanceStatus:      model.AdvanceStatusPending,
	}
	if err := s.store.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Cancel membatalkan kasbon; hanya boleh dari pending.
func (s *AdvanceService) Cancel(ctx context.Context, schoolID, advanceID uuid.UUID) (*model.AdvanceModel, error) {
	row, err := s.store.GetByID(ctx, schoolID, advanceID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: kasbon tidak ditemukan", helper.ErrNotFound)
	}
	if row.AdvanceStatus != model.AdvanceStatusPending {
		return nil, fmt.Errorf("%w: kasbon berstatus %s, hanya pending yang bisa dibatalkan",
			helper.ErrInvalidState, row.AdvanceStatus)
	}

	row.AdvanceStatus = model.AdvanceStatusCancelled
	if err := s.store.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *AdvanceService) ListByPayee(ctx context.Context, schoolID, payeeID uuid.UUID) ([]model.AdvanceModel, error) {
	return s.store.ListByPayee(ctx, schoolID, payeeID)
}
