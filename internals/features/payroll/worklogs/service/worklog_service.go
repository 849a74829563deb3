// file: internals/features/payroll/worklogs/service/worklog_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "educenter_backend/internals/features/payroll/worklogs/model"
	helper "educenter_backend/internals/helpers"
)

type Store interface {
	Append(ctx context.Context, row *model.WorkLogModel) error
	List(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]model.WorkLogModel, error)
	SumHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error)
}

type WorkLogService struct {
	store Store
}

func NewWorkLogService(store Store) *WorkLogService {
	return &WorkLogService{store: store}
}

// Append mencatat jam kerja; periode diturunkan dari work_date.
func (s *WorkLogService) Append(ctx context.Context, schoolID, payeeID uuid.UUID, groupID *uuid.UUID, workDate time.Time, hours decimal.Decimal, note string) (*model.WorkLogModel, error) {
	if hours.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: jam kerja harus > 0", helper.ErrValidation)
	}
	if workDate.IsZero() {
		return nil, fmt.Errorf("%w: work_date wajib diisi", helper.ErrValidation)
	}

	row := &model.WorkLogModel{
		WorkLogSchoolID: schoolID,
		WorkLogPayeeID:  payeeID,
		WorkLogGroupID:  groupID,
		WorkLogWorkDate: workDate,
		WorkLogHours:    hours,
		WorkLogNote:     note,
		WorkLogMonth:    int16(workDate.Month()),
		WorkLogYear:     int16(workDate.Year()),
	}
	if err := s.store.Append(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *WorkLogService) List(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) ([]model.WorkLogModel, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}
	return s.store.List(ctx, schoolID, payeeID, month, year)
}

// TotalHours menjumlahkan jam kerja satu payee untuk satu periode.
func (s *WorkLogService) TotalHours(ctx context.Context, schoolID, payeeID uuid.UUID, month, year int16) (decimal.Decimal, error) {
	if month < 1 || month > 12 {
		return decimal.Zero, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}
	return s.store.SumHours(ctx, schoolID, payeeID, month, year)
}
