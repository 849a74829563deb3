// file: internals/features/payroll/advances/dto/advance_dto.go
package dto

import (
	"github.com/google/uuid"

	model "educenter_backend/internals/features/payroll/advances/model"
)

/* =============== REQUEST =============== */

type GiveAdvanceRequest struct {
	PayeeID     uuid.UUID `json:"payee_id" validate:"required"`
	Amount      string    `json:"amount" validate:"required"`
	Reason      string    `json:"reason"`
	TargetMonth int16     `json:"target_month" validate:"required,min=1,max=12"`
	TargetYear  int16     `json:"target_year" validate:"required,min=2000"`
}

/* =============== RESPONSE =============== */

type AdvanceResponse struct {
	AdvanceID       uuid.UUID  `json:"advance_id"`
	PayeeID         uuid.UUID  `json:"payee_id"`
	Amount          string     `json:"amount"`
	Reason          string     `json:"reason,omitempty"`
	GivenDate       string     `json:"given_date"`
	TargetMonth     int16      `json:"target_month"`
	TargetYear      int16      `json:"target_year"`
	Status          string     `json:"status"`
	PayrollRecordID *uuid.UUID `json:"payroll_record_id,omitempty"`
}

func FromAdvanceModel(m *model.AdvanceModel) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:       m.AdvanceID,
		PayeeID:         m.AdvancePayeeID,
		Amount:          m.AdvanceAmount.String(),
		Reason:          m.AdvanceReason,
		GivenDate:       m.AdvanceGivenDate.Format("2006-01-02"),
		TargetMonth:     m.AdvanceTargetMonth,
		TargetYear:      m.AdvanceTargetYear,
		Status:          string(m.AdvanceStatus),
		PayrollRecordID: m.AdvancePayrollRecordID,
	}
}

func FromAdvanceModels(rows []model.AdvanceModel) []AdvanceResponse {
	out := make([]AdvanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromAdvanceModel(&rows[i]))
	}
	return out
}
