// file: internals/features/payroll/contracts/dto/contract_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "educenter_backend/internals/features/payroll/contracts/model"
)

/* =============== REQUEST =============== */

type CreateContractRequest struct {
	MentorID          *uuid.UUID `json:"mentor_id"`
	EmployeeUserID    *uuid.UUID `json:"employee_user_id"`
	SalaryType        string     `json:"salary_type" validate:"required,oneof=fixed hourly percentage"`
	FixedAmount       string     `json:"fixed_amount"`
	HourlyRate        string     `json:"hourly_rate"`
	StudentPercentage string     `json:"student_percentage"`
	EffectiveFrom     string     `json:"effective_from" validate:"required"` // YYYY-MM-DD
}

type CloseContractRequest struct {
	EffectiveTo string `json:"effective_to" validate:"required"` // YYYY-MM-DD
}

type ResolveContractQuery struct {
	PayeeID uuid.UUID `query:"payee_id" validate:"required"`
	Month   int16     `query:"month" validate:"required,min=1,max=12"`
	Year    int16     `query:"year" validate:"required,min=2000"`
}

// ParseDate menerima format tanggal YYYY-MM-DD.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// ParseAmount menerima string decimal; kosong = nol.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

/* =============== RESPONSE =============== */

type ContractResponse struct {
	ContractID        uuid.UUID  `json:"contract_id"`
	MentorID          *uuid.UUID `json:"mentor_id,omitempty"`
	EmployeeUserID    *uuid.UUID `json:"employee_user_id,omitempty"`
	SalaryType        string     `json:"salary_type"`
	FixedAmount       string     `json:"fixed_amount"`
	HourlyRate        string     `json:"hourly_rate"`
	StudentPercentage string     `json:"student_percentage"`
	EffectiveFrom     string     `json:"effective_from"`
	EffectiveTo       *string    `json:"effective_to,omitempty"`
	IsActive          bool       `json:"is_active"`
}

func FromContractModel(m *model.PayrollContractModel) ContractResponse {
	resp := ContractResponse{
		ContractID:        m.PayrollContractID,
		MentorID:          m.PayrollContractMentorID,
		EmployeeUserID:    m.PayrollContractEmployeeUserID,
		SalaryType:        string(m.PayrollContractSalaryType),
		FixedAmount:       m.PayrollContractFixedAmount.String(),
		HourlyRate:        m.PayrollContractHourlyRate.String(),
		StudentPercentage: m.PayrollContractStudentPercentage.String(),
		EffectiveFrom:     m.PayrollContractEffectiveFrom.Format("2006-01-02"),
		IsActive:          m.PayrollContractIsActive,
	}
	if m.PayrollContractEffectiveTo != nil {
		to := m.PayrollContractEffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}

func FromContractModels(rows []model.PayrollContractModel) []ContractResponse {
	out := make([]ContractResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromContractModel(&rows[i]))
	}
	return out
}
