// file: internals/features/payroll/records/dto/payroll_dto.go
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* =============== REQUEST =============== */

type CalculateRequest struct {
	PayeeID uuid.UUID `json:"payee_id" validate:"required"`
	Month   int16     `json:"month" validate:"required,min=1,max=12"`
	Year    int16     `json:"year" validate:"required,min=2000"`
}

type BonusFineRequest struct {
	BonusAmount string `json:"bonus_amount"`
	BonusReason string `json:"bonus_reason"`
	FineAmount  string `json:"fine_amount"`
	FineReason  string `json:"fine_reason"`
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	Note          string `json:"note"`
}

type PeriodQuery struct {
	Month int16 `query:"month" validate:"required,min=1,max=12"`
	Year  int16 `query:"year" validate:"required,min=2000"`
}

// ParseAmount menerima string decimal; kosong = nol.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
