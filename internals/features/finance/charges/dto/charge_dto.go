// file: internals/features/finance/charges/dto/charge_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =============== REQUESTS =============== */

type ChargeMonthlyRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	GroupID   uuid.UUID `json:"group_id"   validate:"required"`
	Month     int16     `json:"month"      validate:"required,min=1,max=12"`
	Year      int16     `json:"year"       validate:"required,gte=2000,lte=2100"`
}

type ChargeBatchRequest struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
	Month   int16     `json:"month"    validate:"required,min=1,max=12"`
	Year    int16     `json:"year"     validate:"required,gte=2000,lte=2100"`
}
