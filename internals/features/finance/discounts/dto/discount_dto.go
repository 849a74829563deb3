// file: internals/features/finance/discounts/dto/discount_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "educenter_backend/internals/features/finance/discounts/model"
)

/* =============== REQUESTS =============== */

type UpsertDiscountRequest struct {
	StudentGroupDiscountStudentID uuid.UUID       `json:"student_group_discount_student_id" validate:"required"`
	StudentGroupDiscountGroupID   uuid.UUID       `json:"student_group_discount_group_id"   validate:"required"`
	StudentGroupDiscountAmount    decimal.Decimal `json:"student_group_discount_amount"     validate:"required"`
}

func (r UpsertDiscountRequest) ToModel(schoolID uuid.UUID) *m.StudentGroupDiscountModel {
	return &m.StudentGroupDiscountModel{
		StudentGroupDiscountSchoolID:  schoolID,
		StudentGroupDiscountStudentID: r.StudentGroupDiscountStudentID,
		StudentGroupDiscountGroupID:   r.StudentGroupDiscountGroupID,
		StudentGroupDiscountAmount:    r.StudentGroupDiscountAmount,
	}
}

type PreviewPayableQuery struct {
	StudentID uuid.UUID       `query:"student_id" validate:"required"`
	GroupID   uuid.UUID       `query:"group_id"   validate:"required"`
	Price     decimal.Decimal `query:"price"      validate:"required"`
}

/* =============== RESPONSES =============== */

type DiscountResponse struct {
	StudentGroupDiscountID        uuid.UUID       `json:"student_group_discount_id"`
	StudentGroupDiscountStudentID uuid.UUID       `json:"student_group_discount_student_id"`
	StudentGroupDiscountGroupID   uuid.UUID       `json:"student_group_discount_group_id"`
	StudentGroupDiscountAmount    decimal.Decimal `json:"student_group_discount_amount"`
	StudentGroupDiscountUpdatedAt time.Time       `json:"student_group_discount_updated_at"`
}

func FromModel(row m.StudentGroupDiscountModel) DiscountResponse {
	return DiscountResponse{
		StudentGroupDiscountID:        row.StudentGroupDiscountID,
		StudentGroupDiscountStudentID: row.StudentGroupDiscountStudentID,
		StudentGroupDiscountGroupID:   row.StudentGroupDiscountGroupID,
		StudentGroupDiscountAmount:    row.StudentGroupDiscountAmount,
		StudentGroupDiscountUpdatedAt: row.StudentGroupDiscountUpdatedAt,
	}
}

func FromModels(rows []m.StudentGroupDiscountModel) []DiscountResponse {
	out := make([]DiscountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
