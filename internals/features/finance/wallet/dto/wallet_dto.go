// file: internals/features/finance/wallet/dto/wallet_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "educenter_backend/internals/features/finance/wallet/model"
)

/* =============== REQUESTS =============== */

type CreateAccountRequest struct {
	StudentAccountStudentID uuid.UUID `json:"student_account_student_id" validate:"required"`
}

type TopUpRequest struct {
	AccountCode string          `json:"account_code" validate:"required,len=6,numeric"`
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	Method      string          `json:"method"       validate:"omitempty,max=30"`
	Notes       string          `json:"notes"        validate:"omitempty,max=255"`
}

type WithdrawRequest struct {
	AccountCode string          `json:"account_code" validate:"required,len=6,numeric"`
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	Reason      string          `json:"reason"       validate:"omitempty,max=255"`
}

type TopUpSnapRequest struct {
	AccountCode string          `json:"account_code" validate:"required,len=6,numeric"`
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	PayerName   string          `json:"payer_name"   validate:"required,min=2"`
	PayerEmail  string          `json:"payer_email"  validate:"required,email"`
}

/* =============== RESPONSES =============== */

type AccountResponse struct {
	StudentAccountID        uuid.UUID       `json:"student_account_id"`
	StudentAccountStudentID uuid.UUID       `json:"student_account_student_id"`
	StudentAccountCode      string          `json:"student_account_code"`
	StudentAccountBalance   decimal.Decimal `json:"student_account_balance"`
	StudentAccountIsActive  bool            `json:"student_account_is_active"`
	StudentAccountCreatedAt time.Time       `json:"student_account_created_at"`
}

func FromAccountModel(acc m.StudentAccountModel) AccountResponse {
	return AccountResponse{
		StudentAccountID:        acc.StudentAccountID,
		StudentAccountStudentID: acc.StudentAccountStudentID,
		StudentAccountCode:      acc.StudentAccountCode,
		StudentAccountBalance:   acc.StudentAccountBalance,
		StudentAccountIsActive:  acc.StudentAccountIsActive,
		StudentAccountCreatedAt: acc.StudentAccountCreatedAt,
	}
}

type AccountLogResponse struct {
	AccountLogID        uuid.UUID        `json:"account_log_id"`
	AccountLogAmount    decimal.Decimal  `json:"account_log_amount"`
	AccountLogType      m.AccountLogType `json:"account_log_type"`
	AccountLogNote      string           `json:"account_log_note"`
	AccountLogCreatedAt time.Time        `json:"account_log_created_at"`
}

func FromLogModel(row m.AccountLogModel) AccountLogResponse {
	return AccountLogResponse{
		AccountLogID:        row.AccountLogID,
		AccountLogAmount:    row.AccountLogAmount,
		AccountLogType:      row.AccountLogType,
		AccountLogNote:      row.AccountLogNote,
		AccountLogCreatedAt: row.AccountLogCreatedAt,
	}
}

func FromLogModels(rows []m.AccountLogModel) []AccountLogResponse {
	out := make([]AccountLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromLogModel(r))
	}
	return out
}
