// file: internals/features/finance/wallet/model/account_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe entry ledger
// =========================================================

type AccountLogType string

const (
	AccountLogTypeTopUp         AccountLogType = "topup"
	AccountLogTypeMonthlyCharge AccountLogType = "monthly_charge"
	AccountLogTypeRefund        AccountLogType = "refund"
	AccountLogTypeAdjustment    AccountLogType = "adjustment"
)

// =========================================================
// MODEL — append-only. Tidak ada update/delete setelah insert;
// amount bertanda (+ kredit / − debit).
// =========================================================

type AccountLogModel struct {
	// PK
	AccountLogID uuid.UUID `gorm:"column:account_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"account_log_id"`

	// Tenant
	AccountLogSchoolID uuid.UUID `gorm:"column:account_log_school_id;type:uuid;not null;index" json:"account_log_school_id"`

	// FK → student_accounts
	AccountLogAccountID uuid.UUID `gorm:"column:account_log_account_id;type:uuid;not null;index:ix_account_log_account" json:"account_log_account_id"`

	AccountLogAmount decimal.Decimal `gorm:"column:account_log_amount;type:numeric(18,2);not null" json:"account_log_amount"`
	AccountLogType   AccountLogType  `gorm:"column:account_log_type;type:varchar(20);not null;index" json:"account_log_type"`
	AccountLogNote   string          `gorm:"column:account_log_note;type:text" json:"account_log_note"`

	// Siapa yang memicu entry (admin / sistem / webhook)
	AccountLogPerformedBy *uuid.UUID `gorm:"column:account_log_performed_by;type:uuid" json:"account_log_performed_by,omitempty"`

	// Snapshot payload eksternal (mis. notifikasi gateway); order id gateway
	// disimpan di metadata dan dibuat unik lewat partial index di migrasi.
	AccountLogMetadata datatypes.JSONMap `gorm:"column:account_log_metadata;type:jsonb" json:"account_log_metadata,omitempty"`

	AccountLogCreatedAt time.Time `gorm:"column:account_log_created_at;not null;default:now();index:ix_account_log_created_at" json:"account_log_created_at"`
}

func (AccountLogModel) TableName() string {
	return "account_logs"
}

func (m *AccountLogModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.AccountLogCreatedAt.IsZero() {
		m.AccountLogCreatedAt = time.Now()
	}
	return nil
}
