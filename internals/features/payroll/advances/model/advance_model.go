// file: internals/features/payroll/advances/model/advance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status kasbon
// =========================================================

type AdvanceStatus string

const (
	AdvanceStatusPending   AdvanceStatus = "pending"
	AdvanceStatusDeducted  AdvanceStatus = "deducted"
	AdvanceStatusCancelled AdvanceStatus = "cancelled"
)

// =========================================================
// MODEL — kasbon gaji yang dipotong dari payroll periode target.
// Transisi deducted hanya boleh dilakukan kalkulator payroll;
// record payroll yang memotong tercatat di payroll_record_id.
// =========================================================

type AdvanceModel struct {
	// PK
	AdvanceID uuid.UUID `gorm:"column:advance_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"advance_id"`

	// Tenant & pemilik
	AdvanceSchoolID uuid.UUID `gorm:"column:advance_school_id;type:uuid;not null;index" json:"advance_school_id"`
	AdvancePayeeID  uuid.UUID `gorm:"column:advance_payee_id;type:uuid;not null;index:ix_advance_payee_target,priority:1" json:"advance_payee_id"`

	// Isi
	AdvanceAmount    decimal.Decimal `gorm:"column:advance_amount;type:numeric(18,2);not null;check:advance_amount>0" json:"advance_amount"`
	AdvanceReason    string          `gorm:"column:advance_reason;type:text" json:"advance_reason"`
	AdvanceGivenDate time.Time       `gorm:"column:advance_given_date;type:date;not null" json:"advance_given_date"`

	// Periode target pemotongan
	AdvanceTargetMonth int16 `gorm:"column:advance_target_month;type:smallint;not null;index:ix_advance_payee_target,priority:2" json:"advance_target_month"`
	AdvanceTargetYear  int16 `gorm:"column:advance_target_year;type:smallint;not null;index:ix_advance_payee_target,priority:3" json:"advance_target_year"`

	AdvanceStatus          AdvanceStatus `gorm:"column:advance_status;type:varchar(20);not null;default:'pending';index" json:"advance_status"`
	AdvancePayrollRecordID *uuid.UUID    `gorm:"column:advance_payroll_record_id;type:uuid;index" json:"advance_payroll_record_id,omitempty"`

	// Audit
	AdvanceCreatedAt time.Time      `gorm:"column:advance_created_at;not null;default:now()" json:"advance_created_at"`
	AdvanceUpdatedAt time.Time      `gorm:"column:advance_updated_at;not null;default:now()" json:"advance_updated_at"`
	AdvanceDeletedAt gorm.DeletedAt `gorm:"column:advance_deleted_at;index" json:"-"`
}

func (AdvanceModel) TableName() string {
	return "advances"
}

func (m *AdvanceModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	m.AdvanceCreatedAt = now
	m.AdvanceUpdatedAt = now
	return nil
}

func (m *AdvanceModel) BeforeUpdate(tx *gorm.DB) error {
	m.AdvanceUpdatedAt = time.Now()
	return nil
}
