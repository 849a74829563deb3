// file: internals/features/payroll/records/model/payroll_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — lifecycle payroll
// draft → calculated → approved → paid; draft/calculated → cancelled
// =========================================================

type PayrollStatus string

const (
	PayrollStatusDraft      PayrollStatus = "draft"
	PayrollStatusCalculated PayrollStatus = "calculated"
	PayrollStatusApproved   PayrollStatus = "approved"
	PayrollStatusPaid       PayrollStatus = "paid"
	PayrollStatusCancelled  PayrollStatus = "cancelled"
)

// =========================================================
// MODEL — satu record per (school, payee, bulan, tahun).
// Field hasil hitung ditulis ulang tiap recompute selama masih
// draft/calculated; begitu approved, record beku.
// =========================================================

type PayrollRecordModel struct {
	// PK
	PayrollRecordID uuid.UUID `gorm:"column:payroll_record_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_record_id"`

	// Kunci periode (unik)
	PayrollRecordSchoolID uuid.UUID `gorm:"column:payroll_record_school_id;type:uuid;not null;uniqueIndex:uniq_payroll_period,priority:1" json:"payroll_record_school_id"`
	PayrollRecordPayeeID  uuid.UUID `gorm:"column:payroll_record_payee_id;type:uuid;not null;uniqueIndex:uniq_payroll_period,priority:2" json:"payroll_record_payee_id"`
	PayrollRecordMonth    int16     `gorm:"column:payroll_record_month;type:smallint;not null;uniqueIndex:uniq_payroll_period,priority:3" json:"payroll_record_month"`
	PayrollRecordYear     int16     `gorm:"column:payroll_record_year;type:smallint;not null;uniqueIndex:uniq_payroll_period,priority:4" json:"payroll_record_year"`

	// Komponen hasil hitung
	PayrollRecordFixedAmount          decimal.Decimal `gorm:"column:payroll_record_fixed_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_fixed_amount"`
	PayrollRecordHourlyAmount         decimal.Decimal `gorm:"column:payroll_record_hourly_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_hourly_amount"`
	PayrollRecordTotalHours           decimal.Decimal `gorm:"column:payroll_record_total_hours;type:numeric(8,2);not null;default:0" json:"payroll_record_total_hours"`
	PayrollRecordPercentageAmount     decimal.Decimal `gorm:"column:payroll_record_percentage_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_percentage_amount"`
	PayrollRecordTotalStudentPayments decimal.Decimal `gorm:"column:payroll_record_total_student_payments;type:numeric(18,2);not null;default:0" json:"payroll_record_total_student_payments"`
	PayrollRecordPercentageRate       decimal.Decimal `gorm:"column:payroll_record_percentage_rate;type:numeric(5,2);not null;default:0" json:"payroll_record_percentage_rate"`

	// Bonus / denda (input manual, pre-approval)
	PayrollRecordBonusAmount decimal.Decimal `gorm:"column:payroll_record_bonus_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_bonus_amount"`
	PayrollRecordBonusReason string          `gorm:"column:payroll_record_bonus_reason;type:text" json:"payroll_record_bonus_reason,omitempty"`
	PayrollRecordFineAmount  decimal.Decimal `gorm:"column:payroll_record_fine_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_fine_amount"`
	PayrollRecordFineReason  string          `gorm:"column:payroll_record_fine_reason;type:text" json:"payroll_record_fine_reason,omitempty"`

	// Agregat
	PayrollRecordAdvanceDeduction decimal.Decimal `gorm:"column:payroll_record_advance_deduction;type:numeric(18,2);not null;default:0" json:"payroll_record_advance_deduction"`
	PayrollRecordGrossAmount      decimal.Decimal `gorm:"column:payroll_record_gross_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_gross_amount"`
	PayrollRecordNetAmount        decimal.Decimal `gorm:"column:payroll_record_net_amount;type:numeric(18,2);not null;default:0" json:"payroll_record_net_amount"`

	// Lifecycle
	PayrollRecordStatus        PayrollStatus `gorm:"column:payroll_record_status;type:varchar(20);not null;default:'draft';index" json:"payroll_record_status"`
	PayrollRecordApprovedAt    *time.Time    `gorm:"column:payroll_record_approved_at" json:"payroll_record_approved_at,omitempty"`
	PayrollRecordPaidAt        *time.Time    `gorm:"column:payroll_record_paid_at" json:"payroll_record_paid_at,omitempty"`
	PayrollRecordPaymentMethod string        `gorm:"column:payroll_record_payment_method;type:varchar(50)" json:"payroll_record_payment_method,omitempty"`
	PayrollRecordPaymentNote   string        `gorm:"column:payroll_record_payment_note;type:text" json:"payroll_record_payment_note,omitempty"`

	// Snapshot input hitung terakhir (kontrak, jam, dsb) untuk audit
	PayrollRecordSnapshot datatypes.JSONMap `gorm:"column:payroll_record_snapshot;type:jsonb" json:"payroll_record_snapshot,omitempty"`

	// Audit
	PayrollRecordCreatedAt time.Time      `gorm:"column:payroll_record_created_at;not null;default:now()" json:"payroll_record_created_at"`
	PayrollRecordUpdatedAt time.Time      `gorm:"column:payroll_record_updated_at;not null;default:now()" json:"payroll_record_updated_at"`
	PayrollRecordDeletedAt gorm.DeletedAt `gorm:"column:payroll_record_deleted_at;index" json:"-"`
}

func (PayrollRecordModel) TableName() string {
	return "payroll_records"
}

func (m *PayrollRecordModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	m.PayrollRecordCreatedAt = now
	m.PayrollRecordUpdatedAt = now
	return nil
}

func (m *PayrollRecordModel) BeforeUpdate(tx *gorm.DB) error {
	m.PayrollRecordUpdatedAt = time.Now()
	return nil
}
