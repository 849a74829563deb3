// file: internals/features/finance/charges/model/monthly_obligation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status obligation bulanan
// =========================================================

type MonthlyObligationStatus string

const (
	MonthlyObligationStatusPaid   MonthlyObligationStatus = "paid"
	MonthlyObligationStatusUnpaid MonthlyObligationStatus = "unpaid"
	MonthlyObligationStatusZero   MonthlyObligationStatus = "zero" // full diskon
)

// =========================================================
// MODEL — satu tagihan logis per (siswa, grup, bulan, tahun).
// Unique index adalah kontrak idempotensi charge: attempt kedua
// untuk kunci yang sama ditolak storage, bukan diduplikasi.
// =========================================================

type MonthlyObligationModel struct {
	// PK
	MonthlyObligationID uuid.UUID `gorm:"column:monthly_obligation_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"monthly_obligation_id"`

	// Tenant
	MonthlyObligationSchoolID uuid.UUID `gorm:"column:monthly_obligation_school_id;type:uuid;not null;index" json:"monthly_obligation_school_id"`

	MonthlyObligationStudentID uuid.UUID `gorm:"column:monthly_obligation_student_id;type:uuid;not null;uniqueIndex:uniq_obligation_key,priority:1" json:"monthly_obligation_student_id"`
	MonthlyObligationGroupID   uuid.UUID `gorm:"column:monthly_obligation_group_id;type:uuid;not null;uniqueIndex:uniq_obligation_key,priority:2" json:"monthly_obligation_group_id"`
	MonthlyObligationMonth     int16     `gorm:"column:monthly_obligation_month;not null;check:monthly_obligation_month BETWEEN 1 AND 12;uniqueIndex:uniq_obligation_key,priority:3" json:"monthly_obligation_month"`
	MonthlyObligationYear      int16     `gorm:"column:monthly_obligation_year;not null;uniqueIndex:uniq_obligation_key,priority:4" json:"monthly_obligation_year"`

	// Breakdown nominal
	MonthlyObligationOriginalAmount decimal.Decimal `gorm:"column:monthly_obligation_original_amount;type:numeric(18,2);not null" json:"monthly_obligation_original_amount"`
	MonthlyObligationDiscountAmount decimal.Decimal `gorm:"column:monthly_obligation_discount_amount;type:numeric(18,2);not null;default:0" json:"monthly_obligation_discount_amount"`
	MonthlyObligationPaidAmount     decimal.Decimal `gorm:"column:monthly_obligation_paid_amount;type:numeric(18,2);not null;default:0" json:"monthly_obligation_paid_amount"`

	MonthlyObligationStatus MonthlyObligationStatus `gorm:"column:monthly_obligation_status;type:varchar(10);not null;index" json:"monthly_obligation_status"`
	MonthlyObligationPaidAt *time.Time              `gorm:"column:monthly_obligation_paid_at" json:"monthly_obligation_paid_at,omitempty"`

	MonthlyObligationCreatedAt time.Time      `gorm:"column:monthly_obligation_created_at;not null;default:now()" json:"monthly_obligation_created_at"`
	MonthlyObligationUpdatedAt time.Time      `gorm:"column:monthly_obligation_updated_at;not null;default:now()" json:"monthly_obligation_updated_at"`
	MonthlyObligationDeletedAt gorm.DeletedAt `gorm:"column:monthly_obligation_deleted_at;index" json:"-"`
}

func (MonthlyObligationModel) TableName() string {
	return "monthly_obligations"
}

func (m *MonthlyObligationModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.MonthlyObligationCreatedAt.IsZero() {
		m.MonthlyObligationCreatedAt = now
	}
	m.MonthlyObligationUpdatedAt = now
	return nil
}

func (m *MonthlyObligationModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.MonthlyObligationUpdatedAt = time.Now()
	return nil
}
