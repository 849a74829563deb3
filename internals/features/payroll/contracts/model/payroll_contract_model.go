// file: internals/features/payroll/contracts/model/payroll_contract_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe gaji
// =========================================================

type PayrollSalaryType string

const (
	PayrollSalaryTypeFixed      PayrollSalaryType = "fixed"
	PayrollSalaryTypeHourly     PayrollSalaryType = "hourly"
	PayrollSalaryTypePercentage PayrollSalaryType = "percentage"
)

// =========================================================
// MODEL — kontrak gaji mentor / karyawan. Payee persis satu:
// mentor_id ATAU employee_user_id (dijaga service saat create).
// History kontrak dipertahankan; resolver yang memilih mana
// yang berlaku untuk satu periode payroll.
// =========================================================

type PayrollContractModel struct {
	// PK
	PayrollContractID uuid.UUID `gorm:"column:payroll_contract_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_contract_id"`

	// Tenant
	PayrollContractSchoolID uuid.UUID `gorm:"column:payroll_contract_school_id;type:uuid;not null;index" json:"payroll_contract_school_id"`

	// Payee — persis satu yang terisi
	PayrollContractMentorID       *uuid.UUID `gorm:"column:payroll_contract_mentor_id;type:uuid;index" json:"payroll_contract_mentor_id,omitempty"`
	PayrollContractEmployeeUserID *uuid.UUID `gorm:"column:payroll_contract_employee_user_id;type:uuid;index" json:"payroll_contract_employee_user_id,omitempty"`

	// Skema gaji
	PayrollContractSalaryType        PayrollSalaryType `gorm:"column:payroll_contract_salary_type;type:varchar(20);not null" json:"payroll_contract_salary_type"`
	PayrollContractFixedAmount       decimal.Decimal   `gorm:"column:payroll_contract_fixed_amount;type:numeric(18,2);not null;default:0" json:"payroll_contract_fixed_amount"`
	PayrollContractHourlyRate        decimal.Decimal   `gorm:"column:payroll_contract_hourly_rate;type:numeric(18,2);not null;default:0" json:"payroll_contract_hourly_rate"`
	PayrollContractStudentPercentage decimal.Decimal   `gorm:"column:payroll_contract_student_percentage;type:numeric(5,2);not null;default:0" json:"payroll_contract_student_percentage"`

	// Jendela berlaku
	PayrollContractEffectiveFrom time.Time  `gorm:"column:payroll_contract_effective_from;type:date;not null;index" json:"payroll_contract_effective_from"`
	PayrollContractEffectiveTo   *time.Time `gorm:"column:payroll_contract_effective_to;type:date" json:"payroll_contract_effective_to,omitempty"`
	PayrollContractIsActive      bool       `gorm:"column:payroll_contract_is_active;not null;default:true;index" json:"payroll_contract_is_active"`

	// Audit
	PayrollContractCreatedAt time.Time      `gorm:"column:payroll_contract_created_at;not null;default:now()" json:"payroll_contract_created_at"`
	PayrollContractUpdatedAt time.Time      `gorm:"column:payroll_contract_updated_at;not null;default:now()" json:"payroll_contract_updated_at"`
	PayrollContractDeletedAt gorm.DeletedAt `gorm:"column:payroll_contract_deleted_at;index" json:"-"`
}

func (PayrollContractModel) TableName() string {
	return "payroll_contracts"
}

func (m *PayrollContractModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	m.PayrollContractCreatedAt = now
	m.PayrollContractUpdatedAt = now
	return nil
}

func (m *PayrollContractModel) BeforeUpdate(tx *gorm.DB) error {
	m.PayrollContractUpdatedAt = time.Now()
	return nil
}

// PayeeID mengembalikan id payee mana pun yang terisi.
func (m *PayrollContractModel) PayeeID() uuid.UUID {
	if m.PayrollContractMentorID != nil {
		return *m.PayrollContractMentorID
	}
	if m.PayrollContractEmployeeUserID != nil {
		return *m.PayrollContractEmployeeUserID
	}
	return uuid.Nil
}
