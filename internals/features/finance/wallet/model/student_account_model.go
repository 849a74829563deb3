// file: internals/features/finance/wallet/model/student_account_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — satu wallet per siswa, dibuat saat onboarding,
// tidak pernah dihapus (hanya dinonaktifkan).
// =========================================================

type StudentAccountModel struct {
	// PK
	StudentAccountID uuid.UUID `gorm:"column:student_account_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_account_id"`

	// Tenant
	StudentAccountSchoolID uuid.UUID `gorm:"column:student_account_school_id;type:uuid;not null;index:ix_student_account_school" json:"student_account_school_id"`

	// FK → students (satu akun per siswa)
	StudentAccountStudentID uuid.UUID `gorm:"column:student_account_student_id;type:uuid;not null;uniqueIndex:uniq_account_student" json:"student_account_student_id"`

	// Kode 6 digit, unik, gampang disebut via telpon/WA
	StudentAccountCode string `gorm:"column:student_account_code;type:varchar(6);not null;uniqueIndex:uniq_account_code" json:"student_account_code"`

	// Saldo ter-materialisasi; kebenaran tetap di account_logs.
	// Invariant: balance == SUM(account_logs.amount), balance >= 0.
	StudentAccountBalance decimal.Decimal `gorm:"column:student_account_balance;type:numeric(18,2);not null;default:0;check:student_account_balance>=0" json:"student_account_balance"`

	StudentAccountIsActive bool `gorm:"column:student_account_is_active;not null;default:true;index" json:"student_account_is_active"`

	// Timestamps (eksplisit)
	StudentAccountCreatedAt time.Time      `gorm:"column:student_account_created_at;not null;default:now()" json:"student_account_created_at"`
	StudentAccountUpdatedAt time.Time      `gorm:"column:student_account_updated_at;not null;default:now()" json:"student_account_updated_at"`
	StudentAccountDeletedAt gorm.DeletedAt `gorm:"column:student_account_deleted_at;index" json:"-"`
}

func (StudentAccountModel) TableName() string {
	return "student_accounts"
}

func (m *StudentAccountModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.StudentAccountCreatedAt.IsZero() {
		m.StudentAccountCreatedAt = now
	}
	m.StudentAccountUpdatedAt = now
	return nil
}

func (m *StudentAccountModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentAccountUpdatedAt = time.Now()
	return nil
}
