// file: internals/features/finance/discounts/model/student_group_discount_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Satu baris diskon berlaku per (school, student, group); update menimpa
// baris yang sama (updated_at bergeser). Baris dihapus permanen, bukan
// soft delete: index unik (student, group) tidak boleh menahan baris mati
// yang membuat upsert berikutnya diam-diam tidak berlaku. Cap terhadap
// harga grup dilakukan resolver, bukan di sini.
type StudentGroupDiscountModel struct {
	// PK
	StudentGroupDiscountID uuid.UUID `gorm:"column:student_group_discount_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_group_discount_id"`

	// Tenant
	StudentGroupDiscountSchoolID uuid.UUID `gorm:"column:student_group_discount_school_id;type:uuid;not null;index" json:"student_group_discount_school_id"`

	StudentGroupDiscountStudentID uuid.UUID `gorm:"column:student_group_discount_student_id;type:uuid;not null;uniqueIndex:uniq_discount_student_group,priority:1" json:"student_group_discount_student_id"`
	StudentGroupDiscountGroupID   uuid.UUID `gorm:"column:student_group_discount_group_id;type:uuid;not null;uniqueIndex:uniq_discount_student_group,priority:2" json:"student_group_discount_group_id"`

	StudentGroupDiscountAmount decimal.Decimal `gorm:"column:student_group_discount_amount;type:numeric(18,2);not null;check:student_group_discount_amount>=0" json:"student_group_discount_amount"`

	StudentGroupDiscountCreatedAt time.Time `gorm:"column:student_group_discount_created_at;not null;default:now()" json:"student_group_discount_created_at"`
	StudentGroupDiscountUpdatedAt time.Time `gorm:"column:student_group_discount_updated_at;not null;default:now()" json:"student_group_discount_updated_at"`
}

func (StudentGroupDiscountModel) TableName() string {
	return "student_group_discounts"
}

func (m *StudentGroupDiscountModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.StudentGroupDiscountCreatedAt.IsZero() {
		m.StudentGroupDiscountCreatedAt = now
	}
	m.StudentGroupDiscountUpdatedAt = now
	return nil
}

func (m *StudentGroupDiscountModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentGroupDiscountUpdatedAt = time.Now()
	return nil
}
