// file: internals/features/payroll/worklogs/model/work_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =========================================================
// MODEL — catatan jam kerja mentor/karyawan. Append-only;
// atribusi periode (bulan, tahun) diturunkan dari work_date
// dan disimpan denormal supaya agregasi per periode murah.
// =========================================================

type WorkLogModel struct {
	// PK
	WorkLogID uuid.UUID `gorm:"column:work_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"work_log_id"`

	// Tenant & pemilik
	WorkLogSchoolID uuid.UUID  `gorm:"column:work_log_school_id;type:uuid;not null;index" json:"work_log_school_id"`
	WorkLogPayeeID  uuid.UUID  `gorm:"column:work_log_payee_id;type:uuid;not null;index:ix_work_log_payee_period,priority:1" json:"work_log_payee_id"`
	WorkLogGroupID  *uuid.UUID `gorm:"column:work_log_group_id;type:uuid;index" json:"work_log_group_id,omitempty"`

	// Isi
	WorkLogWorkDate time.Time       `gorm:"column:work_log_work_date;type:date;not null" json:"work_log_work_date"`
	WorkLogHours    decimal.Decimal `gorm:"column:work_log_hours;type:numeric(6,2);not null;check:work_log_hours>0" json:"work_log_hours"`
	WorkLogNote     string          `gorm:"column:work_log_note;type:text" json:"work_log_note"`

	// Atribusi periode (diturunkan dari work_date)
	WorkLogMonth int16 `gorm:"column:work_log_month;type:smallint;not null;index:ix_work_log_payee_period,priority:2" json:"work_log_month"`
	WorkLogYear  int16 `gorm:"column:work_log_year;type:smallint;not null;index:ix_work_log_payee_period,priority:3" json:"work_log_year"`

	WorkLogCreatedAt time.Time `gorm:"column:work_log_created_at;not null;default:now()" json:"work_log_created_at"`
}

func (WorkLogModel) TableName() string {
	return "work_logs"
}
