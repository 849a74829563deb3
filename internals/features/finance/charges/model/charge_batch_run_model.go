// file: internals/features/finance/charges/model/charge_batch_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ChargeBatchRunModel: audit satu eksekusi ChargeBatch. Batch boleh dipanggil
// ulang kapan saja (idempoten lewat obligation), baris ini cuma jejak operasi.
type ChargeBatchRunModel struct {
	ChargeBatchRunID       uuid.UUID `gorm:"column:charge_batch_run_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"charge_batch_run_id"`
	ChargeBatchRunSchoolID uuid.UUID `gorm:"column:charge_batch_run_school_id;type:uuid;not null;index" json:"charge_batch_run_school_id"`
	ChargeBatchRunGroupID  uuid.UUID `gorm:"column:charge_batch_run_group_id;type:uuid;not null;index" json:"charge_batch_run_group_id"`
	ChargeBatchRunMonth    int16     `gorm:"column:charge_batch_run_month;not null" json:"charge_batch_run_month"`
	ChargeBatchRunYear     int16     `gorm:"column:charge_batch_run_year;not null" json:"charge_batch_run_year"`

	ChargeBatchRunCharged           int `gorm:"column:charge_batch_run_charged;not null;default:0" json:"charge_batch_run_charged"`
	ChargeBatchRunAlreadyCharged    int `gorm:"column:charge_batch_run_already_charged;not null;default:0" json:"charge_batch_run_already_charged"`
	ChargeBatchRunInsufficientFunds int `gorm:"column:charge_batch_run_insufficient_funds;not null;default:0" json:"charge_batch_run_insufficient_funds"`
	ChargeBatchRunZeroPayable       int `gorm:"column:charge_batch_run_zero_payable;not null;default:0" json:"charge_batch_run_zero_payable"`
	ChargeBatchRunFailed            int `gorm:"column:charge_batch_run_failed;not null;default:0" json:"charge_batch_run_failed"`

	// Siswa yang saldo-nya kurang saat run ini (buat follow-up reminder)
	ChargeBatchRunShortfallStudentIDs pq.StringArray `gorm:"column:charge_batch_run_shortfall_student_ids;type:text[]" json:"charge_batch_run_shortfall_student_ids"`

	ChargeBatchRunCreatedAt time.Time `gorm:"column:charge_batch_run_created_at;not null;default:now()" json:"charge_batch_run_created_at"`
}

func (ChargeBatchRunModel) TableName() string {
	return "charge_batch_runs"
}
