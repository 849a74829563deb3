// file: internals/features/notifications/model/notification_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationLogKind string

const (
	NotificationLogKindTopUp             NotificationLogKind = "topup"
	NotificationLogKindCharge            NotificationLogKind = "charge"
	NotificationLogKindInsufficientFunds NotificationLogKind = "insufficient_funds"
)

type NotificationLogModel struct {
	NotificationLogID        uuid.UUID           `gorm:"column:notification_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_log_id"`
	NotificationLogSchoolID  uuid.UUID           `gorm:"column:notification_log_school_id;type:uuid;not null;index" json:"notification_log_school_id"`
	NotificationLogStudentID uuid.UUID           `gorm:"column:notification_log_student_id;type:uuid;not null;index" json:"notification_log_student_id"`
	NotificationLogKind      NotificationLogKind `gorm:"column:notification_log_kind;type:varchar(30);not null;index" json:"notification_log_kind"`
	NotificationLogPayload   datatypes.JSONMap   `gorm:"column:notification_log_payload;type:jsonb" json:"notification_log_payload"`

	NotificationLogCreatedAt time.Time `gorm:"column:notification_log_created_at;not null;default:now()" json:"notification_log_created_at"`
}

func (NotificationLogModel) TableName() string {
	return "notification_logs"
}
