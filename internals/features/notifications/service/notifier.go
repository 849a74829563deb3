// file: internals/features/notifications/service/notifier.go
package service

import (
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "educenter_backend/internals/features/notifications/model"
)

// Notifier adalah kolaborator fire-and-forget: kegagalan kirim tidak boleh
// menggagalkan operasi finansial pemanggilnya.
type Notifier interface {
	NotifyTopUp(schoolID, studentID uuid.UUID, amount, newBalance decimal.Decimal)
	NotifyCharge(schoolID, studentID, groupID uuid.UUID, amount, newBalance decimal.Decimal)
	NotifyInsufficientFunds(schoolID, studentID, groupID uuid.UUID, shortfall decimal.Decimal, accountCode string)
}

// LogNotifier menulis event ke notification_logs + log aplikasi.
// Dispatch ke channel sebenarnya (WA/email) dilakukan worker terpisah.
type LogNotifier struct {
	DB *gorm.DB
}

func NewLogNotifier(db *gorm.DB) *LogNotifier {
	return &LogNotifier{DB: db}
}

func (n *LogNotifier) NotifyTopUp(schoolID, studentID uuid.UUID, amount, newBalance decimal.Decimal) {
	n.record(schoolID, studentID, model.NotificationLogKindTopUp, datatypes.JSONMap{
		"amount":      amount.String(),
		"new_balance": newBalance.String(),
	})
}

func (n *LogNotifier) NotifyCharge(schoolID, studentID, groupID uuid.UUID, amount, newBalance decimal.Decimal) {
	n.record(schoolID, studentID, model.NotificationLogKindCharge, datatypes.JSONMap{
		"group_id":    groupID.String(),
		"amount":      amount.String(),
		"new_balance": newBalance.String(),
	})
}

func (n *LogNotifier) NotifyInsufficientFunds(schoolID, studentID, groupID uuid.UUID, shortfall decimal.Decimal, accountCode string) {
	n.record(schoolID, studentID, model.NotificationLogKindInsufficientFunds, datatypes.JSONMap{
		"group_id":     groupID.String(),
		"shortfall":    shortfall.String(),
		"account_code": accountCode,
	})
}

func (n *LogNotifier) record(schoolID, studentID uuid.UUID, kind model.NotificationLogKind, payload datatypes.JSONMap) {
	row := model.NotificationLogModel{
		NotificationLogSchoolID:  schoolID,
		NotificationLogStudentID: studentID,
		NotificationLogKind:      kind,
		NotificationLogPayload:   payload,
	}
	if err := n.DB.Create(&row).Error; err != nil {
		log.Printf("[NOTIFY ERROR] Gagal catat notifikasi %s: %v", kind, err)
	}
}
