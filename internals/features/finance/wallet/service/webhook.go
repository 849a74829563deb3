package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	model "educenter_backend/internals/features/finance/wallet/model"
)

// HandleTopUpStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Order id dicek dulu di metadata log supaya settlement yang dikirim ulang
// tidak mengkredit saldo dua kali.
func (s *LedgerService) HandleTopUpStatusWebhook(ctx context.Context, schoolID uuid.UUID, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	grossAmt, ok3 := body["gross_amount"].(string)

	if !ok1 || !ok2 || !ok3 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	switch status {
	case "capture", "settlement":
		// order id format: topup-<accountCode>-<uuid>
		parts := strings.SplitN(orderID, "-", 3)
		if len(parts) != 3 || parts[0] != "topup" {
			return fmt.Errorf("order_id %s bukan order top-up", orderID)
		}
		code := parts[1]

		amount, err := decimal.NewFromString(grossAmt)
		if err != nil {
			return fmt.Errorf("gross_amount tidak valid: %v", err)
		}

		return s.store.Tx(ctx, func(st Store) error {
			seen, err := st.HasLogWithOrderID(ctx, schoolID, orderID)
			if err != nil {
				return err
			}
			if seen {
				log.Println("[INFO] Webhook duplikat, order sudah dikredit:", orderID)
				return nil
			}

			acc, err := st.GetAccountByCode(ctx, schoolID, code)
			if err != nil || acc == nil || !acc.StudentAccountIsActive {
				return fmt.Errorf("akun %s tidak ditemukan untuk order %s", code, orderID)
			}

			row := &model.AccountLogModel{
				AccountLogSchoolID:  schoolID,
				AccountLogAccountID: acc.StudentAccountID,
				AccountLogAmount:    amount,
				AccountLogType:      model.AccountLogTypeTopUp,
				AccountLogNote:      "Top-up via Midtrans",
				AccountLogMetadata: datatypes.JSONMap{
					"order_id": orderID,
					"gateway":  "midtrans",
					"status":   status,
				},
			}
			if err := st.AppendLog(ctx, row); err != nil {
				return err
			}
			acc.StudentAccountBalance = acc.StudentAccountBalance.Add(amount)
			if err := st.SaveAccount(ctx, acc); err != nil {
				return err
			}
			s.notifier.NotifyTopUp(schoolID, acc.StudentAccountStudentID, amount, acc.StudentAccountBalance)
			return nil
		})

	case "expire", "cancel", "deny":
		log.Println("[INFO] Order tidak jadi dibayar:", orderID, status)
		return nil
	default:
		log.Println("[INFO] Status tidak diproses:", status)
		return nil
	}
}
