package service

import (
	"fmt"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// BuildTopUpOrderID membentuk order id gateway untuk satu intent top-up.
func BuildTopUpOrderID(accountCode string) string {
	return fmt.Sprintf("topup-%s-%s", accountCode, uuid.NewString())
}

// GenerateTopUpSnapToken membuat token Snap untuk top-up wallet siswa.
// Saldo baru dikredit saat webhook settlement masuk, bukan di sini.
func GenerateTopUpSnapToken(orderID string, amount decimal.Decimal, payerName, payerEmail string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}
