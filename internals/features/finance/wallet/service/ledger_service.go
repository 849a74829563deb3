// file: internals/features/finance/wallet/service/ledger_service.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	model "educenter_backend/internals/features/finance/wallet/model"
	notif "educenter_backend/internals/features/notifications/service"
	helper "educenter_backend/internals/helpers"
)

// Store adalah pintu tunggal ke tabel student_accounts + account_logs.
// Implementasi gorm mengunci baris akun (FOR UPDATE) selama Tx sehingga
// operasi per akun terserialisasi; fake in-memory dipakai di test.
type Store interface {
	// Tx menjalankan fn dalam satu boundary transaksi; fn menerima Store
	// yang terikat ke transaksi tersebut. Semua mutasi saldo wajib lewat Tx.
	Tx(ctx context.Context, fn func(Store) error) error

	GetAccountByCode(ctx context.Context, schoolID uuid.UUID, code string) (*model.StudentAccountModel, error)
	GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error)
	CreateAccount(ctx context.Context, acc *model.StudentAccountModel) error
	SaveAccount(ctx context.Context, acc *model.StudentAccountModel) error

	AppendLog(ctx context.Context, row *model.AccountLogModel) error
	SumLogs(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	ListLogs(ctx context.Context, schoolID, accountID uuid.UUID, limit, offset int) ([]model.AccountLogModel, int64, error)
	HasLogWithOrderID(ctx context.Context, schoolID uuid.UUID, orderID string) (bool, error)
}

// ChargeStore adalah subset Store yang dibutuhkan primitive Charge; charge
// processor menyuplai store transaksinya sendiri supaya debit ledger dan
// pencatatan obligation berada dalam satu transaksi.
type ChargeStore interface {
	GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error)
	SaveAccount(ctx context.Context, acc *model.StudentAccountModel) error
	AppendLog(ctx context.Context, row *model.AccountLogModel) error
}

type LedgerService struct {
	store    Store
	notifier notif.Notifier
}

func NewLedgerService(store Store, notifier notif.Notifier) *LedgerService {
	return &LedgerService{store: store, notifier: notifier}
}

/* ======================= ONBOARDING ======================= */

// CreateAccount dipanggil saat onboarding siswa. Kode akun 6 digit digenerate
// acak. Pelanggaran unik membatalkan seluruh transaksi di Postgres, jadi tiap
// attempt memakai transaksi sendiri dan retry berjalan di luar boundary Tx.
func (s *LedgerService) CreateAccount(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate := &model.StudentAccountModel{
			StudentAccountSchoolID:  schoolID,
			StudentAccountStudentID: studentID,
			StudentAccountCode:      randomAccountCode(),
			StudentAccountBalance:   decimal.Zero,
			StudentAccountIsActive:  true,
		}
		err := s.store.Tx(ctx, func(st Store) error {
			if existing, err := st.GetAccountByStudent(ctx, schoolID, studentID); err == nil && existing != nil {
				return fmt.Errorf("%w: akun untuk siswa ini sudah ada", helper.ErrConflict)
			}
			return st.CreateAccount(ctx, candidate)
		})
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, helper.ErrConflict) || !isDuplicateErr(err) {
			return nil, err
		}
		// kode tabrakan, coba kode lain di transaksi baru
	}
	return nil, fmt.Errorf("%w: gagal memperoleh kode akun unik", helper.ErrConflict)
}

// Deactivate menonaktifkan akun tanpa menghapus; history ledger tetap utuh.
func (s *LedgerService) Deactivate(ctx context.Context, schoolID uuid.UUID, code string) error {
	return s.store.Tx(ctx, func(st Store) error {
		acc, err := st.GetAccountByCode(ctx, schoolID, code)
		if err != nil || acc == nil {
			return fmt.Errorf("%w: akun tidak ditemukan", helper.ErrNotFound)
		}
		acc.StudentAccountIsActive = false
		return st.SaveAccount(ctx, acc)
	})
}

/* ======================= MUTASI SALDO ======================= */

// TopUp menambah saldo. Satu transaksi: append log + update saldo.
func (s *LedgerService) TopUp(ctx context.Context, schoolID uuid.UUID, code string, amount decimal.Decimal, method, note string, performedBy *uuid.UUID) (*model.AccountLogModel, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: jumlah top-up harus > 0", helper.ErrValidation)
	}

	var row *model.AccountLogModel
	var acc *model.StudentAccountModel
	err := s.store.Tx(ctx, func(st Store) error {
		var err error
		acc, err = st.GetAccountByCode(ctx, schoolID, code)
		if err != nil || acc == nil || !acc.StudentAccountIsActive {
			return fmt.Errorf("%w: akun tidak ditemukan atau nonaktif", helper.ErrNotFound)
		}

		noteStr := note
		if noteStr == "" {
			noteStr = "Top-up saldo"
		}
		meta := datatypes.JSONMap{}
		if method != "" {
			meta["method"] = method
		}
		row = &model.AccountLogModel{
			AccountLogSchoolID:    schoolID,
			AccountLogAccountID:   acc.StudentAccountID,
			AccountLogAmount:      amount,
			AccountLogType:        model.AccountLogTypeTopUp,
			AccountLogNote:        noteStr,
			AccountLogPerformedBy: performedBy,
			AccountLogMetadata:    meta,
		}
		if err := st.AppendLog(ctx, row); err != nil {
			return err
		}
		acc.StudentAccountBalance = acc.StudentAccountBalance.Add(amount)
		return st.SaveAccount(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	// fire-and-forget
	s.notifier.NotifyTopUp(schoolID, acc.StudentAccountStudentID, amount, acc.StudentAccountBalance)
	return row, nil
}

// Withdraw mengurangi saldo (refund tunai / koreksi keluar).
func (s *LedgerService) Withdraw(ctx context.Context, schoolID uuid.UUID, code string, amount decimal.Decimal, reason string, performedBy *uuid.UUID) (*model.AccountLogModel, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: jumlah penarikan harus > 0", helper.ErrValidation)
	}

	var row *model.AccountLogModel
	err := s.store.Tx(ctx, func(st Store) error {
		acc, err := st.GetAccountByCode(ctx, schoolID, code)
		if err != nil || acc == nil || !acc.StudentAccountIsActive {
			return fmt.Errorf("%w: akun tidak ditemukan atau nonaktif", helper.ErrNotFound)
		}
		if acc.StudentAccountBalance.LessThan(amount) {
			return fmt.Errorf("%w: saldo %s kurang dari %s", helper.ErrInsufficientBalance,
				acc.StudentAccountBalance.String(), amount.String())
		}

		noteStr := reason
		if noteStr == "" {
			noteStr = "Penarikan saldo"
		}
		row = &model.AccountLogModel{
			AccountLogSchoolID:    schoolID,
			AccountLogAccountID:   acc.StudentAccountID,
			AccountLogAmount:      amount.Neg(),
			AccountLogType:        model.AccountLogTypeAdjustment,
			AccountLogNote:        noteStr,
			AccountLogPerformedBy: performedBy,
		}
		if err := st.AppendLog(ctx, row); err != nil {
			return err
		}
		acc.StudentAccountBalance = acc.StudentAccountBalance.Sub(amount)
		return st.SaveAccount(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ApplyCharge adalah primitive debit internal untuk charge processor. Harus
// dipanggil dari dalam transaksi pemanggil (st sudah tx-bound); guard saldo
// sama dengan Withdraw.
func ApplyCharge(ctx context.Context, st ChargeStore, schoolID, studentID uuid.UUID, amount decimal.Decimal, note string) (*model.AccountLogModel, *model.StudentAccountModel, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: jumlah charge harus > 0", helper.ErrValidation)
	}
	acc, err := st.GetAccountByStudent(ctx, schoolID, studentID)
	if err != nil || acc == nil || !acc.StudentAccountIsActive {
		return nil, nil, fmt.Errorf("%w: akun siswa tidak ditemukan atau nonaktif", helper.ErrNotFound)
	}
	if acc.StudentAccountBalance.LessThan(amount) {
		return nil, acc, fmt.Errorf("%w: saldo %s kurang dari tagihan %s", helper.ErrInsufficientBalance,
			acc.StudentAccountBalance.String(), amount.String())
	}

	row := &model.AccountLogModel{
		AccountLogSchoolID:  schoolID,
		AccountLogAccountID: acc.StudentAccountID,
		AccountLogAmount:    amount.Neg(),
		AccountLogType:      model.AccountLogTypeMonthlyCharge,
		AccountLogNote:      note,
	}
	if err := st.AppendLog(ctx, row); err != nil {
		return nil, acc, err
	}
	acc.StudentAccountBalance = acc.StudentAccountBalance.Sub(amount)
	if err := st.SaveAccount(ctx, acc); err != nil {
		return nil, acc, err
	}
	return row, acc, nil
}

/* ======================= READ ======================= */

func (s *LedgerService) GetByCode(ctx context.Context, schoolID uuid.UUID, code string) (*model.StudentAccountModel, error) {
	acc, err := s.store.GetAccountByCode(ctx, schoolID, code)
	if err != nil || acc == nil {
		return nil, fmt.Errorf("%w: akun tidak ditemukan", helper.ErrNotFound)
	}
	return acc, nil
}

func (s *LedgerService) ListLogs(ctx context.Context, schoolID uuid.UUID, code string, limit, offset int) ([]model.AccountLogModel, int64, error) {
	acc, err := s.GetByCode(ctx, schoolID, code)
	if err != nil {
		return nil, 0, err
	}
	return s.store.ListLogs(ctx, schoolID, acc.StudentAccountID, limit, offset)
}

// VerifyBalance membandingkan saldo ter-materialisasi dengan SUM(log).
// Dipakai endpoint audit; selisih berarti bug serius.
func (s *LedgerService) VerifyBalance(ctx context.Context, schoolID uuid.UUID, code string) (bool, decimal.Decimal, decimal.Decimal, error) {
	acc, err := s.GetByCode(ctx, schoolID, code)
	if err != nil {
		return false, decimal.Zero, decimal.Zero, err
	}
	sum, err := s.store.SumLogs(ctx, acc.StudentAccountID)
	if err != nil {
		return false, decimal.Zero, decimal.Zero, err
	}
	ok := acc.StudentAccountBalance.Equal(sum)
	if !ok {
		log.Printf("[LEDGER ERROR] Saldo akun %s drift: balance=%s sum_logs=%s",
			acc.StudentAccountCode, acc.StudentAccountBalance, sum)
	}
	return ok, acc.StudentAccountBalance, sum, nil
}

/* ======================= util ======================= */

func randomAccountCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
