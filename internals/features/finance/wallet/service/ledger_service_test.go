package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "educenter_backend/internals/features/finance/wallet/model"
	helper "educenter_backend/internals/helpers"
)

/* =============== fake store =============== */

var errCodeTaken = errors.New(`duplicate key value violates unique constraint "uq_student_account_code"`)

type fakeStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*model.StudentAccountModel
	logs     []model.AccountLogModel
	codes    map[string]uuid.UUID

	txCount        int // jumlah boundary Tx yang dibuka
	dupNextCreates int // paksa n insert berikutnya kena pelanggaran unik
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: map[uuid.UUID]*model.StudentAccountModel{},
		codes:    map[string]uuid.UUID{},
	}
}

func (f *fakeStore) Tx(ctx context.Context, fn func(Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCount++
	return fn((*fakeStoreTx)(f))
}

// fakeStoreTx adalah store yang "sudah di dalam transaksi": tidak mengunci lagi.
type fakeStoreTx fakeStore

func (f *fakeStoreTx) Tx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStoreTx) GetAccountByCode(ctx context.Context, schoolID uuid.UUID, code string) (*model.StudentAccountModel, error) {
	id, ok := f.codes[code]
	if !ok {
		return nil, nil
	}
	acc := f.accounts[id]
	if acc == nil || acc.StudentAccountSchoolID != schoolID {
		return nil, nil
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeStoreTx) GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error) {
	for _, acc := range f.accounts {
		if acc.StudentAccountSchoolID == schoolID && acc.StudentAccountStudentID == studentID {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreTx) CreateAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	if f.dupNextCreates > 0 {
		f.dupNextCreates--
		return errCodeTaken
	}
	if _, dup := f.codes[acc.StudentAccountCode]; dup {
		return errCodeTaken
	}
	acc.StudentAccountID = uuid.New()
	cp := *acc
	f.accounts[acc.StudentAccountID] = &cp
	f.codes[acc.StudentAccountCode] = acc.StudentAccountID
	return nil
}

func (f *fakeStoreTx) SaveAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	cp := *acc
	f.accounts[acc.StudentAccountID] = &cp
	return nil
}

func (f *fakeStoreTx) AppendLog(ctx context.Context, row *model.AccountLogModel) error {
	row.AccountLogID = uuid.New()
	f.logs = append(f.logs, *row)
	return nil
}

func (f *fakeStoreTx) SumLogs(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range f.logs {
		if l.AccountLogAccountID == accountID {
			sum = sum.Add(l.AccountLogAmount)
		}
	}
	return sum, nil
}

func (f *fakeStoreTx) ListLogs(ctx context.Context, schoolID, accountID uuid.UUID, limit, offset int) ([]model.AccountLogModel, int64, error) {
	var rows []model.AccountLogModel
	for _, l := range f.logs {
		if l.AccountLogAccountID == accountID {
			rows = append(rows, l)
		}
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeStoreTx) HasLogWithOrderID(ctx context.Context, schoolID uuid.UUID, orderID string) (bool, error) {
	for _, l := range f.logs {
		if l.AccountLogMetadata != nil {
			if v, ok := l.AccountLogMetadata["order_id"].(string); ok && v == orderID {
				return true, nil
			}
		}
	}
	return false, nil
}

// store di luar transaksi: delegasi dengan lock
func (f *fakeStore) GetAccountByCode(ctx context.Context, schoolID uuid.UUID, code string) (*model.StudentAccountModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).GetAccountByCode(ctx, schoolID, code)
}

func (f *fakeStore) GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).GetAccountByStudent(ctx, schoolID, studentID)
}

func (f *fakeStore) CreateAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).CreateAccount(ctx, acc)
}

func (f *fakeStore) SaveAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).SaveAccount(ctx, acc)
}

func (f *fakeStore) AppendLog(ctx context.Context, row *model.AccountLogModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).AppendLog(ctx, row)
}

func (f *fakeStore) SumLogs(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).SumLogs(ctx, accountID)
}

func (f *fakeStore) ListLogs(ctx context.Context, schoolID, accountID uuid.UUID, limit, offset int) ([]model.AccountLogModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).ListLogs(ctx, schoolID, accountID, limit, offset)
}

func (f *fakeStore) HasLogWithOrderID(ctx context.Context, schoolID uuid.UUID, orderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (*fakeStoreTx)(f).HasLogWithOrderID(ctx, schoolID, orderID)
}

/* =============== noop notifier =============== */

type noopNotifier struct{}

func (noopNotifier) NotifyTopUp(schoolID, studentID uuid.UUID, amount, newBalance decimal.Decimal) {}
func (noopNotifier) NotifyCharge(schoolID, studentID, groupID uuid.UUID, amount, newBalance decimal.Decimal) {
}
func (noopNotifier) NotifyInsufficientFunds(schoolID, studentID, groupID uuid.UUID, shortfall decimal.Decimal, accountCode string) {
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

/* =============== tests =============== */

func TestTopUpWithdraw_BalanceEqualsSumOfLogs(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	svc := NewLedgerService(st, noopNotifier{})

	schoolID := uuid.New()
	acc, err := svc.CreateAccount(ctx, schoolID, uuid.New())
	require.NoError(t, err)
	require.Len(t, acc.StudentAccountCode, 6)

	_, err = svc.TopUp(ctx, schoolID, acc.StudentAccountCode, dec("500"), "cash", "", nil)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, schoolID, acc.StudentAccountCode, dec("120.50"), "refund", nil)
	require.NoError(t, err)
	_, err = svc.TopUp(ctx, schoolID, acc.StudentAccountCode, dec("30"), "", "", nil)
	require.NoError(t, err)

	cur, err := svc.GetByCode(ctx, schoolID, acc.StudentAccountCode)
	require.NoError(t, err)
	sum, err := st.SumLogs(ctx, cur.StudentAccountID)
	require.NoError(t, err)

	assert.True(t, cur.StudentAccountBalance.Equal(dec("409.50")), "balance = %s", cur.StudentAccountBalance)
	assert.True(t, cur.StudentAccountBalance.Equal(sum), "balance %s != sum logs %s", cur.StudentAccountBalance, sum)
}

// Tabrakan kode akun harus di-retry di transaksi baru: di Postgres,
// pelanggaran unik membatalkan seluruh transaksi, jadi retry di dalam
// transaksi yang sama tidak pernah bisa sukses.
func TestCreateAccount_CodeCollisionRetriesInFreshTx(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	st.dupNextCreates = 2
	svc := NewLedgerService(st, noopNotifier{})

	acc, err := svc.CreateAccount(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.Len(t, acc.StudentAccountCode, 6)
	assert.Equal(t, 3, st.txCount, "2 attempt gagal + 1 sukses, masing-masing transaksi sendiri")

	// kehabisan attempt → conflict, bukan loop tak berujung
	st2 := newFakeStore()
	st2.dupNextCreates = 5
	_, err = NewLedgerService(st2, noopNotifier{}).CreateAccount(ctx, uuid.New(), uuid.New())
	require.ErrorIs(t, err, helper.ErrConflict)
	assert.Equal(t, 5, st2.txCount)
}

func TestTopUp_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(newFakeStore(), noopNotifier{})

	_, err := svc.TopUp(ctx, uuid.New(), "123456", dec("0"), "", "", nil)
	require.Error(t, err)
	_, err = svc.TopUp(ctx, uuid.New(), "123456", dec("-5"), "", "", nil)
	require.Error(t, err)
}

func TestWithdraw_InsufficientBalanceLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	svc := NewLedgerService(st, noopNotifier{})

	schoolID := uuid.New()
	acc, err := svc.CreateAccount(ctx, schoolID, uuid.New())
	require.NoError(t, err)
	_, err = svc.TopUp(ctx, schoolID, acc.StudentAccountCode, dec("100"), "", "", nil)
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, schoolID, acc.StudentAccountCode, dec("100.01"), "", nil)
	require.Error(t, err)

	cur, err := svc.GetByCode(ctx, schoolID, acc.StudentAccountCode)
	require.NoError(t, err)
	assert.True(t, cur.StudentAccountBalance.Equal(dec("100")))

	_, total, err := svc.ListLogs(ctx, schoolID, acc.StudentAccountCode, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "hanya log top-up yang boleh ada")
}

func TestWebhook_DuplicateSettlementCreditsOnce(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	svc := NewLedgerService(st, noopNotifier{})

	schoolID := uuid.New()
	acc, err := svc.CreateAccount(ctx, schoolID, uuid.New())
	require.NoError(t, err)

	body := map[string]interface{}{
		"order_id":           "topup-" + acc.StudentAccountCode + "-" + uuid.NewString(),
		"transaction_status": "settlement",
		"gross_amount":       "250",
	}
	require.NoError(t, svc.HandleTopUpStatusWebhook(ctx, schoolID, body))
	require.NoError(t, svc.HandleTopUpStatusWebhook(ctx, schoolID, body)) // retry gateway

	cur, err := svc.GetByCode(ctx, schoolID, acc.StudentAccountCode)
	require.NoError(t, err)
	assert.True(t, cur.StudentAccountBalance.Equal(dec("250")), "saldo %s", cur.StudentAccountBalance)
}

func TestConcurrentTopUps_SameAccountStaysConsistent(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	svc := NewLedgerService(st, noopNotifier{})

	schoolID := uuid.New()
	acc, err := svc.CreateAccount(ctx, schoolID, uuid.New())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.TopUp(ctx, schoolID, acc.StudentAccountCode, dec("10"), "", "", nil)
		}()
	}
	wg.Wait()

	cur, err := svc.GetByCode(ctx, schoolID, acc.StudentAccountCode)
	require.NoError(t, err)
	sum, err := st.SumLogs(ctx, cur.StudentAccountID)
	require.NoError(t, err)
	assert.True(t, cur.StudentAccountBalance.Equal(dec("200")))
	assert.True(t, sum.Equal(dec("200")))
}
