// file: internals/features/finance/charges/service/charge_processor.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "educenter_backend/internals/features/finance/charges/model"
	discountsvc "educenter_backend/internals/features/finance/discounts/service"
	walletsvc "educenter_backend/internals/features/finance/wallet/service"
	notif "educenter_backend/internals/features/notifications/service"
	helper "educenter_backend/internals/helpers"
)

/* =============== OUTCOME =============== */

type ChargeOutcome string

const (
	OutcomeCharged           ChargeOutcome = "charged"
	OutcomeAlreadyCharged    ChargeOutcome = "already_charged"
	OutcomeZeroPayable       ChargeOutcome = "zero_payable"
	OutcomeInsufficientFunds ChargeOutcome = "insufficient_funds"
	OutcomeGroupInactive     ChargeOutcome = "group_inactive"
)

type ChargeResult struct {
	Outcome    ChargeOutcome                 `json:"outcome"`
	Obligation *model.MonthlyObligationModel `json:"obligation,omitempty"`
	Shortfall  decimal.Decimal               `json:"shortfall"`
}

type BatchResult struct {
	Charged           int `json:"charged"`
	AlreadyCharged    int `json:"already_charged"`
	InsufficientFunds int `json:"insufficient_funds"`
	ZeroPayable       int `json:"zero_payable"`
	Failed            int `json:"failed"`
}

/* =============== STORE =============== */

// Store menggabungkan semua tabel yang disentuh satu transaksi charge:
// obligation + grup/keanggotaan + diskon + primitive ledger wallet.
type Store interface {
	Tx(ctx context.Context, fn func(Store) error) error

	GetGroup(ctx context.Context, schoolID, groupID uuid.UUID) (*model.GroupModel, error)
	IsMembershipActive(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (bool, error)
	ListActiveMemberStudentIDs(ctx context.Context, schoolID, groupID uuid.UUID) ([]uuid.UUID, error)

	GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error)

	GetObligation(ctx context.Context, schoolID, studentID, groupID uuid.UUID, month, year int16) (*model.MonthlyObligationModel, error)
	CreateObligation(ctx context.Context, row *model.MonthlyObligationModel) error
	SaveObligation(ctx context.Context, row *model.MonthlyObligationModel) error
	SaveBatchRun(ctx context.Context, row *model.ChargeBatchRunModel) error

	walletsvc.ChargeStore
}

type ChargeProcessor struct {
	store    Store
	notifier notif.Notifier
}

func NewChargeProcessor(store Store, notifier notif.Notifier) *ChargeProcessor {
	return &ChargeProcessor{store: store, notifier: notifier}
}

/* =============== CHARGE PER SISWA =============== */

// ChargeMonthly menagih SPP satu siswa untuk (grup, bulan, tahun).
// Idempoten: kunci obligation unik; attempt kedua → AlreadyCharged.
// Seluruh langkah (klaim obligation → hitung payable → debit ledger)
// berjalan dalam satu transaksi; gagal di tengah = tidak ada mutasi.
func (p *ChargeProcessor) ChargeMonthly(ctx context.Context, schoolID, studentID, groupID uuid.UUID, month, year int16) (ChargeResult, error) {
	if month < 1 || month > 12 {
		return ChargeResult{}, fmt.Errorf("%w: bulan harus 1..12", helper.ErrValidation)
	}

	var res ChargeResult
	var notifyFn func()

	err := p.store.Tx(ctx, func(st Store) error {
		// 1) Sudah pernah ditagih? Obligation yang sudah lunas (paid/zero)
		//    tidak boleh ditagih dua kali; yang masih unpaid boleh di-retry
		//    (mis. setelah siswa top-up).
		existing, err := st.GetObligation(ctx, schoolID, studentID, groupID, month, year)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.MonthlyObligationStatus != model.MonthlyObligationStatusUnpaid {
				res = ChargeResult{Outcome: OutcomeAlreadyCharged, Obligation: existing}
				return nil
			}

			outstanding := existing.MonthlyObligationOriginalAmount.
				Sub(existing.MonthlyObligationDiscountAmount).
				Sub(existing.MonthlyObligationPaidAmount)
			if outstanding.LessThanOrEqual(decimal.Zero) {
				res = ChargeResult{Outcome: OutcomeAlreadyCharged, Obligation: existing}
				return nil
			}

			note := fmt.Sprintf("MonthlyCharge:%d/%d:%s", month, year, groupID)
			_, acc, err := walletsvc.ApplyCharge(ctx, st, schoolID, studentID, outstanding, note)
			if err != nil {
				if errors.Is(err, helper.ErrInsufficientBalance) {
					res = ChargeResult{Outcome: OutcomeInsufficientFunds, Obligation: existing, Shortfall: outstanding}
					if acc != nil {
						code := acc.StudentAccountCode
						notifyFn = func() {
							p.notifier.NotifyInsufficientFunds(schoolID, studentID, groupID, outstanding, code)
						}
					}
					return nil
				}
				return err
			}

			existing.MonthlyObligationPaidAmount = existing.MonthlyObligationPaidAmount.Add(outstanding)
			existing.MonthlyObligationStatus = model.MonthlyObligationStatusPaid
			now := time.Now()
			existing.MonthlyObligationPaidAt = &now
			if err := st.SaveObligation(ctx, existing); err != nil {
				return err
			}

			newBalance := acc.StudentAccountBalance
			notifyFn = func() {
				p.notifier.NotifyCharge(schoolID, studentID, groupID, outstanding, newBalance)
			}
			res = ChargeResult{Outcome: OutcomeCharged, Obligation: existing}
			return nil
		}

		// 2) Grup & keanggotaan harus aktif
		group, err := st.GetGroup(ctx, schoolID, groupID)
		if err != nil {
			return err
		}
		if group == nil || !group.GroupIsActive {
			res = ChargeResult{Outcome: OutcomeGroupInactive}
			return nil
		}
		active, err := st.IsMembershipActive(ctx, schoolID, studentID, groupID)
		if err != nil {
			return err
		}
		if !active {
			res = ChargeResult{Outcome: OutcomeGroupInactive}
			return nil
		}

		// 3) Hitung payable (diskon di-cap harga)
		discount, err := st.GetDiscountAmount(ctx, schoolID, studentID, groupID)
		if err != nil {
			return err
		}
		preview := discountsvc.CapDiscount(group.GroupPrice, discount)

		obligation := &model.MonthlyObligationModel{
			MonthlyObligationSchoolID:       schoolID,
			MonthlyObligationStudentID:      studentID,
			MonthlyObligationGroupID:        groupID,
			MonthlyObligationMonth:          month,
			MonthlyObligationYear:           year,
			MonthlyObligationOriginalAmount: preview.Original,
			MonthlyObligationDiscountAmount: preview.Discount,
			MonthlyObligationPaidAmount:     decimal.Zero,
		}

		// 4) Full diskon → obligation selesai tanpa mutasi ledger
		if preview.Payable.IsZero() {
			obligation.MonthlyObligationStatus = model.MonthlyObligationStatusZero
			now := time.Now()
			obligation.MonthlyObligationPaidAt = &now
			if err := st.CreateObligation(ctx, obligation); err != nil {
				if isDuplicateErr(err) {
					return errAbortAlreadyCharged
				}
				return err
			}
			res = ChargeResult{Outcome: OutcomeZeroPayable, Obligation: obligation}
			return nil
		}

		// 5) Klaim kunci obligation dulu, baru debit; duplikat = attempt
		//    konkuren yang kalah → seluruh transaksi di-rollback
		obligation.MonthlyObligationStatus = model.MonthlyObligationStatusUnpaid
		if err := st.CreateObligation(ctx, obligation); err != nil {
			if isDuplicateErr(err) {
				return errAbortAlreadyCharged
			}
			return err
		}

		note := fmt.Sprintf("MonthlyCharge:%d/%d:%s", month, year, groupID)
		_, acc, err := walletsvc.ApplyCharge(ctx, st, schoolID, studentID, preview.Payable, note)
		if err != nil {
			if errors.Is(err, helper.ErrInsufficientBalance) {
				// obligation tetap tercatat unpaid; ledger tidak tersentuh
				res = ChargeResult{
					Outcome:    OutcomeInsufficientFunds,
					Obligation: obligation,
					Shortfall:  preview.Payable,
				}
				if acc != nil {
					code := acc.StudentAccountCode
					shortfall := preview.Payable
					notifyFn = func() {
						p.notifier.NotifyInsufficientFunds(schoolID, studentID, groupID, shortfall, code)
					}
				}
				return nil
			}
			return err
		}

		obligation.MonthlyObligationPaidAmount = preview.Payable
		obligation.MonthlyObligationStatus = model.MonthlyObligationStatusPaid
		now := time.Now()
		obligation.MonthlyObligationPaidAt = &now
		if err := st.SaveObligation(ctx, obligation); err != nil {
			return err
		}

		newBalance := acc.StudentAccountBalance
		paid := preview.Payable
		notifyFn = func() {
			p.notifier.NotifyCharge(schoolID, studentID, groupID, paid, newBalance)
		}
		res = ChargeResult{Outcome: OutcomeCharged, Obligation: obligation}
		return nil
	})
	if errors.Is(err, errAbortAlreadyCharged) {
		// transaksi attempt yang kalah sudah di-rollback; laporkan pemenang
		winner, gerr := p.store.GetObligation(ctx, schoolID, studentID, groupID, month, year)
		if gerr != nil {
			return ChargeResult{}, gerr
		}
		return ChargeResult{Outcome: OutcomeAlreadyCharged, Obligation: winner}, nil
	}
	if err != nil {
		return ChargeResult{}, err
	}

	// fire-and-forget, setelah commit
	if notifyFn != nil {
		notifyFn()
	}
	return res, nil
}

// errAbortAlreadyCharged membatalkan transaksi attempt yang kalah di kunci
// obligation; pemanggil membaca row pemenang setelah rollback.
var errAbortAlreadyCharged = errors.New("already charged, rollback claim")

/* =============== BATCH =============== */

// ChargeBatch menagih semua anggota aktif satu grup. Kegagalan per siswa
// tidak menghentikan batch; hasil agregat + daftar siswa kurang saldo
// dicatat sebagai audit run.
func (p *ChargeProcessor) ChargeBatch(ctx context.Context, schoolID, groupID uuid.UUID, month, year int16) (BatchResult, error) {
	studentIDs, err := p.store.ListActiveMemberStudentIDs(ctx, schoolID, groupID)
	if err != nil {
		return BatchResult{}, err
	}

	var agg BatchResult
	var shortfallIDs []string
loop:
	for _, studentID := range studentIDs {
		res, err := p.ChargeMonthly(ctx, schoolID, studentID, groupID, month, year)
		if err != nil {
			agg.Failed++
			log.Printf("[BILLING ERROR] Gagal charge siswa %s grup %s: %v", studentID, groupID, err)
			continue
		}
		switch res.Outcome {
		case OutcomeCharged:
			agg.Charged++
		case OutcomeAlreadyCharged:
			agg.AlreadyCharged++
		case OutcomeInsufficientFunds:
			agg.InsufficientFunds++
			shortfallIDs = append(shortfallIDs, studentID.String())
		case OutcomeZeroPayable:
			agg.ZeroPayable++
		case OutcomeGroupInactive:
			// grup nonaktif: sisanya tidak bisa ditagih, tapi audit run
			// tetap ditulis dengan hasil sejauh ini
			break loop
		}
	}

	run := &model.ChargeBatchRunModel{
		ChargeBatchRunSchoolID:            schoolID,
		ChargeBatchRunGroupID:             groupID,
		ChargeBatchRunMonth:               month,
		ChargeBatchRunYear:                year,
		ChargeBatchRunCharged:             agg.Charged,
		ChargeBatchRunAlreadyCharged:      agg.AlreadyCharged,
		ChargeBatchRunInsufficientFunds:   agg.InsufficientFunds,
		ChargeBatchRunZeroPayable:         agg.ZeroPayable,
		ChargeBatchRunFailed:              agg.Failed,
		ChargeBatchRunShortfallStudentIDs: shortfallIDs,
	}
	if err := p.store.SaveBatchRun(ctx, run); err != nil {
		log.Printf("[BILLING ERROR] Gagal simpan audit batch run: %v", err)
	}
	return agg, nil
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
