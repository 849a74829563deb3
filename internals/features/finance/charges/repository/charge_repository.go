// file: internals/features/finance/charges/repository/charge_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "educenter_backend/internals/features/finance/charges/model"
	service "educenter_backend/internals/features/finance/charges/service"
	discountModel "educenter_backend/internals/features/finance/discounts/model"
	walletModel "educenter_backend/internals/features/finance/wallet/model"
)

// GormChargeStore menyatukan tabel obligation, grup, diskon, dan wallet dalam
// satu implementasi supaya seluruh langkah charge jalan di transaksi yang sama.
type GormChargeStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormChargeStore(db *gorm.DB) *GormChargeStore {
	return &GormChargeStore{db: db}
}

func (r *GormChargeStore) Tx(ctx context.Context, fn func(service.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormChargeStore{db: tx, inTx: true})
	})
}

/* =============== grup & keanggotaan =============== */

func (r *GormChargeStore) GetGroup(ctx context.Context, schoolID, groupID uuid.UUID) (*model.GroupModel, error) {
	var g model.GroupModel
	err := r.db.WithContext(ctx).
		Where("group_school_id = ? AND group_id = ?", schoolID, groupID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GormChargeStore) IsMembershipActive(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StudentGroupModel{}).
		Where("student_group_school_id = ? AND student_group_student_id = ? AND student_group_group_id = ? AND student_group_is_active = TRUE",
			schoolID, studentID, groupID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormChargeStore) ListActiveMemberStudentIDs(ctx context.Context, schoolID, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.StudentGroupModel{}).
		Where("student_group_school_id = ? AND student_group_group_id = ? AND student_group_is_active = TRUE",
			schoolID, groupID).
		Pluck("student_group_student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

/* =============== diskon =============== */

func (r *GormChargeStore) GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error) {
	var row discountModel.StudentGroupDiscountModel
	err := r.db.WithContext(ctx).
		Where("student_group_discount_school_id = ? AND student_group_discount_student_id = ? AND student_group_discount_group_id = ?",
			schoolID, studentID, groupID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.StudentGroupDiscountAmount, nil
}

/* =============== obligation =============== */

// Di dalam transaksi, row obligation ikut dikunci supaya dua retry konkuren
// untuk kunci yang sama terserialisasi.
func (r *GormChargeStore) GetObligation(ctx context.Context, schoolID, studentID, groupID uuid.UUID, month, year int16) (*model.MonthlyObligationModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row model.MonthlyObligationModel
	err := q.
		Where("monthly_obligation_school_id = ? AND monthly_obligation_student_id = ? AND monthly_obligation_group_id = ? AND monthly_obligation_month = ? AND monthly_obligation_year = ?",
			schoolID, studentID, groupID, month, year).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormChargeStore) CreateObligation(ctx context.Context, row *model.MonthlyObligationModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormChargeStore) SaveObligation(ctx context.Context, row *model.MonthlyObligationModel) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *GormChargeStore) SaveBatchRun(ctx context.Context, row *model.ChargeBatchRunModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

/* =============== wallet (walletsvc.ChargeStore) =============== */

func (r *GormChargeStore) GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*walletModel.StudentAccountModel, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var acc walletModel.StudentAccountModel
	err := q.
		Where("student_account_school_id = ? AND student_account_student_id = ?", schoolID, studentID).
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *GormChargeStore) SaveAccount(ctx context.Context, acc *walletModel.StudentAccountModel) error {
	return r.db.WithContext(ctx).Save(acc).Error
}

func (r *GormChargeStore) AppendLog(ctx context.Context, row *walletModel.AccountLogModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}
