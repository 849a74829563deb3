// file: internals/features/finance/wallet/repository/wallet_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "educenter_backend/internals/features/finance/wallet/model"
	service "educenter_backend/internals/features/finance/wallet/service"
)

// GormStore implementasi service.Store di atas Postgres. Di dalam Tx, baris
// akun dibaca dengan FOR UPDATE supaya operasi per akun terserialisasi.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (r *GormStore) Tx(ctx context.Context, fn func(service.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}

func (r *GormStore) scope(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (r *GormStore) GetAccountByCode(ctx context.Context, schoolID uuid.UUID, code string) (*model.StudentAccountModel, error) {
	var acc model.StudentAccountModel
	err := r.scope(ctx).
		Where("student_account_school_id = ? AND student_account_code = ?", schoolID, code).
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *GormStore) GetAccountByStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*model.StudentAccountModel, error) {
	var acc model.StudentAccountModel
	err := r.scope(ctx).
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

func (r *GormStore) CreateAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *GormStore) SaveAccount(ctx context.Context, acc *model.StudentAccountModel) error {
	return r.db.WithContext(ctx).Save(acc).Error
}

func (r *GormStore) AppendLog(ctx context.Context, row *model.AccountLogModel) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *GormStore) SumLogs(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.AccountLogModel{}).
		Select("COALESCE(SUM(account_log_amount), 0)").
		Where("account_log_account_id = ?", accountID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormStore) ListLogs(ctx context.Context, schoolID, accountID uuid.UUID, limit, offset int) ([]model.AccountLogModel, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.AccountLogModel{}).
		Where("account_log_school_id = ? AND account_log_account_id = ?", schoolID, accountID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AccountLogModel
	if err := base.
		Order("account_log_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormStore) HasLogWithOrderID(ctx context.Context, schoolID uuid.UUID, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AccountLogModel{}).
		Where("account_log_school_id = ? AND account_log_metadata->>'order_id' = ?", schoolID, orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
