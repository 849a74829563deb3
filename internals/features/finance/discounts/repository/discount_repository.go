// file: internals/features/finance/discounts/repository/discount_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "educenter_backend/internals/features/finance/discounts/model"
)

type GormDiscountStore struct {
	db *gorm.DB
}

func NewGormDiscountStore(db *gorm.DB) *GormDiscountStore {
	return &GormDiscountStore{db: db}
}

func (r *GormDiscountStore) GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error) {
	var row model.StudentGroupDiscountModel
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

// Upsert: satu baris efektif per (student, group); tabrakan unik → update amount.
func (r *GormDiscountStore) Upsert(ctx context.Context, row *model.StudentGroupDiscountModel) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_group_discount_student_id"},
				{Name: "student_group_discount_group_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"student_group_discount_amount":     row.StudentGroupDiscountAmount,
				"student_group_discount_updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(row).Error
}

func (r *GormDiscountStore) List(ctx context.Context, schoolID uuid.UUID, groupID *uuid.UUID, limit, offset int) ([]model.StudentGroupDiscountModel, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.StudentGroupDiscountModel{}).
		Where("student_group_discount_school_id = ?", schoolID)
	if groupID != nil {
		base = base.Where("student_group_discount_group_id = ?", *groupID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.StudentGroupDiscountModel
	if err := base.
		Order("student_group_discount_updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete menghapus baris permanen. Model tanpa DeletedAt: baris mati tidak
// boleh tertinggal di index unik (student, group), karena ON CONFLICT pada
// upsert berikutnya hanya meng-update amount dan diskonnya tidak pernah
// terlihat resolver lagi.
func (r *GormDiscountStore) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("student_group_discount_school_id = ? AND student_group_discount_id = ?", schoolID, id).
		Delete(&model.StudentGroupDiscountModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
