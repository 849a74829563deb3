// file: internals/features/finance/discounts/service/resolver.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountStore dibaca resolver; implementasi gorm di repository, fake di test.
type DiscountStore interface {
	GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error)
}

type Resolver struct {
	store DiscountStore
}

func NewResolver(store DiscountStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve mengembalikan diskon berlaku saat ini, 0 kalau tidak ada.
func (r *Resolver) Resolve(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error) {
	return r.store.GetDiscountAmount(ctx, schoolID, studentID, groupID)
}

type PayablePreview struct {
	Original decimal.Decimal `json:"original"`
	Discount decimal.Decimal `json:"discount"`
	Payable  decimal.Decimal `json:"payable"`
}

// PreviewPayable menghitung tagihan efektif. Diskon selalu di-cap harga:
// payable tidak pernah negatif.
func (r *Resolver) PreviewPayable(ctx context.Context, price decimal.Decimal, schoolID, studentID, groupID uuid.UUID) (PayablePreview, error) {
	resolved, err := r.Resolve(ctx, schoolID, studentID, groupID)
	if err != nil {
		return PayablePreview{}, err
	}
	return CapDiscount(price, resolved), nil
}

// CapDiscount adalah inti aritmetika diskon, dipisah supaya bisa dipakai
// charge processor dalam transaksinya sendiri tanpa resolver.
func CapDiscount(price, discount decimal.Decimal) PayablePreview {
	if price.LessThan(decimal.Zero) {
		price = decimal.Zero
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	applied := discount
	if applied.GreaterThan(price) {
		applied = price
	}
	return PayablePreview{
		Original: price,
		Discount: applied,
		Payable:  price.Sub(applied),
	}
}
