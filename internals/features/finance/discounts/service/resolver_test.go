package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedDiscountStore struct {
	amount decimal.Decimal
}

func (f fixedDiscountStore) GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error) {
	return f.amount, nil
}

// tableDiscountStore meniru kontrak tabel diskon: satu baris per
// (student, group), delete menghapus permanen sehingga upsert berikutnya
// insert baris baru, bukan update baris mati.
type tableDiscountStore struct {
	rows map[[2]uuid.UUID]decimal.Decimal
}

func newTableDiscountStore() *tableDiscountStore {
	return &tableDiscountStore{rows: map[[2]uuid.UUID]decimal.Decimal{}}
}

func (s *tableDiscountStore) GetDiscountAmount(ctx context.Context, schoolID, studentID, groupID uuid.UUID) (decimal.Decimal, error) {
	if d, ok := s.rows[[2]uuid.UUID{studentID, groupID}]; ok {
		return d, nil
	}
	return decimal.Zero, nil
}

func (s *tableDiscountStore) Upsert(studentID, groupID uuid.UUID, amount decimal.Decimal) {
	s.rows[[2]uuid.UUID{studentID, groupID}] = amount
}

func (s *tableDiscountStore) Delete(studentID, groupID uuid.UUID) {
	delete(s.rows, [2]uuid.UUID{studentID, groupID})
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestCapDiscount_NeverNegativePayable(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		payable  string
		applied  string
	}{
		{"tanpa diskon", "500", "0", "500", "0"},
		{"diskon normal", "500", "150", "350", "150"},
		{"diskon pas harga", "500", "500", "0", "500"},
		{"diskon melebihi harga", "500", "900", "0", "500"},
		{"harga nol", "0", "100", "0", "0"},
		{"input negatif dinormalkan", "-10", "-5", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CapDiscount(dec(tc.price), dec(tc.discount))
			assert.True(t, got.Payable.Equal(dec(tc.payable)), "payable = %s", got.Payable)
			assert.True(t, got.Discount.Equal(dec(tc.applied)), "discount = %s", got.Discount)
			assert.False(t, got.Payable.IsNegative())
		})
	}
}

func TestPreviewPayable_UsesResolvedDiscount(t *testing.T) {
	r := NewResolver(fixedDiscountStore{amount: dec("150")})

	got, err := r.PreviewPayable(context.Background(), dec("500"), uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, got.Original.Equal(dec("500")))
	assert.True(t, got.Discount.Equal(dec("150")))
	assert.True(t, got.Payable.Equal(dec("350")))
}

// Lifecycle diskon: setelah delete, upsert ulang harus berlaku lagi.
// Baris diskon dihapus permanen; kalau delete hanya menandai baris dan
// index uniknya masih menahan baris mati, upsert berikutnya tidak akan
// pernah terlihat resolver dan diskon hilang diam-diam.
func TestResolve_DeleteThenUpsertAppliesAgain(t *testing.T) {
	ctx := context.Background()
	st := newTableDiscountStore()
	r := NewResolver(st)

	schoolID, studentID, groupID := uuid.New(), uuid.New(), uuid.New()

	st.Upsert(studentID, groupID, dec("150"))
	got, err := r.Resolve(ctx, schoolID, studentID, groupID)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("150")))

	st.Delete(studentID, groupID)
	got, err = r.Resolve(ctx, schoolID, studentID, groupID)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "diskon terhapus harus resolve 0")

	st.Upsert(studentID, groupID, dec("200"))
	got, err = r.Resolve(ctx, schoolID, studentID, groupID)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("200")), "diskon baru harus berlaku, bukan 0")
}
