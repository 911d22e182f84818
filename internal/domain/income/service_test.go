package income

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStock struct {
	deducted  int64
	restored  int64
	deductErr error
}

func (f *fakeStock) DeductForSale(ctx context.Context, name string, pcs int64) (*inventory.PurchaseLot, error) {
	if f.deductErr != nil {
		return nil, f.deductErr
	}
	f.deducted += pcs
	return &inventory.PurchaseLot{Name: name}, nil
}

func (f *fakeStock) RestoreForSale(ctx context.Context, name string, pcs int64) error {
	f.restored += pcs
	return nil
}

type fakeRepo struct {
	sales  map[int64]*Sale
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sales: make(map[int64]*Sale)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Sale) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.sales[s.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, apperror.NewNotFound("income", id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, s *Sale) error {
	if _, ok := f.sales[s.ID]; !ok {
		return apperror.NewNotFound("income", s.ID)
	}
	cp := *s
	f.sales[s.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error) {
	out := domain.ListResult[*Sale]{Limit: filter.Limit, Offset: filter.Offset}
	for _, s := range f.sales {
		cp := *s
		out.Items = append(out.Items, &cp)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (f *fakeRepo) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	s, ok := f.sales[id]
	if !ok {
		return apperror.NewNotFound("income", id)
	}
	s.ReceiptNumber = number
	return nil
}

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestCreateDeductsStockAndAssignsReceipt(t *testing.T) {
	repo := newFakeRepo()
	stock := &fakeStock{}
	svc := NewService(repo, stock, noopTxManager{})

	sale := &Sale{Date: "2026-08-10", Name: "sugar 1kg", Pcs: 3, UnitPrice: money("15")}
	require.NoError(t, svc.Create(context.Background(), sale))

	assert.True(t, sale.TotalPrice.Equal(money("45")))
	assert.Equal(t, "SALE-000001", sale.ReceiptNumber)
	assert.Equal(t, int64(3), stock.deducted)

	got, err := repo.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "SALE-000001", got.ReceiptNumber)
}

func TestCreateInsufficientStockLeavesNoSale(t *testing.T) {
	repo := newFakeRepo()
	stock := &fakeStock{deductErr: apperror.NewInsufficientStock("sugar 1kg", 3, 1)}
	svc := NewService(repo, stock, noopTxManager{})

	sale := &Sale{Date: "2026-08-10", Name: "sugar 1kg", Pcs: 3, UnitPrice: money("15")}
	err := svc.Create(context.Background(), sale)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Empty(t, repo.sales)
}

func TestUpdateDoesNotTouchStock(t *testing.T) {
	repo := newFakeRepo()
	stock := &fakeStock{}
	svc := NewService(repo, stock, noopTxManager{})

	sale := &Sale{Date: "2026-08-10", Name: "sugar 1kg", Pcs: 3, UnitPrice: money("15")}
	require.NoError(t, svc.Create(context.Background(), sale))
	deductedAfterCreate := stock.deducted

	sale.Pcs = 5
	require.NoError(t, svc.Update(context.Background(), sale))

	got, err := repo.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(money("75")), "total recomputed")
	assert.Equal(t, deductedAfterCreate, stock.deducted, "stock untouched by the edit")
	assert.Equal(t, int64(0), stock.restored)
	assert.Equal(t, "SALE-000001", got.ReceiptNumber, "receipt number survives edits")
}

func TestDeleteRestoresStock(t *testing.T) {
	repo := newFakeRepo()
	stock := &fakeStock{}
	svc := NewService(repo, stock, noopTxManager{})

	sale := &Sale{Date: "2026-08-10", Name: "sugar 1kg", Pcs: 3, UnitPrice: money("15")}
	require.NoError(t, svc.Create(context.Background(), sale))
	require.NoError(t, svc.Delete(context.Background(), sale.ID))

	assert.Equal(t, int64(3), stock.restored)
	_, err := repo.GetByID(context.Background(), sale.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestValidateRejectsBadSales(t *testing.T) {
	tests := []struct {
		name string
		sale Sale
	}{
		{"empty name", Sale{Date: "2026-08-10", Pcs: 1, UnitPrice: money("1")}},
		{"bad date", Sale{Date: "yesterday", Name: "x", Pcs: 1, UnitPrice: money("1")}},
		{"zero pcs", Sale{Date: "2026-08-10", Name: "x", Pcs: 0, UnitPrice: money("1")}},
		{"negative price", Sale{Date: "2026-08-10", Name: "x", Pcs: 1, UnitPrice: money("-2")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sale.Validate(context.Background())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
