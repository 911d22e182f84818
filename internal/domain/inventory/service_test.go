package inventory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo mimics the guarded UPDATE: DeductStock only succeeds while
// available_stock covers the requested pcs, under a lock like the row lock
// the postgres repo takes.
type fakeRepo struct {
	mu     sync.Mutex
	lots   map[int64]*PurchaseLot
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lots: make(map[int64]*PurchaseLot)}
}

func (f *fakeRepo) Create(ctx context.Context, lot *PurchaseLot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	lot.ID = f.nextID
	cp := *lot
	f.lots[lot.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*PurchaseLot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot, ok := f.lots[id]
	if !ok {
		return nil, apperror.NewNotFound("purchase lot", id)
	}
	cp := *lot
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, lot *PurchaseLot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lots[lot.ID]; !ok {
		return apperror.NewNotFound("purchase lot", lot.ID)
	}
	cp := *lot
	f.lots[lot.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lots, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PurchaseLot], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := domain.ListResult[*PurchaseLot]{Limit: filter.Limit, Offset: filter.Offset}
	var ids []int64
	for id := range f.lots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		cp := *f.lots[id]
		out.Items = append(out.Items, &cp)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (f *fakeRepo) latestByName(name string) *PurchaseLot {
	var latest *PurchaseLot
	for _, lot := range f.lots {
		if lot.Name != name {
			continue
		}
		if latest == nil || lot.ID > latest.ID {
			latest = lot
		}
	}
	return latest
}

func (f *fakeRepo) GetLatestByNameForUpdate(ctx context.Context, name string) (*PurchaseLot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot := f.latestByName(name)
	if lot == nil {
		return nil, apperror.NewNotFound("purchase lot", name)
	}
	cp := *lot
	return &cp, nil
}

func (f *fakeRepo) DeductStock(ctx context.Context, lotID, pcs int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot, ok := f.lots[lotID]
	if !ok || lot.AvailableStock < pcs {
		return false, nil
	}
	lot.AvailableStock -= pcs
	return true, nil
}

func (f *fakeRepo) RestoreStock(ctx context.Context, name string, pcs int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot := f.latestByName(name)
	if lot == nil {
		return false, nil
	}
	lot.AvailableStock += pcs
	return true, nil
}

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestCreateInitializesCounters(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})

	lot := &PurchaseLot{Date: "2026-08-01", Name: "sugar 1kg", Pcs: 20, UnitPrice: money("12.50")}
	require.NoError(t, svc.Create(context.Background(), lot))

	assert.Equal(t, int64(20), lot.AvailableStock)
	assert.True(t, lot.TotalAmount.Equal(money("250")))
}

func TestDeductForSalePicksLatestLot(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})

	older := NewPurchaseLot("2026-08-01", "sugar 1kg", 5, money("10"))
	newer := NewPurchaseLot("2026-08-10", "sugar 1kg", 8, money("12"))
	require.NoError(t, svc.Create(context.Background(), older))
	require.NoError(t, svc.Create(context.Background(), newer))

	lot, err := svc.DeductForSale(context.Background(), "sugar 1kg", 3)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, lot.ID)
	assert.Equal(t, int64(5), lot.AvailableStock)

	got, err := repo.GetByID(context.Background(), older.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.AvailableStock, "older lot untouched")
}

func TestDeductForSaleInsufficientStockLeavesNoTrace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})

	lot := NewPurchaseLot("2026-08-01", "sugar 1kg", 3, money("10"))
	require.NoError(t, svc.Create(context.Background(), lot))

	_, err := svc.DeductForSale(context.Background(), "sugar 1kg", 10)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(10), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])

	got, err := repo.GetByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.AvailableStock)
}

func TestDeductForSaleUnknownName(t *testing.T) {
	svc := NewService(newFakeRepo(), noopTxManager{})

	_, err := svc.DeductForSale(context.Background(), "no such item", 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConcurrentDeductSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})

	lot := NewPurchaseLot("2026-08-01", "sugar 1kg", 5, money("10"))
	require.NoError(t, svc.Create(context.Background(), lot))

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.DeductForSale(context.Background(), "sugar 1kg", 5)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.True(t, apperror.IsInsufficientStock(err))
		}
	}
	assert.Equal(t, 1, won, "exactly one sale may drain the lot")

	got, err := repo.GetByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.AvailableStock)
}

func TestRestoreForSaleSkipsMissingLot(t *testing.T) {
	svc := NewService(newFakeRepo(), noopTxManager{})

	// lot deleted after the sale: restore is a silent no-op
	assert.NoError(t, svc.RestoreForSale(context.Background(), "gone", 4))
}

func TestValidateRejectsBadLots(t *testing.T) {
	tests := []struct {
		name string
		lot  PurchaseLot
	}{
		{"empty name", PurchaseLot{Date: "2026-08-01", Pcs: 1, UnitPrice: money("1")}},
		{"bad date", PurchaseLot{Date: "08/01/2026", Name: "x", Pcs: 1, UnitPrice: money("1")}},
		{"zero pcs", PurchaseLot{Date: "2026-08-01", Name: "x", Pcs: 0, UnitPrice: money("1")}},
		{"negative price", PurchaseLot{Date: "2026-08-01", Name: "x", Pcs: 1, UnitPrice: money("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lot.Validate(context.Background())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
