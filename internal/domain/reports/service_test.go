package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

type fakeRepo struct {
	lots    []*inventory.PurchaseLot
	incomes []*income.Sale
	debts   []*debt.Debt
	sold    map[string]int64
}

func (f *fakeRepo) ListAllLots(ctx context.Context) ([]*inventory.PurchaseLot, error) {
	return f.lots, nil
}

func inRange(date, start, end string) bool {
	return types.InDateRange(date, start, end)
}

func (f *fakeRepo) ListIncomesInRange(ctx context.Context, start, end string) ([]*income.Sale, error) {
	var out []*income.Sale
	for _, s := range f.incomes {
		if inRange(s.Date, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDebtsInRange(ctx context.Context, start, end string) ([]*debt.Debt, error) {
	var out []*debt.Debt
	for _, d := range f.debts {
		if inRange(d.Date, start, end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) SoldPcsByName(ctx context.Context) (map[string]int64, error) {
	return f.sold, nil
}

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestGainLossMatchesFirstLotByName(t *testing.T) {
	repo := &fakeRepo{
		lots: []*inventory.PurchaseLot{
			{ID: 1, Date: "2026-07-01", Name: "sugar 1kg", Pcs: 50, UnitPrice: money("10")},
			{ID: 2, Date: "2026-07-20", Name: "sugar 1kg", Pcs: 50, UnitPrice: money("12")},
		},
		incomes: []*income.Sale{
			{ID: 1, Date: "2026-08-02", Name: "sugar 1kg", Pcs: 3, UnitPrice: money("15"), TotalPrice: money("45")},
		},
	}
	svc := NewService(repo)

	report, err := svc.GainLoss(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	// the FIRST lot by insertion order prices the cost, even though stock
	// deduction would have hit the latest lot
	assert.True(t, row.CostUnitPrice.Equal(money("10")))
	assert.True(t, row.TotalCost.Equal(money("30")))
	assert.True(t, row.TotalSale.Equal(money("45")))
	assert.True(t, row.GainLoss.Equal(money("15")))
}

func TestGainLossMergesAndSortsByDate(t *testing.T) {
	repo := &fakeRepo{
		lots: []*inventory.PurchaseLot{
			{ID: 1, Date: "2026-07-01", Name: "sugar 1kg", Pcs: 50, UnitPrice: money("10")},
		},
		incomes: []*income.Sale{
			{ID: 1, Date: "2026-08-10", Name: "sugar 1kg", Pcs: 1, UnitPrice: money("15"), TotalPrice: money("15")},
		},
		debts: []*debt.Debt{
			{ID: 1, Date: "2026-08-05", Name: "sugar 1kg", Pcs: 2, UnitPrice: money("14"), TotalPrice: money("28")},
		},
	}
	svc := NewService(repo)

	report, err := svc.GainLoss(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	assert.Equal(t, SourceDebt, report.Rows[0].Source)
	assert.Equal(t, "2026-08-05", report.Rows[0].Date)
	assert.Equal(t, SourceIncome, report.Rows[1].Source)

	assert.True(t, report.TotalSale.Equal(money("43")))
	assert.True(t, report.TotalCost.Equal(money("30")))
	assert.True(t, report.TotalGainLoss.Equal(money("13")))

	// open range defaults
	assert.Equal(t, "1970-01-01", report.StartDate)
	assert.NotEmpty(t, report.EndDate)
}

func TestGainLossUnmatchedNameCostsZero(t *testing.T) {
	repo := &fakeRepo{
		incomes: []*income.Sale{
			{ID: 1, Date: "2026-08-02", Name: "phantom item", Pcs: 2, UnitPrice: money("20"), TotalPrice: money("40")},
		},
	}
	svc := NewService(repo)

	report, err := svc.GainLoss(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].CostUnitPrice.IsZero())
	assert.True(t, report.Rows[0].GainLoss.Equal(money("40")))
}

func TestGainLossFallsBackToUnitPrice(t *testing.T) {
	repo := &fakeRepo{
		incomes: []*income.Sale{
			// legacy rows sometimes miss the stored total
			{ID: 1, Date: "2026-08-02", Name: "x", Pcs: 4, UnitPrice: money("5"), TotalPrice: money("0")},
		},
	}
	svc := NewService(repo)

	report, err := svc.GainLoss(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].TotalSale.Equal(money("20")))
}

func TestGainLossHandlesDateTimes(t *testing.T) {
	repo := &fakeRepo{
		incomes: []*income.Sale{
			{ID: 1, Date: "2026-08-02T14:30:00Z", Name: "x", Pcs: 1, UnitPrice: money("5"), TotalPrice: money("5")},
		},
	}
	svc := NewService(repo)

	report, err := svc.GainLoss(context.Background(), "2026-08-01", "2026-08-02")
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1, "date-time rows compare on the first 10 chars")
}

func TestDeficiencyAlerts(t *testing.T) {
	repo := &fakeRepo{
		lots: []*inventory.PurchaseLot{
			{ID: 1, Name: "a", Pcs: 20, AvailableStock: 2, StockDeficiencyThreshold: 5},
			{ID: 2, Name: "b", Pcs: 20, AvailableStock: 10, StockDeficiencyThreshold: 5},
			{ID: 3, Name: "c", Pcs: 20, AvailableStock: 0, StockDeficiencyThreshold: 3},
			{ID: 4, Name: "d", Pcs: 20, AvailableStock: 1, StockDeficiencyThreshold: 0},
		},
		sold: map[string]int64{"a": 18, "c": 25},
	}
	svc := NewService(repo)

	alerts, err := svc.DeficiencyAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// most depleted first
	assert.Equal(t, "c", alerts[0].Lot.Name)
	assert.Equal(t, int64(25), alerts[0].PcsSold)
	assert.Equal(t, "a", alerts[1].Lot.Name)
	assert.Equal(t, int64(18), alerts[1].PcsSold)
}
