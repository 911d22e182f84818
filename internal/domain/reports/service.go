package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

// defaultStartDate is the lower bound used when the caller leaves the range
// open on the left.
const defaultStartDate = "1970-01-01"

// Service computes ledger reports. Reads only; no transaction required.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GainLoss matches every sale in the period against its cost basis and
// aggregates the result.
//
// The cost lot is the FIRST lot in insertion order whose name matches the
// sale, which is not necessarily the lot the sale's stock came out of (stock
// deduction targets the latest lot). That asymmetry mirrors how the books
// have always been kept and keeps historical reports stable.
func (s *Service) GainLoss(ctx context.Context, startDate, endDate string) (*GainLossReport, error) {
	if startDate == "" {
		startDate = defaultStartDate
	}
	if endDate == "" {
		endDate = types.Today()
	}
	startDate = types.DateKey(startDate)
	endDate = types.DateKey(endDate)

	lots, err := s.repo.ListAllLots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	// first lot per name, insertion order
	costLots := make(map[string]*inventory.PurchaseLot, len(lots))
	for _, lot := range lots {
		if _, seen := costLots[lot.Name]; !seen {
			costLots[lot.Name] = lot
		}
	}

	incomes, err := s.repo.ListIncomesInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	debts, err := s.repo.ListDebtsInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}

	report := &GainLossReport{
		StartDate:     startDate,
		EndDate:       endDate,
		TotalCost:     types.Zero(),
		TotalSale:     types.Zero(),
		TotalGainLoss: types.Zero(),
	}

	for _, sale := range incomes {
		report.Rows = append(report.Rows, buildRow(costLots,
			SourceIncome, sale.ID, sale.Date, sale.Name, sale.Pcs, sale.UnitPrice, sale.TotalPrice))
	}
	for _, d := range debts {
		report.Rows = append(report.Rows, buildRow(costLots,
			SourceDebt, d.ID, d.Date, d.Name, d.Pcs, d.UnitPrice, d.TotalPrice))
	}

	// stable keeps query order on equal dates
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return types.DateKey(report.Rows[i].Date) < types.DateKey(report.Rows[j].Date)
	})

	for _, row := range report.Rows {
		report.TotalCost = report.TotalCost.Add(row.TotalCost)
		report.TotalSale = report.TotalSale.Add(row.TotalSale)
		report.TotalGainLoss = report.TotalGainLoss.Add(row.GainLoss)
	}

	return report, nil
}

func buildRow(costLots map[string]*inventory.PurchaseLot,
	source string, id int64, date, name string, pcs int64,
	unitPrice, totalPrice types.Money,
) GainLossRow {
	costUnit := types.Zero()
	if lot, ok := costLots[name]; ok {
		costUnit = lot.UnitPrice
	}

	totalSale := totalPrice
	if totalSale.IsZero() {
		totalSale = unitPrice.Mul(types.MoneyFromInt(pcs))
	}
	totalCost := costUnit.Mul(types.MoneyFromInt(pcs))

	return GainLossRow{
		Source:        source,
		SaleID:        id,
		Date:          date,
		Name:          name,
		Pcs:           pcs,
		CostUnitPrice: costUnit,
		TotalCost:     totalCost,
		TotalSale:     totalSale,
		GainLoss:      totalSale.Sub(totalCost),
	}
}

// DeficiencyAlerts lists every lot whose stock has fallen to its configured
// threshold, most depleted first. Lots with threshold 0 never alert.
func (s *Service) DeficiencyAlerts(ctx context.Context) ([]DeficiencyAlert, error) {
	lots, err := s.repo.ListAllLots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	sold, err := s.repo.SoldPcsByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum sold pcs: %w", err)
	}

	var alerts []DeficiencyAlert
	for _, lot := range lots {
		if lot.StockDeficiencyThreshold <= 0 {
			continue
		}
		if lot.AvailableStock > lot.StockDeficiencyThreshold {
			continue
		}
		alerts = append(alerts, DeficiencyAlert{
			Lot:     lot,
			PcsSold: sold[lot.Name],
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Lot.AvailableStock < alerts[j].Lot.AvailableStock
	})

	return alerts, nil
}
