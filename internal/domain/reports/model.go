// Package reports provides the gain/loss aggregator and low-stock alerting.
package reports

import (
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

// Sale sources, tagged on every report row.
const (
	SourceIncome = "income"
	SourceDebt   = "debt"
)

// GainLossRow is one sale matched against its cost basis.
type GainLossRow struct {
	Source string `json:"source"`
	SaleID int64  `json:"saleId"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Pcs    int64  `json:"pcs"`

	// CostUnitPrice comes from the first lot (in insertion order) whose name
	// matches the sale; zero when no lot matches.
	CostUnitPrice types.Money `json:"costUnitPrice"`
	TotalCost     types.Money `json:"totalCost"`
	TotalSale     types.Money `json:"totalSale"`
	GainLoss      types.Money `json:"gainLoss"`
}

// GainLossReport is the aggregated result for a period.
type GainLossReport struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	Rows []GainLossRow `json:"rows"`

	TotalCost     types.Money `json:"totalCost"`
	TotalSale     types.Money `json:"totalSale"`
	TotalGainLoss types.Money `json:"totalGainLoss"`
}

// DeficiencyAlert flags a lot whose stock has fallen to its threshold.
type DeficiencyAlert struct {
	Lot *inventory.PurchaseLot `json:"lot"`

	// PcsSold is recomputed from the sale tables for the lot's name. It can
	// disagree with pcs - available_stock after sale edits.
	PcsSold int64 `json:"pcsSold"`
}
