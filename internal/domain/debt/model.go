// Package debt provides credit sales and their repayments.
//
// A debt is a sale whose price is only partially paid at the counter. The
// unpaid part is tracked in balance_owed; repayments move money from
// balance_owed into amount_payable_now until the debt is settled.
package debt

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

// Status is derived from balance_owed; it is never persisted.
type Status string

const (
	StatusOpen          Status = "open"
	StatusPartiallyPaid Status = "partially_paid"
	StatusSettled       Status = "settled"
)

// Debt represents one credit sale.
type Debt struct {
	ID   int64  `db:"id" json:"id"`
	Date string `db:"date" json:"date"`
	Name string `db:"name" json:"name"`
	Pcs  int64  `db:"pcs" json:"pcs"`

	// Monetary snapshot, fixed at write time. TotalPrice = Pcs * UnitPrice.
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// AmountPayableNow is the paid part, BalanceOwed the unpaid remainder.
	// BalanceOwed = TotalPrice - AmountPayableNow, and BalanceOwed >= 0.
	AmountPayableNow types.Money `db:"amount_payable_now" json:"amountPayableNow"`
	BalanceOwed      types.Money `db:"balance_owed" json:"balanceOwed"`

	ClientName  string `db:"client_name" json:"clientName"`
	ClientPhone string `db:"client_phone" json:"clientPhone"`
	SellerName  string `db:"seller_name" json:"sellerName"`

	ReceiptNumber string `db:"receipt_number" json:"receiptNumber"`
}

// Status derives the debt state from the outstanding balance.
func (d *Debt) Status() Status {
	switch {
	case d.BalanceOwed.IsZero() || d.BalanceOwed.IsNegative():
		return StatusSettled
	case d.AmountPayableNow.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusOpen
	}
}

// Validate checks debt invariants before persisting.
func (d *Debt) Validate(ctx context.Context) error {
	if d.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}
	if !types.ValidDate(d.Date) {
		return apperror.NewValidation("date must start with YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", d.Date)
	}
	if d.Pcs <= 0 {
		return apperror.NewValidation("pcs must be positive").
			WithDetail("field", "pcs")
	}
	if d.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if d.AmountPayableNow.IsNegative() {
		return apperror.NewValidation("amount payable now must not be negative").
			WithDetail("field", "amountPayableNow")
	}
	if d.AmountPayableNow.GreaterThan(d.TotalPrice) {
		return apperror.NewValidation("amount payable now must not exceed the total price").
			WithDetail("field", "amountPayableNow")
	}
	return nil
}

// Repayment represents one payment against a debt.
type Repayment struct {
	ID            int64       `db:"id" json:"id"`
	DebtID        int64       `db:"debt_id" json:"debtId"`
	PaymentDate   string      `db:"payment_date" json:"paymentDate"`
	Amount        types.Money `db:"amount" json:"amount"`
	ReceiptNumber string      `db:"receipt_number" json:"receiptNumber"`
}

// Validate checks repayment invariants before persisting.
func (r *Repayment) Validate(ctx context.Context) error {
	if !r.Amount.IsPositive() {
		return apperror.NewValidation("repayment amount must be positive").
			WithDetail("field", "amount")
	}
	if !types.ValidDate(r.PaymentDate) {
		return apperror.NewValidation("payment date must start with YYYY-MM-DD").
			WithDetail("field", "paymentDate").
			WithDetail("value", r.PaymentDate)
	}
	return nil
}
