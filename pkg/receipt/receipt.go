// Package receipt provides ledger receipt numbering.
//
// Numbers derive from the row id assigned by the store, so they are unique
// without a separate sequence table: "REPAY-000042" is repayment 42.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefixes per ledger entity.
const (
	PrefixSale      = "SALE"
	PrefixDebt      = "DEBT"
	PrefixRepayment = "REPAY"
)

// width is the zero-padded digit count.
const width = 6

// Format builds a receipt number from a prefix and a row id.
func Format(prefix string, id int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, id)
}

// Sale returns the receipt number for a cash sale.
func Sale(id int64) string { return Format(PrefixSale, id) }

// Debt returns the receipt number for a credit sale.
func Debt(id int64) string { return Format(PrefixDebt, id) }

// Repayment returns the receipt number for a debt repayment.
func Repayment(id int64) string { return Format(PrefixRepayment, id) }

// Parse splits a receipt number back into prefix and id.
func Parse(number string) (string, int64, error) {
	idx := strings.LastIndex(number, "-")
	if idx <= 0 || idx == len(number)-1 {
		return "", 0, fmt.Errorf("malformed receipt number %q", number)
	}
	id, err := strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed receipt number %q: %w", number, err)
	}
	return number[:idx], id, nil
}
