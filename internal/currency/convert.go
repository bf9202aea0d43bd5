package currency

import (
	"fmt"

	"reverse-auction-coordinator/internal/auctionerrors"

	"github.com/shopspring/decimal"
)

// displayPrecision is applied only when formatting amounts for humans.
// Ranking and reserve comparisons always use the unrounded value.
const displayPrecision int32 = 2

// RateTable maps a currency code to its rate relative to one shared
// reference currency. The reference currency itself must carry rate 1.
type RateTable map[string]decimal.Decimal

// RateProvider supplies the current rate table to the bid flow.
type RateProvider interface {
	Rates() RateTable
}

// Convert converts amount between two currencies via the reference
// currency: amount / rate[from] * rate[to]. Conversion between a
// currency and itself is the identity regardless of table contents.
func Convert(amount decimal.Decimal, from, to string, rates RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("convert %s to %s: %q: %w", from, to, from, auctionerrors.ErrUnknownCurrency)
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("convert %s to %s: %q: %w", from, to, to, auctionerrors.ErrUnknownCurrency)
	}

	return amount.Div(fromRate).Mul(toRate), nil
}

// Display rounds an amount to two decimal places for presentation.
func Display(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(displayPrecision)
}
