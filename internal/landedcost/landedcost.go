package landedcost

import (
	"fmt"

	"reverse-auction-coordinator/internal/currency"
	model "reverse-auction-coordinator/internal/models"

	"github.com/shopspring/decimal"
)

// percentBase converts a duty percentage into a multiplier.
var percentBase = decimal.NewFromInt(100)

// ComputeTotalCost derives the single comparable settlement-currency
// cost of a bid: goods amount + freight-on-board + duty + tax, summed
// in the bid currency and converted once. Duty is flat unless
// DutyPercent is set, in which case it is Duty percent of
// (amount + fob). The result is strictly monotonic in Amount and FOB,
// which is what makes the improvement-only rule enforceable.
func ComputeTotalCost(c model.BidComponents, settlementCurrency string, rates currency.RateTable) (decimal.Decimal, error) {
	duty := c.Duty
	if c.DutyPercent {
		duty = c.Amount.Add(c.FOB).Mul(c.Duty).Div(percentBase)
	}

	subtotal := c.Amount.Add(c.FOB).Add(duty).Add(c.Tax)

	total, err := currency.Convert(subtotal, c.Currency, settlementCurrency, rates)
	if err != nil {
		return decimal.Zero, fmt.Errorf("compute total cost: %w", err)
	}
	return total, nil
}
