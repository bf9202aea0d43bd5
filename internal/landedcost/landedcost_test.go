package landedcost

import (
	"errors"
	"testing"

	"reverse-auction-coordinator/internal/auctionerrors"
	"reverse-auction-coordinator/internal/currency"
	model "reverse-auction-coordinator/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testRates() currency.RateTable {
	return currency.RateTable{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.9"),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Tests ComputeTotalCost
func TestComputeTotalCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		components model.BidComponents
		settlement string
		want       string
		wantError  error
	}{
		{
			name: "flat_duty_same_currency",
			components: model.BidComponents{
				Amount: dec("100"), Currency: "USD", FOB: dec("20"), Tax: dec("5"), Duty: dec("10"),
			},
			settlement: "USD",
			want:       "135",
		},
		{
			name: "percent_duty_same_currency",
			components: model.BidComponents{
				// duty = 10% of (100 + 20) = 12
				Amount: dec("100"), Currency: "USD", FOB: dec("20"), Tax: dec("5"), Duty: dec("10"), DutyPercent: true,
			},
			settlement: "USD",
			want:       "137",
		},
		{
			name: "converted_to_settlement_currency",
			components: model.BidComponents{
				// subtotal 135 EUR -> 150 USD at 0.9
				Amount: dec("100"), Currency: "EUR", FOB: dec("20"), Tax: dec("5"), Duty: dec("10"),
			},
			settlement: "USD",
			want:       "150",
		},
		{
			name: "unknown_bid_currency",
			components: model.BidComponents{
				Amount: dec("100"), Currency: "GBP",
			},
			settlement: "USD",
			wantError:  auctionerrors.ErrUnknownCurrency,
		},
		{
			name: "zero_extras",
			components: model.BidComponents{
				Amount: dec("250"), Currency: "USD",
			},
			settlement: "USD",
			want:       "250",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ComputeTotalCost(tc.components, tc.settlement, testRates())
			if tc.wantError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.wantError))
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(dec(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

// Lowering the goods amount must always lower the total, including
// under percentage duty; the improvement-only rule depends on it.
func TestComputeTotalCost_MonotonicInAmount(t *testing.T) {
	t.Parallel()

	base := model.BidComponents{
		Amount: dec("100"), Currency: "EUR", FOB: dec("30"), Tax: dec("8"), Duty: dec("12.5"), DutyPercent: true,
	}
	lower := base
	lower.Amount = dec("99.99")

	baseTotal, err := ComputeTotalCost(base, "USD", testRates())
	require.NoError(t, err)
	lowerTotal, err := ComputeTotalCost(lower, "USD", testRates())
	require.NoError(t, err)

	require.True(t, lowerTotal.LessThan(baseTotal))
}
