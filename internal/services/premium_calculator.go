package services

import (
	"insurance-service/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeTotalPremium runs the fixed premium pipeline:
//
//  1. start from the base premium
//  2. subtract discounts, clamped at zero
//  3. add loadings
//  4. apply taxes in order: amount entries are added directly, rate entries
//     are computed against the running total at the time each is applied
//  5. add fees
//
// The ordering is part of the contract; rate taxes must see the total after
// discounts and loadings but before fees, or totals stop being reproducible.
// The result is rounded to 2 decimal places.
func ComputeTotalPremium(basePremium decimal.Decimal, discounts, loadings, taxes, fees models.AdjustmentList) decimal.Decimal {
	total := basePremium

	total = total.Sub(sumAmounts(discounts))
	if total.IsNegative() {
		total = decimal.Zero
	}

	total = total.Add(sumAmounts(loadings))

	for _, tax := range taxes {
		switch {
		case tax.Amount != nil:
			total = total.Add(*tax.Amount)
		case tax.Rate != nil:
			total = total.Add(total.Mul(*tax.Rate).Div(oneHundred))
		}
	}

	total = total.Add(sumAmounts(fees))

	return total.Round(2)
}

func sumAmounts(adjustments models.AdjustmentList) decimal.Decimal {
	sum := decimal.Zero
	for _, adj := range adjustments {
		if adj.Amount != nil {
			sum = sum.Add(*adj.Amount)
		}
	}
	return sum
}

// CalculateCommission returns premium × rate / 100 rounded to 2 decimal
// places. Pure function, no state.
func CalculateCommission(premium, rate decimal.Decimal) decimal.Decimal {
	return premium.Mul(rate).Div(oneHundred).Round(2)
}
