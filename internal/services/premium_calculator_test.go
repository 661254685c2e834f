package services

import (
	"testing"

	"insurance-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func amountAdj(kind models.AdjustmentKind, amount float64) models.Adjustment {
	a := decimal.NewFromFloat(amount)
	return models.Adjustment{Kind: kind, Amount: &a}
}

func rateAdj(kind models.AdjustmentKind, rate float64) models.Adjustment {
	r := decimal.NewFromFloat(rate)
	return models.Adjustment{Kind: kind, Rate: &r}
}

// ============================================================================
// TEST SUITE 1: PREMIUM PIPELINE
// ============================================================================

func TestComputeTotalPremium_FullPipeline(t *testing.T) {
	base := decimal.NewFromInt(1000)
	discounts := models.AdjustmentList{amountAdj(models.AdjustmentDiscount, 100)}
	loadings := models.AdjustmentList{amountAdj(models.AdjustmentLoading, 50)}
	taxes := models.AdjustmentList{rateAdj(models.AdjustmentTax, 10)}
	fees := models.AdjustmentList{amountAdj(models.AdjustmentFee, 20)}

	total := ComputeTotalPremium(base, discounts, loadings, taxes, fees)

	// 1000 - 100 + 50 = 950; 10% tax -> 1045; + 20 fee = 1065
	assert.Equal(t, "1065.00", total.StringFixed(2))
}

func TestComputeTotalPremium_NoAdjustments(t *testing.T) {
	base := decimal.NewFromFloat(499.995)

	total := ComputeTotalPremium(base, nil, nil, nil, nil)

	assert.Equal(t, "500.00", total.StringFixed(2), "result should round to 2 places")
}

func TestComputeTotalPremium_DiscountsClampAtZero(t *testing.T) {
	base := decimal.NewFromInt(100)
	discounts := models.AdjustmentList{amountAdj(models.AdjustmentDiscount, 150)}
	fees := models.AdjustmentList{amountAdj(models.AdjustmentFee, 25)}

	total := ComputeTotalPremium(base, discounts, nil, nil, fees)

	// discount clamps the running total at zero before fees are added
	assert.Equal(t, "25.00", total.StringFixed(2))
}

func TestComputeTotalPremium_RateTaxesCompound(t *testing.T) {
	base := decimal.NewFromInt(1000)
	taxes := models.AdjustmentList{
		rateAdj(models.AdjustmentTax, 10),
		rateAdj(models.AdjustmentTax, 10),
	}

	total := ComputeTotalPremium(base, nil, nil, taxes, nil)

	// second rate tax applies against the running total: 1100 * 1.10 = 1210
	assert.Equal(t, "1210.00", total.StringFixed(2))
}

func TestComputeTotalPremium_AmountTaxBeforeRateTax(t *testing.T) {
	base := decimal.NewFromInt(1000)
	taxes := models.AdjustmentList{
		amountAdj(models.AdjustmentTax, 100),
		rateAdj(models.AdjustmentTax, 10),
	}

	total := ComputeTotalPremium(base, nil, nil, taxes, nil)

	// the amount tax raises the running total before the rate is applied
	assert.Equal(t, "1210.00", total.StringFixed(2))
}

func TestComputeTotalPremium_FeesNotTaxed(t *testing.T) {
	base := decimal.NewFromInt(1000)
	taxes := models.AdjustmentList{rateAdj(models.AdjustmentTax, 10)}
	fees := models.AdjustmentList{amountAdj(models.AdjustmentFee, 100)}

	total := ComputeTotalPremium(base, nil, nil, taxes, fees)

	// fees are added after taxes: 1100 + 100, not (1000+100)*1.10
	assert.Equal(t, "1200.00", total.StringFixed(2))
}

// ============================================================================
// TEST SUITE 2: COMMISSION CALCULATION
// ============================================================================

func TestCalculateCommission(t *testing.T) {
	premium := decimal.NewFromInt(5000)
	rate := decimal.NewFromFloat(12.5)

	amount := CalculateCommission(premium, rate)

	assert.Equal(t, "625.00", amount.StringFixed(2))
}

func TestCalculateCommission_RoundsHalfUp(t *testing.T) {
	premium := decimal.NewFromFloat(333.33)
	rate := decimal.NewFromFloat(7.5)

	amount := CalculateCommission(premium, rate)

	// 333.33 * 0.075 = 24.99975 -> 25.00
	assert.Equal(t, "25.00", amount.StringFixed(2))
}

func TestCalculateCommission_ZeroRate(t *testing.T) {
	amount := CalculateCommission(decimal.NewFromInt(5000), decimal.Zero)

	assert.True(t, amount.IsZero())
}
