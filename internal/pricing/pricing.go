// Package pricing holds the money math shared by the catalog and estimate
// services. All arithmetic goes through shopspring/decimal so repeated
// float64 accumulation cannot drift totals by a yen.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// TaxRate is the consumption tax rate applied to tax-inclusive totals.
	TaxRate = 0.10

	// DefaultMarkupRate is used to derive a selling price when an item
	// has no explicit markup configured.
	DefaultMarkupRate = 1.5
)

var (
	ErrNoPurchasePrice = errors.New("item has no purchase price")
	ErrNotFinite       = errors.New("value must be a finite number")
)

var taxDivisor = decimal.NewFromFloat(1 + TaxRate)

// LineAmount computes quantity * unitPrice exactly. Fractional results are
// stored as-is; nothing rounds at the line level.
func LineAmount(quantity, unitPrice float64) (float64, error) {
	if !isFinite(quantity) || !isFinite(unitPrice) {
		return 0, ErrNotFinite
	}
	amount := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitPrice))
	return amount.InexactFloat64(), nil
}

// Total sums the provided line amounts. An empty slice totals to zero.
func Total(amounts []float64) (float64, error) {
	sum := decimal.Zero
	for _, amount := range amounts {
		if !isFinite(amount) {
			return 0, ErrNotFinite
		}
		sum = sum.Add(decimal.NewFromFloat(amount))
	}
	return sum.InexactFloat64(), nil
}

// TaxBreakdown splits a tax-inclusive total into its pre-tax subtotal and
// tax portion. The subtotal is floored to a whole unit, so the two parts
// always add back to the total exactly.
func TaxBreakdown(total float64) (subtotal, tax float64, err error) {
	if !isFinite(total) {
		return 0, 0, ErrNotFinite
	}
	totalDec := decimal.NewFromFloat(total)
	subtotalDec := totalDec.Div(taxDivisor).Floor()
	taxDec := totalDec.Sub(subtotalDec)
	return subtotalDec.InexactFloat64(), taxDec.InexactFloat64(), nil
}

// DeriveUnitPrice proposes a selling price from the purchase price and
// markup rate, rounded to the nearest whole unit. Rates at or below zero
// fall back to DefaultMarkupRate. The result is a proposal only; callers
// decide whether to apply it to the catalog.
func DeriveUnitPrice(purchasePrice *float64, markupRate float64) (float64, error) {
	if purchasePrice == nil {
		return 0, ErrNoPurchasePrice
	}
	if !isFinite(*purchasePrice) || !isFinite(markupRate) {
		return 0, ErrNotFinite
	}
	if markupRate <= 0 {
		markupRate = DefaultMarkupRate
	}
	price := decimal.NewFromFloat(*purchasePrice).
		Mul(decimal.NewFromFloat(markupRate)).
		Round(0)
	return price.InexactFloat64(), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
