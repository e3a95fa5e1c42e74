// Package pricing is the single authoritative implementation of the booking
// pricing formulas. Handlers use it for live previews and the submission
// path uses it for the final figures, so the two can never drift apart.
//
// All arithmetic is decimal; results are exact for the scale the wizard
// works at. Nothing here clamps negative inputs — bad input is a validation
// concern — except FinalTotal, which by definition floors at zero.
package pricing

import (
	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ProfitAmount returns totalCost * markupPct / 100.
func ProfitAmount(totalCost, markupPct decimal.Decimal) decimal.Decimal {
	return totalCost.Mul(markupPct).Div(hundred)
}

// SellingPrice returns the cost marked up: totalCost + ProfitAmount.
func SellingPrice(totalCost, markupPct decimal.Decimal) decimal.Decimal {
	return totalCost.Add(ProfitAmount(totalCost, markupPct))
}

// TaxAmount returns price * taxRatePct / 100.
func TaxAmount(price, taxRatePct decimal.Decimal) decimal.Decimal {
	return price.Mul(taxRatePct).Div(hundred)
}

// TotalWithTax returns price + tax.
func TotalWithTax(price, tax decimal.Decimal) decimal.Decimal {
	return price.Add(tax)
}

// FinalTotal returns totalWithTax - discount, floored at zero. This is the
// only place in the pipeline where a negative result is clamped.
func FinalTotal(totalWithTax, discount decimal.Decimal) decimal.Decimal {
	total := totalWithTax.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ConvertCurrency returns amount * rate.
func ConvertCurrency(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// ServicesCost sums the base-currency cost of every service.
func ServicesCost(services []domain.Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.CostInBaseCurrency)
	}
	return total
}

// Quote computes every derived pricing field from the entered inputs,
// returning a summary with TotalServicesCost, ProfitAmount,
// TotalSellingPrice, TaxAmount, TotalWithTax and FinalTotal filled in.
func Quote(services []domain.Service, entered domain.PricingSummary) domain.PricingSummary {
	out := entered
	out.TotalServicesCost = ServicesCost(services)
	out.ProfitAmount = ProfitAmount(out.TotalServicesCost, entered.MarkupPercentage)
	out.TotalSellingPrice = out.TotalServicesCost.Add(out.ProfitAmount)
	out.TaxAmount = TaxAmount(out.TotalSellingPrice, entered.TaxRate)
	out.TotalWithTax = TotalWithTax(out.TotalSellingPrice, out.TaxAmount)
	out.FinalTotal = FinalTotal(out.TotalWithTax, entered.DiscountAmount)
	return out
}
