package validation

import (
	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
	"tourdesk/internal/pricing"
)

var (
	maxMarkupPct = decimal.NewFromInt(1000)
	maxTaxPct    = decimal.NewFromInt(100)
)

// ValidatePricing checks the step 5 summary against its inputs and the
// services collected in step 4. Derived fields are recomputed through the
// pricing calculator and must match what the record carries; a negative
// profit or tax is reported here, never clamped downstream.
func ValidatePricing(p domain.PricingSummary, services []domain.Service) Result {
	var r Result

	if p.MarkupPercentage.IsNegative() || p.MarkupPercentage.GreaterThan(maxMarkupPct) {
		r = r.add("markupPercentage", "markup percentage must be between 0 and 1000")
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(maxTaxPct) {
		r = r.add("taxRate", "tax rate must be between 0 and 100")
	}
	if p.DiscountAmount.IsNegative() {
		r = r.add("discountAmount", "discount amount cannot be negative")
	}
	if p.ProfitAmount.IsNegative() {
		r = r.add("profitAmount", "profit amount cannot be negative")
	}
	if p.TaxAmount.IsNegative() {
		r = r.add("taxAmount", "tax amount cannot be negative")
	}

	if !isCurrencyCode(p.BaseCurrency) {
		r = r.add("baseCurrency", "base currency must be a 3-letter code")
	}
	if !isCurrencyCode(p.SellingCurrency) {
		r = r.add("sellingCurrency", "selling currency must be a 3-letter code")
	}

	switch p.BookingSource {
	case domain.BookingSourceDirect, domain.BookingSourceWebsite, domain.BookingSourcePhone,
		domain.BookingSourceReferral, domain.BookingSourceAgency:
	default:
		r = r.add("bookingSource", "unknown booking source")
	}

	if !r.Valid() {
		return r
	}

	want := pricing.Quote(services, p)
	if !p.TotalServicesCost.Equal(want.TotalServicesCost) {
		r = r.add("totalServicesCost", "total services cost does not match the sum of service costs")
	}
	if !p.ProfitAmount.Equal(want.ProfitAmount) {
		r = r.add("profitAmount", "profit amount does not match cost and markup")
	}
	if !p.TotalSellingPrice.Equal(want.TotalSellingPrice) {
		r = r.add("totalSellingPrice", "total selling price does not match cost plus profit")
	}
	if !p.TaxAmount.Equal(want.TaxAmount) {
		r = r.add("taxAmount", "tax amount does not match selling price and tax rate")
	}
	if !p.TotalWithTax.Equal(want.TotalWithTax) {
		r = r.add("totalWithTax", "total with tax does not match selling price plus tax")
	}
	if !p.FinalTotal.Equal(want.FinalTotal) {
		r = r.add("finalTotal", "final total does not match total with tax minus discount")
	}

	return r
}
