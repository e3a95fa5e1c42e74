package domain

import "github.com/shopspring/decimal"

// PricingSummary holds the step 5 figures. All amounts are in BaseCurrency;
// SellingCurrency is carried for presentation only. Derived fields obey:
//
//	ProfitAmount      = TotalServicesCost * MarkupPercentage / 100
//	TotalSellingPrice = TotalServicesCost + ProfitAmount
//	TaxAmount         = TotalSellingPrice * TaxRate / 100
//	TotalWithTax      = TotalSellingPrice + TaxAmount
//	FinalTotal        = max(0, TotalWithTax - DiscountAmount)
type PricingSummary struct {
	TotalServicesCost decimal.Decimal
	MarkupPercentage  decimal.Decimal // 0..1000
	ProfitAmount      decimal.Decimal
	TotalSellingPrice decimal.Decimal

	TaxRateID    *int64
	TaxRate      decimal.Decimal // percent, 0..100
	TaxAmount    decimal.Decimal
	TotalWithTax decimal.Decimal

	PromoCodeID    *int64
	CampaignID     *int64
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal

	BaseCurrency    string
	SellingCurrency string
	BookingSource   BookingSource

	CancellationPolicyID *int64
	InternalNotes        string
}
