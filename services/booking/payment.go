package booking

import (
	"fmt"
	"sort"

	"salonflow/config"
	"salonflow/models"
)

// PaymentMethods is the gateway catalog offered at checkout. Fees are the
// method's published rates; charge capture itself is the gateway's problem.
var PaymentMethods = []models.PaymentMethod{
	{
		ID: "payfast", Name: "PayFast", Type: "card",
		Description:    "Secure card payments with 3D Secure",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 290},
		InstallmentOptions: true, InstantConfirmation: true,
	},
	{
		ID: "ozow", Name: "Ozow", Type: "bank_transfer",
		Description:    "Instant EFT payments from all major banks",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 150, PercentageBP: 0},
		InstallmentOptions: false, InstantConfirmation: true,
	},
	{
		ID: "yoco", Name: "Yoco", Type: "card",
		Description:    "Modern card processing for businesses",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 250},
		InstallmentOptions: true, InstantConfirmation: true,
	},
	{
		ID: "peach", Name: "Peach Payments", Type: "card",
		Description:    "Omnichannel payment platform",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 280},
		InstallmentOptions: true, InstantConfirmation: true,
	},
	{
		ID: "flutterwave", Name: "Flutterwave", Type: "mobile",
		Description:    "Mobile money and card payments",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 320},
		InstallmentOptions: true, InstantConfirmation: true,
	},
	{
		ID: "btc", Name: "Bitcoin", Type: "crypto",
		Description:    "Pay with Bitcoin cryptocurrency",
		ProcessingTime: "10-60 minutes",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 50},
		InstallmentOptions: false, InstantConfirmation: false,
	},
	{
		ID: "snapscan", Name: "SnapScan", Type: "mobile",
		Description:    "Scan & pay with your mobile phone",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 250},
		InstallmentOptions: false, InstantConfirmation: true,
	},
	{
		ID: "airtime", Name: "Airtime", Type: "wallet",
		Description:    "Pay using mobile airtime",
		ProcessingTime: "Instant",
		Fees:           models.MethodFees{Fixed: 0, PercentageBP: 500},
		InstallmentOptions: false, InstantConfirmation: true,
	},
}

// InstallmentPlans are the split-payment options for qualifying totals.
var InstallmentPlans = []models.InstallmentOption{
	{
		ID: "payfast_2", Name: "PayFast 2-Pay", Periods: 2,
		ProcessingFee: 250, MonthlyInterestBP: 0,
		EligibilityCriteria: []string{"Minimum R200", "Credit card payment"},
	},
	{
		ID: "ozow_3", Name: "Ozow 3-Pay", Periods: 3,
		ProcessingFee: 500, MonthlyInterestBP: 0,
		EligibilityCriteria: []string{"Minimum R500", "Bank account verification"},
	},
	{
		ID: "peach_6", Name: "Peach 6-Month", Periods: 6,
		ProcessingFee: 1500, MonthlyInterestBP: 150,
		EligibilityCriteria: []string{"Minimum R1000", "Credit check required"},
	},
	{
		ID: "peach_12", Name: "Peach 12-Month", Periods: 12,
		ProcessingFee: 2500, MonthlyInterestBP: 180,
		EligibilityCriteria: []string{"Minimum R2000", "Credit check required", "Income verification"},
	},
}

// discountTable maps known codes to percentage-of-subtotal reductions.
var discountTable = map[string]struct {
	percent     int64
	description string
}{
	"WELCOME10":  {10, "Welcome Discount (10%)"},
	"FIRST20":    {20, "First-Time Customer (20%)"},
	"LOYALTY15":  {15, "Loyalty Discount (15%)"},
	"REFERRAL25": {25, "Referral Bonus (25%)"},
}

// PaymentMethodByID looks up a gateway option.
func PaymentMethodByID(id string) *models.PaymentMethod {
	for i := range PaymentMethods {
		if PaymentMethods[i].ID == id {
			m := PaymentMethods[i]
			return &m
		}
	}
	return nil
}

// SummaryBuilder derives the final payable breakdown. It is pure: malformed
// input (unknown codes, unknown method) degrades to neutral values rather
// than erroring.
type SummaryBuilder struct {
	TaxRatePercent       int
	InstallmentThreshold int64
}

// NewSummaryBuilder reads the configured tax rate and installment threshold.
func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{
		TaxRatePercent:       config.AppConfig.TaxRatePercent,
		InstallmentThreshold: config.AppConfig.InstallmentThreshold,
	}
}

// Build combines the session totals with discounts, tax, and the chosen
// payment method's processing fee. Discount codes apply independently
// against the subtotal, order-independent and capped so the combined
// reduction never exceeds the subtotal.
func (b *SummaryBuilder) Build(session *models.BookingSession, discountCodes []string, methodID string) models.PaymentSummary {
	subtotal := session.Totals.Subtotal
	bookingFee := session.Totals.BookingFee

	summary := models.PaymentSummary{
		Subtotal:  subtotal,
		Discounts: []models.DiscountLine{},
		Fees: []models.FeeLine{
			{Type: "booking_fee", Description: "Service booking and processing fee", Amount: bookingFee},
		},
	}

	codes := append([]string(nil), discountCodes...)
	sort.Strings(codes)
	seen := make(map[string]bool)
	var discountTotal int64
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		line := models.DiscountLine{Code: code, Description: "Discount"}
		if known, ok := discountTable[code]; ok {
			line.Amount = subtotal * known.percent / 100
			line.Description = known.description
		}
		discountTotal += line.Amount
		summary.Discounts = append(summary.Discounts, line)
	}
	if discountTotal > subtotal {
		discountTotal = subtotal
	}

	tax := subtotal * int64(b.TaxRatePercent) / 100
	summary.Taxes = []models.TaxLine{{
		Type:        "VAT",
		Description: fmt.Sprintf("Value Added Tax (%d%%)", b.TaxRatePercent),
		RatePercent: b.TaxRatePercent,
		Amount:      tax,
	}}

	var processingFee int64
	if method := PaymentMethodByID(methodID); method != nil {
		processingFee = method.Fees.Fixed + subtotal*method.Fees.PercentageBP/10000
		summary.Method = method
		summary.Fees = append(summary.Fees, models.FeeLine{
			Type:        "processing_fee",
			Description: fmt.Sprintf("%s processing fee", method.Name),
			Amount:      processingFee,
		})
	}

	summary.Total = subtotal - discountTotal + tax + bookingFee + processingFee
	summary.DepositDue = bookingFee
	summary.BalanceDue = summary.Total - summary.DepositDue

	if summary.Method != nil && summary.Method.InstallmentOptions && summary.Total >= b.InstallmentThreshold {
		summary.Installments = quoteInstallments(summary.Total)
	}
	return summary
}

// quoteInstallments prices each plan against the payable total. Monthly
// interest is simple, in basis points per period; the monthly amount is a
// ceiling division so the plan always covers the total.
func quoteInstallments(total int64) []models.InstallmentQuote {
	quotes := make([]models.InstallmentQuote, 0, len(InstallmentPlans))
	for _, plan := range InstallmentPlans {
		interest := total * plan.MonthlyInterestBP * int64(plan.Periods) / 10000
		planTotal := total + plan.ProcessingFee + interest
		periods := int64(plan.Periods)
		quotes = append(quotes, models.InstallmentQuote{
			Option:        plan,
			MonthlyAmount: (planTotal + periods - 1) / periods,
			TotalAmount:   planTotal,
		})
	}
	return quotes
}
