package models

// MethodFees is the processing cost of a payment method: a fixed component
// plus a percentage of the subtotal, expressed in basis points.
type MethodFees struct {
	Fixed        int64 `json:"fixed"` // minor units
	PercentageBP int64 `json:"percentageBp"`
}

// PaymentMethod is a gateway option offered at checkout. The engine only
// models selection and fees; charge capture happens elsewhere.
type PaymentMethod struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"` // card, bank_transfer, mobile, crypto, wallet
	Description         string     `json:"description,omitempty"`
	ProcessingTime      string     `json:"processingTime,omitempty"`
	Fees                MethodFees `json:"fees"`
	InstallmentOptions  bool       `json:"installmentOptions"`
	InstantConfirmation bool       `json:"instantConfirmation"`
}

// InstallmentOption is one split-payment plan from the static table.
type InstallmentOption struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Periods             int      `json:"periods"`
	ProcessingFee       int64    `json:"processingFee"`     // minor units, flat
	MonthlyInterestBP   int64    `json:"monthlyInterestBp"` // basis points per month
	EligibilityCriteria []string `json:"eligibilityCriteria,omitempty"`
}

// InstallmentQuote is an option priced against a concrete total.
type InstallmentQuote struct {
	Option        InstallmentOption `json:"option"`
	MonthlyAmount int64             `json:"monthlyAmount"`
	TotalAmount   int64             `json:"totalAmount"` // incl. fee and interest
}

// DiscountLine is one applied code. Unknown codes still appear, with a zero
// amount, so the UI can show what was entered.
type DiscountLine struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// TaxLine is a flat-rate tax against the subtotal.
type TaxLine struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	RatePercent int    `json:"ratePercent"`
	Amount      int64  `json:"amount"`
}

// FeeLine is a non-tax charge (booking fee, gateway processing).
type FeeLine struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// PaymentSummary is the UI-ready breakdown that gates submission.
type PaymentSummary struct {
	Subtotal     int64              `json:"subtotal"`
	Discounts    []DiscountLine     `json:"discounts"`
	Taxes        []TaxLine          `json:"taxes"`
	Fees         []FeeLine          `json:"fees"`
	Total        int64              `json:"total"`
	DepositDue   int64              `json:"depositDue"`
	BalanceDue   int64              `json:"balanceDue"`
	Method       *PaymentMethod     `json:"method,omitempty"`
	Installments []InstallmentQuote `json:"installments,omitempty"`
}
