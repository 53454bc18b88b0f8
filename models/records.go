package models

import "time"

// BookingRecord archives a confirmed booking after the upstream submission
// succeeds. It is the only state that outlives the session.
type BookingRecord struct {
	ID            string          `bson:"id" json:"id"`
	BookingID     string          `bson:"bookingId" json:"bookingId"`
	Tenant        string          `bson:"tenant" json:"tenant"`
	Services      []Service       `bson:"services" json:"services"`
	ScheduledDate string          `bson:"scheduledDate" json:"scheduledDate"`
	ScheduledTime string          `bson:"scheduledTime" json:"scheduledTime"`
	Customer      CustomerDetails `bson:"customer" json:"customer"`
	Totals        Totals          `bson:"totals" json:"totals"`
	// Summary is the checkout breakdown the booking was submitted with,
	// including discounts and the chosen payment method.
	Summary   PaymentSummary `bson:"summary" json:"summary"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
