package models

// Wizard steps, in flow order.
const (
	StepServices     = 1
	StepDateTime     = 2
	StepDetails      = 3
	StepPayment      = 4
	StepConfirmation = 5
)

// CustomerDetails is the step-3 record. It is only stored on the session
// once field validation has passed.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Totals is derived from the selected services and never set directly.
type Totals struct {
	Subtotal         int64 `json:"subtotal"`
	BookingFee       int64 `json:"bookingFee"`
	RemainingBalance int64 `json:"remainingBalance"`
}

// Confirmation records a successful upstream booking submission.
type Confirmation struct {
	BookingID string `json:"bookingId"`
	Confirmed bool   `json:"confirmed"`
}

// BookingSession holds the evolving state of one booking flow between steps.
type BookingSession struct {
	SessionID        string           `json:"sessionId"`
	SelectedServices []Service        `json:"selectedServices"`
	SelectedDate     string           `json:"selectedDate,omitempty"` // YYYY-MM-DD
	SelectedTime     string           `json:"selectedTime,omitempty"` // HH:MM
	CustomerDetails  *CustomerDetails `json:"customerDetails,omitempty"`
	Totals           Totals           `json:"totals"`
	Confirmation     *Confirmation    `json:"confirmation,omitempty"`
	CurrentStep      int              `json:"currentStep"`

	// MaxStepReached tracks flow progress so direct navigation can only
	// jump forward to steps the caller has already unlocked.
	MaxStepReached int `json:"maxStepReached"`

	// AvailabilityRevision increments on every availability refresh; stale
	// refresh results are discarded when the revision has moved on.
	AvailabilityRevision uint64            `json:"availabilityRevision,omitempty"`
	Availability         *DateAvailability `json:"availability,omitempty"`
}

// HasService reports whether the session already holds the given service ID.
func (s *BookingSession) HasService(serviceID string) bool {
	for _, svc := range s.SelectedServices {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}
