package models

// Demand levels classify how contested a slot is and drive peak pricing.
const (
	DemandLow    = "low"
	DemandMedium = "medium"
	DemandHigh   = "high"
)

// StaffStatus is one staff member's eligibility for a slot.
type StaffStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// TimeSlot is a candidate appointment start for one date. Slots are a view;
// they are recomputed whenever the date or the service selection changes.
type TimeSlot struct {
	Time            string        `json:"time"` // HH:MM
	Available       bool          `json:"available"`
	Conflicts       []string      `json:"conflicts,omitempty"`
	EligibleStaff   []StaffStatus `json:"eligibleStaff"`
	DurationMinutes int           `json:"durationMinutes"`
	PriceAdjustment int64         `json:"priceAdjustment"` // minor units, signed
	DemandLevel     string        `json:"demandLevel"`
}

// DateAvailability aggregates the slots of a single calendar date.
type DateAvailability struct {
	Date                string     `json:"date"` // YYYY-MM-DD
	Available           bool       `json:"available"`
	Slots               []TimeSlot `json:"slots"`
	TotalAvailableSlots int        `json:"totalAvailableSlots"`
	PeakHours           bool       `json:"peakHours"`
	SpecialEvents       []string   `json:"specialEvents,omitempty"`
}

// BusyInterval is a half-open [Start, End) block in minutes from midnight
// during which a staff member cannot take an appointment.
type BusyInterval struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Reason string `json:"reason,omitempty"`
}

// StaffDay is one roster entry for a date: who the staff member is and when
// they are already committed.
type StaffDay struct {
	ID   string         `json:"id"`
	Name string         `json:"name,omitempty"`
	Busy []BusyInterval `json:"busy,omitempty"`
}

// Roster is the staff/resource picture for one date, fetched upstream.
type Roster struct {
	Date  string     `json:"date"`
	Staff []StaffDay `json:"staff"`
	// Conflicts are venue-wide blocks (maintenance, meetings) that make
	// every overlapping slot ineligible regardless of staff.
	Conflicts []BusyInterval `json:"conflicts,omitempty"`
}

// CalendarView is the rolling window shown on the date picker.
type CalendarView struct {
	Days []DateAvailability `json:"days"`
}
