package models

// Service is a bookable offering from the tenant's catalog. Catalog entries
// are immutable once fetched; sessions reference them by ID.
type Service struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description,omitempty"`
	Price                int64         `json:"price"` // minor currency units
	DurationMinutes      int           `json:"durationMinutes"`
	SetupTimeMinutes     int           `json:"setupTimeMinutes,omitempty"`
	CleanupTimeMinutes   int           `json:"cleanupTimeMinutes,omitempty"`
	Category             string        `json:"category,omitempty"`
	PricingTiers         []PricingTier `json:"pricingTiers,omitempty"`
	RequiresDeposit      bool          `json:"requiresDeposit,omitempty"`
	DepositPercentage    int           `json:"depositPercentage,omitempty"`
	MaxClientsPerSession int           `json:"maxClientsPerSession,omitempty"`
}

// PricingTier substitutes the flat price when the booked quantity falls
// inside its range. A zero MaxQuantity means the tier is unbounded above.
type PricingTier struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	MinQuantity int    `json:"minQuantity,omitempty"`
	MaxQuantity int    `json:"maxQuantity,omitempty"`
	Description string `json:"description,omitempty"`
}

// TotalDuration returns the combined appointment length of the selected
// services, used to size availability slots.
func TotalDuration(services []Service) int {
	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}
	return total
}
