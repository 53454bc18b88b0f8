package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salonflow/config"
	"salonflow/models"
)

// RosterSource supplies the staff/busy picture for a date. The availability
// resolver treats any error as "degrade to the business-hours template".
type RosterSource interface {
	RosterFor(ctx context.Context, date, serviceID string) (*models.Roster, error)
}

// HTTPRosterSource fetches rosters from the upstream availability API.
type HTTPRosterSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRosterSource builds a roster source against the configured
// availability endpoint.
func NewHTTPRosterSource() *HTTPRosterSource {
	return &HTTPRosterSource{
		BaseURL: config.AppConfig.AvailabilityURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RosterFor issues GET /availability?date=<ISO date>&serviceId=<id>. The
// core does not retry; transient failures fall through to the caller's
// fallback path.
func (s *HTTPRosterSource) RosterFor(ctx context.Context, date, serviceID string) (*models.Roster, error) {
	endpoint := fmt.Sprintf("%s/availability?date=%s&serviceId=%s",
		s.BaseURL, url.QueryEscape(date), url.QueryEscape(serviceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("availability API returned status %d", resp.StatusCode)
	}

	var roster models.Roster
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, fmt.Errorf("decode roster response: %w", err)
	}
	if roster.Date == "" {
		roster.Date = date
	}
	return &roster, nil
}
