package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salonflow/config"
	"salonflow/models"
)

// BookingSubmission is the payload the upstream bookings API expects.
type BookingSubmission struct {
	Tenant        string                 `json:"tenant"`
	ServiceID     string                 `json:"serviceId"`
	Customer      models.CustomerDetails `json:"customer"`
	ScheduledTime string                 `json:"scheduledTime"` // salon-local, YYYY-MM-DDTHH:MM:SS
	Notes         string                 `json:"notes"`
}

// BookingSubmitter finalizes a booking with the external system and returns
// the upstream booking ID.
type BookingSubmitter interface {
	Submit(ctx context.Context, submission BookingSubmission) (string, error)
}

// HTTPBookingSubmitter posts bookings to the configured endpoint.
type HTTPBookingSubmitter struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPBookingSubmitter builds a submitter against the configured
// bookings endpoint.
func NewHTTPBookingSubmitter() *HTTPBookingSubmitter {
	return &HTTPBookingSubmitter{
		BaseURL: config.AppConfig.BookingsURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit issues POST /bookings. A non-2xx response surfaces the upstream
// error message as a SubmissionError; the caller must not advance the
// wizard on failure.
func (s *HTTPBookingSubmitter) Submit(ctx context.Context, submission BookingSubmission) (string, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return "", fmt.Errorf("marshal booking submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", &SubmissionError{Message: ""}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		// Best effort: fall back to a generic retry prompt when the body
		// is not the expected envelope.
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return "", &SubmissionError{Message: payload.Error.Message}
	}

	var payload struct {
		Booking struct {
			ID string `json:"id"`
		} `json:"booking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode booking response: %w", err)
	}
	if payload.Booking.ID == "" {
		return "", fmt.Errorf("booking response missing id")
	}
	return payload.Booking.ID, nil
}
