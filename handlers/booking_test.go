package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salonflow/models"
	"salonflow/services/booking"
	"salonflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWizard lets each test pin the engine behavior per operation.
type fakeWizard struct {
	session   *models.BookingSession
	fieldErrs map[string]string
	calendar  *models.CalendarView
	view      *models.DateAvailability
	summary   *models.PaymentSummary
	err       error
}

func (f *fakeWizard) out() (*models.BookingSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeWizard) StartSession(ctx context.Context) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) ResetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) SetServices(ctx context.Context, sessionID string, serviceIDs []string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) AddService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) RemoveService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) SetDateTime(ctx context.Context, sessionID, date, timeOfDay string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) SetCustomerDetails(ctx context.Context, sessionID string, details models.CustomerDetails) (map[string]string, *models.BookingSession, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.fieldErrs, f.session, nil
}

func (f *fakeWizard) Next(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) Previous(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) GoToStep(ctx context.Context, sessionID string, step int) (*models.BookingSession, error) {
	return f.out()
}

func (f *fakeWizard) Calendar(ctx context.Context, sessionID string) (*models.CalendarView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.calendar, nil
}

func (f *fakeWizard) Availability(ctx context.Context, sessionID, date string) (*models.DateAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeWizard) PaymentSummary(ctx context.Context, sessionID string, discountCodes []string, methodID string) (*models.PaymentSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func (f *fakeWizard) Confirm(ctx context.Context, sessionID, methodID string, discountCodes []string) (*models.BookingSession, error) {
	return f.out()
}

func newHandlerRouter(fw *fakeWizard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(fw)
	r.POST("/session", h.StartSession)
	r.GET("/session/:sessionID", h.GetSession)
	r.PUT("/session/:sessionID/details", h.SetDetails)
	r.POST("/session/:sessionID/next", h.Next)
	r.GET("/session/:sessionID/availability", h.Availability)
	r.POST("/session/:sessionID/confirm", h.Confirm)
	return r
}

func testSession() *models.BookingSession {
	return &models.BookingSession{
		SessionID:        "abc",
		SelectedServices: []models.Service{},
		CurrentStep:      models.StepServices,
		MaxStepReached:   models.StepServices,
	}
}

func TestStartSessionReturnsSessionAndToken(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{session: testSession()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Session models.BookingSession `json:"session"`
		Token   string                `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "abc", body.Session.SessionID)
	assert.NotEmpty(t, body.Token)
}

func TestGetSessionNotFound(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{err: booking.NewSessionError("booking session not found or expired")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session/abc", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found or expired")
}

func TestSetDetailsFieldErrors(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{
		session:   testSession(),
		fieldErrs: map[string]string{"email": "Please enter a valid email address"},
	})

	payload, _ := json.Marshal(models.CustomerDetails{Name: "Thandi", Email: "bad", Phone: "0821234567"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/session/abc/details", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
}

func TestNextIncludesCalendarOnDateStep(t *testing.T) {
	session := testSession()
	session.CurrentStep = models.StepDateTime
	r := newHandlerRouter(&fakeWizard{
		session:  session,
		calendar: &models.CalendarView{Days: []models.DateAvailability{{Date: "2026-09-07"}}},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session/abc/next", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "calendar")
}

func TestNextIncludesSummaryOnPaymentStep(t *testing.T) {
	session := testSession()
	session.CurrentStep = models.StepPayment
	r := newHandlerRouter(&fakeWizard{
		session: session,
		summary: &models.PaymentSummary{Subtotal: 15000},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session/abc/next", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "summary")
}

func TestNextOmitsCalendarElsewhere(t *testing.T) {
	session := testSession()
	session.CurrentStep = models.StepDetails
	r := newHandlerRouter(&fakeWizard{session: session})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session/abc/next", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "calendar")
	assert.NotContains(t, body, "summary")
}

func TestAvailabilityRequiresDate(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{view: &models.DateAvailability{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session/abc/availability", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session/abc/availability?date=2026-09-07", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfirmErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"wrong step", booking.NewStepError("booking can only be submitted from the payment step"), http.StatusConflict},
		{"bad method", booking.NewSelectionError("a payment method must be selected before submitting"), http.StatusBadRequest},
		{"upstream failure", &booking.SubmissionError{Message: "Please select a valid time slot"}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newHandlerRouter(&fakeWizard{err: tc.err})

			payload := []byte(`{"method":"payfast"}`)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/session/abc/confirm", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestMalformedPayloadUsesErrorEnvelope(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{session: testSession()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/session/abc/details", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid input", body.Message)
	assert.NotEmpty(t, body.Details)
}

func TestConfirmRequiresMethodInBody(t *testing.T) {
	r := newHandlerRouter(&fakeWizard{session: testSession()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session/abc/confirm", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
