package booking

import (
	"context"
	"regexp"
	"sync"
	"time"

	"salonflow/config"
	"salonflow/models"
	"salonflow/utils"

	"go.uber.org/zap"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// StartSession creates a fresh session at the Services step.
func (e *Engine) StartSession(ctx context.Context) (*models.BookingSession, error) {
	session, err := e.Store.Create(ctx)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("booking session started", zap.String("sessionID", session.SessionID))
	return session, nil
}

// GetSession returns a read-only snapshot of the session.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return e.Store.Get(ctx, sessionID)
}

// ResetSession restores the initial empty session under the same ID, used
// after a confirmed booking to start a new flow.
func (e *Engine) ResetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fresh := &models.BookingSession{
		SessionID:        session.SessionID,
		SelectedServices: []models.Service{},
		CurrentStep:      models.StepServices,
		MaxStepReached:   models.StepServices,
	}
	if err := e.Store.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// SetServices replaces the selection. Duplicate IDs are rejected, unknown
// IDs fail against the catalog, and totals are recomputed before the
// session is persisted — no caller ever observes a selection without its
// matching totals.
func (e *Engine) SetServices(ctx context.Context, sessionID string, serviceIDs []string) (*models.BookingSession, error) {
	seen := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if seen[id] {
			return nil, NewSelectionError("duplicate service " + id)
		}
		seen[id] = true
	}

	services, err := e.Catalog.ByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return e.applyServices(ctx, session, services)
}

// AddService appends one service to the selection.
func (e *Engine) AddService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.HasService(serviceID) {
		return nil, NewSelectionError("service already selected")
	}
	services, err := e.Catalog.ByIDs(ctx, []string{serviceID})
	if err != nil {
		return nil, err
	}
	return e.applyServices(ctx, session, append(session.SelectedServices, services[0]))
}

// RemoveService drops a service from the selection; removing an absent ID
// is a no-op.
func (e *Engine) RemoveService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := make([]models.Service, 0, len(session.SelectedServices))
	for _, svc := range session.SelectedServices {
		if svc.ID != serviceID {
			kept = append(kept, svc)
		}
	}
	return e.applyServices(ctx, session, kept)
}

// applyServices is the single write path for the selection: it swaps the
// list, recomputes totals, and drops the cached slot view whose duration
// just changed.
func (e *Engine) applyServices(ctx context.Context, session *models.BookingSession, services []models.Service) (*models.BookingSession, error) {
	session.SelectedServices = services
	session.Totals = ComputeTotals(services, CurrentDepositPolicy())
	session.Availability = nil
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetDateTime records the appointment moment. Date and time belong
// together: supplying a date without a time clears any previously selected
// time, since slot validity is date-scoped.
func (e *Engine) SetDateTime(ctx context.Context, sessionID, date, timeOfDay string) (*models.BookingSession, error) {
	if date == "" {
		return nil, NewSelectionError("date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewSelectionError("date must be YYYY-MM-DD")
	}
	if timeOfDay != "" && !clockPattern.MatchString(timeOfDay) {
		return nil, NewSelectionError("time must be HH:MM")
	}

	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectedDate = date
	session.SelectedTime = timeOfDay
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetCustomerDetails validates the step-3 fields. On validation failure the
// field-keyed error map comes back and the session is untouched.
func (e *Engine) SetCustomerDetails(ctx context.Context, sessionID string, details models.CustomerDetails) (map[string]string, *models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if fieldErrs := ValidateCustomerDetails(details); len(fieldErrs) > 0 {
		return fieldErrs, session, nil
	}
	session.CustomerDetails = &details
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return nil, session, nil
}

// Next advances one step when the current step's gate passes; otherwise the
// session is returned unchanged.
func (e *Engine) Next(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !CanProceed(session, session.CurrentStep) {
		return session, nil
	}
	session.CurrentStep++
	if session.CurrentStep > session.MaxStepReached {
		session.MaxStepReached = session.CurrentStep
	}
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Previous steps back without validation; back navigation never discards
// entered data.
func (e *Engine) Previous(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep > models.StepServices {
		session.CurrentStep--
		if err := e.Store.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// GoToStep jumps directly to a step. Out-of-range targets and forward jumps
// past the caller's progress are silent no-ops.
func (e *Engine) GoToStep(ctx context.Context, sessionID string, step int) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if step < models.StepServices || step > models.StepConfirmation || step > session.MaxStepReached {
		return session, nil
	}
	session.CurrentStep = step
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Calendar resolves the rolling booking window (default 30 days) for the
// date picker. Dates resolve concurrently; the order of the result is the
// order of the window.
func (e *Engine) Calendar(ctx context.Context, sessionID string) (*models.CalendarView, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	duration := models.TotalDuration(session.SelectedServices)
	serviceID := primaryServiceID(session)

	days := config.AppConfig.CalendarDays
	if days <= 0 {
		days = 30
	}

	view := &models.CalendarView{Days: make([]models.DateAvailability, days)}
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < days; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := start.AddDate(0, 0, i).Format("2006-01-02")
			day, err := e.Resolver.Resolve(ctx, date, duration, serviceID)
			if err != nil {
				utils.GetLogger().Error("calendar resolve failed",
					zap.String("date", date), zap.Error(err))
				view.Days[i] = models.DateAvailability{Date: date, Available: false, Slots: []models.TimeSlot{}}
				return
			}
			view.Days[i] = *day
		}(i)
	}
	wg.Wait()
	return view, nil
}

// Availability resolves the slot grid for one date. Refreshes carry a
// session revision: when a newer refresh has been issued meanwhile, the
// stale result is still returned to its caller but no longer stored —
// last request wins.
func (e *Engine) Availability(ctx context.Context, sessionID, date string) (*models.DateAvailability, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.AvailabilityRevision++
	revision := session.AvailabilityRevision
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	duration := models.TotalDuration(session.SelectedServices)
	view, err := e.Resolver.Resolve(ctx, date, duration, primaryServiceID(session))
	if err != nil {
		return nil, err
	}

	current, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return view, nil
	}
	if current.AvailabilityRevision != revision {
		utils.GetLogger().Debug("discarding superseded availability refresh",
			zap.String("sessionID", sessionID), zap.String("date", date))
		return view, nil
	}
	current.Availability = view
	if err := e.Store.Save(ctx, current); err != nil {
		return view, nil
	}
	return view, nil
}

// PaymentSummary builds the checkout breakdown from the current totals.
func (e *Engine) PaymentSummary(ctx context.Context, sessionID string, discountCodes []string, methodID string) (*models.PaymentSummary, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := e.Summary.Build(session, discountCodes, methodID)
	return &summary, nil
}

// Confirm submits the booking upstream and, on success, moves the session
// to the Confirmation step. Submission is rejected locally — no network
// call — unless a payment method is selected and steps 1-3 still validate.
// On upstream failure the session stays on the Payment step, unchanged.
func (e *Engine) Confirm(ctx context.Context, sessionID, methodID string, discountCodes []string) (*models.BookingSession, error) {
	session, err := e.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepPayment {
		return nil, NewStepError("booking can only be submitted from the payment step")
	}
	if PaymentMethodByID(methodID) == nil {
		return nil, NewSelectionError("a payment method must be selected before submitting")
	}
	for _, step := range []int{models.StepServices, models.StepDateTime, models.StepDetails} {
		if !CanProceed(session, step) {
			return nil, NewStepError("booking details are incomplete")
		}
	}
	summary := e.Summary.Build(session, discountCodes, methodID)

	submission := BookingSubmission{
		Tenant:        e.Tenant,
		ServiceID:     primaryServiceID(session),
		Customer:      *session.CustomerDetails,
		// Salon-local wall time; the upstream owns the venue's timezone.
		ScheduledTime: session.SelectedDate + "T" + session.SelectedTime + ":00",
		Notes:         session.CustomerDetails.Notes,
	}
	bookingID, err := e.Submitter.Submit(ctx, submission)
	if err != nil {
		return nil, err
	}

	session.Confirmation = &models.Confirmation{BookingID: bookingID, Confirmed: true}
	session.CurrentStep = models.StepConfirmation
	session.MaxStepReached = models.StepConfirmation
	if err := e.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	e.archive(ctx, session, summary)
	if e.Reminders != nil {
		if err := e.Reminders.ScheduleForBooking(ctx, session); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminder",
				zap.String("bookingID", bookingID), zap.Error(err))
		}
	}
	utils.GetLogger().Info("booking confirmed",
		zap.String("sessionID", session.SessionID), zap.String("bookingID", bookingID))
	return session, nil
}

// archive best-effort stores the confirmation record; failures are logged
// and never fail the flow.
func (e *Engine) archive(ctx context.Context, session *models.BookingSession, summary models.PaymentSummary) {
	if e.Archive == nil || session.Confirmation == nil {
		return
	}
	record := models.BookingRecord{
		BookingID:     session.Confirmation.BookingID,
		Tenant:        e.Tenant,
		Services:      session.SelectedServices,
		ScheduledDate: session.SelectedDate,
		ScheduledTime: session.SelectedTime,
		Customer:      *session.CustomerDetails,
		Totals:        session.Totals,
		Summary:       summary,
	}
	if _, err := e.Archive.Create(ctx, record); err != nil {
		utils.GetLogger().Error("failed to archive booking record",
			zap.String("bookingID", record.BookingID), zap.Error(err))
	}
}

func primaryServiceID(session *models.BookingSession) string {
	if len(session.SelectedServices) == 0 {
		return ""
	}
	return session.SelectedServices[0].ID
}
