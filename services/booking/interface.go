package booking

import (
	"context"

	recordsRepo "salonflow/database/repository/records"
	"salonflow/models"
	"salonflow/services/catalog"
)

// WizardService drives a booking session through the five-step flow. All
// session mutation funnels through these transition functions; callers only
// ever see completed snapshots.
type WizardService interface {
	StartSession(ctx context.Context) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	ResetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)

	SetServices(ctx context.Context, sessionID string, serviceIDs []string) (*models.BookingSession, error)
	AddService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error)
	RemoveService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error)
	SetDateTime(ctx context.Context, sessionID, date, timeOfDay string) (*models.BookingSession, error)
	SetCustomerDetails(ctx context.Context, sessionID string, details models.CustomerDetails) (map[string]string, *models.BookingSession, error)

	Next(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Previous(ctx context.Context, sessionID string) (*models.BookingSession, error)
	GoToStep(ctx context.Context, sessionID string, step int) (*models.BookingSession, error)

	Calendar(ctx context.Context, sessionID string) (*models.CalendarView, error)
	Availability(ctx context.Context, sessionID, date string) (*models.DateAvailability, error)
	PaymentSummary(ctx context.Context, sessionID string, discountCodes []string, methodID string) (*models.PaymentSummary, error)
	Confirm(ctx context.Context, sessionID, methodID string, discountCodes []string) (*models.BookingSession, error)
}

// ReminderScheduler queues an appointment reminder for a confirmed session.
type ReminderScheduler interface {
	ScheduleForBooking(ctx context.Context, session *models.BookingSession) error
}

// Engine implements WizardService.
type Engine struct {
	Store     *SessionStore
	Catalog   catalog.Service
	Resolver  *AvailabilityResolver
	Summary   *SummaryBuilder
	Submitter BookingSubmitter
	// Archive and Reminders are optional; nil skips the archive record and
	// the reminder respectively.
	Archive   recordsRepo.BookingRecordRepository
	Reminders ReminderScheduler
	Tenant    string
}
